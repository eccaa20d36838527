package stats

import (
	"gymAPI/internal/types/badge"
	"gymAPI/internal/types/participation"
)

type UserCounts struct {
	Total  int64            `json:"total"`
	Active int64            `json:"active"`
	ByRole map[string]int64 `json:"byRole"`
}

type GymCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type StatusCounts struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

type BadgeCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// AdminDashboard is the platform-wide overview.
type AdminDashboard struct {
	Users          UserCounts   `json:"users"`
	Gyms           GymCounts    `json:"gyms"`
	Challenges     StatusCounts `json:"challenges"`
	Participations StatusCounts `json:"participations"`
	Badges         BadgeCounts  `json:"badges"`
	ExerciseTypes  int64        `json:"exerciseTypes"`
}

type GymSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Capacity int    `json:"capacity"`
}

type ParticipantCounts struct {
	Unique    int `json:"unique"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

type MonthActivity struct {
	NewParticipants int `json:"newParticipants"`
	WorkoutSessions int `json:"workoutSessions"`
	TotalCalories   int `json:"totalCalories"`
	TotalDuration   int `json:"totalDuration"`
}

// OwnerStats summarizes a gym owner's challenges.
type OwnerStats struct {
	Gym          GymSummary        `json:"gym"`
	Challenges   StatusCounts      `json:"challenges"`
	Participants ParticipantCounts `json:"participants"`
	ThisMonth    MonthActivity     `json:"thisMonth"`
}

type ClientSummary struct {
	ActiveChallenges int `json:"activeChallenges"`
	TotalBadges      int `json:"totalBadges"`
	TotalWorkouts    int `json:"totalWorkouts"`
	TotalCalories    int `json:"totalCalories"`
	TotalDuration    int `json:"totalDuration"`
}

// Workout is a logged session together with where it was logged.
type Workout struct {
	participation.WorkoutSession
	ChallengeID     string `json:"challengeId"`
	ChallengeTitle  string `json:"challengeTitle,omitempty"`
	ParticipationID string `json:"participationId,omitempty"`
}

type ClientDashboard struct {
	Stats            ClientSummary                 `json:"stats"`
	ActiveChallenges []participation.WithChallenge `json:"activeChallenges"`
	RecentBadges     []badge.UserBadge             `json:"recentBadges"`
	RecentWorkouts   []Workout                     `json:"recentWorkouts"`
}

type ChallengeCounts struct {
	Completed int `json:"completed"`
	Active    int `json:"active"`
	Total     int `json:"total"`
}

type WorkoutTotals struct {
	Total         int `json:"total"`
	ThisMonth     int `json:"thisMonth"`
	TotalDuration int `json:"totalDuration"`
	TotalCalories int `json:"totalCalories"`
}

type BadgeSummary struct {
	Total  int               `json:"total"`
	Recent []badge.UserBadge `json:"recent"`
}

type MonthlyProgress struct {
	Workouts int `json:"workouts"`
	Duration int `json:"duration"`
	Calories int `json:"calories"`
}

type ClientStats struct {
	Challenges      ChallengeCounts `json:"challenges"`
	Workouts        WorkoutTotals   `json:"workouts"`
	Badges          BadgeSummary    `json:"badges"`
	MonthlyProgress MonthlyProgress `json:"monthlyProgress"`
}
