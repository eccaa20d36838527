package participation

import "time"

type AddWorkoutSessionRequest struct {
	Date               *time.Time `json:"date,omitempty"`
	Duration           int        `json:"duration" validate:"required,min=1"`
	CaloriesBurned     int        `json:"caloriesBurned" validate:"min=0"`
	ExercisesCompleted []string   `json:"exercisesCompleted" validate:"required"`
	Notes              string     `json:"notes,omitempty"`
}

func (r AddWorkoutSessionRequest) Input() SessionInput {
	in := SessionInput{
		Duration:           r.Duration,
		CaloriesBurned:     r.CaloriesBurned,
		ExercisesCompleted: r.ExercisesCompleted,
		Notes:              r.Notes,
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	return in
}

type UpdateWorkoutSessionRequest struct {
	Duration           *int     `json:"duration,omitempty" validate:"omitempty,min=1"`
	CaloriesBurned     *int     `json:"caloriesBurned,omitempty" validate:"omitempty,min=0"`
	ExercisesCompleted []string `json:"exercisesCompleted,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

func (r UpdateWorkoutSessionRequest) Changes() SessionChanges { return SessionChanges(r) }

type AddWorkoutSessionResult struct {
	Success      bool     `json:"success"`
	NewProgress  float64  `json:"newProgress"`
	Completed    bool     `json:"completed"`
	BadgesEarned []string `json:"badgesEarned"`
}

type SessionMutationResult struct {
	Success     bool            `json:"success"`
	NewProgress float64         `json:"newProgress"`
	Session     *WorkoutSession `json:"session,omitempty"`
	Message     string          `json:"message,omitempty"`
}

// Summary is a participation with its session totals.
type Summary struct {
	Participation
	TotalCalories int `json:"totalCalories"`
	TotalDuration int `json:"totalDuration"`
	TotalWorkouts int `json:"totalWorkouts"`
}

func Summarize(p Participation) Summary {
	return Summary{
		Participation: p,
		TotalCalories: p.TotalCalories(),
		TotalDuration: p.TotalDuration(),
		TotalWorkouts: len(p.WorkoutSessions),
	}
}

// Participant is a participation listed under its challenge, with the
// participant's email.
type Participant struct {
	Summary
	Email string `json:"email"`
}

// ChallengeRef is the challenge summary embedded in a user's participation
// listing.
type ChallengeRef struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Difficulty string `json:"difficulty"`
	Duration   int    `json:"duration"`
}

// UnknownChallenge stands in for a challenge that no longer exists.
var UnknownChallenge = ChallengeRef{Title: "Unknown Challenge", Status: "unknown", Difficulty: "unknown"}

type WithChallenge struct {
	Summary
	Challenge ChallengeRef `json:"challenge"`
}
