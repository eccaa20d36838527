package challenge

import "gymAPI/internal/types/exercise"

type CreateChallengeRequest struct {
	Title           string              `json:"title" validate:"required"`
	Description     string              `json:"description" validate:"required"`
	Objectives      []string            `json:"objectives" validate:"required"`
	ExerciseTypes   []string            `json:"exerciseTypes" validate:"required"`
	Duration        int                 `json:"duration" validate:"required,min=1"`
	Difficulty      exercise.Difficulty `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	GymID           string              `json:"gymId,omitempty"`
	MaxParticipants *int                `json:"maxParticipants,omitempty" validate:"omitempty,min=1"`
}

type UpdateChallengeRequest struct {
	Title           string              `json:"title,omitempty"`
	Description     string              `json:"description,omitempty"`
	Objectives      []string            `json:"objectives,omitempty"`
	ExerciseTypes   []string            `json:"exerciseTypes,omitempty"`
	Duration        int                 `json:"duration,omitempty" validate:"omitempty,min=1"`
	Difficulty      exercise.Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	MaxParticipants *int                `json:"maxParticipants,omitempty" validate:"omitempty,min=1"`
	Status          Status              `json:"status,omitempty" validate:"omitempty,oneof=completed cancelled"`
}

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r CreateChallengeRequest) Draft() Draft { return Draft(r) }

func (r UpdateChallengeRequest) Changes() Changes { return Changes(r) }

type ListFilter struct {
	Status     Status
	Difficulty exercise.Difficulty
	GymID      string
}

// Stats are participation aggregates for one challenge.
type Stats struct {
	ParticipantCount      int  `json:"participantCount"`
	ActiveParticipants    int  `json:"activeParticipants"`
	CompletedParticipants int  `json:"completedParticipants"`
	CanJoin               bool `json:"canJoin"`
}

type WithStats struct {
	Challenge
	Stats
}
