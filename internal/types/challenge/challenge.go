package challenge

import (
	"time"

	"github.com/google/uuid"

	"gymAPI/internal/types/exercise"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Challenge struct {
	ID              string              `bson:"_id"                       json:"id"`
	Title           string              `bson:"title"                     json:"title"`
	Description     string              `bson:"description"               json:"description"`
	Objectives      []string            `bson:"objectives"                json:"objectives"`
	ExerciseTypes   []string            `bson:"exerciseTypes"             json:"exerciseTypes"`
	Duration        int                 `bson:"duration"                  json:"duration"`
	Difficulty      exercise.Difficulty `bson:"difficulty"                json:"difficulty"`
	CreatorID       string              `bson:"creatorId"                 json:"creatorId"`
	GymID           string              `bson:"gymId,omitempty"           json:"gymId,omitempty"`
	Status          Status              `bson:"status"                    json:"status"`
	MaxParticipants *int                `bson:"maxParticipants,omitempty" json:"maxParticipants,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt"                 json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt"                 json:"updatedAt"`
}

type Draft struct {
	Title           string
	Description     string
	Objectives      []string
	ExerciseTypes   []string
	Duration        int
	Difficulty      exercise.Difficulty
	GymID           string
	MaxParticipants *int
}

// Changes is an update. Empty fields keep the current value; MaxParticipants
// replaces the current limit whenever it is non-nil. A non-empty Status
// closes the challenge.
type Changes struct {
	Title           string
	Description     string
	Objectives      []string
	ExerciseTypes   []string
	Duration        int
	Difficulty      exercise.Difficulty
	MaxParticipants *int
	Status          Status
}

func New(creatorID string, d Draft, now time.Time) Challenge {
	return Challenge{
		ID:              uuid.NewString(),
		Title:           d.Title,
		Description:     d.Description,
		Objectives:      clone(d.Objectives),
		ExerciseTypes:   clone(d.ExerciseTypes),
		Duration:        d.Duration,
		Difficulty:      d.Difficulty,
		CreatorID:       creatorID,
		GymID:           d.GymID,
		Status:          StatusActive,
		MaxParticipants: cloneInt(d.MaxParticipants),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (c Challenge) WithChanges(ch Changes, now time.Time) Challenge {
	if ch.Title != "" {
		c.Title = ch.Title
	}
	if ch.Description != "" {
		c.Description = ch.Description
	}
	if ch.Objectives != nil {
		c.Objectives = clone(ch.Objectives)
	} else {
		c.Objectives = clone(c.Objectives)
	}
	if ch.ExerciseTypes != nil {
		c.ExerciseTypes = clone(ch.ExerciseTypes)
	} else {
		c.ExerciseTypes = clone(c.ExerciseTypes)
	}
	if ch.Duration != 0 {
		c.Duration = ch.Duration
	}
	if ch.Difficulty != "" {
		c.Difficulty = ch.Difficulty
	}
	if ch.MaxParticipants != nil {
		c.MaxParticipants = cloneInt(ch.MaxParticipants)
	} else {
		c.MaxParticipants = cloneInt(c.MaxParticipants)
	}
	c.UpdatedAt = now
	if ch.Status != "" {
		return c.WithStatus(ch.Status, now)
	}
	return c
}

func (c Challenge) WithStatus(s Status, now time.Time) Challenge {
	c.Status = s
	c.UpdatedAt = now
	return c
}

func (c Challenge) IsActive() bool { return c.Status == StatusActive }

// HasRoomFor reports whether another participant fits given the current
// participation count. A challenge without a limit always has room.
func (c Challenge) HasRoomFor(current int64) bool {
	return c.MaxParticipants == nil || current < int64(*c.MaxParticipants)
}

func (c Challenge) UsesExercise(name string) bool {
	for _, n := range c.ExerciseTypes {
		if n == name {
			return true
		}
	}
	return false
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
