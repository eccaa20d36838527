package challenge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gymAPI/internal/types/exercise"
)

func TestHasRoomFor(t *testing.T) {
	now := time.Now()
	unlimited := New("c1", Draft{Title: "Open"}, now)
	assert.True(t, unlimited.HasRoomFor(1000))

	one := 1
	limited := New("c1", Draft{Title: "Solo", MaxParticipants: &one}, now)
	assert.True(t, limited.HasRoomFor(0))
	assert.False(t, limited.HasRoomFor(1))
}

func TestWithChangesCopiesAndKeeps(t *testing.T) {
	now := time.Now()
	limit := 10
	c := New("creator", Draft{
		Title:           "Squat month",
		Description:     "squat daily",
		ExerciseTypes:   []string{"Squat"},
		Duration:        30,
		Difficulty:      exercise.Beginner,
		MaxParticipants: &limit,
	}, now)

	five := 5
	updated := c.WithChanges(Changes{Duration: 14, MaxParticipants: &five}, now.Add(time.Second))

	assert.Equal(t, "Squat month", updated.Title)
	assert.Equal(t, 14, updated.Duration)
	assert.Equal(t, exercise.Beginner, updated.Difficulty)
	assert.Equal(t, 5, *updated.MaxParticipants)
	assert.Equal(t, 10, *c.MaxParticipants)
	assert.True(t, updated.UsesExercise("Squat"))
	assert.False(t, updated.UsesExercise("squat"))
}

func TestWithChangesCanClose(t *testing.T) {
	now := time.Now()
	c := New("creator", Draft{Title: "Plank"}, now)
	assert.True(t, c.IsActive())

	cancelled := c.WithChanges(Changes{Status: StatusCancelled}, now.Add(time.Minute))
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, now.Add(time.Minute), cancelled.UpdatedAt)
	assert.True(t, c.IsActive())
}
