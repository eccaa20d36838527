package exercise

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

type ExerciseType struct {
	ID            string     `bson:"_id"           json:"id"`
	Name          string     `bson:"name"          json:"name"`
	Description   string     `bson:"description"   json:"description"`
	TargetMuscles []string   `bson:"targetMuscles" json:"targetMuscles"`
	Difficulty    Difficulty `bson:"difficulty"    json:"difficulty"`
	CreatedAt     time.Time  `bson:"createdAt"     json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt"     json:"updatedAt"`
}

type Definition struct {
	Name          string
	Description   string
	TargetMuscles []string
	Difficulty    Difficulty
}

func New(d Definition, now time.Time) ExerciseType {
	return ExerciseType{
		ID:            uuid.NewString(),
		Name:          d.Name,
		Description:   d.Description,
		TargetMuscles: append([]string{}, d.TargetMuscles...),
		Difficulty:    d.Difficulty,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (e ExerciseType) WithDefinition(d Definition, now time.Time) ExerciseType {
	if d.Name != "" {
		e.Name = d.Name
	}
	if d.Description != "" {
		e.Description = d.Description
	}
	if d.TargetMuscles != nil {
		e.TargetMuscles = append([]string{}, d.TargetMuscles...)
	} else {
		e.TargetMuscles = append([]string{}, e.TargetMuscles...)
	}
	if d.Difficulty != "" {
		e.Difficulty = d.Difficulty
	}
	e.UpdatedAt = now
	return e
}

// TargetsMuscle reports a case-insensitive substring match against any
// listed muscle group.
func (e ExerciseType) TargetsMuscle(muscle string) bool {
	needle := strings.ToLower(muscle)
	for _, m := range e.TargetMuscles {
		if strings.Contains(strings.ToLower(m), needle) {
			return true
		}
	}
	return false
}
