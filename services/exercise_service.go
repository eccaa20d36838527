package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"gymAPI/internal/store"
	"gymAPI/internal/types/account"
	"gymAPI/internal/types/challenge"
	"gymAPI/internal/types/exercise"
)

type ExerciseService struct {
	users      store.Collection
	exercises  store.Collection
	challenges store.Collection
	logger     *zap.Logger
	now        func() time.Time
}

func NewExerciseService(db store.Database, logger *zap.Logger) *ExerciseService {
	return &ExerciseService{
		users:      db.Collection(store.Users),
		exercises:  db.Collection(store.ExerciseTypes),
		challenges: db.Collection(store.Challenges),
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ExerciseService) Create(ctx context.Context, adminID string, d exercise.Definition) (exercise.ExerciseType, error) {
	if _, err := requireCapability(ctx, s.users, adminID, account.ManagePlatform, ErrExerciseCreateForbidden); err != nil {
		return exercise.ExerciseType{}, err
	}
	if err := s.ensureNameFree(ctx, d.Name, ""); err != nil {
		return exercise.ExerciseType{}, err
	}

	e := exercise.New(d, s.now())
	if err := s.exercises.Insert(ctx, e.ID, e); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return exercise.ExerciseType{}, ErrExerciseNameTaken
		}
		return exercise.ExerciseType{}, fmt.Errorf("failed to create exercise type: %w", err)
	}
	return e, nil
}

func (s *ExerciseService) Update(ctx context.Context, adminID, id string, d exercise.Definition) (exercise.ExerciseType, error) {
	if _, err := requireCapability(ctx, s.users, adminID, account.ManagePlatform, ErrExerciseUpdateForbidden); err != nil {
		return exercise.ExerciseType{}, err
	}
	e, err := load[exercise.ExerciseType](ctx, s.exercises, id, ErrExerciseNotFound)
	if err != nil {
		return exercise.ExerciseType{}, err
	}
	if d.Name != "" && d.Name != e.Name {
		if err := s.ensureNameFree(ctx, d.Name, e.ID); err != nil {
			return exercise.ExerciseType{}, err
		}
	}

	updated := e.WithDefinition(d, s.now())
	if err := s.exercises.Replace(ctx, updated.ID, updated); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return exercise.ExerciseType{}, ErrExerciseNameTaken
		}
		return exercise.ExerciseType{}, fmt.Errorf("failed to update exercise type: %w", err)
	}
	return updated, nil
}

// Delete refuses to remove an exercise type that any challenge still lists.
func (s *ExerciseService) Delete(ctx context.Context, adminID, id string) error {
	if _, err := requireCapability(ctx, s.users, adminID, account.ManagePlatform, ErrExerciseDeleteForbidden); err != nil {
		return err
	}
	e, err := load[exercise.ExerciseType](ctx, s.exercises, id, ErrExerciseNotFound)
	if err != nil {
		return err
	}

	challenges, err := store.FindAll[challenge.Challenge](ctx, s.challenges, store.Filter{})
	if err != nil {
		return fmt.Errorf("failed to scan challenges: %w", err)
	}
	for _, c := range challenges {
		if c.UsesExercise(e.Name) {
			return ErrExerciseInUse
		}
	}

	if err := s.exercises.Delete(ctx, e.ID); err != nil {
		return fmt.Errorf("failed to delete exercise type: %w", err)
	}
	s.logger.Info("exercise type deleted", zap.String("exercise_id", e.ID))
	return nil
}

// List returns exercise types sorted by name.
func (s *ExerciseService) List(ctx context.Context, f exercise.ListFilter) ([]exercise.ExerciseType, error) {
	filter := store.Filter{}
	if f.Difficulty != "" {
		filter["difficulty"] = string(f.Difficulty)
	}
	all, err := store.FindAll[exercise.ExerciseType](ctx, s.exercises, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise types: %w", err)
	}

	out := all[:0]
	for _, e := range all {
		if f.TargetMuscle == "" || e.TargetsMuscle(f.TargetMuscle) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b exercise.ExerciseType) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (s *ExerciseService) Get(ctx context.Context, id string) (exercise.ExerciseType, error) {
	return load[exercise.ExerciseType](ctx, s.exercises, id, ErrExerciseNotFound)
}

func (s *ExerciseService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := store.FindOne[exercise.ExerciseType](ctx, s.exercises, store.Filter{"name": name})
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up exercise type: %w", err)
	}
	if existing.ID != selfID {
		return ErrExerciseNameTaken
	}
	return nil
}
