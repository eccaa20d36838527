package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymAPI/internal/types/account"
	"gymAPI/internal/types/exercise"
)

func TestExerciseCatalog(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	client := env.account(t, "client@example.com", account.RoleClient)

	squat := exercise.Definition{Name: "Squat", Description: "Knees bend", TargetMuscles: []string{"Quadriceps", "Glutes"}, Difficulty: exercise.Beginner}
	_, err := env.exercises.Create(env.ctx, client.ID, squat)
	assert.ErrorIs(t, err, ErrExerciseCreateForbidden)

	created, err := env.exercises.Create(env.ctx, admin.ID, squat)
	require.NoError(t, err)
	_, err = env.exercises.Create(env.ctx, admin.ID, squat)
	assert.ErrorIs(t, err, ErrExerciseNameTaken)

	_, err = env.exercises.Create(env.ctx, admin.ID, exercise.Definition{
		Name: "Deadlift", Description: "Hinge", TargetMuscles: []string{"Hamstrings"}, Difficulty: exercise.Advanced,
	})
	require.NoError(t, err)

	byMuscle, err := env.exercises.List(env.ctx, exercise.ListFilter{TargetMuscle: "glute"})
	require.NoError(t, err)
	require.Len(t, byMuscle, 1)
	assert.Equal(t, created.ID, byMuscle[0].ID)

	advanced, err := env.exercises.List(env.ctx, exercise.ListFilter{Difficulty: exercise.Advanced})
	require.NoError(t, err)
	require.Len(t, advanced, 1)
	assert.Equal(t, "Deadlift", advanced[0].Name)

	_, err = env.exercises.Update(env.ctx, admin.ID, created.ID, exercise.Definition{Name: "Deadlift"})
	assert.ErrorIs(t, err, ErrExerciseNameTaken)

	updated, err := env.exercises.Update(env.ctx, admin.ID, created.ID, exercise.Definition{Description: "Deep knee bend"})
	require.NoError(t, err)
	assert.Equal(t, "Squat", updated.Name)
	assert.Equal(t, "Deep knee bend", updated.Description)
}

func TestExerciseDeleteGuard(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)

	used, err := env.exercises.Create(env.ctx, admin.ID, exercise.Definition{
		Name: "Squat", Description: "Knees bend", TargetMuscles: []string{"Quadriceps"}, Difficulty: exercise.Beginner,
	})
	require.NoError(t, err)
	unused, err := env.exercises.Create(env.ctx, admin.ID, exercise.Definition{
		Name: "Plank", Description: "Hold", TargetMuscles: []string{"Core"}, Difficulty: exercise.Beginner,
	})
	require.NoError(t, err)

	env.challenge(t, admin, nil)

	err = env.exercises.Delete(env.ctx, admin.ID, used.ID)
	assert.ErrorIs(t, err, ErrExerciseInUse)

	require.NoError(t, env.exercises.Delete(env.ctx, admin.ID, unused.ID))
	_, err = env.exercises.Get(env.ctx, unused.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}
