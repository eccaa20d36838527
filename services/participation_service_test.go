package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymAPI/internal/notification"
	"gymAPI/internal/types/account"
	"gymAPI/internal/types/pagination"
	"gymAPI/internal/types/participation"
)

func hour() participation.SessionInput {
	return participation.SessionInput{Duration: 60, CaloriesBurned: 400, ExercisesCompleted: []string{"Squat"}}
}

func TestOneHourSessionGivesFivePoints(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	alice := env.account(t, "alice@example.com", account.RoleClient)
	c := env.challenge(t, admin, nil)
	p, err := env.challenges.Join(env.ctx, c.ID, alice.ID)
	require.NoError(t, err)

	res, err := env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, hour())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 5.0, res.NewProgress)
	assert.False(t, res.Completed)
	assert.Empty(t, res.BadgesEarned)
	assert.NotNil(t, res.BadgesEarned)
}

func TestTwentyHoursCompleteTheParticipation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	alice := env.account(t, "alice@example.com", account.RoleClient)
	c := env.challenge(t, admin, nil)
	p, err := env.challenges.Join(env.ctx, c.ID, alice.ID)
	require.NoError(t, err)

	var res participation.AddWorkoutSessionResult
	for i := 0; i < 20; i++ {
		res, err = env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, hour())
		require.NoError(t, err)
		if i < 19 {
			require.False(t, res.Completed)
		}
	}
	assert.Equal(t, 100.0, res.NewProgress)
	assert.True(t, res.Completed)

	got, err := env.participations.Get(env.ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, participation.StatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	assert.Equal(t, 20, got.TotalWorkouts)
	assert.Equal(t, 1200, got.TotalDuration)
	assert.Equal(t, c.Title, got.Challenge.Title)

	_, err = env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, hour())
	assert.ErrorIs(t, err, ErrParticipationCompleted)

	completed := env.notifier.ofType(notification.TypeChallengeCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, alice.ID, completed[0].UserID)
}

func TestSessionOwnership(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	alice := env.account(t, "alice@example.com", account.RoleClient)
	mallory := env.account(t, "mallory@example.com", account.RoleClient)
	c := env.challenge(t, admin, nil)
	p, err := env.challenges.Join(env.ctx, c.ID, alice.ID)
	require.NoError(t, err)

	_, err = env.participations.AddWorkoutSession(env.ctx, p.ID, mallory.ID, hour())
	assert.ErrorIs(t, err, ErrSessionAddForbidden)
	_, err = env.participations.AddWorkoutSession(env.ctx, "missing", alice.ID, hour())
	assert.ErrorIs(t, err, ErrParticipationNotFound)

	_, err = env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, hour())
	require.NoError(t, err)
	sessions, err := env.participations.ListSessions(env.ctx, p.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	sessionID := sessions[0].ID

	_, err = env.participations.UpdateWorkoutSession(env.ctx, p.ID, sessionID, mallory.ID, participation.SessionChanges{})
	assert.ErrorIs(t, err, ErrSessionUpdateForbidden)
	_, err = env.participations.DeleteWorkoutSession(env.ctx, p.ID, sessionID, mallory.ID)
	assert.ErrorIs(t, err, ErrSessionDeleteForbidden)
	_, err = env.participations.Get(env.ctx, p.ID, mallory.ID)
	assert.ErrorIs(t, err, ErrParticipationViewForbidden)
	_, err = env.participations.ListSessions(env.ctx, p.ID, mallory.ID)
	assert.ErrorIs(t, err, ErrParticipationViewForbidden)
}

func TestUpdateAndDeleteSessionRecomputeProgress(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	alice := env.account(t, "alice@example.com", account.RoleClient)
	c := env.challenge(t, admin, nil)
	p, err := env.challenges.Join(env.ctx, c.ID, alice.ID)
	require.NoError(t, err)

	_, err = env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, hour())
	require.NoError(t, err)
	_, err = env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, hour())
	require.NoError(t, err)
	sessions, err := env.participations.ListSessions(env.ctx, p.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	longer := 180
	notes := "felt strong"
	res, err := env.participations.UpdateWorkoutSession(env.ctx, p.ID, sessions[0].ID, alice.ID, participation.SessionChanges{Duration: &longer, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.NewProgress)
	require.NotNil(t, res.Session)
	assert.Equal(t, "felt strong", res.Session.Notes)

	res, err = env.participations.DeleteWorkoutSession(env.ctx, p.ID, sessions[0].ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.NewProgress)
	assert.Equal(t, "Workout session deleted successfully", res.Message)

	_, err = env.participations.DeleteWorkoutSession(env.ctx, p.ID, sessions[0].ID, alice.ID)
	assert.ErrorIs(t, err, ErrWorkoutSessionNotFound)
}

func TestListSessionsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	alice := env.account(t, "alice@example.com", account.RoleClient)
	c := env.challenge(t, admin, nil)
	p, err := env.challenges.Join(env.ctx, c.ID, alice.ID)
	require.NoError(t, err)

	older := hour()
	older.Date = time.Now().Add(-48 * time.Hour)
	newer := hour()
	newer.Date = time.Now().Add(-time.Hour)
	newer.Notes = "newest"

	_, err = env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, older)
	require.NoError(t, err)
	_, err = env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, newer)
	require.NoError(t, err)

	sessions, err := env.participations.ListSessions(env.ctx, p.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "newest", sessions[0].Notes)
}

func TestListForUserShowsUnknownChallenge(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	alice := env.account(t, "alice@example.com", account.RoleClient)
	c := env.challenge(t, admin, nil)
	_, err := env.challenges.Join(env.ctx, c.ID, alice.ID)
	require.NoError(t, err)

	orphan := participation.New("gone", alice.ID, time.Now().Add(time.Minute))
	require.NoError(t, env.participations.participations.Insert(env.ctx, orphan.ID, orphan))

	page, err := env.participations.ListForUser(env.ctx, alice.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Unknown Challenge", page.Items[0].Challenge.Title)
	assert.Equal(t, "unknown", page.Items[0].Challenge.Status)
	assert.Equal(t, c.Title, page.Items[1].Challenge.Title)
}
