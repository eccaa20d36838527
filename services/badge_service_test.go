package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymAPI/internal/notification"
	"gymAPI/internal/types/account"
	"gymAPI/internal/types/badge"
)

func createBadge(t *testing.T, env *testEnv, admin account.Account, name string, rules ...badge.RuleSpec) badge.Badge {
	t.Helper()
	b, err := env.badges.Create(env.ctx, admin.ID, badge.CreateBadgeRequest{
		Name: name, Description: name + " badge", IconURL: "https://cdn.example.com/" + name + ".png", Rules: rules,
	})
	require.NoError(t, err)
	return b
}

func TestBadgeAdministration(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	client := env.account(t, "client@example.com", account.RoleClient)

	_, err := env.badges.Create(env.ctx, client.ID, badge.CreateBadgeRequest{Name: "X", Rules: []badge.RuleSpec{{Type: badge.RuleStreak, Value: 1}}})
	assert.ErrorIs(t, err, ErrBadgeCreateForbidden)

	_, err = env.badges.Create(env.ctx, admin.ID, badge.CreateBadgeRequest{Name: "X", Rules: []badge.RuleSpec{{Type: "mystery"}}})
	assert.ErrorIs(t, err, badge.ErrUnknownRuleType)
	_, err = env.badges.Create(env.ctx, admin.ID, badge.CreateBadgeRequest{Name: "X", Rules: []badge.RuleSpec{{Type: badge.RuleCustom, Condition: "steps"}}})
	assert.ErrorIs(t, err, badge.ErrUnknownMetric)

	b := createBadge(t, env, admin, "Starter", badge.RuleSpec{Type: badge.RuleParticipation, Value: 1})
	assert.True(t, b.IsActive)
	_, err = env.badges.Create(env.ctx, admin.ID, badge.CreateBadgeRequest{Name: "Starter", Rules: []badge.RuleSpec{{Type: badge.RuleStreak, Value: 1}}})
	assert.ErrorIs(t, err, ErrBadgeNameTaken)

	inactive := false
	updated, err := env.badges.Update(env.ctx, admin.ID, b.ID, badge.UpdateBadgeRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Starter", updated.Name)
	assert.Len(t, updated.Rules, 1)

	active, err := env.badges.ListActive(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := env.badges.ListAll(env.ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	_, err = env.badges.ListAll(env.ctx, client.ID)
	assert.ErrorIs(t, err, ErrBadgeManageForbidden)

	require.NoError(t, env.badges.Delete(env.ctx, admin.ID, b.ID))
	_, err = env.badges.Get(env.ctx, b.ID)
	assert.ErrorIs(t, err, ErrBadgeNotFound)
}

func TestAwardIsIdempotentPerUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	alice := env.account(t, "alice@example.com", account.RoleClient)
	b := createBadge(t, env, admin, "Welcome", badge.RuleSpec{Type: badge.RuleParticipation, Value: 1})

	_, err := env.badges.Award(env.ctx, badge.AwardRequest{UserID: alice.ID, BadgeID: b.ID})
	require.NoError(t, err)
	_, err = env.badges.Award(env.ctx, badge.AwardRequest{UserID: alice.ID, BadgeID: b.ID})
	assert.ErrorIs(t, err, ErrBadgeAlreadyAwarded)
	_, err = env.badges.Award(env.ctx, badge.AwardRequest{UserID: alice.ID, BadgeID: "missing"})
	assert.ErrorIs(t, err, ErrBadgeNotFound)

	assert.ErrorIs(t, env.badges.Delete(env.ctx, admin.ID, b.ID), ErrBadgeInUse)

	earned := env.notifier.ofType(notification.TypeBadgeEarned)
	require.Len(t, earned, 1)
	assert.Equal(t, `Congratulations! You have earned the "Welcome" badge!`, earned[0].Message)
}

func TestWorkoutSessionAwardsBadgesOnce(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	alice := env.account(t, "alice@example.com", account.RoleClient)

	createBadge(t, env, admin, "First Steps", badge.RuleSpec{Type: badge.RuleParticipation, Value: 1})
	createBadge(t, env, admin, "Furnace",
		badge.RuleSpec{Type: badge.RuleCustom, Condition: string(badge.MetricTotalCaloriesBurned), Value: 1000},
		badge.RuleSpec{Type: badge.RuleStreak, Value: 5},
	)
	createBadge(t, env, admin, "Finisher", badge.RuleSpec{Type: badge.RuleChallengeCompletion})

	c := env.challenge(t, admin, nil)
	p, err := env.challenges.Join(env.ctx, c.ID, alice.ID)
	require.NoError(t, err)

	res, err := env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, hour())
	require.NoError(t, err)
	assert.Equal(t, []string{"First Steps"}, res.BadgesEarned)

	res, err = env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, hour())
	require.NoError(t, err)
	assert.Empty(t, res.BadgesEarned, "a held badge is never evaluated again")

	res, err = env.participations.AddWorkoutSession(env.ctx, p.ID, alice.ID, hour())
	require.NoError(t, err)
	assert.Equal(t, []string{"Furnace"}, res.BadgesEarned, "1200 calories satisfies the custom rule")

	held, err := env.badges.UserBadges(env.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, held, 2)
	for _, ub := range held {
		require.NotNil(t, ub.Badge)
		assert.Equal(t, c.ID, ub.RelatedChallengeID)
	}

	eligible, err := env.badges.Evaluate(env.ctx, alice.ID, p)
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestEvaluateSkipsInactiveBadges(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	alice := env.account(t, "alice@example.com", account.RoleClient)

	inactive := false
	_, err := env.badges.Create(env.ctx, admin.ID, badge.CreateBadgeRequest{
		Name: "Hidden", Description: "d", IconURL: "i", IsActive: &inactive,
		Rules: []badge.RuleSpec{{Type: badge.RuleParticipation, Value: 0}},
	})
	require.NoError(t, err)

	c := env.challenge(t, admin, nil)
	p, err := env.challenges.Join(env.ctx, c.ID, alice.ID)
	require.NoError(t, err)

	eligible, err := env.badges.Evaluate(env.ctx, alice.ID, p)
	require.NoError(t, err)
	assert.Empty(t, eligible)
}
