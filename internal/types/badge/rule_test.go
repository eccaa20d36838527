package badge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymAPI/internal/types/participation"
)

func participationWith(minutes, calories int, completed bool) participation.Participation {
	now := time.Now()
	p := participation.New("challenge", "user", now).WithSession(
		participation.NewSession(participation.SessionInput{Duration: minutes, CaloriesBurned: calories}, now),
		now,
	)
	if completed {
		p.Status = participation.StatusCompleted
	}
	return p
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		name    string
		spec    RuleSpec
		want    Rule
		wantErr error
	}{
		{"completion", RuleSpec{Type: RuleChallengeCompletion}, ChallengeCompletionRule{}, nil},
		{"streak", RuleSpec{Type: RuleStreak, Value: 3}, StreakRule{MinCompleted: 3}, nil},
		{"participation", RuleSpec{Type: RuleParticipation, Value: 5}, ParticipationRule{MinParticipations: 5}, nil},
		{"fractional streak", RuleSpec{Type: RuleStreak, Value: 2.5}, StreakRule{MinCompleted: 2.5}, nil},
		{"fractional participation", RuleSpec{Type: RuleParticipation, Value: 1.5}, ParticipationRule{MinParticipations: 1.5}, nil},
		{"custom calories", RuleSpec{Type: RuleCustom, Condition: "total_calories_burned", Value: 1000},
			CustomRule{Metric: MetricTotalCaloriesBurned, Threshold: 1000}, nil},
		{"custom time", RuleSpec{Type: RuleCustom, Condition: "total_workout_time", Value: 300},
			CustomRule{Metric: MetricTotalWorkoutTime, Threshold: 300}, nil},
		{"custom unknown", RuleSpec{Type: RuleCustom, Condition: "steps"}, nil, ErrUnknownMetric},
		{"unknown type", RuleSpec{Type: "karma"}, nil, ErrUnknownRuleType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Parse()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.spec, got.Spec())
		})
	}
}

func TestSatisfied(t *testing.T) {
	active := participationWith(120, 800, false)
	completed := participationWith(120, 800, true)

	assert.False(t, Satisfied(ChallengeCompletionRule{}, Facts{Participation: active}))
	assert.True(t, Satisfied(ChallengeCompletionRule{}, Facts{Participation: completed}))

	assert.False(t, Satisfied(StreakRule{MinCompleted: 2}, Facts{Completed: 1}))
	assert.True(t, Satisfied(StreakRule{MinCompleted: 2}, Facts{Completed: 2}))

	assert.False(t, Satisfied(ParticipationRule{MinParticipations: 3}, Facts{Participations: 2}))
	assert.True(t, Satisfied(ParticipationRule{MinParticipations: 3}, Facts{Participations: 3}))

	assert.True(t, Satisfied(CustomRule{Metric: MetricTotalCaloriesBurned, Threshold: 800}, Facts{Participation: active}))
	assert.False(t, Satisfied(CustomRule{Metric: MetricTotalCaloriesBurned, Threshold: 801}, Facts{Participation: active}))
	assert.True(t, Satisfied(CustomRule{Metric: MetricTotalWorkoutTime, Threshold: 120}, Facts{Participation: active}))
	assert.False(t, Satisfied(CustomRule{Metric: MetricTotalWorkoutTime, Threshold: 121}, Facts{Participation: active}))
}

func TestFractionalThresholdsAreNotTruncated(t *testing.T) {
	streak, err := RuleSpec{Type: RuleStreak, Value: 2.5}.Parse()
	require.NoError(t, err)
	assert.False(t, Satisfied(streak, Facts{Completed: 2}))
	assert.True(t, Satisfied(streak, Facts{Completed: 3}))
	assert.Equal(t, 2.5, streak.Spec().Value)

	joined, err := RuleSpec{Type: RuleParticipation, Value: 1.5}.Parse()
	require.NoError(t, err)
	assert.False(t, Satisfied(joined, Facts{Participations: 1}))
	assert.True(t, Satisfied(joined, Facts{Participations: 2}))

	b := New(Definition{Name: "Almost Three", Rules: []Rule{streak}}, time.Now())
	assert.Equal(t, []RuleSpec{{Type: RuleStreak, Value: 2.5}}, b.Rules)
}

func TestAnySatisfiedIsOr(t *testing.T) {
	rules := []Rule{
		ChallengeCompletionRule{},
		CustomRule{Metric: MetricTotalWorkoutTime, Threshold: 100},
	}
	active := participationWith(120, 0, false)

	assert.True(t, AnySatisfied(rules, Facts{Participation: active}), "a later rule can grant when an earlier one fails")
	assert.False(t, AnySatisfied(rules[:1], Facts{Participation: active}))
	assert.False(t, AnySatisfied(nil, Facts{Participation: active}))
}

func TestWithDefinitionIsActiveOnlyWhenProvided(t *testing.T) {
	now := time.Now()
	b := New(Definition{Name: "Finisher", Rules: []Rule{ChallengeCompletionRule{}}}, now)
	require.True(t, b.IsActive)

	renamed := b.WithDefinition(Definition{Description: "finish anything"}, now)
	assert.True(t, renamed.IsActive)
	assert.Equal(t, "Finisher", renamed.Name)
	assert.Equal(t, []RuleSpec{{Type: RuleChallengeCompletion}}, renamed.Rules)

	off := false
	deactivated := renamed.WithDefinition(Definition{IsActive: &off}, now)
	assert.False(t, deactivated.IsActive)

	rules, err := deactivated.ParsedRules()
	require.NoError(t, err)
	assert.Equal(t, []Rule{ChallengeCompletionRule{}}, rules)
}
