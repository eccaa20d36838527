package badge

import (
	"errors"
	"fmt"

	"gymAPI/internal/types/participation"
)

type RuleType string

const (
	RuleChallengeCompletion RuleType = "challenge_completion"
	RuleStreak              RuleType = "streak"
	RuleParticipation       RuleType = "participation"
	RuleCustom              RuleType = "custom"
)

// Metric is the aggregate a custom rule compares against its threshold.
type Metric string

const (
	MetricTotalCaloriesBurned Metric = "total_calories_burned"
	MetricTotalWorkoutTime    Metric = "total_workout_time"
)

var (
	ErrUnknownRuleType = errors.New("unknown badge rule type")
	ErrUnknownMetric   = errors.New("unknown custom rule condition")
)

// RuleSpec is the persisted form of a rule.
type RuleSpec struct {
	Type      RuleType `bson:"type"                json:"type" validate:"required,oneof=challenge_completion streak participation custom"`
	Condition string   `bson:"condition,omitempty" json:"condition,omitempty"`
	Value     float64  `bson:"value"               json:"value" validate:"min=0"`
}

// Rule is a parsed eligibility rule. The set of implementations is closed:
// ChallengeCompletionRule, StreakRule, ParticipationRule and CustomRule.
type Rule interface {
	Spec() RuleSpec
	isRule()
}

type ChallengeCompletionRule struct{}

// Thresholds stay fractional: a value of 2.5 needs three completions.
type StreakRule struct {
	MinCompleted float64
}

type ParticipationRule struct {
	MinParticipations float64
}

type CustomRule struct {
	Metric    Metric
	Threshold float64
}

func (ChallengeCompletionRule) isRule() {}
func (StreakRule) isRule()              {}
func (ParticipationRule) isRule()       {}
func (CustomRule) isRule()              {}

func (ChallengeCompletionRule) Spec() RuleSpec {
	return RuleSpec{Type: RuleChallengeCompletion}
}

func (r StreakRule) Spec() RuleSpec {
	return RuleSpec{Type: RuleStreak, Value: r.MinCompleted}
}

func (r ParticipationRule) Spec() RuleSpec {
	return RuleSpec{Type: RuleParticipation, Value: r.MinParticipations}
}

func (r CustomRule) Spec() RuleSpec {
	return RuleSpec{Type: RuleCustom, Condition: string(r.Metric), Value: r.Threshold}
}

// Parse validates a persisted rule and returns its typed variant.
func (s RuleSpec) Parse() (Rule, error) {
	switch s.Type {
	case RuleChallengeCompletion:
		return ChallengeCompletionRule{}, nil
	case RuleStreak:
		return StreakRule{MinCompleted: s.Value}, nil
	case RuleParticipation:
		return ParticipationRule{MinParticipations: s.Value}, nil
	case RuleCustom:
		switch Metric(s.Condition) {
		case MetricTotalCaloriesBurned, MetricTotalWorkoutTime:
			return CustomRule{Metric: Metric(s.Condition), Threshold: s.Value}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, s.Condition)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRuleType, s.Type)
}

func ParseRules(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		r, err := s.Parse()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Facts are the aggregates a rule is evaluated against: the participation
// that triggered evaluation plus the user's participation counts.
type Facts struct {
	Participation  participation.Participation
	Completed      int
	Participations int
}

// Satisfied evaluates one rule.
func Satisfied(r Rule, f Facts) bool {
	switch rule := r.(type) {
	case ChallengeCompletionRule:
		return f.Participation.IsCompleted()
	case StreakRule:
		return float64(f.Completed) >= rule.MinCompleted
	case ParticipationRule:
		return float64(f.Participations) >= rule.MinParticipations
	case CustomRule:
		switch rule.Metric {
		case MetricTotalCaloriesBurned:
			return float64(f.Participation.TotalCalories()) >= rule.Threshold
		case MetricTotalWorkoutTime:
			return float64(f.Participation.TotalDuration()) >= rule.Threshold
		}
	}
	return false
}

// AnySatisfied reports whether at least one rule grants the badge.
func AnySatisfied(rules []Rule, f Facts) bool {
	for _, r := range rules {
		if Satisfied(r, f) {
			return true
		}
	}
	return false
}
