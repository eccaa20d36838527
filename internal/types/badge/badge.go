package badge

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	ID          string     `bson:"_id"         json:"id"`
	Name        string     `bson:"name"        json:"name"`
	Description string     `bson:"description" json:"description"`
	IconURL     string     `bson:"iconUrl"     json:"iconUrl"`
	Rules       []RuleSpec `bson:"rules"       json:"rules"`
	IsActive    bool       `bson:"isActive"    json:"isActive"`
	CreatedAt   time.Time  `bson:"createdAt"   json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"   json:"updatedAt"`
}

type Definition struct {
	Name        string
	Description string
	IconURL     string
	Rules       []Rule
	IsActive    *bool
}

func New(d Definition, now time.Time) Badge {
	active := true
	if d.IsActive != nil {
		active = *d.IsActive
	}
	return Badge{
		ID:          uuid.NewString(),
		Name:        d.Name,
		Description: d.Description,
		IconURL:     d.IconURL,
		Rules:       specs(d.Rules),
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithDefinition applies an update. Empty fields and a nil rule list keep
// the current values; IsActive only changes when provided.
func (b Badge) WithDefinition(d Definition, now time.Time) Badge {
	if d.Name != "" {
		b.Name = d.Name
	}
	if d.Description != "" {
		b.Description = d.Description
	}
	if d.IconURL != "" {
		b.IconURL = d.IconURL
	}
	if d.Rules != nil {
		b.Rules = specs(d.Rules)
	} else {
		b.Rules = append([]RuleSpec{}, b.Rules...)
	}
	if d.IsActive != nil {
		b.IsActive = *d.IsActive
	}
	b.UpdatedAt = now
	return b
}

// ParsedRules returns the typed rules of the badge.
func (b Badge) ParsedRules() ([]Rule, error) {
	return ParseRules(b.Rules)
}

func specs(rules []Rule) []RuleSpec {
	out := make([]RuleSpec, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Spec())
	}
	return out
}

// Award is one entry of the per-user badge ledger.
type Award struct {
	ID                 string         `bson:"_id"                          json:"id"`
	UserID             string         `bson:"userId"                       json:"userId"`
	BadgeID            string         `bson:"badgeId"                      json:"badgeId"`
	EarnedAt           time.Time      `bson:"earnedAt"                     json:"earnedAt"`
	RelatedChallengeID string         `bson:"relatedChallengeId,omitempty" json:"relatedChallengeId,omitempty"`
	Metadata           map[string]any `bson:"metadata,omitempty"           json:"metadata,omitempty"`
}

func NewAward(userID, badgeID, relatedChallengeID string, metadata map[string]any, now time.Time) Award {
	return Award{
		ID:                 uuid.NewString(),
		UserID:             userID,
		BadgeID:            badgeID,
		EarnedAt:           now,
		RelatedChallengeID: relatedChallengeID,
		Metadata:           metadata,
	}
}
