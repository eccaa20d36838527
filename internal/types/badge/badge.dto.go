package badge

type CreateBadgeRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description" validate:"required"`
	IconURL     string     `json:"iconUrl" validate:"required"`
	Rules       []RuleSpec `json:"rules" validate:"required,min=1,dive"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

type UpdateBadgeRequest struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	IconURL     string     `json:"iconUrl,omitempty"`
	Rules       []RuleSpec `json:"rules,omitempty" validate:"omitempty,dive"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

// UserBadge is an award joined with its badge details.
type UserBadge struct {
	Award
	Badge *Badge `json:"badge,omitempty"`
}

// AwardRequest asks the ledger to record a badge for a user.
type AwardRequest struct {
	UserID             string
	BadgeID            string
	RelatedChallengeID string
	Metadata           map[string]any
}
