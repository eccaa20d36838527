package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeGymReviewed         Type = "gym_reviewed"
	TypeBadgeEarned         Type = "badge_earned"
	TypeChallengeCompleted  Type = "challenge_completed"
	TypeChallengeInvitation Type = "challenge_invitation"
)

type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Type      Type           `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func New(userID string, t Type, title, message string, data map[string]any) Notification {
	return Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      t,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}
}

// Sender delivers a notification over one channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}
