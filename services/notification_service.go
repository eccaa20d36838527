package services

import (
	"context"
	"fmt"

	"gymAPI/internal/notification"
)

// NotificationService composes the user-facing messages for domain events.
type NotificationService struct {
	notifier Notifier
}

func NewNotificationService(notifier Notifier) *NotificationService {
	return &NotificationService{notifier: notifier}
}

func (s *NotificationService) GymReviewed(ctx context.Context, ownerID, gymID, gymName string, approved bool) {
	verdict := "rejected"
	title := "Gym rejected"
	if approved {
		verdict = "approved"
		title = "Gym approved"
	}
	s.notifier.Notify(ctx, notification.New(ownerID, notification.TypeGymReviewed, title,
		fmt.Sprintf("Your gym %q has been %s", gymName, verdict),
		map[string]any{"gymId": gymID, "status": verdict},
	))
}

func (s *NotificationService) BadgeEarned(ctx context.Context, userID, badgeID, badgeName string) {
	s.notifier.Notify(ctx, notification.New(userID, notification.TypeBadgeEarned, "New badge earned",
		fmt.Sprintf("Congratulations! You have earned the %q badge!", badgeName),
		map[string]any{"badgeId": badgeID},
	))
}

func (s *NotificationService) ChallengeCompleted(ctx context.Context, userID, challengeID, challengeTitle string) {
	s.notifier.Notify(ctx, notification.New(userID, notification.TypeChallengeCompleted, "Challenge completed",
		fmt.Sprintf("Well done! You have completed the challenge %q", challengeTitle),
		map[string]any{"challengeId": challengeID},
	))
}

func (s *NotificationService) ChallengeInvitation(ctx context.Context, userID, challengeID, challengeTitle, inviterEmail string) {
	s.notifier.Notify(ctx, notification.New(userID, notification.TypeChallengeInvitation, "Challenge invitation",
		fmt.Sprintf("%s invited you to join the challenge %q", inviterEmail, challengeTitle),
		map[string]any{"challengeId": challengeID},
	))
}
