package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"gymAPI/internal/store"
	"gymAPI/internal/types/challenge"
	"gymAPI/internal/types/pagination"
	"gymAPI/internal/types/participation"
)

type ParticipationService struct {
	challenges     store.Collection
	participations store.Collection
	badges         *BadgeService
	notifications  *NotificationService
	logger         *zap.Logger
	now            func() time.Time
}

func NewParticipationService(db store.Database, badges *BadgeService, notifications *NotificationService, logger *zap.Logger) *ParticipationService {
	return &ParticipationService{
		challenges:     db.Collection(store.Challenges),
		participations: db.Collection(store.ChallengeParticipations),
		badges:         badges,
		notifications:  notifications,
		logger:         logger,
		now:            time.Now,
	}
}

// AddWorkoutSession logs a session, recomputes progress and awards any
// badge the new state earns. A failed badge award does not undo the
// logged session.
func (s *ParticipationService) AddWorkoutSession(ctx context.Context, participationID, userID string, in participation.SessionInput) (participation.AddWorkoutSessionResult, error) {
	p, err := load[participation.Participation](ctx, s.participations, participationID, ErrParticipationNotFound)
	if err != nil {
		return participation.AddWorkoutSessionResult{}, err
	}
	if p.UserID != userID {
		return participation.AddWorkoutSessionResult{}, ErrSessionAddForbidden
	}
	if p.IsCompleted() {
		return participation.AddWorkoutSessionResult{}, ErrParticipationCompleted
	}

	now := s.now()
	updated := p.WithSession(participation.NewSession(in, now), now)
	if err := s.participations.Replace(ctx, updated.ID, updated); err != nil {
		return participation.AddWorkoutSessionResult{}, fmt.Errorf("failed to save workout session: %w", err)
	}
	s.announceCompletion(ctx, p, updated)

	earned, err := s.badges.AwardEarned(ctx, userID, updated)
	if err != nil {
		s.logger.Error("badge evaluation failed after workout session",
			zap.String("participation_id", updated.ID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
	if earned == nil {
		earned = []string{}
	}

	return participation.AddWorkoutSessionResult{
		Success:      true,
		NewProgress:  updated.Progress,
		Completed:    updated.IsCompleted(),
		BadgesEarned: earned,
	}, nil
}

func (s *ParticipationService) UpdateWorkoutSession(ctx context.Context, participationID, sessionID, userID string, ch participation.SessionChanges) (participation.SessionMutationResult, error) {
	p, err := load[participation.Participation](ctx, s.participations, participationID, ErrParticipationNotFound)
	if err != nil {
		return participation.SessionMutationResult{}, err
	}
	if p.UserID != userID {
		return participation.SessionMutationResult{}, ErrSessionUpdateForbidden
	}
	if p.IsCompleted() {
		return participation.SessionMutationResult{}, ErrSessionUpdateCompleted
	}

	updated, session, err := p.WithSessionChanged(sessionID, ch, s.now())
	if err != nil {
		return participation.SessionMutationResult{}, err
	}
	if err := s.participations.Replace(ctx, updated.ID, updated); err != nil {
		return participation.SessionMutationResult{}, fmt.Errorf("failed to update workout session: %w", err)
	}
	s.announceCompletion(ctx, p, updated)

	return participation.SessionMutationResult{
		Success:     true,
		NewProgress: updated.Progress,
		Session:     &session,
	}, nil
}

func (s *ParticipationService) DeleteWorkoutSession(ctx context.Context, participationID, sessionID, userID string) (participation.SessionMutationResult, error) {
	p, err := load[participation.Participation](ctx, s.participations, participationID, ErrParticipationNotFound)
	if err != nil {
		return participation.SessionMutationResult{}, err
	}
	if p.UserID != userID {
		return participation.SessionMutationResult{}, ErrSessionDeleteForbidden
	}
	if p.IsCompleted() {
		return participation.SessionMutationResult{}, ErrSessionDeleteCompleted
	}

	updated, err := p.WithoutSession(sessionID, s.now())
	if err != nil {
		return participation.SessionMutationResult{}, err
	}
	if err := s.participations.Replace(ctx, updated.ID, updated); err != nil {
		return participation.SessionMutationResult{}, fmt.Errorf("failed to delete workout session: %w", err)
	}

	return participation.SessionMutationResult{
		Success:     true,
		NewProgress: updated.Progress,
		Message:     "Workout session deleted successfully",
	}, nil
}

func (s *ParticipationService) announceCompletion(ctx context.Context, before, after participation.Participation) {
	if before.IsCompleted() || !after.IsCompleted() {
		return
	}
	title := ""
	if c, err := load[challenge.Challenge](ctx, s.challenges, after.ChallengeID, ErrChallengeNotFound); err == nil {
		title = c.Title
	}
	s.notifications.ChallengeCompleted(ctx, after.UserID, after.ChallengeID, title)
	s.logger.Info("participation completed", zap.String("participation_id", after.ID), zap.String("user_id", after.UserID))
}

func (s *ParticipationService) Get(ctx context.Context, participationID, userID string) (participation.WithChallenge, error) {
	p, err := s.owned(ctx, participationID, userID)
	if err != nil {
		return participation.WithChallenge{}, err
	}
	c, err := load[challenge.Challenge](ctx, s.challenges, p.ChallengeID, ErrAssociatedChallengeNotFound)
	if err != nil {
		return participation.WithChallenge{}, err
	}
	return participation.WithChallenge{Summary: participation.Summarize(p), Challenge: challengeRef(c)}, nil
}

// ListForUser returns the user's participations, most recently joined first.
func (s *ParticipationService) ListForUser(ctx context.Context, userID string, p pagination.Params) (pagination.Page[participation.WithChallenge], error) {
	parts, err := store.FindAll[participation.Participation](ctx, s.participations, store.Filter{"userId": userID})
	if err != nil {
		return pagination.Page[participation.WithChallenge]{}, fmt.Errorf("failed to list participations: %w", err)
	}
	slices.SortStableFunc(parts, func(a, b participation.Participation) int { return b.JoinedAt.Compare(a.JoinedAt) })

	page := pagination.Paginate(parts, p)
	items := make([]participation.WithChallenge, 0, len(page.Items))
	for _, part := range page.Items {
		ref := participation.UnknownChallenge
		c, err := load[challenge.Challenge](ctx, s.challenges, part.ChallengeID, ErrChallengeNotFound)
		switch {
		case err == nil:
			ref = challengeRef(c)
		case !errors.Is(err, ErrChallengeNotFound):
			return pagination.Page[participation.WithChallenge]{}, err
		}
		items = append(items, participation.WithChallenge{Summary: participation.Summarize(part), Challenge: ref})
	}
	return pagination.Page[participation.WithChallenge]{Items: items, Pagination: page.Pagination}, nil
}

// ListSessions returns the sessions of a participation, newest first.
func (s *ParticipationService) ListSessions(ctx context.Context, participationID, userID string) ([]participation.WorkoutSession, error) {
	p, err := s.owned(ctx, participationID, userID)
	if err != nil {
		return nil, err
	}
	sessions := append([]participation.WorkoutSession{}, p.WorkoutSessions...)
	slices.SortStableFunc(sessions, func(a, b participation.WorkoutSession) int { return b.Date.Compare(a.Date) })
	return sessions, nil
}

func (s *ParticipationService) owned(ctx context.Context, participationID, userID string) (participation.Participation, error) {
	p, err := load[participation.Participation](ctx, s.participations, participationID, ErrParticipationNotFound)
	if err != nil {
		return p, err
	}
	if p.UserID != userID {
		return p, ErrParticipationViewForbidden
	}
	return p, nil
}

func challengeRef(c challenge.Challenge) participation.ChallengeRef {
	return participation.ChallengeRef{
		ID:         c.ID,
		Title:      c.Title,
		Status:     string(c.Status),
		Difficulty: string(c.Difficulty),
		Duration:   c.Duration,
	}
}
