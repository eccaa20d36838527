package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"gymAPI/internal/store"
	"gymAPI/internal/types/account"
	"gymAPI/internal/types/challenge"
	"gymAPI/internal/types/gym"
	"gymAPI/internal/types/pagination"
	"gymAPI/internal/types/participation"
)

type ChallengeService struct {
	users          store.Collection
	gyms           store.Collection
	challenges     store.Collection
	participations store.Collection
	notifications  *NotificationService
	logger         *zap.Logger
	now            func() time.Time
}

func NewChallengeService(db store.Database, notifications *NotificationService, logger *zap.Logger) *ChallengeService {
	return &ChallengeService{
		users:          db.Collection(store.Users),
		gyms:           db.Collection(store.Gyms),
		challenges:     db.Collection(store.Challenges),
		participations: db.Collection(store.ChallengeParticipations),
		notifications:  notifications,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *ChallengeService) Create(ctx context.Context, creatorID string, d challenge.Draft) (challenge.Challenge, error) {
	creator, err := loadAccount(ctx, s.users, creatorID, ErrCreatorNotFound)
	if err != nil {
		return challenge.Challenge{}, err
	}

	if d.GymID != "" {
		g, err := load[gym.Gym](ctx, s.gyms, d.GymID, ErrGymNotFound)
		if err != nil {
			return challenge.Challenge{}, err
		}
		if !g.IsApproved() {
			return challenge.Challenge{}, ErrGymNotApproved
		}
		if creator.IsGymOwner() && g.OwnerID != creator.ID {
			return challenge.Challenge{}, ErrForeignGymChallenge
		}
	}

	c := challenge.New(creator.ID, d, s.now())
	if err := s.challenges.Insert(ctx, c.ID, c); err != nil {
		return challenge.Challenge{}, fmt.Errorf("failed to create challenge: %w", err)
	}
	s.logger.Info("challenge created", zap.String("challenge_id", c.ID), zap.String("creator_id", creator.ID))
	return c, nil
}

// Join enrolls a client. Capacity counts every participation of the
// challenge regardless of status.
func (s *ChallengeService) Join(ctx context.Context, challengeID, userID string) (participation.Participation, error) {
	user, err := loadAccount(ctx, s.users, userID, ErrUserNotFound)
	if err != nil {
		return participation.Participation{}, err
	}
	if !user.Role.Can(account.JoinChallenges) {
		return participation.Participation{}, ErrOnlyClientsJoin
	}

	c, err := load[challenge.Challenge](ctx, s.challenges, challengeID, ErrChallengeNotFound)
	if err != nil {
		return participation.Participation{}, err
	}
	if !c.IsActive() {
		return participation.Participation{}, ErrChallengeNotActive
	}

	_, err = store.FindOne[participation.Participation](ctx, s.participations, store.Filter{
		"userId":      user.ID,
		"challengeId": c.ID,
	})
	if err == nil {
		return participation.Participation{}, ErrAlreadyParticipating
	}
	if !errors.Is(err, store.ErrNotFound) {
		return participation.Participation{}, fmt.Errorf("failed to look up participation: %w", err)
	}

	if c.MaxParticipants != nil {
		count, err := s.participations.Count(ctx, store.Filter{"challengeId": c.ID})
		if err != nil {
			return participation.Participation{}, fmt.Errorf("failed to count participants: %w", err)
		}
		if !c.HasRoomFor(count) {
			return participation.Participation{}, ErrChallengeFull
		}
	}

	p := participation.New(c.ID, user.ID, s.now())
	if err := s.participations.Insert(ctx, p.ID, p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return participation.Participation{}, ErrAlreadyParticipating
		}
		return participation.Participation{}, fmt.Errorf("failed to join challenge: %w", err)
	}
	s.logger.Info("challenge joined", zap.String("challenge_id", c.ID), zap.String("user_id", user.ID))
	return p, nil
}

func (s *ChallengeService) Update(ctx context.Context, challengeID, userID string, ch challenge.Changes) (challenge.Challenge, error) {
	c, err := load[challenge.Challenge](ctx, s.challenges, challengeID, ErrChallengeNotFound)
	if err != nil {
		return challenge.Challenge{}, err
	}
	if c.CreatorID != userID {
		return challenge.Challenge{}, ErrChallengeUpdateForbidden
	}
	if !c.IsActive() {
		return challenge.Challenge{}, ErrChallengeClosed
	}

	updated := c.WithChanges(ch, s.now())
	if err := s.challenges.Replace(ctx, updated.ID, updated); err != nil {
		return challenge.Challenge{}, fmt.Errorf("failed to update challenge: %w", err)
	}
	return updated, nil
}

// Delete removes a challenge together with its finished or abandoned
// participations. Active participants block the deletion.
func (s *ChallengeService) Delete(ctx context.Context, challengeID, userID string) error {
	c, err := load[challenge.Challenge](ctx, s.challenges, challengeID, ErrChallengeNotFound)
	if err != nil {
		return err
	}
	if c.CreatorID != userID {
		return ErrChallengeDeleteForbidden
	}

	parts, err := store.FindAll[participation.Participation](ctx, s.participations, store.Filter{"challengeId": c.ID})
	if err != nil {
		return fmt.Errorf("failed to load participations: %w", err)
	}
	for _, p := range parts {
		if p.IsActive() {
			return ErrChallengeHasActive
		}
	}

	for _, p := range parts {
		if err := s.participations.Delete(ctx, p.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to delete participation %s: %w", p.ID, err)
		}
	}
	if err := s.challenges.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	s.logger.Info("challenge deleted", zap.String("challenge_id", c.ID), zap.Int("participations_removed", len(parts)))
	return nil
}

// Invite lets the creator of an active challenge invite a client by email.
// Nothing is persisted; the invitee only receives a notification.
func (s *ChallengeService) Invite(ctx context.Context, challengeID, inviterID, email string) error {
	inviter, err := loadAccount(ctx, s.users, inviterID, ErrUserNotFound)
	if err != nil {
		return err
	}
	c, err := load[challenge.Challenge](ctx, s.challenges, challengeID, ErrChallengeNotFound)
	if err != nil {
		return err
	}
	if c.CreatorID != inviter.ID {
		return ErrChallengeInviteForbidden
	}
	if !c.IsActive() {
		return ErrChallengeNotActive
	}

	invitee, err := store.FindOne[account.Account](ctx, s.users, store.Filter{
		"email": strings.ToLower(strings.TrimSpace(email)),
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up invitee: %w", err)
	}
	if !invitee.IsActive || !invitee.Role.Can(account.JoinChallenges) {
		return ErrInviteeNotClient
	}

	_, err = store.FindOne[participation.Participation](ctx, s.participations, store.Filter{
		"userId":      invitee.ID,
		"challengeId": c.ID,
	})
	if err == nil {
		return ErrAlreadyParticipating
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to look up participation: %w", err)
	}

	s.notifications.ChallengeInvitation(ctx, invitee.ID, c.ID, c.Title, inviter.Email)
	return nil
}

// Leave drops an untouched participation outright and abandons one that
// already has logged sessions.
func (s *ChallengeService) Leave(ctx context.Context, challengeID, userID string) (string, error) {
	p, err := store.FindOne[participation.Participation](ctx, s.participations, store.Filter{
		"userId":      userID,
		"challengeId": challengeID,
	})
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrParticipationNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up participation: %w", err)
	}

	if !p.IsActive() {
		return "", ErrCanOnlyLeaveActive
	}

	if len(p.WorkoutSessions) == 0 {
		if err := s.participations.Delete(ctx, p.ID); err != nil {
			return "", fmt.Errorf("failed to delete participation: %w", err)
		}
		return "Successfully left the challenge", nil
	}

	abandoned, err := p.Abandon(s.now())
	if err != nil {
		return "", err
	}
	if err := s.participations.Replace(ctx, abandoned.ID, abandoned); err != nil {
		return "", fmt.Errorf("failed to update participation: %w", err)
	}
	return "Successfully left the challenge", nil
}

func (s *ChallengeService) GetByID(ctx context.Context, id string) (challenge.WithStats, error) {
	c, err := load[challenge.Challenge](ctx, s.challenges, id, ErrChallengeNotFound)
	if err != nil {
		return challenge.WithStats{}, err
	}
	stats, err := s.stats(ctx, c)
	if err != nil {
		return challenge.WithStats{}, err
	}
	return challenge.WithStats{Challenge: c, Stats: stats}, nil
}

// List returns challenges newest first, each joined to its participation
// aggregates.
func (s *ChallengeService) List(ctx context.Context, f challenge.ListFilter, p pagination.Params) (pagination.Page[challenge.WithStats], error) {
	filter := store.Filter{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Difficulty != "" {
		filter["difficulty"] = string(f.Difficulty)
	}
	if f.GymID != "" {
		filter["gymId"] = f.GymID
	}

	all, err := store.FindAll[challenge.Challenge](ctx, s.challenges, filter)
	if err != nil {
		return pagination.Page[challenge.WithStats]{}, fmt.Errorf("failed to list challenges: %w", err)
	}
	slices.SortStableFunc(all, func(a, b challenge.Challenge) int { return b.CreatedAt.Compare(a.CreatedAt) })

	page := pagination.Paginate(all, p)
	items, err := s.withStats(ctx, page.Items)
	if err != nil {
		return pagination.Page[challenge.WithStats]{}, err
	}
	return pagination.Page[challenge.WithStats]{Items: items, Pagination: page.Pagination}, nil
}

// withStats computes the aggregates of every challenge concurrently and
// keeps the input order.
func (s *ChallengeService) withStats(ctx context.Context, list []challenge.Challenge) ([]challenge.WithStats, error) {
	out := make([]challenge.WithStats, len(list))
	errs := make([]error, len(list))

	var wg sync.WaitGroup
	for i, c := range list {
		wg.Add(1)
		go func(i int, c challenge.Challenge) {
			defer wg.Done()
			stats, err := s.stats(ctx, c)
			out[i] = challenge.WithStats{Challenge: c, Stats: stats}
			errs[i] = err
		}(i, c)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ChallengeService) stats(ctx context.Context, c challenge.Challenge) (challenge.Stats, error) {
	parts, err := store.FindAll[participation.Participation](ctx, s.participations, store.Filter{"challengeId": c.ID})
	if err != nil {
		return challenge.Stats{}, fmt.Errorf("failed to aggregate challenge %s: %w", c.ID, err)
	}
	return aggregate(c, parts), nil
}

func aggregate(c challenge.Challenge, parts []participation.Participation) challenge.Stats {
	stats := challenge.Stats{ParticipantCount: len(parts)}
	for _, p := range parts {
		switch p.Status {
		case participation.StatusActive:
			stats.ActiveParticipants++
		case participation.StatusCompleted:
			stats.CompletedParticipants++
		}
	}
	stats.CanJoin = c.IsActive() && c.HasRoomFor(int64(len(parts)))
	return stats
}

// Participants lists the participations of a challenge by descending
// progress.
func (s *ChallengeService) Participants(ctx context.Context, challengeID string, status participation.Status, p pagination.Params) (pagination.Page[participation.Participant], error) {
	c, err := load[challenge.Challenge](ctx, s.challenges, challengeID, ErrChallengeNotFound)
	if err != nil {
		return pagination.Page[participation.Participant]{}, err
	}

	filter := store.Filter{"challengeId": c.ID}
	if status != "" {
		filter["status"] = string(status)
	}
	parts, err := store.FindAll[participation.Participation](ctx, s.participations, filter)
	if err != nil {
		return pagination.Page[participation.Participant]{}, fmt.Errorf("failed to list participants: %w", err)
	}
	slices.SortStableFunc(parts, func(a, b participation.Participation) int {
		switch {
		case a.Progress > b.Progress:
			return -1
		case a.Progress < b.Progress:
			return 1
		}
		return 0
	})

	page := pagination.Paginate(parts, p)
	items := make([]participation.Participant, 0, len(page.Items))
	for _, part := range page.Items {
		email := "Unknown"
		if acc, err := loadAccount(ctx, s.users, part.UserID, ErrUserNotFound); err == nil {
			email = acc.Email
		} else if !errors.Is(err, ErrUserNotFound) {
			return pagination.Page[participation.Participant]{}, err
		}
		items = append(items, participation.Participant{Summary: participation.Summarize(part), Email: email})
	}
	return pagination.Page[participation.Participant]{Items: items, Pagination: page.Pagination}, nil
}
