package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"gymAPI/internal/store"
	"gymAPI/internal/types/account"
	"gymAPI/internal/types/badge"
	"gymAPI/internal/types/participation"
)

type BadgeService struct {
	users          store.Collection
	badges         store.Collection
	awards         store.Collection
	participations store.Collection
	notifications  *NotificationService
	logger         *zap.Logger
	now            func() time.Time
}

func NewBadgeService(db store.Database, notifications *NotificationService, logger *zap.Logger) *BadgeService {
	return &BadgeService{
		users:          db.Collection(store.Users),
		badges:         db.Collection(store.Badges),
		awards:         db.Collection(store.UserBadges),
		participations: db.Collection(store.ChallengeParticipations),
		notifications:  notifications,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *BadgeService) Create(ctx context.Context, adminID string, req badge.CreateBadgeRequest) (badge.Badge, error) {
	if _, err := requireCapability(ctx, s.users, adminID, account.ManagePlatform, ErrBadgeCreateForbidden); err != nil {
		return badge.Badge{}, err
	}
	rules, err := badge.ParseRules(req.Rules)
	if err != nil {
		return badge.Badge{}, err
	}
	if err := s.ensureNameFree(ctx, req.Name, ""); err != nil {
		return badge.Badge{}, err
	}

	b := badge.New(badge.Definition{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
		Rules:       rules,
		IsActive:    req.IsActive,
	}, s.now())
	if err := s.badges.Insert(ctx, b.ID, b); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return badge.Badge{}, ErrBadgeNameTaken
		}
		return badge.Badge{}, fmt.Errorf("failed to create badge: %w", err)
	}
	return b, nil
}

func (s *BadgeService) Update(ctx context.Context, adminID, id string, req badge.UpdateBadgeRequest) (badge.Badge, error) {
	if _, err := requireCapability(ctx, s.users, adminID, account.ManagePlatform, ErrBadgeManageForbidden); err != nil {
		return badge.Badge{}, err
	}
	b, err := load[badge.Badge](ctx, s.badges, id, ErrBadgeNotFound)
	if err != nil {
		return badge.Badge{}, err
	}

	var rules []badge.Rule
	if req.Rules != nil {
		if rules, err = badge.ParseRules(req.Rules); err != nil {
			return badge.Badge{}, err
		}
	}
	if req.Name != "" && req.Name != b.Name {
		if err := s.ensureNameFree(ctx, req.Name, b.ID); err != nil {
			return badge.Badge{}, err
		}
	}

	updated := b.WithDefinition(badge.Definition{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
		Rules:       rules,
		IsActive:    req.IsActive,
	}, s.now())
	if err := s.badges.Replace(ctx, updated.ID, updated); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return badge.Badge{}, ErrBadgeNameTaken
		}
		return badge.Badge{}, fmt.Errorf("failed to update badge: %w", err)
	}
	return updated, nil
}

// Delete removes a badge nobody holds.
func (s *BadgeService) Delete(ctx context.Context, adminID, id string) error {
	if _, err := requireCapability(ctx, s.users, adminID, account.ManagePlatform, ErrBadgeManageForbidden); err != nil {
		return err
	}
	b, err := load[badge.Badge](ctx, s.badges, id, ErrBadgeNotFound)
	if err != nil {
		return err
	}
	held, err := s.awards.Count(ctx, store.Filter{"badgeId": b.ID})
	if err != nil {
		return fmt.Errorf("failed to count awards: %w", err)
	}
	if held > 0 {
		return ErrBadgeInUse
	}
	if err := s.badges.Delete(ctx, b.ID); err != nil {
		return fmt.Errorf("failed to delete badge: %w", err)
	}
	return nil
}

func (s *BadgeService) ListActive(ctx context.Context) ([]badge.Badge, error) {
	return s.list(ctx, store.Filter{"isActive": true})
}

func (s *BadgeService) ListAll(ctx context.Context, adminID string) ([]badge.Badge, error) {
	if _, err := requireCapability(ctx, s.users, adminID, account.ManagePlatform, ErrBadgeManageForbidden); err != nil {
		return nil, err
	}
	return s.list(ctx, store.Filter{})
}

func (s *BadgeService) list(ctx context.Context, filter store.Filter) ([]badge.Badge, error) {
	badges, err := store.FindAll[badge.Badge](ctx, s.badges, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	slices.SortStableFunc(badges, func(a, b badge.Badge) int { return strings.Compare(a.Name, b.Name) })
	return badges, nil
}

func (s *BadgeService) Get(ctx context.Context, id string) (badge.Badge, error) {
	return load[badge.Badge](ctx, s.badges, id, ErrBadgeNotFound)
}

// UserBadges returns a user's awards, most recent first, joined to the badge
// details. Awards whose badge was deleted carry no details.
func (s *BadgeService) UserBadges(ctx context.Context, userID string) ([]badge.UserBadge, error) {
	awards, err := store.FindAll[badge.Award](ctx, s.awards, store.Filter{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list user badges: %w", err)
	}
	slices.SortStableFunc(awards, func(a, b badge.Award) int { return b.EarnedAt.Compare(a.EarnedAt) })

	out := make([]badge.UserBadge, 0, len(awards))
	for _, a := range awards {
		ub := badge.UserBadge{Award: a}
		b, err := load[badge.Badge](ctx, s.badges, a.BadgeID, ErrBadgeNotFound)
		switch {
		case err == nil:
			ub.Badge = &b
		case !errors.Is(err, ErrBadgeNotFound):
			return nil, err
		}
		out = append(out, ub)
	}
	return out, nil
}

// Evaluate returns the active badges the user does not hold yet and for
// which at least one rule is satisfied.
func (s *BadgeService) Evaluate(ctx context.Context, userID string, p participation.Participation) ([]badge.Badge, error) {
	active, err := store.FindAll[badge.Badge](ctx, s.badges, store.Filter{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	held, err := store.FindAll[badge.Award](ctx, s.awards, store.Filter{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load user badges: %w", err)
	}
	parts, err := store.FindAll[participation.Participation](ctx, s.participations, store.Filter{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load participations: %w", err)
	}

	holds := make(map[string]bool, len(held))
	for _, a := range held {
		holds[a.BadgeID] = true
	}
	facts := badge.Facts{Participation: p, Participations: len(parts)}
	for _, part := range parts {
		if part.IsCompleted() {
			facts.Completed++
		}
	}

	var eligible []badge.Badge
	for _, b := range active {
		if holds[b.ID] {
			continue
		}
		rules, err := b.ParsedRules()
		if err != nil {
			s.logger.Warn("skipping badge with invalid rules", zap.String("badge_id", b.ID), zap.Error(err))
			continue
		}
		if badge.AnySatisfied(rules, facts) {
			eligible = append(eligible, b)
		}
	}
	return eligible, nil
}

// Award records a badge for a user and notifies them.
func (s *BadgeService) Award(ctx context.Context, req badge.AwardRequest) (badge.Award, error) {
	b, err := load[badge.Badge](ctx, s.badges, req.BadgeID, ErrBadgeNotFound)
	if err != nil {
		return badge.Award{}, err
	}

	_, err = store.FindOne[badge.Award](ctx, s.awards, store.Filter{"userId": req.UserID, "badgeId": b.ID})
	if err == nil {
		return badge.Award{}, ErrBadgeAlreadyAwarded
	}
	if !errors.Is(err, store.ErrNotFound) {
		return badge.Award{}, fmt.Errorf("failed to look up award: %w", err)
	}

	a := badge.NewAward(req.UserID, b.ID, req.RelatedChallengeID, req.Metadata, s.now())
	if err := s.awards.Insert(ctx, a.ID, a); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return badge.Award{}, ErrBadgeAlreadyAwarded
		}
		return badge.Award{}, fmt.Errorf("failed to award badge: %w", err)
	}

	s.notifications.BadgeEarned(ctx, req.UserID, b.ID, b.Name)
	s.logger.Info("badge awarded", zap.String("user_id", req.UserID), zap.String("badge_id", b.ID))
	return a, nil
}

// AwardEarned evaluates and awards in one pass and returns the names of the
// badges granted.
func (s *BadgeService) AwardEarned(ctx context.Context, userID string, p participation.Participation) ([]string, error) {
	eligible, err := s.Evaluate(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(eligible))
	for _, b := range eligible {
		_, err := s.Award(ctx, badge.AwardRequest{
			UserID:             userID,
			BadgeID:            b.ID,
			RelatedChallengeID: p.ChallengeID,
			Metadata: map[string]any{
				"participationId": p.ID,
				"progress":        p.Progress,
			},
		})
		if errors.Is(err, ErrBadgeAlreadyAwarded) {
			continue
		}
		if err != nil {
			return names, err
		}
		names = append(names, b.Name)
	}
	return names, nil
}

func (s *BadgeService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := store.FindOne[badge.Badge](ctx, s.badges, store.Filter{"name": name})
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up badge: %w", err)
	}
	if existing.ID != selfID {
		return ErrBadgeNameTaken
	}
	return nil
}
