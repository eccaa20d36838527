package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"gymAPI/internal/store"
	"gymAPI/internal/types/account"
	"gymAPI/internal/types/gym"
)

// Viewer identifies the caller of a read that may expose private data. The
// zero value is an anonymous caller.
type Viewer struct {
	ID   string
	Role account.Role
}

type GymService struct {
	users         store.Collection
	gyms          store.Collection
	notifications *NotificationService
	logger        *zap.Logger
	now           func() time.Time
}

func NewGymService(db store.Database, notifications *NotificationService, logger *zap.Logger) *GymService {
	return &GymService{
		users:         db.Collection(store.Users),
		gyms:          db.Collection(store.Gyms),
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *GymService) Create(ctx context.Context, ownerID string, d gym.Details) (gym.Gym, error) {
	if _, err := requireCapability(ctx, s.users, ownerID, account.OwnGyms, ErrGymCreateForbidden); err != nil {
		return gym.Gym{}, err
	}

	g := gym.New(ownerID, d, s.now())
	if err := s.gyms.Insert(ctx, g.ID, g); err != nil {
		return gym.Gym{}, fmt.Errorf("failed to create gym: %w", err)
	}
	s.logger.Info("gym registered", zap.String("gym_id", g.ID), zap.String("owner_id", ownerID))
	return g, nil
}

// ListByOwner returns every gym of an owner, oldest first.
func (s *GymService) ListByOwner(ctx context.Context, ownerID string) ([]gym.Gym, error) {
	gyms, err := store.FindAll[gym.Gym](ctx, s.gyms, store.Filter{"ownerId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list gyms: %w", err)
	}
	slices.SortStableFunc(gyms, func(a, b gym.Gym) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return gyms, nil
}

// GetByOwner returns the owner's first gym.
func (s *GymService) GetByOwner(ctx context.Context, ownerID string) (gym.Gym, error) {
	gyms, err := s.ListByOwner(ctx, ownerID)
	if err != nil {
		return gym.Gym{}, err
	}
	if len(gyms) == 0 {
		return gym.Gym{}, ErrNoGymForOwner
	}
	return gyms[0], nil
}

// List returns approved gyms unless a status is requested explicitly.
func (s *GymService) List(ctx context.Context, status gym.Status) ([]gym.Gym, error) {
	if status == "" {
		status = gym.StatusApproved
	}
	gyms, err := store.FindAll[gym.Gym](ctx, s.gyms, store.Filter{"status": string(status)})
	if err != nil {
		return nil, fmt.Errorf("failed to list gyms: %w", err)
	}
	slices.SortStableFunc(gyms, func(a, b gym.Gym) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return gyms, nil
}

// GetByID hides gyms that are not approved unless the viewer owns the gym
// or administers the platform.
func (s *GymService) GetByID(ctx context.Context, id string, viewer Viewer) (gym.Gym, error) {
	g, err := load[gym.Gym](ctx, s.gyms, id, ErrGymNotFound)
	if err != nil {
		return gym.Gym{}, err
	}
	includePrivate := viewer.Role.Can(account.ManagePlatform) || (viewer.ID != "" && viewer.ID == g.OwnerID)
	if !g.IsApproved() && !includePrivate {
		return gym.Gym{}, ErrGymNotFound
	}
	return g, nil
}

func (s *GymService) ListPending(ctx context.Context, adminID string) ([]gym.Gym, error) {
	if _, err := requireCapability(ctx, s.users, adminID, account.ManagePlatform, ErrPendingGymsForbidden); err != nil {
		return nil, err
	}
	gyms, err := store.FindAll[gym.Gym](ctx, s.gyms, store.Filter{"status": string(gym.StatusPending)})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending gyms: %w", err)
	}
	slices.SortStableFunc(gyms, func(a, b gym.Gym) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return gyms, nil
}

func (s *GymService) Update(ctx context.Context, gymID, ownerID string, d gym.Details) (gym.Gym, error) {
	g, err := load[gym.Gym](ctx, s.gyms, gymID, ErrGymNotFound)
	if err != nil {
		return gym.Gym{}, err
	}
	if g.OwnerID != ownerID {
		return gym.Gym{}, ErrGymUpdateForbidden
	}

	updated := g.WithDetails(d, s.now())
	if err := s.gyms.Replace(ctx, updated.ID, updated); err != nil {
		return gym.Gym{}, fmt.Errorf("failed to update gym: %w", err)
	}
	return updated, nil
}

func (s *GymService) Review(ctx context.Context, gymID, adminID string, approve bool) (gym.ReviewResult, error) {
	if _, err := requireCapability(ctx, s.users, adminID, account.ManagePlatform, ErrGymReviewForbidden); err != nil {
		return gym.ReviewResult{}, err
	}
	g, err := load[gym.Gym](ctx, s.gyms, gymID, ErrGymNotFound)
	if err != nil {
		return gym.ReviewResult{}, err
	}

	var reviewed gym.Gym
	if approve {
		reviewed, err = g.Approve(s.now())
	} else {
		reviewed, err = g.Reject(s.now())
	}
	if err != nil {
		return gym.ReviewResult{}, err
	}
	if err := s.gyms.Replace(ctx, reviewed.ID, reviewed); err != nil {
		return gym.ReviewResult{}, fmt.Errorf("failed to update gym: %w", err)
	}

	s.notifications.GymReviewed(ctx, reviewed.OwnerID, reviewed.ID, reviewed.Name, approve)

	msg := "Gym rejected successfully"
	if approve {
		msg = "Gym approved successfully"
	}
	s.logger.Info("gym reviewed", zap.String("gym_id", reviewed.ID), zap.String("status", string(reviewed.Status)))
	return gym.ReviewResult{Success: true, Message: msg, Gym: reviewed}, nil
}
