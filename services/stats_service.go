package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"gymAPI/internal/store"
	"gymAPI/internal/types/account"
	"gymAPI/internal/types/challenge"
	"gymAPI/internal/types/gym"
	"gymAPI/internal/types/pagination"
	"gymAPI/internal/types/participation"
	"gymAPI/internal/types/stats"
)

const (
	dashboardActiveChallenges = 3
	dashboardRecentBadges     = 3
	dashboardRecentWorkouts   = 5
	statsRecentBadges         = 5
)

// StatsService builds the read-only dashboards of each role.
type StatsService struct {
	db             store.Database
	participations store.Collection
	challenges     store.Collection
	gymService     *GymService
	challengeSvc   *ChallengeService
	badgeService   *BadgeService
	participSvc    *ParticipationService
	logger         *zap.Logger
	now            func() time.Time
}

func NewStatsService(db store.Database, gyms *GymService, challenges *ChallengeService, badges *BadgeService, participations *ParticipationService, logger *zap.Logger) *StatsService {
	return &StatsService{
		db:             db,
		participations: db.Collection(store.ChallengeParticipations),
		challenges:     db.Collection(store.Challenges),
		gymService:     gyms,
		challengeSvc:   challenges,
		badgeService:   badges,
		participSvc:    participations,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *StatsService) AdminDashboard(ctx context.Context, adminID string) (stats.AdminDashboard, error) {
	if _, err := requireCapability(ctx, s.db.Collection(store.Users), adminID, account.ManagePlatform, ErrStatsForbidden); err != nil {
		return stats.AdminDashboard{}, err
	}

	var out stats.AdminDashboard
	c := counter{ctx: ctx, db: s.db}

	out.Users.Total = c.count(store.Users, nil)
	out.Users.Active = c.count(store.Users, store.Filter{"isActive": true})
	out.Users.ByRole = map[string]int64{}
	for _, r := range []account.Role{account.RoleClient, account.RoleGymOwner, account.RoleSuperAdmin} {
		out.Users.ByRole[string(r)] = c.count(store.Users, store.Filter{"role": string(r)})
	}

	out.Gyms.Total = c.count(store.Gyms, nil)
	out.Gyms.Pending = c.count(store.Gyms, store.Filter{"status": string(gym.StatusPending)})
	out.Gyms.Approved = c.count(store.Gyms, store.Filter{"status": string(gym.StatusApproved)})
	out.Gyms.Rejected = c.count(store.Gyms, store.Filter{"status": string(gym.StatusRejected)})

	out.Challenges.Total = c.count(store.Challenges, nil)
	out.Challenges.Active = c.count(store.Challenges, store.Filter{"status": string(challenge.StatusActive)})
	out.Challenges.Completed = c.count(store.Challenges, store.Filter{"status": string(challenge.StatusCompleted)})

	out.Participations.Total = c.count(store.ChallengeParticipations, nil)
	out.Participations.Active = c.count(store.ChallengeParticipations, store.Filter{"status": string(participation.StatusActive)})
	out.Participations.Completed = c.count(store.ChallengeParticipations, store.Filter{"status": string(participation.StatusCompleted)})

	out.Badges.Total = c.count(store.Badges, nil)
	out.Badges.Active = c.count(store.Badges, store.Filter{"isActive": true})
	out.ExerciseTypes = c.count(store.ExerciseTypes, nil)

	if err := c.err; err != nil {
		return stats.AdminDashboard{}, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return out, nil
}

// counter keeps the first error of a run of counts.
type counter struct {
	ctx context.Context
	db  store.Database
	err error
}

func (c *counter) count(collection string, filter store.Filter) int64 {
	if c.err != nil {
		return 0
	}
	if filter == nil {
		filter = store.Filter{}
	}
	n, err := c.db.Collection(collection).Count(c.ctx, filter)
	if err != nil {
		c.err = err
	}
	return n
}

// OwnerGymChallenges returns the challenges created by a gym owner with
// their aggregates.
func (s *StatsService) OwnerGymChallenges(ctx context.Context, ownerID string) ([]challenge.WithStats, error) {
	if _, err := s.gymService.GetByOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	list, err := s.ownerChallenges(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.challengeSvc.withStats(ctx, list)
}

func (s *StatsService) ownerChallenges(ctx context.Context, ownerID string) ([]challenge.Challenge, error) {
	list, err := store.FindAll[challenge.Challenge](ctx, s.challenges, store.Filter{"creatorId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list owner challenges: %w", err)
	}
	slices.SortStableFunc(list, func(a, b challenge.Challenge) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return list, nil
}

func (s *StatsService) OwnerGymStats(ctx context.Context, ownerID string) (stats.OwnerStats, error) {
	g, err := s.gymService.GetByOwner(ctx, ownerID)
	if err != nil {
		return stats.OwnerStats{}, err
	}
	list, err := s.ownerChallenges(ctx, ownerID)
	if err != nil {
		return stats.OwnerStats{}, err
	}

	out := stats.OwnerStats{
		Gym: stats.GymSummary{ID: g.ID, Name: g.Name, Status: string(g.Status), Capacity: g.Capacity},
	}
	monthStart := startOfMonth(s.now())
	users := make(map[string]struct{})

	for _, c := range list {
		out.Challenges.Total++
		switch c.Status {
		case challenge.StatusActive:
			out.Challenges.Active++
		case challenge.StatusCompleted:
			out.Challenges.Completed++
		}

		parts, err := store.FindAll[participation.Participation](ctx, s.participations, store.Filter{"challengeId": c.ID})
		if err != nil {
			return stats.OwnerStats{}, fmt.Errorf("failed to load participations: %w", err)
		}
		for _, p := range parts {
			users[p.UserID] = struct{}{}
			switch p.Status {
			case participation.StatusActive:
				out.Participants.Active++
			case participation.StatusCompleted:
				out.Participants.Completed++
			}
			if !p.JoinedAt.Before(monthStart) {
				out.ThisMonth.NewParticipants++
			}
			for _, w := range p.WorkoutSessions {
				if w.Date.Before(monthStart) {
					continue
				}
				out.ThisMonth.WorkoutSessions++
				out.ThisMonth.TotalCalories += w.CaloriesBurned
				out.ThisMonth.TotalDuration += w.Duration
			}
		}
	}
	out.Participants.Unique = len(users)
	return out, nil
}

func (s *StatsService) ClientDashboard(ctx context.Context, userID string) (stats.ClientDashboard, error) {
	parts, err := s.userParticipations(ctx, userID)
	if err != nil {
		return stats.ClientDashboard{}, err
	}
	awards, err := s.badgeService.UserBadges(ctx, userID)
	if err != nil {
		return stats.ClientDashboard{}, err
	}

	out := stats.ClientDashboard{
		Stats:            stats.ClientSummary{TotalBadges: len(awards)},
		ActiveChallenges: []participation.WithChallenge{},
		RecentBadges:     firstN(awards, dashboardRecentBadges),
	}
	for _, p := range parts {
		if p.IsActive() {
			out.Stats.ActiveChallenges++
		}
		out.Stats.TotalWorkouts += len(p.WorkoutSessions)
		out.Stats.TotalCalories += p.TotalCalories()
		out.Stats.TotalDuration += p.TotalDuration()
	}

	for _, p := range parts {
		if len(out.ActiveChallenges) == dashboardActiveChallenges {
			break
		}
		if !p.IsActive() {
			continue
		}
		withChallenge, err := s.participSvc.Get(ctx, p.ID, userID)
		if err != nil {
			s.logger.Warn("skipping participation on dashboard", zap.String("participation_id", p.ID), zap.Error(err))
			continue
		}
		out.ActiveChallenges = append(out.ActiveChallenges, withChallenge)
	}

	out.RecentWorkouts = firstN(workouts(parts, nil), dashboardRecentWorkouts)
	return out, nil
}

func (s *StatsService) ClientStats(ctx context.Context, userID string) (stats.ClientStats, error) {
	parts, err := s.userParticipations(ctx, userID)
	if err != nil {
		return stats.ClientStats{}, err
	}
	awards, err := s.badgeService.UserBadges(ctx, userID)
	if err != nil {
		return stats.ClientStats{}, err
	}

	out := stats.ClientStats{
		Challenges: stats.ChallengeCounts{Total: len(parts)},
		Badges:     stats.BadgeSummary{Total: len(awards), Recent: firstN(awards, statsRecentBadges)},
	}
	monthStart := startOfMonth(s.now())
	for _, p := range parts {
		switch p.Status {
		case participation.StatusActive:
			out.Challenges.Active++
		case participation.StatusCompleted:
			out.Challenges.Completed++
		}
		for _, w := range p.WorkoutSessions {
			out.Workouts.Total++
			out.Workouts.TotalDuration += w.Duration
			out.Workouts.TotalCalories += w.CaloriesBurned
			if w.Date.Before(monthStart) {
				continue
			}
			out.Workouts.ThisMonth++
			out.MonthlyProgress.Workouts++
			out.MonthlyProgress.Duration += w.Duration
			out.MonthlyProgress.Calories += w.CaloriesBurned
		}
	}
	return out, nil
}

// WorkoutHistory pages through every session the user logged, newest
// first.
func (s *StatsService) WorkoutHistory(ctx context.Context, userID string, p pagination.Params) (pagination.Page[stats.Workout], error) {
	parts, err := s.userParticipations(ctx, userID)
	if err != nil {
		return pagination.Page[stats.Workout]{}, err
	}

	titles := make(map[string]string)
	for _, part := range parts {
		if _, ok := titles[part.ChallengeID]; ok {
			continue
		}
		title := participation.UnknownChallenge.Title
		if c, err := load[challenge.Challenge](ctx, s.challenges, part.ChallengeID, ErrChallengeNotFound); err == nil {
			title = c.Title
		}
		titles[part.ChallengeID] = title
	}
	return pagination.Paginate(workouts(parts, titles), p), nil
}

func (s *StatsService) userParticipations(ctx context.Context, userID string) ([]participation.Participation, error) {
	parts, err := store.FindAll[participation.Participation](ctx, s.participations, store.Filter{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load participations: %w", err)
	}
	slices.SortStableFunc(parts, func(a, b participation.Participation) int { return b.JoinedAt.Compare(a.JoinedAt) })
	return parts, nil
}

// workouts flattens the sessions of parts, newest first. titles is
// optional.
func workouts(parts []participation.Participation, titles map[string]string) []stats.Workout {
	out := make([]stats.Workout, 0)
	for _, p := range parts {
		for _, w := range p.WorkoutSessions {
			entry := stats.Workout{WorkoutSession: w, ChallengeID: p.ChallengeID}
			if titles != nil {
				entry.ChallengeTitle = titles[p.ChallengeID]
				entry.ParticipationID = p.ID
			}
			out = append(out, entry)
		}
	}
	slices.SortStableFunc(out, func(a, b stats.Workout) int { return b.Date.Compare(a.Date) })
	return out
}

func firstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
