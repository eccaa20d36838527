package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gymAPI/internal/auth"
	"gymAPI/internal/notification"
	"gymAPI/internal/store"
	"gymAPI/internal/types/account"
	"gymAPI/internal/types/challenge"
	"gymAPI/internal/types/exercise"
	"gymAPI/internal/types/gym"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n notification.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) ofType(t notification.Type) []notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.Notification
	for _, n := range r.sent {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

type testEnv struct {
	ctx            context.Context
	db             *store.MemoryDatabase
	notifier       *recordingNotifier
	accounts       *AccountService
	gyms           *GymService
	exercises      *ExerciseService
	challenges     *ChallengeService
	badges         *BadgeService
	participations *ParticipationService
	stats          *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	db := store.NewMemory()
	require.NoError(t, db.EnsureIndexes(ctx, store.Indexes))

	logger := zap.NewNop()
	notifier := &recordingNotifier{}
	notifications := NewNotificationService(notifier)
	tokens := auth.NewTokenIssuer("test-secret", "gym-api", time.Hour)

	gyms := NewGymService(db, notifications, logger)
	challenges := NewChallengeService(db, notifications, logger)
	badges := NewBadgeService(db, notifications, logger)
	participations := NewParticipationService(db, badges, notifications, logger)

	return &testEnv{
		ctx:            ctx,
		db:             db,
		notifier:       notifier,
		accounts:       NewAccountService(db, tokens, logger),
		gyms:           gyms,
		exercises:      NewExerciseService(db, logger),
		challenges:     challenges,
		badges:         badges,
		participations: participations,
		stats:          NewStatsService(db, gyms, challenges, badges, participations, logger),
	}
}

func (e *testEnv) account(t *testing.T, email string, role account.Role) account.Account {
	t.Helper()
	acc := account.New(email, "not-a-real-hash", role, time.Now())
	require.NoError(t, e.db.Collection(store.Users).Insert(e.ctx, acc.ID, acc))
	return acc
}

func (e *testEnv) approvedGym(t *testing.T, owner, admin account.Account) gym.Gym {
	t.Helper()
	g, err := e.gyms.Create(e.ctx, owner.ID, gym.Details{Name: "Iron Works", Address: "1 Main St", Contact: "555-0100", Capacity: 50})
	require.NoError(t, err)
	res, err := e.gyms.Review(e.ctx, g.ID, admin.ID, true)
	require.NoError(t, err)
	return res.Gym
}

func (e *testEnv) challenge(t *testing.T, creator account.Account, maxParticipants *int) challenge.Challenge {
	t.Helper()
	c, err := e.challenges.Create(e.ctx, creator.ID, challenge.Draft{
		Title:           "30 Day Strength",
		Description:     "Lift every day",
		Objectives:      []string{"Get stronger"},
		ExerciseTypes:   []string{"Squat"},
		Duration:        30,
		Difficulty:      exercise.Intermediate,
		MaxParticipants: maxParticipants,
	})
	require.NoError(t, err)
	return c
}

func intPtr(v int) *int { return &v }
