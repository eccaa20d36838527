package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"gymAPI/internal/notification"
)

type memorySender struct {
	name string
	fail bool

	mu   sync.Mutex
	sent []notification.Notification
}

func (m *memorySender) Name() string { return m.name }

func (m *memorySender) Send(ctx context.Context, n notification.Notification) error {
	if m.fail {
		return errors.New("sink unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return nil
}

func (m *memorySender) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestDispatcherDeliversToEverySinkBeforeStopping(t *testing.T) {
	good := &memorySender{name: "memory"}
	broken := &memorySender{name: "broken", fail: true}
	d := NewNotificationDispatcher(zap.NewNop(), 3, 50, good, broken)

	svc := NewNotificationService(d)
	for i := 0; i < 25; i++ {
		svc.BadgeEarned(context.Background(), "user-1", "badge-1", "Starter")
	}
	d.Stop()

	assert.Equal(t, 25, good.count(), "a failing sink does not block the others")
}

func TestDispatcherDropsAfterStop(t *testing.T) {
	good := &memorySender{name: "memory"}
	d := NewNotificationDispatcher(zap.NewNop(), 1, 1, good)
	d.Stop()
	d.Stop()

	d.Notify(context.Background(), notification.New("u", notification.TypeBadgeEarned, "t", "m", nil))
	assert.Zero(t, good.count())
}
