package services

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"gymAPI/internal/notification"
)

// Notifier accepts notifications for delivery. Delivery is best effort:
// failures are logged and never surface to the caller.
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification)
}

var notificationsDelivered = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_delivered_total",
		Help: "Notifications handed to a delivery channel, by channel and result",
	},
	[]string{"sink", "result"},
)

func init() {
	prometheus.MustRegister(notificationsDelivered)
}

// NotificationDispatcher fans notifications out to every configured sender
// from a fixed pool of workers.
type NotificationDispatcher struct {
	senders  []notification.Sender
	logger   *zap.Logger
	workers  int
	jobQueue chan notification.Notification
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewNotificationDispatcher(logger *zap.Logger, workers, queueSize int, senders ...notification.Sender) *NotificationDispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 100
	}
	d := &NotificationDispatcher{
		senders:  senders,
		logger:   logger,
		workers:  workers,
		jobQueue: make(chan notification.Notification, queueSize),
		stopChan: make(chan struct{}),
	}
	d.startWorkers()
	return d
}

func (d *NotificationDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case n := <-d.jobQueue:
			d.deliver(n)
		case <-d.stopChan:
			// drain what is already queued before exiting
			for {
				select {
				case n := <-d.jobQueue:
					d.deliver(n)
				default:
					return
				}
			}
		}
	}
}

func (d *NotificationDispatcher) deliver(n notification.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, s := range d.senders {
		if err := s.Send(ctx, n); err != nil {
			notificationsDelivered.WithLabelValues(s.Name(), "error").Inc()
			d.logger.Warn("notification delivery failed",
				zap.String("sink", s.Name()),
				zap.String("notification_id", n.ID),
				zap.String("user_id", n.UserID),
				zap.Error(err),
			)
			continue
		}
		notificationsDelivered.WithLabelValues(s.Name(), "ok").Inc()
	}
}

// Notify queues n. When the queue stays full past the timeout the
// notification is dropped.
func (d *NotificationDispatcher) Notify(ctx context.Context, n notification.Notification) {
	select {
	case <-d.stopChan:
		d.logger.Warn("dispatcher stopped, dropping notification", zap.String("notification_id", n.ID))
		return
	default:
	}

	select {
	case d.jobQueue <- n:
	case <-time.After(5 * time.Second):
		d.logger.Warn("notification queue full, dropping notification", zap.String("notification_id", n.ID))
	case <-ctx.Done():
		d.logger.Warn("context done before notification was queued", zap.String("notification_id", n.ID))
	}
}

// Stop waits for queued notifications to be delivered.
func (d *NotificationDispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.logger.Info("stopping notification dispatcher")
		close(d.stopChan)
		d.wg.Wait()
		d.logger.Info("notification dispatcher stopped")
	})
}
