package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes notifications to the process log. It is always enabled
// so every notification leaves a trace even without push or Kafka.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(ctx context.Context, n Notification) error {
	s.logger.Info("notification",
		zap.String("id", n.ID),
		zap.String("user_id", n.UserID),
		zap.String("type", string(n.Type)),
		zap.String("title", n.Title),
		zap.String("message", n.Message),
	)
	return nil
}
