package notify

import (
	"context"

	"go.uber.org/zap"

	"takeout/domain/notify"
	"takeout/pkg/logger"
)

// LogNotifier writes broadcasts to the application log. Used when no
// broker is configured.
type LogNotifier struct{}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Broadcast logs the message.
func (n *LogNotifier) Broadcast(_ context.Context, msg notify.Message) {
	logger.Info("broadcast",
		zap.Int("type", msg.Type),
		zap.String("order_id", msg.OrderID),
		zap.String("content", msg.Content))
}

var _ notify.Notifier = (*LogNotifier)(nil)
