// Package notify holds the broadcast adapters: an AMQP fanout publisher
// for deployments with a broker, and a log-only fallback.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"takeout/domain/notify"
	"takeout/pkg/logger"
)

// AMQPNotifier broadcasts messages through a fanout exchange. Broadcast
// is best effort: publish failures are logged, never returned, and never
// block an already-committed state change.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// NewAMQPNotifier dials the broker and declares the fanout exchange.
func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange}, nil
}

// Broadcast publishes the message to the fanout exchange.
func (n *AMQPNotifier) Broadcast(ctx context.Context, msg notify.Message) {
	body, err := json.Marshal(msg)
	if err != nil {
		logger.Error("failed to marshal broadcast message", zap.Error(err))
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.ch.PublishWithContext(
		ctx,
		n.exchange,
		"", // fanout ignores the routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
	if err != nil {
		logger.Error("failed to publish broadcast message",
			zap.Int("type", msg.Type),
			zap.String("order_id", msg.OrderID),
			zap.Error(err))
	}
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}

var _ notify.Notifier = (*AMQPNotifier)(nil)
