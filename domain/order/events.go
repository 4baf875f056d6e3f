package order

import (
	"time"

	"takeout/domain/shared"
)

// OrderPaidEvent is recorded when a payment settlement is confirmed. The
// engine broadcasts it through the Notifier after the status change has
// been committed.
type OrderPaidEvent struct {
	orderID    string
	number     string
	occurredOn time.Time
}

func NewOrderPaidEvent(orderID, number string) *OrderPaidEvent {
	return &OrderPaidEvent{
		orderID:    orderID,
		number:     number,
		occurredOn: time.Now(),
	}
}

func (e *OrderPaidEvent) EventName() string      { return "order.paid" }
func (e *OrderPaidEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderPaidEvent) GetAggregateID() string { return e.orderID }
func (e *OrderPaidEvent) Number() string         { return e.number }

// RefundFlaggedEvent is recorded when cancellation or rejection of a paid
// order creates a refund obligation. Refund execution is external; this
// event only marks the obligation for reconciliation.
type RefundFlaggedEvent struct {
	orderID    string
	number     string
	amount     shared.Money
	occurredOn time.Time
}

func NewRefundFlaggedEvent(orderID, number string, amount shared.Money) *RefundFlaggedEvent {
	return &RefundFlaggedEvent{
		orderID:    orderID,
		number:     number,
		amount:     amount,
		occurredOn: time.Now(),
	}
}

func (e *RefundFlaggedEvent) EventName() string      { return "order.refund_flagged" }
func (e *RefundFlaggedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *RefundFlaggedEvent) GetAggregateID() string { return e.orderID }
func (e *RefundFlaggedEvent) Number() string         { return e.number }
func (e *RefundFlaggedEvent) Amount() shared.Money   { return e.amount }
