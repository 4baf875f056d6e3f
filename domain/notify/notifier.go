// Package notify defines the fire-and-forget broadcast capability used to
// push order events to connected clients. Delivery is best effort: no
// acknowledgment, no ordering guarantee relative to other broadcasts. The
// engine only broadcasts after the underlying state change has committed.
package notify

import (
	"context"
	"fmt"
)

// Message type tags, part of the client contract.
const (
	TypeOrderPaid = 1 // a paid order arrived, the back office should confirm
	TypeReminder  = 2 // the customer is asking for progress
)

// Message is the broadcast payload.
type Message struct {
	Type    int    `json:"type"`
	OrderID string `json:"orderId"`
	Content string `json:"content"`
}

// Notifier broadcasts a message to all connected observers.
type Notifier interface {
	Broadcast(ctx context.Context, msg Message)
}

// OrderPaid builds the new-paid-order message.
func OrderPaid(orderID, number string) Message {
	return Message{
		Type:    TypeOrderPaid,
		OrderID: orderID,
		Content: fmt.Sprintf("order number: %s", number),
	}
}

// Reminder builds the customer-reminder message.
func Reminder(orderID, number string) Message {
	return Message{
		Type:    TypeReminder,
		OrderID: orderID,
		Content: fmt.Sprintf("order number: %s", number),
	}
}
