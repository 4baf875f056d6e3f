// Package payment defines the opaque payment-initiation capability the
// lifecycle engine delegates to. Completing the payment happens out of
// band; the engine only starts a transaction and learns whether it was
// already settled.
package payment

import (
	"context"
	"errors"

	"takeout/domain/shared"
)

// ErrAlreadyPaid the gateway reports the transaction as settled already.
var ErrAlreadyPaid = errors.New("order has already been paid")

// Handle is the opaque token the client needs to complete the payment
// out of band.
type Handle struct {
	TransactionID string `json:"transaction_id"`
	Package       string `json:"package"`
	Timestamp     int64  `json:"timestamp"`
	NonceStr      string `json:"nonce_str"`
	SignType      string `json:"sign_type"`
}

// InitiateResult is the gateway's answer to an initiation attempt.
type InitiateResult struct {
	// AlreadySettled is true when the gateway has already collected the
	// funds for this order number.
	AlreadySettled bool
	Handle         Handle
}

// Initiator begins an external payment transaction.
type Initiator interface {
	Initiate(ctx context.Context, orderNumber string, amount shared.Money, description, payerToken string) (*InitiateResult, error)
}

// NewAlreadyPaidError wraps ErrAlreadyPaid as a precondition failure.
func NewAlreadyPaidError(number string) error {
	return &shared.DomainError{
		Err:     errors.Join(ErrAlreadyPaid, shared.ErrPreconditionFailed),
		Entity:  "payment",
		Message: "order " + number + " has already been paid",
	}
}
