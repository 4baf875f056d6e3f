// Package payment holds the gateway adapters. The real platform talks to
// an external payment provider; this mock keeps the same contract for
// local development and tests.
package payment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainpayment "takeout/domain/payment"
	"takeout/domain/shared"
)

// MockGateway is an in-process payment gateway. Settlement state lives in
// a map keyed by order number; tests flip it through MarkSettled to
// exercise the already-paid path.
type MockGateway struct {
	mu      sync.RWMutex
	settled map[string]bool
}

// NewMockGateway creates a gateway with no settled transactions.
func NewMockGateway() *MockGateway {
	return &MockGateway{settled: make(map[string]bool)}
}

// Initiate starts a payment transaction for the order number. An order
// the gateway already collected funds for reports AlreadySettled instead
// of a fresh handle.
func (g *MockGateway) Initiate(_ context.Context, orderNumber string, _ shared.Money, _ string, _ string) (*domainpayment.InitiateResult, error) {
	g.mu.RLock()
	paid := g.settled[orderNumber]
	g.mu.RUnlock()

	if paid {
		return &domainpayment.InitiateResult{AlreadySettled: true}, nil
	}

	return &domainpayment.InitiateResult{
		Handle: domainpayment.Handle{
			TransactionID: "tx-" + uuid.NewString(),
			Package:       "prepay_id=" + uuid.NewString(),
			Timestamp:     time.Now().Unix(),
			NonceStr:      uuid.NewString(),
			SignType:      "RSA",
		},
	}, nil
}

// MarkSettled records the order number as collected on the gateway side.
func (g *MockGateway) MarkSettled(orderNumber string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.settled[orderNumber] = true
}

var _ domainpayment.Initiator = (*MockGateway)(nil)
