package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitionTable(t *testing.T) {
	allowed := []struct {
		from, to Status
	}{
		{StatusPendingPayment, StatusToBeConfirmed},
		{StatusPendingPayment, StatusCancelled},
		{StatusToBeConfirmed, StatusConfirmed},
		{StatusToBeConfirmed, StatusCancelled},
		{StatusConfirmed, StatusDeliveryInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusDeliveryInProgress, StatusCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to),
			"%s -> %s should be allowed", tc.from, tc.to)
	}

	all := []Status{
		StatusPendingPayment, StatusToBeConfirmed, StatusConfirmed,
		StatusDeliveryInProgress, StatusCompleted, StatusCancelled,
	}
	allowedSet := make(map[[2]Status]bool)
	for _, tc := range allowed {
		allowedSet[[2]Status{tc.from, tc.to}] = true
	}
	for _, from := range all {
		for _, to := range all {
			if allowedSet[[2]Status{from, to}] {
				continue
			}
			assert.False(t, from.CanTransitionTo(to),
				"%s -> %s should be forbidden", from, to)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPendingPayment.IsTerminal())
	assert.False(t, StatusDeliveryInProgress.IsTerminal())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPendingPayment.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status(0).Valid())
	assert.False(t, Status(7).Valid())
}

func TestPayStatusForwardOnly(t *testing.T) {
	assert.True(t, PayStatusUnpaid.CanTransitionTo(PayStatusPaid))
	assert.True(t, PayStatusPaid.CanTransitionTo(PayStatusRefund))

	assert.False(t, PayStatusUnpaid.CanTransitionTo(PayStatusRefund))
	assert.False(t, PayStatusPaid.CanTransitionTo(PayStatusUnpaid))
	assert.False(t, PayStatusRefund.CanTransitionTo(PayStatusUnpaid))
	assert.False(t, PayStatusRefund.CanTransitionTo(PayStatusPaid))
}
