package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeout/domain/shared"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("user-1", "1756500000000", Delivery{Consignee: "Alice", Phone: "13800000000"}, "no onions",
		[]ItemRequest{
			{DishID: "dish-1", Name: "Kung Pao Chicken", Quantity: 2, UnitPrice: shared.CNY(1000)},
			{DishID: "dish-2", Name: "Rice", Quantity: 1, UnitPrice: shared.CNY(500)},
		}, time.Now())
	require.NoError(t, err)
	return o
}

func TestNewOrderComputesTotal(t *testing.T) {
	o := newTestOrder(t)

	// 2 * 10.00 + 1 * 5.00 = 25.00
	assert.Equal(t, int64(2500), o.Amount().Amount())
	assert.Equal(t, StatusPendingPayment, o.Status())
	assert.Equal(t, PayStatusUnpaid, o.PayStatus())
	assert.Equal(t, "Alice", o.Consignee())
	assert.Equal(t, "13800000000", o.Phone())
	assert.Len(t, o.Items(), 2)
	assert.True(t, o.IsNew())

	for _, it := range o.Items() {
		assert.Equal(t, o.ID(), it.OrderID())
		assert.NotEmpty(t, it.ID())
	}
}

func TestNewOrderValidation(t *testing.T) {
	_, err := NewOrder("", "n", Delivery{}, "", []ItemRequest{{DishID: "d", Name: "x", Quantity: 1, UnitPrice: shared.CNY(100)}}, time.Now())
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewOrder("user-1", "n", Delivery{}, "", nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyOrderItems)

	_, err = NewOrder("user-1", "n", Delivery{}, "", []ItemRequest{{DishID: "d", Name: "x", Quantity: 0, UnitPrice: shared.CNY(100)}}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestMarkPaid(t *testing.T) {
	o := newTestOrder(t)
	now := time.Now()

	require.NoError(t, o.MarkPaid(now))
	assert.Equal(t, StatusToBeConfirmed, o.Status())
	assert.Equal(t, PayStatusPaid, o.PayStatus())
	require.NotNil(t, o.CheckoutAt())
	assert.Equal(t, now, *o.CheckoutAt())

	events := o.PullEvents()
	require.Len(t, events, 1)
	paid, ok := events[0].(*OrderPaidEvent)
	require.True(t, ok)
	assert.Equal(t, o.ID(), paid.GetAggregateID())
	assert.Equal(t, o.Number(), paid.Number())

	// events are drained on pull
	assert.Empty(t, o.PullEvents())

	// paying again is an invalid transition
	err := o.MarkPaid(time.Now())
	assert.ErrorIs(t, err, ErrOrderStatusInvalid)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestCancelByUserBeforePayment(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.CancelByUser(time.Now()))
	assert.Equal(t, StatusCancelled, o.Status())
	assert.Equal(t, PayStatusUnpaid, o.PayStatus(), "unpaid cancellation must not flag a refund")
	assert.Equal(t, CancelledByUser, o.CancelReason())
	assert.NotNil(t, o.CancelledAt())
	assert.Empty(t, o.PullEvents())
}

func TestCancelByUserAfterPaymentFlagsRefund(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.MarkPaid(time.Now()))
	o.PullEvents()

	require.NoError(t, o.CancelByUser(time.Now()))
	assert.Equal(t, StatusCancelled, o.Status())
	assert.Equal(t, PayStatusRefund, o.PayStatus())

	events := o.PullEvents()
	require.Len(t, events, 1)
	flagged, ok := events[0].(*RefundFlaggedEvent)
	require.True(t, ok)
	assert.Equal(t, o.Amount(), flagged.Amount())
}

func TestCancelByUserRefusedOnceConfirmed(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.MarkPaid(time.Now()))
	require.NoError(t, o.Confirm())

	err := o.CancelByUser(time.Now())
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
	assert.ErrorIs(t, err, shared.ErrPreconditionFailed)
	assert.Equal(t, StatusConfirmed, o.Status())
}

func TestConfirmRequiresToBeConfirmed(t *testing.T) {
	o := newTestOrder(t)
	assert.ErrorIs(t, o.Confirm(), ErrOrderStatusInvalid)

	require.NoError(t, o.MarkPaid(time.Now()))
	require.NoError(t, o.Confirm())
	assert.Equal(t, StatusConfirmed, o.Status())
}

func TestRejectFlagsRefundWhenPaid(t *testing.T) {
	o := newTestOrder(t)

	// rejecting an unpaid order is an invalid transition
	assert.ErrorIs(t, o.Reject("out of stock", time.Now()), ErrOrderStatusInvalid)

	require.NoError(t, o.MarkPaid(time.Now()))
	o.PullEvents()

	require.NoError(t, o.Reject("out of stock", time.Now()))
	assert.Equal(t, StatusCancelled, o.Status())
	assert.Equal(t, PayStatusRefund, o.PayStatus())
	assert.Equal(t, "out of stock", o.CancelReason())

	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.IsType(t, &RefundFlaggedEvent{}, events[0])
}

func TestMerchantCancelHasNoStatusPrecondition(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.MarkPaid(time.Now()))
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Dispatch())
	o.PullEvents()

	require.NoError(t, o.CancelByMerchant("kitchen fire", time.Now()))
	assert.Equal(t, StatusCancelled, o.Status())
	assert.Equal(t, PayStatusRefund, o.PayStatus())
	assert.Equal(t, "kitchen fire", o.CancelReason())
}

func TestMerchantCancelUnpaidDoesNotFlagRefund(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.CancelByMerchant("closing early", time.Now()))
	assert.Equal(t, PayStatusUnpaid, o.PayStatus())
	assert.Empty(t, o.PullEvents())
}

func TestDispatchAndComplete(t *testing.T) {
	o := newTestOrder(t)

	assert.ErrorIs(t, o.Dispatch(), ErrOrderStatusInvalid)
	assert.ErrorIs(t, o.Complete(time.Now()), ErrOrderStatusInvalid)

	require.NoError(t, o.MarkPaid(time.Now()))
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Dispatch())
	assert.Equal(t, StatusDeliveryInProgress, o.Status())

	now := time.Now()
	require.NoError(t, o.Complete(now))
	assert.Equal(t, StatusCompleted, o.Status())
	require.NotNil(t, o.DeliveredAt())
	assert.Equal(t, now, *o.DeliveredAt())

	// completed is terminal
	assert.ErrorIs(t, o.Complete(time.Now()), ErrOrderStatusInvalid)
}

func TestRebuildRemembersLoadedStatus(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.MarkPaid(time.Now()))

	rebuilt := RebuildFromDTO(ReconstructionDTO{
		ID:        o.ID(),
		Number:    o.Number(),
		UserID:    o.UserID(),
		Status:    o.Status(),
		PayStatus: o.PayStatus(),
		Amount:    o.Amount(),
		OrderedAt: o.OrderedAt(),
	})

	assert.Equal(t, StatusToBeConfirmed, rebuilt.LoadedStatus())
	assert.False(t, rebuilt.IsNew())

	require.NoError(t, rebuilt.Confirm())
	// the guard still carries the status as loaded, not the new one
	assert.Equal(t, StatusToBeConfirmed, rebuilt.LoadedStatus())
	assert.Equal(t, StatusConfirmed, rebuilt.Status())

	rebuilt.ClearPersistenceState()
	assert.Equal(t, StatusConfirmed, rebuilt.LoadedStatus())
}
