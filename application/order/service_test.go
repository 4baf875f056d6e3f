package order_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "takeout/application/order"
	"takeout/domain/address"
	"takeout/domain/cart"
	"takeout/domain/notify"
	"takeout/domain/order"
	domainpayment "takeout/domain/payment"
	"takeout/domain/shared"
	"takeout/domain/user"
	"takeout/infrastructure/payment"
	"takeout/infrastructure/persistence/memory"
)

// captureNotifier records broadcasts for assertions.
type captureNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (n *captureNotifier) Broadcast(_ context.Context, msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *captureNotifier) all() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.Message, len(n.messages))
	copy(out, n.messages)
	return out
}

type fixture struct {
	orders    *memory.OrderRepository
	items     *memory.OrderItemRepository
	carts     *memory.CartRepository
	users     *memory.UserRepository
	addresses *memory.AddressRepository
	gateway   *payment.MockGateway
	notifier  *captureNotifier
	svc       *orderapp.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		orders:    memory.NewOrderRepository(),
		items:     memory.NewOrderItemRepository(),
		carts:     memory.NewCartRepository(),
		users:     memory.NewUserRepository(),
		addresses: memory.NewAddressRepository(),
		gateway:   payment.NewMockGateway(),
		notifier:  &captureNotifier{},
	}
	f.users.Put(user.User{
		ID:         "user-1",
		Name:       "Alice",
		Phone:      "13800000000",
		PayerToken: "payer-token-1",
		CreatedAt:  time.Now().Add(-24 * time.Hour),
	})
	f.addresses.Put(address.Address{
		ID:        "addr-1",
		UserID:    "user-1",
		Consignee: "Alice",
		Phone:     "13800000000",
		Detail:    "1 Main St",
	})
	f.svc = orderapp.NewService(
		f.orders, f.items, f.carts, f.addresses, f.users,
		f.gateway, f.notifier, memory.NewUnitOfWork(),
	)
	return f
}

func (f *fixture) seedCart(t *testing.T, userID string) {
	t.Helper()
	now := time.Now()
	err := f.carts.InsertBatch(context.Background(), []cart.Entry{
		{ID: "c1", UserID: userID, DishID: "dish-1", Name: "Kung Pao Chicken", Quantity: 2,
			UnitPrice: shared.CNY(1000), Amount: shared.CNY(2000), CreatedAt: now},
		{ID: "c2", UserID: userID, DishID: "dish-2", Name: "Rice", Quantity: 1,
			UnitPrice: shared.CNY(500), Amount: shared.CNY(500), CreatedAt: now},
	})
	require.NoError(t, err)
}

func (f *fixture) submit(t *testing.T) *orderapp.SubmitReceipt {
	t.Helper()
	f.seedCart(t, "user-1")
	receipt, err := f.svc.Submit(context.Background(), "user-1", orderapp.SubmitRequest{AddressID: "addr-1"})
	require.NoError(t, err)
	return receipt
}

func (f *fixture) submitPaid(t *testing.T) *orderapp.SubmitReceipt {
	t.Helper()
	receipt := f.submit(t)
	require.NoError(t, f.svc.ConfirmPayment(context.Background(), "user-1", receipt.Number))
	return receipt
}

func TestSubmitEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), "user-1", orderapp.SubmitRequest{AddressID: "addr-1"})
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
	assert.ErrorIs(t, err, shared.ErrPreconditionFailed)
}

func TestSubmitUnknownAddress(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, "user-1")

	_, err := f.svc.Submit(context.Background(), "user-1", orderapp.SubmitRequest{AddressID: "missing"})
	assert.ErrorIs(t, err, address.ErrAddressNotFound)

	// the cart must survive a failed submission
	entries, err := f.carts.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSubmitCreatesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	receipt := f.submit(t)

	assert.Equal(t, int64(2500), receipt.Amount)
	assert.NotEmpty(t, receipt.Number)
	assert.NotEmpty(t, receipt.OrderID)

	entries, err := f.carts.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, entries, "submission must clear the cart")

	o, err := f.orders.FindByID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPendingPayment, o.Status())
	assert.Equal(t, "Alice", o.Consignee())

	items, err := f.items.FindByOrderID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestInitiatePayment(t *testing.T) {
	f := newFixture(t)
	receipt := f.submit(t)

	handle, err := f.svc.InitiatePayment(context.Background(), "user-1", receipt.Number)
	require.NoError(t, err)
	assert.NotEmpty(t, handle.TransactionID)
	assert.NotEmpty(t, handle.NonceStr)

	f.gateway.MarkSettled(receipt.Number)
	_, err = f.svc.InitiatePayment(context.Background(), "user-1", receipt.Number)
	assert.ErrorIs(t, err, domainpayment.ErrAlreadyPaid)
}

func TestInitiatePaymentUnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.InitiatePayment(context.Background(), "user-1", "999")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestConfirmPaymentBroadcastsOnce(t *testing.T) {
	f := newFixture(t)
	receipt := f.submit(t)

	require.NoError(t, f.svc.ConfirmPayment(context.Background(), "user-1", receipt.Number))

	o, err := f.orders.FindByID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusToBeConfirmed, o.Status())
	assert.Equal(t, order.PayStatusPaid, o.PayStatus())
	assert.NotNil(t, o.CheckoutAt())

	// a redelivered callback is absorbed without a second broadcast
	require.NoError(t, f.svc.ConfirmPayment(context.Background(), "user-1", receipt.Number))

	msgs := f.notifier.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.TypeOrderPaid, msgs[0].Type)
	assert.Equal(t, receipt.OrderID, msgs[0].OrderID)
	assert.Contains(t, msgs[0].Content, receipt.Number)
}

func TestUserCancelBeforePayment(t *testing.T) {
	f := newFixture(t)
	receipt := f.submit(t)

	require.NoError(t, f.svc.UserCancel(context.Background(), receipt.OrderID))

	o, err := f.orders.FindByID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, o.Status())
	assert.Equal(t, order.PayStatusUnpaid, o.PayStatus())
	assert.Equal(t, order.CancelledByUser, o.CancelReason())
}

func TestUserCancelPaidFlagsRefund(t *testing.T) {
	f := newFixture(t)
	receipt := f.submitPaid(t)

	require.NoError(t, f.svc.UserCancel(context.Background(), receipt.OrderID))

	o, err := f.orders.FindByID(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, o.Status())
	assert.Equal(t, order.PayStatusRefund, o.PayStatus())

	pending, err := f.orders.CountRefundPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
}

func TestUserCancelRefusedAfterConfirm(t *testing.T) {
	f := newFixture(t)
	receipt := f.submitPaid(t)
	require.NoError(t, f.svc.Confirm(context.Background(), receipt.OrderID))

	err := f.svc.UserCancel(context.Background(), receipt.OrderID)
	assert.ErrorIs(t, err, order.ErrOrderNotCancellable)
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)
	receipt := f.submitPaid(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Confirm(ctx, receipt.OrderID))
	require.NoError(t, f.svc.Dispatch(ctx, receipt.OrderID))
	require.NoError(t, f.svc.Complete(ctx, receipt.OrderID))

	o, err := f.orders.FindByID(ctx, receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, o.Status())
	assert.NotNil(t, o.DeliveredAt())
}

func TestDispatchRequiresConfirmed(t *testing.T) {
	f := newFixture(t)
	receipt := f.submitPaid(t)

	err := f.svc.Dispatch(context.Background(), receipt.OrderID)
	assert.ErrorIs(t, err, order.ErrOrderStatusInvalid)
}

func TestRacingTransitionsExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	receipt := f.submitPaid(t)
	ctx := context.Background()

	// Two actors load the same order, both in TO_BE_CONFIRMED.
	first, err := f.orders.FindByID(ctx, receipt.OrderID)
	require.NoError(t, err)
	second, err := f.orders.FindByID(ctx, receipt.OrderID)
	require.NoError(t, err)

	require.NoError(t, first.Confirm())
	require.NoError(t, second.Reject("too slow", time.Now()))

	require.NoError(t, f.orders.Update(ctx, first))

	err = f.orders.Update(ctx, second)
	assert.ErrorIs(t, err, order.ErrStaleOrder)
	assert.ErrorIs(t, err, shared.ErrConflict)

	o, err := f.orders.FindByID(ctx, receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, o.Status(), "the first committed transition wins")
}

func TestMerchantCancelDispatchedOrder(t *testing.T) {
	f := newFixture(t)
	receipt := f.submitPaid(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Confirm(ctx, receipt.OrderID))
	require.NoError(t, f.svc.Dispatch(ctx, receipt.OrderID))

	require.NoError(t, f.svc.MerchantCancel(ctx, receipt.OrderID, "rider unavailable"))

	o, err := f.orders.FindByID(ctx, receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, o.Status())
	assert.Equal(t, order.PayStatusRefund, o.PayStatus())
	assert.Equal(t, "rider unavailable", o.CancelReason())
}

func TestRemindBroadcasts(t *testing.T) {
	f := newFixture(t)
	receipt := f.submitPaid(t)

	require.NoError(t, f.svc.Remind(context.Background(), receipt.OrderID))

	msgs := f.notifier.all()
	require.Len(t, msgs, 2) // paid broadcast + reminder
	assert.Equal(t, notify.TypeReminder, msgs[1].Type)
	assert.Equal(t, receipt.OrderID, msgs[1].OrderID)
}

func TestRepeatRefillsCart(t *testing.T) {
	f := newFixture(t)
	receipt := f.submit(t)

	require.NoError(t, f.svc.Repeat(context.Background(), "user-1", receipt.OrderID))

	entries, err := f.carts.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	names := []string{entries[0].Name, entries[1].Name}
	assert.ElementsMatch(t, []string{"Kung Pao Chicken", "Rice"}, names)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "user-1", e.UserID)
	}
}

func TestDetails(t *testing.T) {
	f := newFixture(t)
	receipt := f.submit(t)

	view, err := f.svc.Details(context.Background(), receipt.OrderID)
	require.NoError(t, err)
	assert.Equal(t, receipt.OrderID, view.ID)
	assert.Equal(t, int64(2500), view.Amount)
	assert.Len(t, view.Items, 2)

	_, err = f.svc.Details(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestPageQueryFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.submit(t)
	paid := f.submitPaid(t)

	pendingStatus := int(order.StatusPendingPayment)
	result, err := f.svc.PageQuery(ctx, "user-1", 1, 10, &pendingStatus)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total)
	assert.Equal(t, pending.OrderID, result.Records[0].ID)

	result, err = f.svc.PageQuery(ctx, "user-1", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	_ = paid
}

func TestConditionSearchBuildsDishSummary(t *testing.T) {
	f := newFixture(t)
	f.submit(t)

	result, err := f.svc.ConditionSearch(context.Background(), orderapp.AdminQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total)
	assert.Equal(t, "Kung Pao Chicken*2;Rice*1;", result.Records[0].Dishes)
}

func TestStatusStatistics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.submitPaid(t) // to be confirmed

	confirmed := f.submitPaid(t)
	require.NoError(t, f.svc.Confirm(ctx, confirmed.OrderID))

	delivering := f.submitPaid(t)
	require.NoError(t, f.svc.Confirm(ctx, delivering.OrderID))
	require.NoError(t, f.svc.Dispatch(ctx, delivering.OrderID))

	stats, err := f.svc.StatusStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ToBeConfirmed)
	assert.Equal(t, int64(1), stats.Confirmed)
	assert.Equal(t, int64(1), stats.DeliveryInProgress)
	assert.Equal(t, int64(0), stats.Completed)
	assert.Equal(t, int64(0), stats.Cancelled)
}
