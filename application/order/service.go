// Package order hosts the order lifecycle engine: the application service
// that drives every order state transition, from cart submission through
// payment, fulfilment, cancellation and the back-office views.
package order

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"takeout/domain/address"
	"takeout/domain/cart"
	"takeout/domain/notify"
	"takeout/domain/order"
	"takeout/domain/payment"
	"takeout/domain/shared"
	"takeout/domain/user"
	"takeout/pkg/logger"
)

// Service is the order lifecycle engine. All mutating operations load the
// aggregate, apply one behavior method and persist through the
// compare-and-set Update, so of two racing transitions exactly one wins.
// Broadcasts happen strictly after the state change has been persisted.
type Service struct {
	orders    order.Repository
	items     order.LineItemRepository
	carts     cart.Repository
	addresses address.Provider
	users     user.Repository
	payments  payment.Initiator
	notifier  notify.Notifier
	uow       shared.UnitOfWork
	numbers   *order.NumberGenerator
}

// NewService creates the lifecycle engine.
func NewService(
	orders order.Repository,
	items order.LineItemRepository,
	carts cart.Repository,
	addresses address.Provider,
	users user.Repository,
	payments payment.Initiator,
	notifier notify.Notifier,
	uow shared.UnitOfWork,
) *Service {
	return &Service{
		orders:    orders,
		items:     items,
		carts:     carts,
		addresses: addresses,
		users:     users,
		payments:  payments,
		notifier:  notifier,
		uow:       uow,
		numbers:   order.NewNumberGenerator(),
	}
}

// Submit turns the user's cart into a new pending-payment order. The
// address must exist and the cart must be non-empty; the order row, its
// line items and the cart clearing commit in one transaction, so a failed
// submission leaves the cart intact.
func (s *Service) Submit(ctx context.Context, userID string, req SubmitRequest) (*SubmitReceipt, error) {
	addr, err := s.addresses.FindByID(ctx, req.AddressID)
	if err != nil {
		return nil, err
	}

	entries, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, cart.NewEmptyCartError(userID)
	}

	requests := make([]order.ItemRequest, len(entries))
	for i, e := range entries {
		requests[i] = order.ItemRequest{
			DishID:    e.DishID,
			Name:      e.Name,
			Flavor:    e.Flavor,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice,
		}
	}

	o, err := order.NewOrder(userID, s.numbers.Next(), order.Delivery{
		Consignee: addr.Consignee,
		Phone:     addr.Phone,
	}, req.Remark, requests, time.Now())
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.orders.Insert(txCtx, o); err != nil {
			return err
		}
		if err := s.items.InsertBatch(txCtx, o.Items()); err != nil {
			return err
		}
		return s.carts.ClearByUser(txCtx, userID)
	})
	if err != nil {
		return nil, err
	}
	o.ClearPersistenceState()

	logger.Info("order submitted",
		zap.String("order_id", o.ID()),
		zap.String("order_number", o.Number()),
		zap.String("user_id", userID))

	return &SubmitReceipt{
		OrderID:   o.ID(),
		Number:    o.Number(),
		OrderedAt: o.OrderedAt(),
		Amount:    o.Amount().Amount(),
	}, nil
}

// InitiatePayment asks the gateway to start a payment transaction for the
// user's order and returns the handle the client completes it with.
func (s *Service) InitiatePayment(ctx context.Context, userID, number string) (*payment.Handle, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, err := s.orders.FindByNumberAndUser(ctx, number, userID)
	if err != nil {
		return nil, err
	}

	res, err := s.payments.Initiate(ctx, o.Number(), o.Amount(), "takeout order", u.PayerToken)
	if err != nil {
		return nil, err
	}
	if res.AlreadySettled {
		return nil, payment.NewAlreadyPaidError(number)
	}
	return &res.Handle, nil
}

// ConfirmPayment is the settlement callback. It moves the order from
// pending payment to to-be-confirmed, stamps the checkout time and
// broadcasts the new-order message. Redelivered callbacks are absorbed:
// when the order already left pending payment nothing is changed and
// nothing is re-broadcast.
func (s *Service) ConfirmPayment(ctx context.Context, userID, number string) error {
	o, err := s.orders.FindByNumberAndUser(ctx, number, userID)
	if err != nil {
		return err
	}
	if o.Status() != order.StatusPendingPayment {
		// settlement already processed, nothing to redo
		return nil
	}

	if err := o.MarkPaid(time.Now()); err != nil {
		return err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	s.dispatchEvents(ctx, o)
	return nil
}

// UserCancel cancels the customer's own order. Allowed from pending
// payment and to-be-confirmed; cancelling a paid order flags it for
// refund. Orders already confirmed or further along refuse.
func (s *Service) UserCancel(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.CancelByUser(time.Now())
	})
}

// Confirm accepts a paid order into preparation.
func (s *Service) Confirm(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.Confirm()
	})
}

// Reject refuses a to-be-confirmed order with a reason. A paid order is
// flagged for refund.
func (s *Service) Reject(ctx context.Context, orderID, reason string) error {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.Reject(reason, time.Now())
	})
}

// MerchantCancel cancels an order from the back office. It is a
// management override: no status precondition, refund flagged when the
// order had been paid.
func (s *Service) MerchantCancel(ctx context.Context, orderID, reason string) error {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.CancelByMerchant(reason, time.Now())
	})
}

// Dispatch moves a confirmed order out for delivery.
func (s *Service) Dispatch(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.Dispatch()
	})
}

// Complete marks a dispatched order as delivered.
func (s *Service) Complete(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, func(o *order.Order) error {
		return o.Complete(time.Now())
	})
}

// Remind broadcasts a customer reminder for an existing order. It does
// not touch order state.
func (s *Service) Remind(ctx context.Context, orderID string) error {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	s.notifier.Broadcast(ctx, notify.Reminder(o.ID(), o.Number()))
	return nil
}

// Repeat copies the line items of a past order back into the user's cart
// as fresh entries. The past order itself is untouched.
func (s *Service) Repeat(ctx context.Context, userID, orderID string) error {
	items, err := s.items.FindByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	now := time.Now()
	entries := make([]cart.Entry, len(items))
	for i, it := range items {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		entries[i] = cart.Entry{
			ID:        id.String(),
			UserID:    userID,
			DishID:    it.DishID(),
			Name:      it.Name(),
			Flavor:    it.Flavor(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
			Amount:    it.Amount(),
			CreatedAt: now,
		}
	}
	return s.carts.InsertBatch(ctx, entries)
}

// Details returns the full view of one order, line items included.
func (s *Service) Details(ctx context.Context, orderID string) (*OrderView, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return newOrderView(o, items), nil
}

// PageQuery returns one page of the user's order history, newest first,
// optionally narrowed to a status.
func (s *Service) PageQuery(ctx context.Context, userID string, page, pageSize int, status *int) (*PageResult, error) {
	q := order.Query{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	}
	if status != nil {
		st := order.Status(*status)
		q.Status = &st
	}
	return s.pageOf(ctx, q, false)
}

// ConditionSearch is the back-office order search across all users, with
// optional number, phone, status and time-range filters.
func (s *Service) ConditionSearch(ctx context.Context, q AdminQuery) (*PageResult, error) {
	dq := order.Query{
		Number:    q.Number,
		Phone:     q.Phone,
		BeginTime: q.BeginTime,
		EndTime:   q.EndTime,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}
	if q.Status != nil {
		st := order.Status(*q.Status)
		dq.Status = &st
	}
	return s.pageOf(ctx, dq, true)
}

// StatusStatistics counts orders per active status for the back-office
// dashboard.
func (s *Service) StatusStatistics(ctx context.Context) (*StatusStatistics, error) {
	var stats StatusStatistics
	counts := []struct {
		status order.Status
		dst    *int64
	}{
		{order.StatusToBeConfirmed, &stats.ToBeConfirmed},
		{order.StatusConfirmed, &stats.Confirmed},
		{order.StatusDeliveryInProgress, &stats.DeliveryInProgress},
		{order.StatusCompleted, &stats.Completed},
		{order.StatusCancelled, &stats.Cancelled},
	}
	for _, c := range counts {
		n, err := s.orders.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return &stats, nil
}

// CountByStatus exposes a single status count.
func (s *Service) CountByStatus(ctx context.Context, status int) (int64, error) {
	return s.orders.CountByStatus(ctx, order.Status(status))
}

// transition is the shared load-apply-persist path of every mutating
// lifecycle operation.
func (s *Service) transition(ctx context.Context, orderID string, apply func(*order.Order) error) error {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := apply(o); err != nil {
		return err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	s.dispatchEvents(ctx, o)
	return nil
}

// dispatchEvents drains the aggregate's recorded events after a
// successful persist. Paid events become broadcasts; refund flags are
// logged for the reconciliation worker to pick up.
func (s *Service) dispatchEvents(ctx context.Context, o *order.Order) {
	for _, ev := range o.PullEvents() {
		switch e := ev.(type) {
		case *order.OrderPaidEvent:
			s.notifier.Broadcast(ctx, notify.OrderPaid(e.GetAggregateID(), e.Number()))
		case *order.RefundFlaggedEvent:
			logger.Info("refund obligation recorded",
				zap.String("order_id", e.GetAggregateID()),
				zap.String("order_number", e.Number()),
				zap.Int64("amount", e.Amount().Amount()))
		}
	}
}

func (s *Service) pageOf(ctx context.Context, q order.Query, withDishes bool) (*PageResult, error) {
	orders, total, err := s.orders.PageQuery(ctx, q)
	if err != nil {
		return nil, err
	}

	records := make([]*OrderView, len(orders))
	for i, o := range orders {
		items, err := s.items.FindByOrderID(ctx, o.ID())
		if err != nil {
			return nil, err
		}
		v := newOrderView(o, items)
		if withDishes {
			v.Dishes = dishSummary(items)
		}
		records[i] = v
	}
	return &PageResult{Total: total, Records: records}, nil
}

// dishSummary renders line items as the compact "name*qty;" string shown
// in back-office lists.
func dishSummary(items []order.LineItem) string {
	var b []byte
	for _, it := range items {
		b = append(b, it.Name()...)
		b = append(b, '*')
		b = strconv.AppendInt(b, int64(it.Quantity()), 10)
		b = append(b, ';')
	}
	return string(b)
}
