// Package memory holds mutex-guarded in-memory repository
// implementations. They back the "memory" database type and the
// application-layer tests; semantics match the MySQL implementations,
// including the compare-and-set update guard.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"takeout/domain/order"
	"takeout/domain/shared"
)

// orderRecord is the stored snapshot of one order.
type orderRecord struct {
	id           string
	number       string
	userID       string
	status       order.Status
	payStatus    order.PayStatus
	amount       shared.Money
	consignee    string
	phone        string
	remark       string
	orderedAt    time.Time
	checkoutAt   *time.Time
	deliveredAt  *time.Time
	cancelledAt  *time.Time
	cancelReason string
}

func snapshot(o *order.Order) orderRecord {
	return orderRecord{
		id:           o.ID(),
		number:       o.Number(),
		userID:       o.UserID(),
		status:       o.Status(),
		payStatus:    o.PayStatus(),
		amount:       o.Amount(),
		consignee:    o.Consignee(),
		phone:        o.Phone(),
		remark:       o.Remark(),
		orderedAt:    o.OrderedAt(),
		checkoutAt:   copyTime(o.CheckoutAt()),
		deliveredAt:  copyTime(o.DeliveredAt()),
		cancelledAt:  copyTime(o.CancelledAt()),
		cancelReason: o.CancelReason(),
	}
}

func (r orderRecord) rebuild() *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:           r.id,
		Number:       r.number,
		UserID:       r.userID,
		Status:       r.status,
		PayStatus:    r.payStatus,
		Amount:       r.amount,
		Consignee:    r.consignee,
		Phone:        r.phone,
		Remark:       r.remark,
		OrderedAt:    r.orderedAt,
		CheckoutAt:   copyTime(r.checkoutAt),
		DeliveredAt:  copyTime(r.deliveredAt),
		CancelledAt:  copyTime(r.cancelledAt),
		CancelReason: r.cancelReason,
	})
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// OrderRepository is the in-memory order store.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]orderRecord
}

// NewOrderRepository creates an empty in-memory order store.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]orderRecord)}
}

// Insert persists a newly created order.
func (r *OrderRepository) Insert(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID()] = snapshot(o)
	return nil
}

// Update applies the order's state only when the stored status still
// matches the status the order was loaded with.
func (r *OrderRepository) Update(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.orders[o.ID()]
	if !ok || current.status != o.LoadedStatus() {
		return order.NewStaleOrderError(o.ID())
	}
	r.orders[o.ID()] = snapshot(o)
	o.ClearPersistenceState()
	return nil
}

// FindByID loads an order without its line items.
func (r *OrderRepository) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.orders[id]
	if !ok {
		return nil, order.NewNotFoundError(id)
	}
	return rec.rebuild(), nil
}

// FindByNumberAndUser loads a user's order by its public number.
func (r *OrderRepository) FindByNumberAndUser(_ context.Context, number, userID string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.orders {
		if rec.number == number && rec.userID == userID {
			return rec.rebuild(), nil
		}
	}
	return nil, order.NewNotFoundError(number)
}

// PageQuery returns one page of matching orders, newest first.
func (r *OrderRepository) PageQuery(_ context.Context, q order.Query) ([]*order.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []orderRecord
	for _, rec := range r.orders {
		if q.UserID != "" && rec.userID != q.UserID {
			continue
		}
		if q.Number != "" && !strings.Contains(rec.number, q.Number) {
			continue
		}
		if q.Phone != "" && !strings.Contains(rec.phone, q.Phone) {
			continue
		}
		if q.Status != nil && rec.status != *q.Status {
			continue
		}
		if q.BeginTime != nil && rec.orderedAt.Before(*q.BeginTime) {
			continue
		}
		if q.EndTime != nil && rec.orderedAt.After(*q.EndTime) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].orderedAt.After(matched[j].orderedAt)
	})

	total := int64(len(matched))

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	orders := make([]*order.Order, 0, end-start)
	for _, rec := range matched[start:end] {
		orders = append(orders, rec.rebuild())
	}
	return orders, total, nil
}

// CountByStatus counts orders currently in the given status.
func (r *OrderRepository) CountByStatus(_ context.Context, status order.Status) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, rec := range r.orders {
		if rec.status == status {
			count++
		}
	}
	return count, nil
}

// SumAmountByStatusInRange sums amounts over [begin, end], both ends
// inclusive.
func (r *OrderRepository) SumAmountByStatusInRange(_ context.Context, begin, end time.Time, status order.Status) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum int64
	for _, rec := range r.orders {
		if rec.status != status {
			continue
		}
		if rec.orderedAt.Before(begin) || rec.orderedAt.After(end) {
			continue
		}
		sum += rec.amount.Amount()
	}
	return sum, nil
}

// CountRefundPending counts orders still carrying an unresolved refund flag.
func (r *OrderRepository) CountRefundPending(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, rec := range r.orders {
		if rec.payStatus == order.PayStatusRefund {
			count++
		}
	}
	return count, nil
}

var _ order.Repository = (*OrderRepository)(nil)

// OrderItemRepository is the in-memory line item store.
type OrderItemRepository struct {
	mu    sync.RWMutex
	items map[string][]order.LineItem // keyed by order id, insertion order kept
}

// NewOrderItemRepository creates an empty in-memory line item store.
func NewOrderItemRepository() *OrderItemRepository {
	return &OrderItemRepository{items: make(map[string][]order.LineItem)}
}

// InsertBatch persists the items of one order.
func (r *OrderItemRepository) InsertBatch(_ context.Context, items []order.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.items[it.OrderID()] = append(r.items[it.OrderID()], it)
	}
	return nil
}

// FindByOrderID returns the items of an order in insertion order.
func (r *OrderItemRepository) FindByOrderID(_ context.Context, orderID string) ([]order.LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.items[orderID]
	out := make([]order.LineItem, len(items))
	copy(out, items)
	return out, nil
}

var _ order.LineItemRepository = (*OrderItemRepository)(nil)
