package order

import (
	"context"
	"time"
)

// Repository is the durable store of orders. Implementations must make
// Update a compare-and-set on the loaded status: when the row no longer
// carries order.LoadedStatus() the update must not apply and must return
// ErrStaleOrder, so of two racing transitions exactly one wins.
type Repository interface {
	// Insert persists a newly created order (line items are persisted
	// separately through LineItemRepository, in the same transaction).
	Insert(ctx context.Context, o *Order) error

	// Update persists the current state of a loaded order, guarded by the
	// status the order was loaded with.
	Update(ctx context.Context, o *Order) error

	// FindByID loads an order without its line items.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByNumberAndUser loads a user's order by its public number.
	FindByNumberAndUser(ctx context.Context, number, userID string) (*Order, error)

	// PageQuery returns one page of orders matching the query, newest
	// first, along with the total match count.
	PageQuery(ctx context.Context, q Query) ([]*Order, int64, error)

	// CountByStatus counts orders currently in the given status.
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// SumAmountByStatusInRange sums the amount (minor units) of orders in
	// the given status whose order time falls within [begin, end], both
	// ends inclusive. No matching orders yields 0.
	SumAmountByStatusInRange(ctx context.Context, begin, end time.Time, status Status) (int64, error)

	// CountRefundPending counts cancelled orders still flagged for refund.
	// Consumed by the reconciliation worker.
	CountRefundPending(ctx context.Context) (int64, error)
}

// LineItemRepository stores the line items owned by orders.
type LineItemRepository interface {
	// InsertBatch persists the items of one order in a single write.
	InsertBatch(ctx context.Context, items []LineItem) error

	// FindByOrderID returns the items of an order in insertion order.
	FindByOrderID(ctx context.Context, orderID string) ([]LineItem, error)
}

// Query is the predicate for PageQuery. Zero-valued fields do not filter.
type Query struct {
	UserID    string
	Number    string
	Phone     string
	Status    *Status
	BeginTime *time.Time
	EndTime   *time.Time
	Page      int
	PageSize  int
}
