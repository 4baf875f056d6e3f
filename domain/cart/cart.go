// Package cart models the shopping cart as an external collaborator of the
// order lifecycle: entries are read at submission time, copied into line
// items and cleared in the same transaction.
package cart

import (
	"context"
	"errors"
	"time"

	"takeout/domain/shared"
)

// ErrEmptyCart the user's cart holds no entries; submission is refused.
var ErrEmptyCart = errors.New("shopping cart is empty")

// Entry is one priced selection pending order creation. It is not owned by
// an Order until copied into a line item.
type Entry struct {
	ID        string
	UserID    string
	DishID    string
	Name      string
	Flavor    string
	Quantity  int
	UnitPrice shared.Money
	Amount    shared.Money
	CreatedAt time.Time
}

// Repository is the cart snapshot provider consumed by the lifecycle engine.
type Repository interface {
	// ListByUser returns the user's current cart entries.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)

	// ClearByUser removes all of the user's cart entries.
	ClearByUser(ctx context.Context, userID string) error

	// InsertBatch appends entries, used by the repeat-order flow.
	InsertBatch(ctx context.Context, entries []Entry) error
}

// NewEmptyCartError wraps ErrEmptyCart as a precondition failure.
func NewEmptyCartError(userID string) error {
	return &shared.DomainError{
		Err:     errors.Join(ErrEmptyCart, shared.ErrPreconditionFailed),
		Entity:  "cart",
		Message: "shopping cart is empty for user " + userID,
	}
}
