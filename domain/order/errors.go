/*
Package order is the order subdomain: the Order aggregate root, its line
items, the lifecycle status machine and the repository contracts.

Error design follows the shared package: sentinel errors for errors.Is(),
constructors that capture the stack at the point the rule was violated.
Every error also unwraps to one of the shared classification sentinels
(NotFound / PreconditionFailed / InvalidState / Conflict) so the API layer
can map a failure without knowing the subdomain.
*/
package order

import (
	"errors"

	"takeout/domain/shared"
)

var (
	// ErrOrderNotFound no order matches the given id or number.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNotCancellable the order is past the user-cancellable window
	// (already confirmed, dispatched or completed).
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")

	// ErrOrderStatusInvalid the requested transition is not legal from the
	// current status.
	ErrOrderStatusInvalid = errors.New("order status does not permit this operation")

	// ErrStaleOrder the order was modified concurrently; the caller lost the
	// status race and observed a stale state.
	ErrStaleOrder = errors.New("order was modified by another operation")

	// ErrEmptyOrderItems an order must carry at least one line item.
	ErrEmptyOrderItems = errors.New("order must have at least one line item")

	// ErrInvalidQuantity line item quantity must be positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// domainError pairs a subdomain sentinel with a shared classification
// sentinel; both are reachable through errors.Is().
type domainError struct {
	sentinel error
	kind     error
	message  string
	stack    []uintptr
}

func (e *domainError) Error() string { return e.message }

func (e *domainError) Unwrap() []error { return []error{e.sentinel, e.kind} }

// Stack implements shared.Stacker.
func (e *domainError) Stack() []string { return shared.FormatStack(e.stack) }

// NewNotFoundError reports that no order matches the given key.
func NewNotFoundError(key string) error {
	return &domainError{
		sentinel: ErrOrderNotFound,
		kind:     shared.ErrNotFound,
		message:  "order not found: " + key,
		stack:    shared.CaptureStack(3),
	}
}

// NewNotCancellableError reports a user cancellation attempted too late.
func NewNotCancellableError(id string, status Status) error {
	return &domainError{
		sentinel: ErrOrderNotCancellable,
		kind:     shared.ErrPreconditionFailed,
		message:  "order " + id + " in status " + status.String() + " can no longer be cancelled",
		stack:    shared.CaptureStack(3),
	}
}

// NewStatusInvalidError reports an illegal status transition attempt.
func NewStatusInvalidError(id string, current, target Status) error {
	return &domainError{
		sentinel: ErrOrderStatusInvalid,
		kind:     shared.ErrInvalidState,
		message:  "order " + id + ": cannot transition from " + current.String() + " to " + target.String(),
		stack:    shared.CaptureStack(3),
	}
}

// NewStaleOrderError reports a lost status race on a concurrent update.
func NewStaleOrderError(id string) error {
	return &domainError{
		sentinel: ErrStaleOrder,
		kind:     shared.ErrConflict,
		message:  "order " + id + " was modified by another operation, state is stale",
		stack:    shared.CaptureStack(3),
	}
}
