package shared

import "context"

// UnitOfWork manages a transaction boundary. Execute runs fn inside a
// transaction attached to the context; repositories pick the transaction up
// from the context so a multi-row write (order + line items + cart clear)
// either fully commits or fully rolls back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
