package memory

import (
	"context"

	"takeout/domain/shared"
)

// UnitOfWork is the in-memory stand-in for a database transaction: it
// runs the function directly. The memory repositories apply each write
// atomically, which is enough for tests and local development; there is
// no rollback of already-applied writes.
type UnitOfWork struct{}

// NewUnitOfWork creates a pass-through unit of work.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

// Execute runs fn with the caller's context.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
