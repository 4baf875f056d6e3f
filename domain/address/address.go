// Package address exposes the address book as a read-only collaborator.
// The lifecycle engine copies consignee and phone onto the order at
// submission; the address is never re-read afterwards.
package address

import (
	"context"
	"errors"

	"takeout/domain/shared"
)

// ErrAddressNotFound the referenced address does not exist.
var ErrAddressNotFound = errors.New("address not found")

// Address is a delivery address owned by a user.
type Address struct {
	ID        string
	UserID    string
	Consignee string
	Phone     string
	Detail    string
}

// Provider resolves addresses by id.
type Provider interface {
	// FindByID returns the address or a NotFound error.
	FindByID(ctx context.Context, id string) (*Address, error)
}

// NewNotFoundError wraps ErrAddressNotFound as a shared NotFound.
func NewNotFoundError(id string) error {
	return &shared.DomainError{
		Err:     errors.Join(ErrAddressNotFound, shared.ErrNotFound),
		Entity:  "address",
		Message: "address not found: " + id,
	}
}
