// Package user exposes the user store. The lifecycle engine reads it for
// the payer token handed to the payment initiator; the statistics
// aggregator reads creation times for the user-growth series.
package user

import (
	"context"
	"errors"
	"time"

	"takeout/domain/shared"
)

// ErrUserNotFound the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// User is a customer of the platform.
type User struct {
	ID         string
	Name       string
	Phone      string
	PayerToken string // opaque token the payment initiator charges against
	CreatedAt  time.Time
}

// Repository is the user store contract.
type Repository interface {
	// FindByID returns the user or a NotFound error.
	FindByID(ctx context.Context, id string) (*User, error)

	// CountCreatedBefore counts users created at or before the instant.
	CountCreatedBefore(ctx context.Context, instant time.Time) (int64, error)

	// CountCreatedBetween counts users created within [begin, end], both
	// ends inclusive.
	CountCreatedBetween(ctx context.Context, begin, end time.Time) (int64, error)
}

// NewNotFoundError wraps ErrUserNotFound as a shared NotFound.
func NewNotFoundError(id string) error {
	return &shared.DomainError{
		Err:     errors.Join(ErrUserNotFound, shared.ErrNotFound),
		Entity:  "user",
		Message: "user not found: " + id,
	}
}
