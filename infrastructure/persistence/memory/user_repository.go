package memory

import (
	"context"
	"sync"
	"time"

	"takeout/domain/address"
	"takeout/domain/user"
)

// UserRepository is the in-memory user store.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

// Put stores or replaces a user. Seeding helper for tests and the memory
// database type.
func (r *UserRepository) Put(u user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

// FindByID returns the user or a NotFound error.
func (r *UserRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.NewNotFoundError(id)
	}
	return &u, nil
}

// CountCreatedBefore counts users created at or before the instant.
func (r *UserRepository) CountCreatedBefore(_ context.Context, instant time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, u := range r.users {
		if !u.CreatedAt.After(instant) {
			count++
		}
	}
	return count, nil
}

// CountCreatedBetween counts users created within [begin, end], inclusive.
func (r *UserRepository) CountCreatedBetween(_ context.Context, begin, end time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(begin) && !u.CreatedAt.After(end) {
			count++
		}
	}
	return count, nil
}

var _ user.Repository = (*UserRepository)(nil)

// AddressRepository is the in-memory address book.
type AddressRepository struct {
	mu        sync.RWMutex
	addresses map[string]address.Address
}

// NewAddressRepository creates an empty in-memory address book.
func NewAddressRepository() *AddressRepository {
	return &AddressRepository{addresses: make(map[string]address.Address)}
}

// Put stores or replaces an address. Seeding helper.
func (r *AddressRepository) Put(a address.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses[a.ID] = a
}

// FindByID returns the address or a NotFound error.
func (r *AddressRepository) FindByID(_ context.Context, id string) (*address.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.addresses[id]
	if !ok {
		return nil, address.NewNotFoundError(id)
	}
	return &a, nil
}

var _ address.Provider = (*AddressRepository)(nil)
