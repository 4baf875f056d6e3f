package memory

import (
	"context"
	"sync"

	"takeout/domain/cart"
)

// CartRepository is the in-memory shopping cart store.
type CartRepository struct {
	mu      sync.RWMutex
	entries map[string][]cart.Entry // keyed by user id
}

// NewCartRepository creates an empty in-memory cart store.
func NewCartRepository() *CartRepository {
	return &CartRepository{entries: make(map[string][]cart.Entry)}
}

// ListByUser returns the user's current cart entries.
func (r *CartRepository) ListByUser(_ context.Context, userID string) ([]cart.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.entries[userID]
	out := make([]cart.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// ClearByUser removes all of the user's cart entries.
func (r *CartRepository) ClearByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID)
	return nil
}

// InsertBatch appends entries.
func (r *CartRepository) InsertBatch(_ context.Context, entries []cart.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		r.entries[e.UserID] = append(r.entries[e.UserID], e)
	}
	return nil
}

var _ cart.Repository = (*CartRepository)(nil)
