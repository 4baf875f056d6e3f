package mysql

import (
	"context"

	"gorm.io/gorm"

	"takeout/domain/cart"
	"takeout/infrastructure/persistence"
	"takeout/infrastructure/persistence/mysql/po"
)

// CartRepository MySQL/GORM implementation of the shopping cart store.
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository Create cart repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// ListByUser returns the user's current cart entries.
func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]cart.Entry, error) {
	var entryPOs []po.CartEntryPO
	if err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entryPOs).Error; err != nil {
		return nil, err
	}

	entries := make([]cart.Entry, len(entryPOs))
	for i := range entryPOs {
		entries[i] = entryPOs[i].ToDomain()
	}
	return entries, nil
}

// ClearByUser removes all of the user's cart entries.
func (r *CartRepository) ClearByUser(ctx context.Context, userID string) error {
	return r.getDB(ctx).
		Where("user_id = ?", userID).
		Delete(&po.CartEntryPO{}).Error
}

// InsertBatch appends entries, used by the repeat-order flow.
func (r *CartRepository) InsertBatch(ctx context.Context, entries []cart.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	entryPOs := make([]po.CartEntryPO, len(entries))
	for i, e := range entries {
		entryPOs[i] = po.FromCartDomain(e)
	}
	return r.getDB(ctx).Create(&entryPOs).Error
}

// Compile-time interface implementation check
var _ cart.Repository = (*CartRepository)(nil)
