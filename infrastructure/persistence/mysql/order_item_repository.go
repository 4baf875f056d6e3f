package mysql

import (
	"context"

	"gorm.io/gorm"

	"takeout/domain/order"
	"takeout/infrastructure/persistence"
	"takeout/infrastructure/persistence/mysql/po"
)

// OrderItemRepository MySQL/GORM implementation of the line item store.
type OrderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository Create line item repository
func NewOrderItemRepository(db *gorm.DB) *OrderItemRepository {
	return &OrderItemRepository{db: db}
}

func (r *OrderItemRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// InsertBatch persists the items of one order in a single write.
func (r *OrderItemRepository) InsertBatch(ctx context.Context, items []order.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	itemPOs := po.FromItemsDomain(items)
	return r.getDB(ctx).Create(&itemPOs).Error
}

// FindByOrderID returns the items of an order in insertion order.
func (r *OrderItemRepository) FindByOrderID(ctx context.Context, orderID string) ([]order.LineItem, error) {
	var itemPOs []po.OrderItemPO
	if err := r.getDB(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	items := make([]order.LineItem, len(itemPOs))
	for i := range itemPOs {
		items[i] = itemPOs[i].ToDomain()
	}
	return items, nil
}

// Compile-time interface implementation check
var _ order.LineItemRepository = (*OrderItemRepository)(nil)
