// Package mysql holds the GORM-backed repository implementations.
// GORM association features are not used; line items are managed by
// hand to keep aggregate boundaries explicit.
package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"takeout/domain/order"
	"takeout/infrastructure/persistence"
	"takeout/infrastructure/persistence/mysql/po"
)

// OrderRepository MySQL/GORM implementation of the order repository.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Insert persists a newly created order.
func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) error {
	return r.getDB(ctx).Create(po.FromOrderDomain(o)).Error
}

// Update persists the order guarded by the status it was loaded with. The
// WHERE clause carries that status, so a row that moved on since loading
// is left untouched and the caller gets ErrStaleOrder.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	orderPO := po.FromOrderDomain(o)

	result := r.getDB(ctx).
		Model(&po.OrderPO{}).
		Where("id = ? AND status = ?", o.ID(), int(o.LoadedStatus())).
		Updates(map[string]any{
			"status":        orderPO.Status,
			"pay_status":    orderPO.PayStatus,
			"checkout_at":   orderPO.CheckoutAt,
			"delivered_at":  orderPO.DeliveredAt,
			"cancelled_at":  orderPO.CancelledAt,
			"cancel_reason": orderPO.CancelReason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewStaleOrderError(o.ID())
	}
	o.ClearPersistenceState()
	return nil
}

// FindByID Find order by ID, without line items.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var orderPO po.OrderPO
	result := r.getDB(ctx).First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewNotFoundError(id)
		}
		return nil, result.Error
	}
	return orderPO.ToDomain(), nil
}

// FindByNumberAndUser Find a user's order by its public number.
func (r *OrderRepository) FindByNumberAndUser(ctx context.Context, number, userID string) (*order.Order, error) {
	var orderPO po.OrderPO
	result := r.getDB(ctx).First(&orderPO, "number = ? AND user_id = ?", number, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewNotFoundError(number)
		}
		return nil, result.Error
	}
	return orderPO.ToDomain(), nil
}

// PageQuery returns one page of matching orders, newest first, with the
// total match count.
func (r *OrderRepository) PageQuery(ctx context.Context, q order.Query) ([]*order.Order, int64, error) {
	db := r.getDB(ctx).Model(&po.OrderPO{})

	if q.UserID != "" {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.Number != "" {
		db = db.Where("number LIKE ?", "%"+q.Number+"%")
	}
	if q.Phone != "" {
		db = db.Where("phone LIKE ?", "%"+q.Phone+"%")
	}
	if q.Status != nil {
		db = db.Where("status = ?", int(*q.Status))
	}
	if q.BeginTime != nil {
		db = db.Where("ordered_at >= ?", *q.BeginTime)
	}
	if q.EndTime != nil {
		db = db.Where("ordered_at <= ?", *q.EndTime)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var orderPOs []po.OrderPO
	if err := db.Order("ordered_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orderPOs).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain()
	}
	return orders, total, nil
}

// CountByStatus counts orders currently in the given status.
func (r *OrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	var count int64
	err := r.getDB(ctx).
		Model(&po.OrderPO{}).
		Where("status = ?", int(status)).
		Count(&count).Error
	return count, err
}

// SumAmountByStatusInRange sums order amounts over [begin, end], both
// ends inclusive. COALESCE keeps empty days at 0.
func (r *OrderRepository) SumAmountByStatusInRange(ctx context.Context, begin, end time.Time, status order.Status) (int64, error) {
	var sum int64
	err := r.getDB(ctx).
		Model(&po.OrderPO{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ? AND ordered_at BETWEEN ? AND ?", int(status), begin, end).
		Scan(&sum).Error
	return sum, err
}

// CountRefundPending counts orders still carrying an unresolved refund flag.
func (r *OrderRepository) CountRefundPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).
		Model(&po.OrderPO{}).
		Where("pay_status = ?", int(order.PayStatusRefund)).
		Count(&count).Error
	return count, err
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
