package po

import (
	"time"

	"takeout/domain/order"
	"takeout/domain/shared"
)

// OrderPO Order persistence object
// Note: only used for database mapping, does not contain any business
// logic. Defining GORM associations is prohibited here.
type OrderPO struct {
	ID           string     `gorm:"primaryKey;size:64"`
	Number       string     `gorm:"size:32;uniqueIndex;not null"`
	UserID       string     `gorm:"size:64;index;not null"` // Only store ID, no association with User
	Status       int        `gorm:"not null;index"`
	PayStatus    int        `gorm:"not null"`
	Amount       int64      `gorm:"not null"`
	Currency     string     `gorm:"size:3;not null"`
	Consignee    string     `gorm:"size:64;not null"`
	Phone        string     `gorm:"size:32;not null"`
	Remark       string     `gorm:"size:255"`
	OrderedAt    time.Time  `gorm:"not null;index"`
	CheckoutAt   *time.Time `gorm:""`
	DeliveredAt  *time.Time `gorm:""`
	CancelledAt  *time.Time `gorm:""`
	CancelReason string     `gorm:"size:255"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO Order line item persistence object
type OrderItemPO struct {
	ID        string `gorm:"primaryKey;size:64"`
	OrderID   string `gorm:"size:64;index;not null"` // Only store ID, no GORM association
	DishID    string `gorm:"size:64;not null"`
	Name      string `gorm:"size:255;not null"`
	Flavor    string `gorm:"size:255"`
	Quantity  int    `gorm:"not null"`
	UnitPrice int64  `gorm:"not null"`
	Amount    int64  `gorm:"not null"`
	Currency  string `gorm:"size:3;not null"`
}

// TableName Specify table name
func (OrderItemPO) TableName() string {
	return "order_detail"
}

// FromOrderDomain Convert domain model to persistence object
func FromOrderDomain(o *order.Order) *OrderPO {
	return &OrderPO{
		ID:           o.ID(),
		Number:       o.Number(),
		UserID:       o.UserID(),
		Status:       int(o.Status()),
		PayStatus:    int(o.PayStatus()),
		Amount:       o.Amount().Amount(),
		Currency:     o.Amount().Currency(),
		Consignee:    o.Consignee(),
		Phone:        o.Phone(),
		Remark:       o.Remark(),
		OrderedAt:    o.OrderedAt(),
		CheckoutAt:   o.CheckoutAt(),
		DeliveredAt:  o.DeliveredAt(),
		CancelledAt:  o.CancelledAt(),
		CancelReason: o.CancelReason(),
	}
}

// FromItemsDomain Convert line items to persistence objects
func FromItemsDomain(items []order.LineItem) []OrderItemPO {
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:        item.ID(),
			OrderID:   item.OrderID(),
			DishID:    item.DishID(),
			Name:      item.Name(),
			Flavor:    item.Flavor(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
			Amount:    item.Amount().Amount(),
			Currency:  item.Amount().Currency(),
		}
	}
	return itemPOs
}

// ToDomain Convert persistence object to domain model
func (p *OrderPO) ToDomain() *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:           p.ID,
		Number:       p.Number,
		UserID:       p.UserID,
		Status:       order.Status(p.Status),
		PayStatus:    order.PayStatus(p.PayStatus),
		Amount:       *shared.NewMoney(p.Amount, p.Currency),
		Consignee:    p.Consignee,
		Phone:        p.Phone,
		Remark:       p.Remark,
		OrderedAt:    p.OrderedAt,
		CheckoutAt:   p.CheckoutAt,
		DeliveredAt:  p.DeliveredAt,
		CancelledAt:  p.CancelledAt,
		CancelReason: p.CancelReason,
	})
}

// ToDomain Convert persistence object to domain line item
func (p *OrderItemPO) ToDomain() order.LineItem {
	return order.RebuildItemFromDTO(order.ItemReconstructionDTO{
		ID:        p.ID,
		OrderID:   p.OrderID,
		DishID:    p.DishID,
		Name:      p.Name,
		Flavor:    p.Flavor,
		Quantity:  p.Quantity,
		UnitPrice: *shared.NewMoney(p.UnitPrice, p.Currency),
		Amount:    *shared.NewMoney(p.Amount, p.Currency),
	})
}
