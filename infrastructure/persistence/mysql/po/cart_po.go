package po

import (
	"time"

	"takeout/domain/cart"
	"takeout/domain/shared"
)

// CartEntryPO Shopping cart entry persistence object
type CartEntryPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;index;not null"`
	DishID    string    `gorm:"size:64;not null"`
	Name      string    `gorm:"size:255;not null"`
	Flavor    string    `gorm:"size:255"`
	Quantity  int       `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
	Amount    int64     `gorm:"not null"`
	Currency  string    `gorm:"size:3;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName Specify table name
func (CartEntryPO) TableName() string {
	return "shopping_cart"
}

// FromCartDomain Convert cart entry to persistence object
func FromCartDomain(e cart.Entry) CartEntryPO {
	return CartEntryPO{
		ID:        e.ID,
		UserID:    e.UserID,
		DishID:    e.DishID,
		Name:      e.Name,
		Flavor:    e.Flavor,
		Quantity:  e.Quantity,
		UnitPrice: e.UnitPrice.Amount(),
		Amount:    e.Amount.Amount(),
		Currency:  e.Amount.Currency(),
		CreatedAt: e.CreatedAt,
	}
}

// ToDomain Convert persistence object to cart entry
func (p *CartEntryPO) ToDomain() cart.Entry {
	return cart.Entry{
		ID:        p.ID,
		UserID:    p.UserID,
		DishID:    p.DishID,
		Name:      p.Name,
		Flavor:    p.Flavor,
		Quantity:  p.Quantity,
		UnitPrice: *shared.NewMoney(p.UnitPrice, p.Currency),
		Amount:    *shared.NewMoney(p.Amount, p.Currency),
		CreatedAt: p.CreatedAt,
	}
}
