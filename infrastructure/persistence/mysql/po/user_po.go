package po

import (
	"time"

	"takeout/domain/address"
	"takeout/domain/user"
)

// UserPO User persistence object
type UserPO struct {
	ID         string    `gorm:"primaryKey;size:64"`
	Name       string    `gorm:"size:64"`
	Phone      string    `gorm:"size:32;index"`
	PayerToken string    `gorm:"size:128"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName Specify table name
func (UserPO) TableName() string {
	return "user"
}

// ToDomain Convert persistence object to domain model
func (p *UserPO) ToDomain() *user.User {
	return &user.User{
		ID:         p.ID,
		Name:       p.Name,
		Phone:      p.Phone,
		PayerToken: p.PayerToken,
		CreatedAt:  p.CreatedAt,
	}
}

// AddressPO Delivery address persistence object
type AddressPO struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    string `gorm:"size:64;index;not null"`
	Consignee string `gorm:"size:64;not null"`
	Phone     string `gorm:"size:32;not null"`
	Detail    string `gorm:"size:255"`
}

// TableName Specify table name
func (AddressPO) TableName() string {
	return "address_book"
}

// ToDomain Convert persistence object to domain model
func (p *AddressPO) ToDomain() *address.Address {
	return &address.Address{
		ID:        p.ID,
		UserID:    p.UserID,
		Consignee: p.Consignee,
		Phone:     p.Phone,
		Detail:    p.Detail,
	}
}
