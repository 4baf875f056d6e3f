package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"takeout/domain/address"
	"takeout/domain/user"
	"takeout/infrastructure/persistence"
	"takeout/infrastructure/persistence/mysql/po"
)

// UserRepository MySQL/GORM implementation of the user store.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository Create user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.NewNotFoundError(id)
		}
		return nil, result.Error
	}
	return userPO.ToDomain(), nil
}

// CountCreatedBefore counts users created at or before the instant.
func (r *UserRepository) CountCreatedBefore(ctx context.Context, instant time.Time) (int64, error) {
	var count int64
	err := r.getDB(ctx).
		Model(&po.UserPO{}).
		Where("created_at <= ?", instant).
		Count(&count).Error
	return count, err
}

// CountCreatedBetween counts users created within [begin, end], inclusive.
func (r *UserRepository) CountCreatedBetween(ctx context.Context, begin, end time.Time) (int64, error) {
	var count int64
	err := r.getDB(ctx).
		Model(&po.UserPO{}).
		Where("created_at BETWEEN ? AND ?", begin, end).
		Count(&count).Error
	return count, err
}

// Compile-time interface implementation check
var _ user.Repository = (*UserRepository)(nil)

// AddressRepository MySQL/GORM implementation of the address book reader.
type AddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository Create address repository
func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find address by ID
func (r *AddressRepository) FindByID(ctx context.Context, id string) (*address.Address, error) {
	var addressPO po.AddressPO
	result := r.getDB(ctx).First(&addressPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, address.NewNotFoundError(id)
		}
		return nil, result.Error
	}
	return addressPO.ToDomain(), nil
}

// Compile-time interface implementation check
var _ address.Provider = (*AddressRepository)(nil)
