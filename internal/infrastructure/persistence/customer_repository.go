package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backoffice/internal/domain/customer"
)

// GormCustomerRepository implements customer.AccountRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID loads one customer account
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.CustomerAccount, error) {
	var account customer.CustomerAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &account, nil
}

// Save persists all fields of an existing account
func (r *GormCustomerRepository) Save(ctx context.Context, account *customer.CustomerAccount) error {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Create inserts a new account
func (r *GormCustomerRepository) Create(ctx context.Context, account *customer.CustomerAccount) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return translateError(err)
	}
	return nil
}

var _ customer.AccountRepository = (*GormCustomerRepository)(nil)
