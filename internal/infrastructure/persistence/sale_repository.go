package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backoffice/internal/domain/sales"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID loads a sale together with its line items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

// FindByReceiptNumber loads a sale by its receipt number
func (r *GormSaleRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&sale, "receipt_number = ?", receiptNumber).Error; err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

// Create inserts a sale with its lines
func (r *GormSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Save persists the sale header. Lines are immutable after creation and
// are not touched here.
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	if err := r.db.WithContext(ctx).Omit("Items").Save(sale).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// ExistsByReceiptNumber reports whether a receipt number is taken
func (r *GormSaleRepository) ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Where("receipt_number = ?", receiptNumber).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
