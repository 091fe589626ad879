package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backoffice/internal/domain/purchasing"
)

// GormPurchaseOrderRepository implements purchasing.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID loads an order together with its line items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	var order purchasing.PurchaseOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// Create inserts an order with its lines
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, order *purchasing.PurchaseOrder) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Save persists the order and its lines
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *purchasing.PurchaseOrder) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Delete removes the header; lines cascade via the FK constraint
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&purchasing.PurchaseOrderItem{}, "purchase_order_id = ?", id).Error; err != nil {
		return translateError(err)
	}
	if err := r.db.WithContext(ctx).
		Delete(&purchasing.PurchaseOrder{}, "id = ?", id).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// ExistsByOrderNumber reports whether an order number is taken
func (r *GormPurchaseOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&purchasing.PurchaseOrder{}).
		Where("order_number = ?", orderNumber).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ purchasing.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
