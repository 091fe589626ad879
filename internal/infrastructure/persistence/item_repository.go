package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/shared"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// FindByIDForUpdate loads an item under a row-scoped exclusive lock.
// SQLite serializes writers at the database level, so the locking
// clause is only issued where the dialect supports it.
func (r *GormItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var item inventory.InventoryItem
	if err := query.First(&item, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// FindBySKU finds an inventory item by its SKU
func (r *GormItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "sku = ?", sku).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// FindByBarcode finds an inventory item by its barcode
func (r *GormItemRepository) FindByBarcode(ctx context.Context, barcode string) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "barcode = ?", barcode).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

// FindActive lists active items, optionally filtered to one location
func (r *GormItemRepository) FindActive(ctx context.Context, locationID *uuid.UUID) ([]inventory.InventoryItem, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}
	var items []inventory.InventoryItem
	if err := query.Order("sku asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindReorderCandidates lists a supplier's active items at or below
// their reorder point
func (r *GormItemRepository) FindReorderCandidates(ctx context.Context, supplierID uuid.UUID) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND is_active = ?", supplierID, true).
		Where("reorder_point IS NOT NULL AND current_stock <= reorder_point").
		Order("sku asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new inventory item
func (r *GormItemRepository) Create(ctx context.Context, item *inventory.InventoryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Save persists all fields of an existing item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// ExistsBySKU reports whether an item with the SKU exists
func (r *GormItemRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.InventoryItem{}).
		Where("sku = ?", sku).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByBarcode reports whether an item with the barcode exists
func (r *GormItemRepository) ExistsByBarcode(ctx context.Context, barcode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.InventoryItem{}).
		Where("barcode = ?", barcode).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountActive counts active items, optionally filtered to one location
func (r *GormItemRepository) CountActive(ctx context.Context, locationID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.InventoryItem{}).Where("is_active = ?", true)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// translateError maps GORM errors onto the domain error kinds
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrConflict
	default:
		return err
	}
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)
