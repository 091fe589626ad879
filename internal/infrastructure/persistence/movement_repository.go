package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backoffice/internal/domain/inventory"
)

// GormMovementRepository implements inventory.MovementRepository using
// GORM. Movements are append-only: there is deliberately no update or
// delete here.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Create appends one ledger entry
func (r *GormMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByItem returns movements for an item in chronological order
func (r *GormMovementRepository) FindByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("occurred_at asc, created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// CountByItem counts an item's ledger entries
func (r *GormMovementRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
		Where("item_id = ?", itemID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
