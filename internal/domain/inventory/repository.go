package inventory

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository owns InventoryItem records. Visibility filtering for the
// soft-delete tombstone is centralized here: the FindActive* methods are
// the only sanctioned way to list items, so callers never repeat ad hoc
// is_active checks.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	// FindByIDForUpdate loads the item under a row-scoped exclusive lock
	// for the read-modify-write span of a stock mutation. Must be called
	// inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	FindBySKU(ctx context.Context, sku string) (*InventoryItem, error)
	FindByBarcode(ctx context.Context, barcode string) (*InventoryItem, error)
	// FindActive lists active items, optionally filtered to one location.
	FindActive(ctx context.Context, locationID *uuid.UUID) ([]InventoryItem, error)
	// FindReorderCandidates lists active items of a supplier whose current
	// stock has fallen to or below their reorder point.
	FindReorderCandidates(ctx context.Context, supplierID uuid.UUID) ([]InventoryItem, error)
	Create(ctx context.Context, item *InventoryItem) error
	Save(ctx context.Context, item *InventoryItem) error
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsByBarcode(ctx context.Context, barcode string) (bool, error)
	CountActive(ctx context.Context, locationID *uuid.UUID) (int64, error)
}

// MovementRepository is the append-only store for stock ledger entries.
type MovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error
	// FindByItem returns movements for an item in chronological order.
	FindByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]StockMovement, error)
	CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}
