package purchasing

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseOrderRepository persists purchase orders with their lines.
type PurchaseOrderRepository interface {
	// FindByID loads an order together with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	Create(ctx context.Context, order *PurchaseOrder) error
	Save(ctx context.Context, order *PurchaseOrder) error
	// Delete removes the header and cascades to its lines. Callers must
	// check IsDeletable first.
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}
