package sales

import (
	"context"

	"github.com/google/uuid"
)

// SaleRepository persists sale headers with their lines.
type SaleRepository interface {
	// FindByID loads a sale together with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*Sale, error)
	Create(ctx context.Context, sale *Sale) error
	Save(ctx context.Context, sale *Sale) error
	ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error)
}
