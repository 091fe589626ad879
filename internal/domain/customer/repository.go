package customer

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository persists customer accounts.
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerAccount, error)
	Save(ctx context.Context, account *CustomerAccount) error
	Create(ctx context.Context, account *CustomerAccount) error
}
