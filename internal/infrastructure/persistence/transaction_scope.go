package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/retailpos/backoffice/internal/application/ledger"
	"github.com/retailpos/backoffice/internal/domain/customer"
	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/purchasing"
	"github.com/retailpos/backoffice/internal/domain/reference"
	"github.com/retailpos/backoffice/internal/domain/sales"
)

// GormTransactionScope implements ledger.TransactionScope using GORM
// transactions. Every repository handed to the callback shares one
// underlying transaction, so a multi-line operation commits or rolls
// back as a unit.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos ledger.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Items() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormRepositories) Movements() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

func (r *gormRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormRepositories) PurchaseOrders() purchasing.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormRepositories) Customers() customer.AccountRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormRepositories) Locations() reference.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

func (r *gormRepositories) Categories() reference.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

func (r *gormRepositories) Suppliers() reference.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

var _ ledger.TransactionScope = (*GormTransactionScope)(nil)
var _ ledger.Repositories = (*gormRepositories)(nil)
