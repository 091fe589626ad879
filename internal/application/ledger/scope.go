package ledger

import (
	"context"

	"github.com/retailpos/backoffice/internal/domain/customer"
	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/purchasing"
	"github.com/retailpos/backoffice/internal/domain/reference"
	"github.com/retailpos/backoffice/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories.
// All four write paths (manual adjustment, sale, purchase receipt, bulk
// import) terminate in ledger appends inside one Execute call, which is
// why the scope lives here: every multi-line operation is all-or-nothing
// at this boundary.
type TransactionScope interface {
	// Execute runs fn within a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to all repositories sharing one
// underlying database transaction.
type Repositories interface {
	Items() inventory.ItemRepository
	Movements() inventory.MovementRepository
	Sales() sales.SaleRepository
	PurchaseOrders() purchasing.PurchaseOrderRepository
	Customers() customer.AccountRepository
	Locations() reference.LocationRepository
	Categories() reference.CategoryRepository
	Suppliers() reference.SupplierRepository
}
