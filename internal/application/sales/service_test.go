package sales_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appsales "github.com/retailpos/backoffice/internal/application/sales"
	"github.com/retailpos/backoffice/internal/domain/customer"
	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/reference"
	domsales "github.com/retailpos/backoffice/internal/domain/sales"
	"github.com/retailpos/backoffice/internal/domain/shared"
	"github.com/retailpos/backoffice/internal/infrastructure/persistence"
)

type fixture struct {
	db       *gorm.DB
	service  *appsales.Service
	location *reference.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, persistence.AutoMigrate(db))

	location := &reference.Location{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Main Store",
		Code:       "MAIN",
		IsActive:   true,
	}
	require.NoError(t, db.Create(location).Error)

	return &fixture{
		db:       db,
		service:  appsales.NewService(persistence.NewGormTransactionScope(db), zap.NewNop()),
		location: location,
	}
}

func (f *fixture) addItem(t *testing.T, sku string, stock, price int64) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(sku, "Widget "+sku, f.location.ID, decimal.NewFromInt(price))
	require.NoError(t, err)
	item.CurrentStock = decimal.NewFromInt(stock)
	require.NoError(t, f.db.Create(item).Error)
	return item
}

func (f *fixture) addCustomer(t *testing.T, points int) *customer.CustomerAccount {
	t.Helper()
	account := &customer.CustomerAccount{
		BaseEntity:  shared.NewBaseEntity(),
		FirstName:   "Ada",
		LastName:    "Smith",
		LoyaltyTier: customer.TierBronze,
		IsActive:    true,
	}
	account.AddPoints(points)
	require.NoError(t, f.db.Create(account).Error)
	return account
}

func (f *fixture) currentStock(t *testing.T, itemID uuid.UUID) decimal.Decimal {
	t.Helper()
	var item inventory.InventoryItem
	require.NoError(t, f.db.First(&item, "id = ?", itemID).Error)
	return item.CurrentStock
}

// Item starts at stock 100, price 1000, tax 0. A sale of 10 drops stock
// to 90 with total 10000; voiding restores 100 with exactly two ledger
// entries.
func TestSaleThenVoid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.addItem(t, "SKU-1", 100, 1000)

	sale, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
		LocationID: f.location.ID,
		Items: []appsales.SaleLineRequest{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(10)},
		},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "completed", sale.Status)
	assert.True(t, strings.HasPrefix(sale.ReceiptNumber, "RCP-MAIN-"))
	assert.True(t, f.currentStock(t, item.ID).Equal(decimal.NewFromInt(90)))

	voided, err := f.service.VoidSale(ctx, sale.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "void", voided.Status)
	assert.True(t, f.currentStock(t, item.ID).Equal(decimal.NewFromInt(100)))

	var movements []inventory.StockMovement
	require.NoError(t, f.db.Where("item_id = ?", item.ID).Order("occurred_at asc").Find(&movements).Error)
	require.Len(t, movements, 2)
	assert.Equal(t, inventory.MovementTypeSale, movements[0].MovementType)
	assert.True(t, movements[0].Quantity.Equal(decimal.NewFromInt(-10)))
	assert.Equal(t, inventory.MovementTypeReturnIn, movements[1].MovementType)
	assert.True(t, movements[1].Quantity.Equal(decimal.NewFromInt(10)))
}

func TestDoubleVoidRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.addItem(t, "SKU-1", 100, 1000)

	sale, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
		LocationID:    f.location.ID,
		Items:         []appsales.SaleLineRequest{{ItemID: item.ID, Quantity: decimal.NewFromInt(10)}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	_, err = f.service.VoidSale(ctx, sale.ID, nil)
	require.NoError(t, err)

	_, err = f.service.VoidSale(ctx, sale.ID, nil)
	assert.ErrorIs(t, err, domsales.ErrAlreadyVoided)
	assert.True(t, f.currentStock(t, item.ID).Equal(decimal.NewFromInt(100)),
		"second void must not double-credit stock")
}

// With line 3 of 3 failing the stock check, lines 1-2 must not have
// deducted anything.
func TestSaleAtomicity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addItem(t, "SKU-A", 100, 10)
	b := f.addItem(t, "SKU-B", 100, 10)
	c := f.addItem(t, "SKU-C", 1, 10)

	_, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
		LocationID: f.location.ID,
		Items: []appsales.SaleLineRequest{
			{ItemID: a.ID, Quantity: decimal.NewFromInt(5)},
			{ItemID: b.ID, Quantity: decimal.NewFromInt(5)},
			{ItemID: c.ID, Quantity: decimal.NewFromInt(5)},
		},
		PaymentMethod: "card",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Widget SKU-C", "failure must name the offending item")

	assert.True(t, f.currentStock(t, a.ID).Equal(decimal.NewFromInt(100)))
	assert.True(t, f.currentStock(t, b.ID).Equal(decimal.NewFromInt(100)))
	assert.True(t, f.currentStock(t, c.ID).Equal(decimal.NewFromInt(1)))

	var saleCount int64
	require.NoError(t, f.db.Model(&domsales.Sale{}).Count(&saleCount).Error)
	assert.Zero(t, saleCount, "rejected sale must not persist a header")
}

func TestCashPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.addItem(t, "SKU-1", 100, 1000)

	t.Run("insufficient tender rejected before stock moves", func(t *testing.T) {
		short := decimal.NewFromInt(5000)
		_, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
			LocationID:     f.location.ID,
			Items:          []appsales.SaleLineRequest{{ItemID: item.ID, Quantity: decimal.NewFromInt(10)}},
			PaymentMethod:  "cash",
			AmountTendered: &short,
		})
		assert.ErrorIs(t, err, shared.ErrPaymentInsufficient)
		assert.True(t, f.currentStock(t, item.ID).Equal(decimal.NewFromInt(100)))
	})

	t.Run("change computed", func(t *testing.T) {
		tendered := decimal.NewFromInt(12000)
		sale, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
			LocationID:     f.location.ID,
			Items:          []appsales.SaleLineRequest{{ItemID: item.ID, Quantity: decimal.NewFromInt(10)}},
			PaymentMethod:  "cash",
			AmountTendered: &tendered,
		})
		require.NoError(t, err)
		require.NotNil(t, sale.ChangeGiven)
		assert.True(t, sale.ChangeGiven.Equal(decimal.NewFromInt(2000)))
	})
}

func TestLineMath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.addItem(t, "SKU-1", 100, 200)
	require.NoError(t, f.db.Model(item).Update("tax_rate", decimal.NewFromInt(10)).Error)

	sale, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
		LocationID: f.location.ID,
		Items: []appsales.SaleLineRequest{
			// 5 * 200 = 1000, 10% discount = 100, tax 10% of 900 = 90
			{ItemID: item.ID, Quantity: decimal.NewFromInt(5), DiscountPercent: decimal.NewFromInt(10)},
		},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].TaxAmount.Equal(decimal.NewFromInt(90)))
	assert.True(t, sale.Items[0].LineTotal.Equal(decimal.NewFromInt(990)))
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(1000)),
		"header subtotal is the undiscounted line sum")
	assert.True(t, sale.TaxAmount.Equal(decimal.NewFromInt(90)))
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(1090)))
}

// A flat per-line discount lowers only that line's total; the header
// subtotal and total_amount carry the undiscounted price.
func TestLineDiscountStaysOffHeaderTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.addItem(t, "SKU-1", 100, 100)

	sale, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
		LocationID: f.location.ID,
		Items: []appsales.SaleLineRequest{
			{ItemID: item.ID, Quantity: decimal.NewFromInt(1), DiscountAmount: decimal.NewFromInt(20)},
		},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].LineTotal.Equal(decimal.NewFromInt(80)))
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(100)))
}

func TestLoyaltyAccounting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.addItem(t, "SKU-1", 100, 1000)
	account := f.addCustomer(t, 500)

	sale, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
		LocationID:     f.location.ID,
		CustomerID:     &account.ID,
		Items:          []appsales.SaleLineRequest{{ItemID: item.ID, Quantity: decimal.NewFromInt(10)}},
		PaymentMethod:  "card",
		PointsRedeemed: 200,
	})
	require.NoError(t, err)

	// floor(10000 / 100) = 100 points earned
	assert.Equal(t, 100, sale.PointsEarned)
	assert.Equal(t, 200, sale.PointsRedeemed)

	var reloaded customer.CustomerAccount
	require.NoError(t, f.db.First(&reloaded, "id = ?", account.ID).Error)
	assert.Equal(t, 400, reloaded.LoyaltyPoints, "500 - 200 redeemed + 100 earned")
	assert.Equal(t, 600, reloaded.LifetimePoints)
	assert.Equal(t, 1, reloaded.TotalPurchases)

	t.Run("void reverses earned points", func(t *testing.T) {
		_, err := f.service.VoidSale(ctx, sale.ID, nil)
		require.NoError(t, err)

		require.NoError(t, f.db.First(&reloaded, "id = ?", account.ID).Error)
		assert.Equal(t, 300, reloaded.LoyaltyPoints)
		assert.Equal(t, 500, reloaded.LifetimePoints)
	})
}

func TestRedemptionExceedingBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.addItem(t, "SKU-1", 100, 1000)
	account := f.addCustomer(t, 50)

	// 50 on the books + 100 earned by this sale still falls short of 200.
	_, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
		LocationID:     f.location.ID,
		CustomerID:     &account.ID,
		Items:          []appsales.SaleLineRequest{{ItemID: item.ID, Quantity: decimal.NewFromInt(10)}},
		PaymentMethod:  "card",
		PointsRedeemed: 200,
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientPoints)
	assert.True(t, f.currentStock(t, item.ID).Equal(decimal.NewFromInt(100)),
		"redemption failure must precede any stock mutation")

	var reloaded customer.CustomerAccount
	require.NoError(t, f.db.First(&reloaded, "id = ?", account.ID).Error)
	assert.Equal(t, 50, reloaded.LoyaltyPoints, "rejected sale must not award points")
}

// Points earned by the sale itself are available for the same sale's
// redemption: a zero-balance customer earning 100 can redeem 50.
func TestRedemptionFundedBySameSaleEarnings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	item := f.addItem(t, "SKU-1", 100, 1000)
	account := f.addCustomer(t, 0)

	sale, err := f.service.CreateSale(ctx, appsales.CreateSaleRequest{
		LocationID:     f.location.ID,
		CustomerID:     &account.ID,
		Items:          []appsales.SaleLineRequest{{ItemID: item.ID, Quantity: decimal.NewFromInt(10)}},
		PaymentMethod:  "card",
		PointsRedeemed: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, sale.PointsEarned)
	assert.Equal(t, 50, sale.PointsRedeemed)

	var reloaded customer.CustomerAccount
	require.NoError(t, f.db.First(&reloaded, "id = ?", account.ID).Error)
	assert.Equal(t, 50, reloaded.LoyaltyPoints)
	assert.Equal(t, 100, reloaded.LifetimePoints)
}
