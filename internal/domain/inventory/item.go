package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

// InventoryItem represents a stocked product at one location.
// Stock fields are mutated only through the stock ledger; descriptive
// fields through catalog edits. Items are never hard-deleted, only
// deactivated via the IsActive tombstone.
type InventoryItem struct {
	shared.BaseEntity
	SKU         string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Barcode     *string    `gorm:"type:varchar(50);uniqueIndex"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	LocationID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	SupplierID  *uuid.UUID `gorm:"type:uuid;index"`

	CurrentStock    decimal.Decimal  `gorm:"type:decimal(10,3);not null;default:0"`
	ReservedStock   decimal.Decimal  `gorm:"type:decimal(10,3);not null;default:0"`
	MinStockLevel   *decimal.Decimal `gorm:"type:decimal(10,3)"`
	MaxStockLevel   *decimal.Decimal `gorm:"type:decimal(10,3)"`
	ReorderPoint    *decimal.Decimal `gorm:"type:decimal(10,3)"`
	ReorderQuantity *decimal.Decimal `gorm:"type:decimal(10,3)"`

	CostPrice    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	SellingPrice decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	TaxRate      decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`

	Unit   string           `gorm:"type:varchar(20);not null;default:'pcs'"`
	Weight *decimal.Decimal `gorm:"type:decimal(10,3)"`

	IsActive           bool `gorm:"not null;default:true"`
	IsTaxable          bool `gorm:"not null;default:true"`
	AllowNegativeStock bool `gorm:"not null;default:false"`

	HasExpiry     bool `gorm:"not null;default:false"`
	ShelfLifeDays *int
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new inventory item
func NewInventoryItem(sku, name string, locationID uuid.UUID, sellingPrice decimal.Decimal) (*InventoryItem, error) {
	if sku == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Name cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Location ID cannot be empty")
	}
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Selling price must be greater than zero")
	}

	return &InventoryItem{
		BaseEntity:    shared.NewBaseEntity(),
		SKU:           sku,
		Name:          name,
		LocationID:    locationID,
		SellingPrice:  sellingPrice,
		CurrentStock:  decimal.Zero,
		ReservedStock: decimal.Zero,
		TaxRate:       decimal.Zero,
		Unit:          "pcs",
		IsActive:      true,
		IsTaxable:     true,
	}, nil
}

// AvailableStock returns stock available for sale (current - reserved)
func (i *InventoryItem) AvailableStock() decimal.Decimal {
	return i.CurrentStock.Sub(i.ReservedStock)
}

// IsLowStock reports whether current stock is at or below the minimum level
func (i *InventoryItem) IsLowStock() bool {
	if i.MinStockLevel == nil {
		return false
	}
	return i.CurrentStock.LessThanOrEqual(*i.MinStockLevel)
}

// ProfitMargin returns the margin percentage over cost, or nil when no
// cost price is recorded
func (i *InventoryItem) ProfitMargin() *decimal.Decimal {
	if i.CostPrice == nil || i.CostPrice.IsZero() {
		return nil
	}
	margin := i.SellingPrice.Sub(*i.CostPrice).
		Div(*i.CostPrice).
		Mul(decimal.NewFromInt(100))
	return &margin
}

// ApplyStockDelta computes the stock level after applying the signed
// quantity and enforces the non-negative policy. It returns the balance
// before and after; the item is updated only when the policy allows it.
func (i *InventoryItem) ApplyStockDelta(quantity decimal.Decimal) (before, after decimal.Decimal, err error) {
	before = i.CurrentStock
	after = before.Add(quantity)
	if after.IsNegative() && !i.AllowNegativeStock {
		return before, before, shared.NewDomainErrorf("INSUFFICIENT_STOCK",
			"insufficient stock for %s: current %s, requested %s", i.Name, before.String(), quantity.String())
	}
	i.CurrentStock = after
	i.Touch()
	return before, after, nil
}

// Deactivate marks the item as inactive. Items are never hard-deleted.
func (i *InventoryItem) Deactivate() {
	i.IsActive = false
	i.Touch()
}
