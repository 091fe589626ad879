package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

// MovementType represents the kind of stock movement
type MovementType string

const (
	MovementTypePurchase    MovementType = "purchase"     // stock received from supplier
	MovementTypeSale        MovementType = "sale"         // stock sold to customer
	MovementTypeReturnIn    MovementType = "return_in"    // customer return / sale void
	MovementTypeReturnOut   MovementType = "return_out"   // return to supplier
	MovementTypeAdjustment  MovementType = "adjustment"   // manual stock adjustment
	MovementTypeTransferIn  MovementType = "transfer_in"  // transfer from another location
	MovementTypeTransferOut MovementType = "transfer_out" // transfer to another location
	MovementTypeDamage      MovementType = "damage"       // damaged / written off
	MovementTypeExpired     MovementType = "expired"      // expired stock
	MovementTypeCount       MovementType = "count"        // physical count adjustment
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is one of the enumerated kinds
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase,
		MovementTypeSale,
		MovementTypeReturnIn,
		MovementTypeReturnOut,
		MovementTypeAdjustment,
		MovementTypeTransferIn,
		MovementTypeTransferOut,
		MovementTypeDamage,
		MovementTypeExpired,
		MovementTypeCount:
		return true
	}
	return false
}

// StockMovement is one immutable audit entry in the stock ledger.
// Once created, movements are never mutated or deleted - corrections
// are made with new movements.
type StockMovement struct {
	shared.BaseEntity
	ItemID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_stock_movements_item_time,priority:1"`
	MovementType MovementType `gorm:"type:varchar(20);not null;index"`

	// Quantity is signed: positive increases stock, negative decreases it.
	Quantity    decimal.Decimal  `gorm:"type:decimal(10,3);not null"`
	UnitCost    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	StockBefore decimal.Decimal  `gorm:"type:decimal(10,3);not null"`
	StockAfter  decimal.Decimal  `gorm:"type:decimal(10,3);not null"`

	ReferenceType *string    `gorm:"type:varchar(50)"`
	ReferenceID   *uuid.UUID `gorm:"type:uuid"`

	Notes       string `gorm:"type:text"`
	BatchNumber *string `gorm:"type:varchar(50)"`
	ExpiryDate  *time.Time

	PerformedBy *uuid.UUID `gorm:"type:uuid"`
	OccurredAt  time.Time  `gorm:"not null;index:idx_stock_movements_item_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a ledger entry for a stock change. The balance
// invariant stock_after == stock_before + quantity is enforced here so a
// movement can never be constructed out of step with the item it audits.
func NewStockMovement(itemID uuid.UUID, movementType MovementType, quantity, stockBefore, stockAfter decimal.Decimal) (*StockMovement, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Item ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainErrorf("VALIDATION_FAILURE", "invalid movement type %q", movementType)
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Quantity cannot be zero")
	}
	if !stockAfter.Equal(stockBefore.Add(quantity)) {
		return nil, shared.NewDomainErrorf("VALIDATION_FAILURE",
			"balance mismatch: %s + %s != %s", stockBefore.String(), quantity.String(), stockAfter.String())
	}

	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		ItemID:       itemID,
		MovementType: movementType,
		Quantity:     quantity,
		StockBefore:  stockBefore,
		StockAfter:   stockAfter,
		OccurredAt:   time.Now(),
	}, nil
}

// WithUnitCost sets the unit cost at the time of the movement
func (m *StockMovement) WithUnitCost(cost decimal.Decimal) *StockMovement {
	m.UnitCost = &cost
	return m
}

// WithReference links the movement to its source document
func (m *StockMovement) WithReference(refType string, refID uuid.UUID) *StockMovement {
	m.ReferenceType = &refType
	m.ReferenceID = &refID
	return m
}

// WithNotes sets the free-text notes
func (m *StockMovement) WithNotes(notes string) *StockMovement {
	m.Notes = notes
	return m
}

// WithBatch sets the batch number and optional expiry date
func (m *StockMovement) WithBatch(batchNumber string, expiryDate *time.Time) *StockMovement {
	m.BatchNumber = &batchNumber
	m.ExpiryDate = expiryDate
	return m
}

// WithActor records who performed the movement
func (m *StockMovement) WithActor(userID uuid.UUID) *StockMovement {
	m.PerformedBy = &userID
	return m
}

// IsInbound reports whether the movement increased stock
func (m *StockMovement) IsInbound() bool {
	return m.Quantity.IsPositive()
}
