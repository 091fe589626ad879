package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

// OrderStatus represents the status of a purchase order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // draft, not yet sent
	OrderStatusOrdered   OrderStatus = "ordered"   // sent to supplier
	OrderStatusReceived  OrderStatus = "received"  // stock arrived and credited
	OrderStatusCancelled OrderStatus = "cancelled" // order aborted
	OrderStatusPartial   OrderStatus = "partial"   // partial delivery received
)

// IsValid returns true if the status is one of the enumerated values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOrdered, OrderStatusReceived,
		OrderStatusCancelled, OrderStatusPartial:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further status changes are permitted.
// Received is the hard terminal state: the exactly-once stock credit
// depends on it never being re-entered.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReceived
}

// PurchaseOrderItem is one line of a supplier order
type PurchaseOrderItem struct {
	shared.BaseEntity
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity         decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// LineAmount returns quantity * unit cost
func (i *PurchaseOrderItem) LineAmount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitCost)
}

// PurchaseOrder is an order to a supplier
type PurchaseOrder struct {
	shared.BaseEntity
	OrderNumber string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;references:ID;constraint:OnDelete:CASCADE"`

	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ExpectedDate *time.Time
	ReceivedDate *time.Time
	Notes        string     `gorm:"type:text"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a pending purchase order
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Supplier ID cannot be empty")
	}

	return &PurchaseOrder{
		BaseEntity:  shared.NewBaseEntity(),
		OrderNumber: orderNumber,
		SupplierID:  supplierID,
		Status:      OrderStatusPending,
		Items:       make([]PurchaseOrderItem, 0),
		TotalAmount: decimal.Zero,
	}, nil
}

// AddItem appends a line and recomputes the order total
func (o *PurchaseOrder) AddItem(itemID uuid.UUID, quantity, unitCost decimal.Decimal) (*PurchaseOrderItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Unit cost cannot be negative")
	}

	line := PurchaseOrderItem{
		BaseEntity:       shared.NewBaseEntity(),
		PurchaseOrderID:  o.ID,
		ItemID:           itemID,
		Quantity:         quantity,
		ReceivedQuantity: decimal.Zero,
		UnitCost:         unitCost,
	}
	o.Items = append(o.Items, line)
	o.recalculateTotal()
	o.Touch()

	return &o.Items[len(o.Items)-1], nil
}

// ChangeStatus moves the order to a new status. Any transition out of a
// terminal status is rejected; everything else is permitted, matching
// the back-office workflow where orders can move freely between
// non-terminal states.
func (o *PurchaseOrder) ChangeStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainErrorf("VALIDATION_FAILURE", "invalid order status %q", target)
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError("ORDER_ALREADY_RECEIVED", "cannot update a received order")
	}
	o.Status = target
	o.Touch()
	return nil
}

// MarkReceived stamps the receipt date and marks every line as fully
// received. The stock credit itself is the ledger's responsibility.
func (o *PurchaseOrder) MarkReceived(at time.Time) {
	o.ReceivedDate = &at
	for idx := range o.Items {
		o.Items[idx].ReceivedQuantity = o.Items[idx].Quantity
		o.Items[idx].Touch()
	}
	o.Touch()
}

// IsDeletable reports whether the header (and its cascading lines) may
// be removed: only orders that never affected stock.
func (o *PurchaseOrder) IsDeletable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusCancelled
}

func (o *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].LineAmount())
	}
	o.TotalAmount = total
}

// ErrOrderAlreadyReceived matches rejections of updates to a terminal order
var ErrOrderAlreadyReceived = shared.NewDomainError("ORDER_ALREADY_RECEIVED", "Cannot update a received order")
