package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodMobile   PaymentMethod = "mobile"
	PaymentMethodCredit   PaymentMethod = "credit" // store credit
	PaymentMethodSplit    PaymentMethod = "split"
)

// IsValid returns true if the payment method is one of the enumerated kinds
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer,
		PaymentMethodMobile, PaymentMethodCredit, PaymentMethodSplit:
		return true
	}
	return false
}

// SaleStatus represents the lifecycle status of a sale
type SaleStatus string

const (
	SaleStatusPending       SaleStatus = "pending"
	SaleStatusCompleted     SaleStatus = "completed"
	SaleStatusVoid          SaleStatus = "void"
	SaleStatusRefunded      SaleStatus = "refunded"
	SaleStatusPartialRefund SaleStatus = "partial_refund"
)

// SaleItem is one line of a completed sale. Unit price, cost price, tax
// rate and the computed line total are pinned at transaction time and
// never re-derived.
type SaleItem struct {
	shared.BaseEntity
	SaleID uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID uuid.UUID `gorm:"type:uuid;not null;index"`

	SKU  string `gorm:"type:varchar(50);not null"`
	Name string `gorm:"type:varchar(200);not null"`

	Quantity        decimal.Decimal  `gorm:"type:decimal(10,3);not null"`
	UnitPrice       decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	CostPrice       *decimal.Decimal `gorm:"type:decimal(10,2)"`
	DiscountPercent decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	TaxRate         decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	TaxAmount       decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	LineTotal       decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// ItemSnapshot is the denormalized per-line view stored on the sale
// header for fast reads without joining the line table.
type ItemSnapshot struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Sale is an immutable completed (or voided) POS transaction.
type Sale struct {
	shared.BaseEntity
	ReceiptNumber string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	LocationID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	CashierID     *uuid.UUID `gorm:"type:uuid"`

	Items         []SaleItem     `gorm:"foreignKey:SaleID;references:ID"`
	ItemsSnapshot []ItemSnapshot `gorm:"serializer:json"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountReason string          `gorm:"type:varchar(255)"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	PaymentMethod  PaymentMethod    `gorm:"type:varchar(20);not null"`
	AmountTendered *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ChangeGiven    *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Status SaleStatus `gorm:"type:varchar(20);not null;default:'completed';index"`

	PointsEarned   int `gorm:"not null;default:0"`
	PointsRedeemed int `gorm:"not null;default:0"`

	Notes string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// MarkVoid transitions the sale to void. Voiding never deletes rows and
// a second attempt is rejected rather than silently absorbed, so the
// reversal movements can never be double-applied.
func (s *Sale) MarkVoid() error {
	if s.Status == SaleStatusVoid {
		return shared.NewDomainErrorf("ALREADY_VOIDED", "sale %s is already voided", s.ReceiptNumber)
	}
	s.Status = SaleStatusVoid
	s.Touch()
	return nil
}

// ErrAlreadyVoided matches the rejection of a second void attempt
var ErrAlreadyVoided = shared.NewDomainError("ALREADY_VOIDED", "Sale is already voided")
