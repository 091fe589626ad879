package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backoffice/internal/domain/sales"
)

// SaleLineRequest is one cart line of a sale request
type SaleLineRequest struct {
	ItemID          uuid.UUID        `json:"item_id" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
}

// CreateSaleRequest is the input for creating a sale
type CreateSaleRequest struct {
	LocationID     uuid.UUID         `json:"location_id" binding:"required"`
	CustomerID     *uuid.UUID        `json:"customer_id,omitempty"`
	CashierID      *uuid.UUID        `json:"-"`
	Items          []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	DiscountReason string            `json:"discount_reason,omitempty"`
	PaymentMethod  string            `json:"payment_method" binding:"required,payment_method"`
	AmountTendered *decimal.Decimal  `json:"amount_tendered,omitempty"`
	PointsRedeemed int               `json:"points_redeemed"`
	Notes          string            `json:"notes,omitempty"`
}

// SaleLineResponse is the API view of one sale line
type SaleLineResponse struct {
	ItemID          uuid.UUID       `json:"item_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// SaleResponse is the API view of a sale
type SaleResponse struct {
	ID             uuid.UUID          `json:"id"`
	ReceiptNumber  string             `json:"receipt_number"`
	LocationID     uuid.UUID          `json:"location_id"`
	CustomerID     *uuid.UUID         `json:"customer_id,omitempty"`
	Items          []SaleLineResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaymentMethod  string             `json:"payment_method"`
	AmountTendered *decimal.Decimal   `json:"amount_tendered,omitempty"`
	ChangeGiven    *decimal.Decimal   `json:"change_given,omitempty"`
	Status         string             `json:"status"`
	PointsEarned   int                `json:"points_earned"`
	PointsRedeemed int                `json:"points_redeemed"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ToSaleResponse converts a sale aggregate to its API view
func ToSaleResponse(s *sales.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(s.Items))
	for idx := range s.Items {
		line := &s.Items[idx]
		lines = append(lines, SaleLineResponse{
			ItemID:          line.ItemID,
			SKU:             line.SKU,
			Name:            line.Name,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			DiscountAmount:  line.DiscountAmount,
			TaxAmount:       line.TaxAmount,
			LineTotal:       line.LineTotal,
		})
	}
	return SaleResponse{
		ID:             s.ID,
		ReceiptNumber:  s.ReceiptNumber,
		LocationID:     s.LocationID,
		CustomerID:     s.CustomerID,
		Items:          lines,
		Subtotal:       s.Subtotal,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		TotalAmount:    s.TotalAmount,
		PaymentMethod:  string(s.PaymentMethod),
		AmountTendered: s.AmountTendered,
		ChangeGiven:    s.ChangeGiven,
		Status:         string(s.Status),
		PointsEarned:   s.PointsEarned,
		PointsRedeemed: s.PointsRedeemed,
		CreatedAt:      s.CreatedAt,
	}
}
