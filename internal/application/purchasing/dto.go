package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backoffice/internal/domain/purchasing"
)

// OrderLineRequest is one line of a purchase order request
type OrderLineRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreateOrderRequest is the input for creating a purchase order
type CreateOrderRequest struct {
	SupplierID   uuid.UUID          `json:"supplier_id" binding:"required"`
	Items        []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
	ExpectedDate *time.Time         `json:"expected_date,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	CreatedBy    *uuid.UUID         `json:"-"`
}

// UpdateStatusRequest updates an order's status and editable fields
type UpdateStatusRequest struct {
	Status       string     `json:"status" binding:"required"`
	Notes        *string    `json:"notes,omitempty"`
	ExpectedDate *time.Time `json:"expected_date,omitempty"`
	Actor        *uuid.UUID `json:"-"`
}

// OrderLineResponse is the API view of one order line
type OrderLineResponse struct {
	ItemID           uuid.UUID       `json:"item_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	LineAmount       decimal.Decimal `json:"line_amount"`
}

// OrderResponse is the API view of a purchase order
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	SupplierID   uuid.UUID           `json:"supplier_id"`
	Status       string              `json:"status"`
	Items        []OrderLineResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	ExpectedDate *time.Time          `json:"expected_date,omitempty"`
	ReceivedDate *time.Time          `json:"received_date,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// ToOrderResponse converts a purchase order to its API view
func ToOrderResponse(o *purchasing.PurchaseOrder) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Items))
	for idx := range o.Items {
		line := &o.Items[idx]
		lines = append(lines, OrderLineResponse{
			ItemID:           line.ItemID,
			Quantity:         line.Quantity,
			ReceivedQuantity: line.ReceivedQuantity,
			UnitCost:         line.UnitCost,
			LineAmount:       line.LineAmount(),
		})
	}
	return OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		Status:       o.Status.String(),
		Items:        lines,
		TotalAmount:  o.TotalAmount,
		ExpectedDate: o.ExpectedDate,
		ReceivedDate: o.ReceivedDate,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
	}
}

// ReorderSuggestion is one proposed replenishment line
type ReorderSuggestion struct {
	ItemID   uuid.UUID        `json:"item_id"`
	SKU      string           `json:"sku"`
	Name     string           `json:"name"`
	Quantity decimal.Decimal  `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}
