package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailpos/backoffice/internal/domain/inventory"
)

// AdjustStockRequest is the input for a manual stock adjustment
type AdjustStockRequest struct {
	ItemID       uuid.UUID       `json:"item_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	MovementType string          `json:"movement_type" binding:"required,movement_type"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	BatchNumber  *string         `json:"batch_number,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	PerformedBy  *uuid.UUID      `json:"-"`
}

// MovementResponse is the API view of one ledger entry
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	ItemID        uuid.UUID       `json:"item_id"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	StockBefore   decimal.Decimal `json:"stock_before"`
	StockAfter    decimal.Decimal `json:"stock_after"`
	ReferenceType *string         `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	BatchNumber   *string         `json:"batch_number,omitempty"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	PerformedBy   *uuid.UUID      `json:"performed_by,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// ToMovementResponse converts a stock movement to its API view
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		MovementType:  m.MovementType.String(),
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		StockBefore:   m.StockBefore,
		StockAfter:    m.StockAfter,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		BatchNumber:   m.BatchNumber,
		ExpiryDate:    m.ExpiryDate,
		PerformedBy:   m.PerformedBy,
		OccurredAt:    m.OccurredAt,
	}
}

// MovementHistoryResponse is a page of ledger entries for one item
type MovementHistoryResponse struct {
	Items []MovementResponse `json:"items"`
	Total int64              `json:"total"`
}
