package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/shared"
)

// MovementMetadata carries the optional attributes of a ledger append.
type MovementMetadata struct {
	UnitCost      *decimal.Decimal
	ReferenceType string
	ReferenceID   uuid.UUID
	Notes         string
	BatchNumber   *string
	ExpiryDate    *time.Time
	PerformedBy   *uuid.UUID
}

// Service is the stock ledger: the single write path for item stock
// levels. Every stock mutation goes through Apply (or ApplyInTx when a
// caller already holds a transaction), which locks the item row, moves
// the balance and appends the audit movement in one unit.
type Service struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewService creates a stock ledger service
func NewService(scope TransactionScope, logger *zap.Logger) *Service {
	return &Service{scope: scope, logger: logger}
}

// Adjust applies a manual stock adjustment in its own transaction and
// returns the recorded movement.
func (s *Service) Adjust(ctx context.Context, req AdjustStockRequest) (*MovementResponse, error) {
	movementType := inventory.MovementType(req.MovementType)
	if !movementType.IsValid() {
		return nil, shared.NewDomainErrorf("VALIDATION_FAILURE", "invalid movement type %q", req.MovementType)
	}
	if req.Quantity.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Quantity cannot be zero")
	}

	var movement *inventory.StockMovement
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var txErr error
		movement, txErr = ApplyInTx(ctx, repos, req.ItemID, req.Quantity, movementType, MovementMetadata{
			UnitCost:    req.UnitCost,
			Notes:       req.Notes,
			BatchNumber: req.BatchNumber,
			ExpiryDate:  req.ExpiryDate,
			PerformedBy: req.PerformedBy,
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("item_id", req.ItemID.String()),
		zap.String("movement_type", req.MovementType),
		zap.String("quantity", req.Quantity.String()),
		zap.String("stock_after", movement.StockAfter.String()))

	response := ToMovementResponse(movement)
	return &response, nil
}

// History returns a chronological page of ledger entries for an item.
func (s *Service) History(ctx context.Context, itemID uuid.UUID, limit, offset int) (*MovementHistoryResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var (
		movements []inventory.StockMovement
		total     int64
	)
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		if _, findErr := repos.Items().FindByID(ctx, itemID); findErr != nil {
			return findErr
		}
		var txErr error
		movements, txErr = repos.Movements().FindByItem(ctx, itemID, limit, offset)
		if txErr != nil {
			return txErr
		}
		total, txErr = repos.Movements().CountByItem(ctx, itemID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	items := make([]MovementResponse, 0, len(movements))
	for idx := range movements {
		items = append(items, ToMovementResponse(&movements[idx]))
	}
	return &MovementHistoryResponse{Items: items, Total: total}, nil
}

// ApplyInTx moves an item's stock balance and appends the matching
// ledger entry inside the caller's transaction. The item row is loaded
// under an exclusive lock so the before/after chain stays contiguous
// under concurrent writers. Callers that need several movements to be
// atomic (sales, purchase receipts, bulk imports) invoke this once per
// line within a single Execute.
func ApplyInTx(
	ctx context.Context,
	repos Repositories,
	itemID uuid.UUID,
	quantity decimal.Decimal,
	movementType inventory.MovementType,
	meta MovementMetadata,
) (*inventory.StockMovement, error) {
	item, err := repos.Items().FindByIDForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}

	before, after, err := item.ApplyStockDelta(quantity)
	if err != nil {
		return nil, err
	}

	movement, err := inventory.NewStockMovement(item.ID, movementType, quantity, before, after)
	if err != nil {
		return nil, err
	}
	if meta.UnitCost != nil {
		movement.WithUnitCost(*meta.UnitCost)
	}
	if meta.ReferenceType != "" && meta.ReferenceID != uuid.Nil {
		movement.WithReference(meta.ReferenceType, meta.ReferenceID)
	}
	if meta.Notes != "" {
		movement.WithNotes(meta.Notes)
	}
	if meta.BatchNumber != nil {
		movement.WithBatch(*meta.BatchNumber, meta.ExpiryDate)
	}
	if meta.PerformedBy != nil {
		movement.WithActor(*meta.PerformedBy)
	}

	if err := repos.Items().Save(ctx, item); err != nil {
		return nil, err
	}
	if err := repos.Movements().Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}
