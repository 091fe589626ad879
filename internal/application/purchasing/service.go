package purchasing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailpos/backoffice/internal/application/ledger"
	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/purchasing"
	"github.com/retailpos/backoffice/internal/domain/shared"
)

const orderNumberRetryLimit = 5

// fallbackReorderQuantity is suggested when an item has neither a max
// stock level, a reorder quantity, nor a reorder point configured.
var fallbackReorderQuantity = decimal.NewFromInt(20)

// Service drives purchase orders through their status state machine.
// The transition into received credits stock through the ledger exactly
// once; the terminal check on the status blocks any replay.
type Service struct {
	scope  ledger.TransactionScope
	logger *zap.Logger
}

// NewService creates a purchase order service
func NewService(scope ledger.TransactionScope, logger *zap.Logger) *Service {
	return &Service{scope: scope, logger: logger}
}

// CreateOrder creates a pending order with its lines.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Order must have at least one item")
	}

	var order *purchasing.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		if _, err := repos.Suppliers().FindByID(ctx, req.SupplierID); err != nil {
			return err
		}

		orderNumber, err := s.generateOrderNumber(ctx, repos)
		if err != nil {
			return err
		}
		order, err = purchasing.NewPurchaseOrder(orderNumber, req.SupplierID)
		if err != nil {
			return err
		}
		order.ExpectedDate = req.ExpectedDate
		order.Notes = req.Notes
		order.CreatedBy = req.CreatedBy

		for idx := range req.Items {
			line := &req.Items[idx]
			if _, err := repos.Items().FindByID(ctx, line.ItemID); err != nil {
				return err
			}
			if _, err := order.AddItem(line.ItemID, line.Quantity, line.UnitCost); err != nil {
				return err
			}
		}

		return repos.PurchaseOrders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.Int("line_count", len(order.Items)))

	response := ToOrderResponse(order)
	return &response, nil
}

// GetOrder loads one order with its lines.
func (s *Service) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *purchasing.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		var err error
		order, err = repos.PurchaseOrders().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus moves an order to a new status. On the transition into
// received, every line credits stock through the ledger and the order
// becomes terminal, so the credit can never be applied twice.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	target := purchasing.OrderStatus(req.Status)

	var order *purchasing.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		var err error
		order, err = repos.PurchaseOrders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.ChangeStatus(target); err != nil {
			return err
		}
		if req.Notes != nil {
			order.Notes = *req.Notes
		}
		if req.ExpectedDate != nil {
			order.ExpectedDate = req.ExpectedDate
		}

		if target == purchasing.OrderStatusReceived {
			now := time.Now()
			order.MarkReceived(now)
			for idx := range order.Items {
				line := &order.Items[idx]
				_, err := ledger.ApplyInTx(ctx, repos, line.ItemID,
					line.Quantity, inventory.MovementTypePurchase,
					ledger.MovementMetadata{
						UnitCost:      &line.UnitCost,
						ReferenceType: "purchase_order",
						ReferenceID:   order.ID,
						PerformedBy:   req.Actor,
					})
				if err != nil {
					return err
				}
			}
		}

		return repos.PurchaseOrders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order status updated",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status.String()))

	response := ToOrderResponse(order)
	return &response, nil
}

// DeleteOrder removes an order that never affected stock.
func (s *Service) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		order, err := repos.PurchaseOrders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.IsDeletable() {
			return shared.NewDomainErrorf("INVALID_STATE",
				"cannot delete order %s in status %s", order.OrderNumber, order.Status)
		}
		return repos.PurchaseOrders().Delete(ctx, order.ID)
	})
}

// SuggestReorder proposes replenishment quantities for every active
// item of a supplier at or below its reorder point. Precedence: the gap
// to the configured max level, then the configured reorder quantity,
// then twice the reorder point as a fallback. Non-positive suggestions
// are omitted.
func (s *Service) SuggestReorder(ctx context.Context, supplierID uuid.UUID) ([]ReorderSuggestion, error) {
	var suggestions []ReorderSuggestion
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		if _, err := repos.Suppliers().FindByID(ctx, supplierID); err != nil {
			return err
		}
		candidates, err := repos.Items().FindReorderCandidates(ctx, supplierID)
		if err != nil {
			return err
		}

		suggestions = make([]ReorderSuggestion, 0, len(candidates))
		for idx := range candidates {
			item := &candidates[idx]
			quantity := suggestQuantity(item)
			if !quantity.IsPositive() {
				continue
			}
			suggestions = append(suggestions, ReorderSuggestion{
				ItemID:   item.ID,
				SKU:      item.SKU,
				Name:     item.Name,
				Quantity: quantity,
				UnitCost: item.CostPrice,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func suggestQuantity(item *inventory.InventoryItem) decimal.Decimal {
	if item.MaxStockLevel != nil {
		return item.MaxStockLevel.Sub(item.CurrentStock)
	}
	if item.ReorderQuantity != nil {
		return *item.ReorderQuantity
	}
	if item.ReorderPoint != nil {
		return item.ReorderPoint.Mul(decimal.NewFromInt(2))
	}
	return fallbackReorderQuantity
}

// generateOrderNumber builds PO-<YYYYMMDD>-<4hex>, retrying the random
// suffix on collision.
func (s *Service) generateOrderNumber(ctx context.Context, repos ledger.Repositories) (string, error) {
	date := time.Now().Format("20060102")
	for attempt := 0; attempt < orderNumberRetryLimit; attempt++ {
		suffix := make([]byte, 2)
		if _, err := rand.Read(suffix); err != nil {
			return "", err
		}
		orderNumber := fmt.Sprintf("PO-%s-%s", date, strings.ToUpper(hex.EncodeToString(suffix)))
		exists, err := repos.PurchaseOrders().ExistsByOrderNumber(ctx, orderNumber)
		if err != nil {
			return "", err
		}
		if !exists {
			return orderNumber, nil
		}
	}
	return "", shared.NewDomainError("CONFLICT", "could not generate a unique order number")
}
