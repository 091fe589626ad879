package sales

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
	"github.com/retailpos/backoffice/internal/domain/sales"
	"github.com/retailpos/backoffice/internal/domain/shared"
)

const (
	// pointsPerCurrencyUnit awards one loyalty point per 100 spent
	pointsPerCurrencyUnit = 100

	receiptRetryLimit = 5
)

var hundred = decimal.NewFromInt(100)

// Service processes point-of-sale transactions: cart validation, line
// math, stock deduction through the ledger, loyalty accounting and
// receipt generation, all inside one transaction per sale.
type Service struct {
	scope  ledger.TransactionScope
	logger *zap.Logger
}

// NewService creates a sale processing service
func NewService(scope ledger.TransactionScope, logger *zap.Logger) *Service {
	return &Service{scope: scope, logger: logger}
}

// CreateSale validates the cart, computes totals, deducts stock and
// persists the sale with its lines. Either every line takes effect or
// none does: the items are locked for the pricing read and held until
// commit, so a concurrent sale on the same item cannot interleave
// between the sufficiency check and the deduction.
func (s *Service) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	paymentMethod := sales.PaymentMethod(req.PaymentMethod)
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainErrorf("VALIDATION_FAILURE", "invalid payment method %q", req.PaymentMethod)
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Sale must have at least one item")
	}
	for idx := range req.Items {
		if req.Items[idx].Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainErrorf("VALIDATION_FAILURE", "line %d: quantity must be positive", idx+1)
		}
	}
	if req.PointsRedeemed < 0 {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Points redeemed cannot be negative")
	}
	if req.PointsRedeemed > 0 && req.CustomerID == nil {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "Points redemption requires a customer")
	}

	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		location, err := repos.Locations().FindByID(ctx, req.LocationID)
		if err != nil {
			return err
		}

		// Price every line against its locked item row. The locks stay
		// held through the deduction loop below until commit.
		lineItems := make([]sales.SaleItem, 0, len(req.Items))
		lockedItems := make([]*inventory.InventoryItem, 0, len(req.Items))
		subtotal := decimal.Zero
		taxTotal := decimal.Zero
		for idx := range req.Items {
			line := &req.Items[idx]
			item, err := repos.Items().FindByIDForUpdate(ctx, line.ItemID)
			if err != nil {
				return err
			}
			if !item.AllowNegativeStock && line.Quantity.GreaterThan(item.AvailableStock()) {
				return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
					"insufficient stock for %s: available %s, requested %s",
					item.Name, item.AvailableStock().String(), line.Quantity.String())
			}

			unitPrice := item.SellingPrice
			if line.UnitPrice != nil {
				unitPrice = *line.UnitPrice
			}
			lineSubtotal := line.Quantity.Mul(unitPrice)
			lineDiscount := line.DiscountAmount.Add(
				lineSubtotal.Mul(line.DiscountPercent).Div(hundred))
			lineTax := decimal.Zero
			if item.IsTaxable {
				lineTax = lineSubtotal.Sub(lineDiscount).Mul(item.TaxRate).Div(hundred)
			}
			lineTotal := lineSubtotal.Sub(lineDiscount).Add(lineTax)

			lineItems = append(lineItems, sales.SaleItem{
				BaseEntity:      shared.NewBaseEntity(),
				ItemID:          item.ID,
				SKU:             item.SKU,
				Name:            item.Name,
				Quantity:        line.Quantity,
				UnitPrice:       unitPrice,
				CostPrice:       item.CostPrice,
				DiscountPercent: line.DiscountPercent,
				DiscountAmount:  lineDiscount.Round(2),
				TaxRate:         item.TaxRate,
				TaxAmount:       lineTax.Round(2),
				LineTotal:       lineTotal.Round(2),
			})
			lockedItems = append(lockedItems, item)
			// Line discounts affect line_total and tax only; the header
			// subtotal stays undiscounted.
			subtotal = subtotal.Add(lineSubtotal)
			taxTotal = taxTotal.Add(lineTax)
		}

		subtotal = subtotal.Round(2)
		taxTotal = taxTotal.Round(2)
		totalAmount := subtotal.Sub(req.DiscountAmount).Add(taxTotal).Round(2)

		var changeGiven *decimal.Decimal
		if paymentMethod == sales.PaymentMethodCash {
			if req.AmountTendered == nil || req.AmountTendered.LessThan(totalAmount) {
				return shared.NewDomainErrorf("PAYMENT_INSUFFICIENT",
					"amount tendered is less than total %s", totalAmount.String())
			}
			change := req.AmountTendered.Sub(totalAmount)
			changeGiven = &change
		}

		pointsEarned := 0
		if req.CustomerID != nil {
			account, err := repos.Customers().FindByID(ctx, *req.CustomerID)
			if err != nil {
				return err
			}
			// Points earn before redemption, so this sale's own earnings
			// can fund the redemption. Both settle before any stock moves,
			// so an insufficient balance never leaves partial deductions.
			pointsEarned = int(totalAmount.Div(decimal.NewFromInt(pointsPerCurrencyUnit)).IntPart())
			account.AddPoints(pointsEarned)
			if err := account.RedeemPoints(req.PointsRedeemed); err != nil {
				return err
			}
			now := time.Now()
			account.RecordPurchase(totalAmount, now)
			if err := repos.Customers().Save(ctx, account); err != nil {
				return err
			}
		}

		receiptNumber, err := s.generateReceiptNumber(ctx, repos, location.Code)
		if err != nil {
			return err
		}

		sale = &sales.Sale{
			BaseEntity:     shared.NewBaseEntity(),
			ReceiptNumber:  receiptNumber,
			LocationID:     req.LocationID,
			CustomerID:     req.CustomerID,
			CashierID:      req.CashierID,
			Subtotal:       subtotal,
			TaxAmount:      taxTotal,
			DiscountAmount: req.DiscountAmount,
			DiscountReason: req.DiscountReason,
			TotalAmount:    totalAmount,
			PaymentMethod:  paymentMethod,
			AmountTendered: req.AmountTendered,
			ChangeGiven:    changeGiven,
			Status:         sales.SaleStatusCompleted,
			PointsEarned:   pointsEarned,
			PointsRedeemed: req.PointsRedeemed,
			Notes:          req.Notes,
		}
		snapshot := make([]sales.ItemSnapshot, 0, len(lineItems))
		for idx := range lineItems {
			lineItems[idx].SaleID = sale.ID
			snapshot = append(snapshot, sales.ItemSnapshot{
				SKU:       lineItems[idx].SKU,
				Name:      lineItems[idx].Name,
				Quantity:  lineItems[idx].Quantity,
				UnitPrice: lineItems[idx].UnitPrice,
				LineTotal: lineItems[idx].LineTotal,
			})
		}
		sale.Items = lineItems
		sale.ItemsSnapshot = snapshot

		if err := repos.Sales().Create(ctx, sale); err != nil {
			return err
		}

		// Deduct stock line by line. Rows were locked above, so these
		// appends cannot race another writer on the same items.
		for idx := range lineItems {
			_, err := ledger.ApplyInTx(ctx, repos, lineItems[idx].ItemID,
				lineItems[idx].Quantity.Neg(), inventory.MovementTypeSale,
				ledger.MovementMetadata{
					UnitCost:      lockedItems[idx].CostPrice,
					ReferenceType: "sale",
					ReferenceID:   sale.ID,
					PerformedBy:   req.CashierID,
				})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale completed",
		zap.String("receipt_number", sale.ReceiptNumber),
		zap.String("total_amount", sale.TotalAmount.String()),
		zap.Int("line_count", len(sale.Items)))

	response := ToSaleResponse(sale)
	return &response, nil
}

// VoidSale reverses a completed sale: one return movement per original
// line, earned points taken back (clamped at zero, never failing the
// void) and the status set to void. A second void attempt is rejected.
func (s *Service) VoidSale(ctx context.Context, saleID uuid.UUID, actor *uuid.UUID) (*SaleResponse, error) {
	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		if err := sale.MarkVoid(); err != nil {
			return err
		}

		for idx := range sale.Items {
			line := &sale.Items[idx]
			_, err := ledger.ApplyInTx(ctx, repos, line.ItemID,
				line.Quantity, inventory.MovementTypeReturnIn,
				ledger.MovementMetadata{
					ReferenceType: "sale",
					ReferenceID:   sale.ID,
					Notes:         fmt.Sprintf("void of receipt %s", sale.ReceiptNumber),
					PerformedBy:   actor,
				})
			if err != nil {
				return err
			}
		}

		if sale.CustomerID != nil && sale.PointsEarned > 0 {
			account, err := repos.Customers().FindByID(ctx, *sale.CustomerID)
			if err != nil {
				return err
			}
			if clamped := account.ReversePoints(sale.PointsEarned); clamped {
				s.logger.Warn("point reversal clamped at zero",
					zap.String("receipt_number", sale.ReceiptNumber),
					zap.String("customer_id", sale.CustomerID.String()))
			}
			if err := repos.Customers().Save(ctx, account); err != nil {
				return err
			}
		}

		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale voided", zap.String("receipt_number", sale.ReceiptNumber))

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetSale loads one sale with its lines.
func (s *Service) GetSale(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByID(ctx, saleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetSaleByReceipt loads a sale by its printed receipt number.
func (s *Service) GetSaleByReceipt(ctx context.Context, receiptNumber string) (*SaleResponse, error) {
	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos ledger.Repositories) error {
		var err error
		sale, err = repos.Sales().FindByReceiptNumber(ctx, receiptNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// generateReceiptNumber builds RCP-<locationcode>-<timestamp>-<4hex>,
// retrying the random suffix on the unlikely collision.
func (s *Service) generateReceiptNumber(ctx context.Context, repos ledger.Repositories, locationCode string) (string, error) {
	code := strings.ToUpper(locationCode)
	timestamp := time.Now().Format("20060102150405")
	for attempt := 0; attempt < receiptRetryLimit; attempt++ {
		suffix := make([]byte, 2)
		if _, err := rand.Read(suffix); err != nil {
			return "", err
		}
		receipt := fmt.Sprintf("RCP-%s-%s-%s", code, timestamp, strings.ToUpper(hex.EncodeToString(suffix)))
		exists, err := repos.Sales().ExistsByReceiptNumber(ctx, receipt)
		if err != nil {
			return "", err
		}
		if !exists {
			return receipt, nil
		}
	}
	return "", shared.NewDomainError("CONFLICT", "could not generate a unique receipt number")
}
