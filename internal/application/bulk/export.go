package bulk

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailpos/backoffice/internal/application/ledger"
	"github.com/retailpos/backoffice/internal/domain/inventory"
)

// exportHeader matches the column set the importer accepts, so an
// unmodified export re-imports as pure updates.
var exportHeader = []string{
	"SKU", "Barcode", "Name", "Description", "Category", "Location",
	"Supplier", "Stock", "Min Stock", "Cost Price", "Selling Price", "Unit",
}

// Exporter produces the CSV backup of the active catalog.
type Exporter struct {
	scope  ledger.TransactionScope
	logger *zap.Logger
}

// NewExporter creates a bulk export service
func NewExporter(scope ledger.TransactionScope, logger *zap.Logger) *Exporter {
	return &Exporter{scope: scope, logger: logger}
}

// ExportCSV writes every active item (optionally filtered to one
// location) as UTF-8 CSV and returns the bytes with a suggested
// filename.
func (ex *Exporter) ExportCSV(ctx context.Context, locationID *uuid.UUID) ([]byte, string, error) {
	var (
		items []inventory.InventoryItem
		names *referenceNames
	)
	err := ex.scope.Execute(ctx, func(repos ledger.Repositories) error {
		var err error
		items, err = repos.Items().FindActive(ctx, locationID)
		if err != nil {
			return err
		}
		names, err = newReferenceNames(ctx, repos)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		return nil, "", err
	}
	for idx := range items {
		item := &items[idx]
		barcode := ""
		if item.Barcode != nil {
			barcode = *item.Barcode
		}
		minStock := ""
		if item.MinStockLevel != nil {
			minStock = item.MinStockLevel.String()
		}
		costPrice := ""
		if item.CostPrice != nil {
			costPrice = item.CostPrice.String()
		}
		record := []string{
			item.SKU,
			barcode,
			item.Name,
			item.Description,
			names.category(item.CategoryID),
			names.location(item.LocationID),
			names.supplier(item.SupplierID),
			item.CurrentStock.String(),
			minStock,
			costPrice,
			item.SellingPrice.String(),
			item.Unit,
		}
		if err := writer.Write(record); err != nil {
			return nil, "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("inventory_export_%s.csv", time.Now().Format("20060102"))

	ex.logger.Info("csv export finished",
		zap.Int("item_count", len(items)),
		zap.String("filename", filename))

	return buf.Bytes(), filename, nil
}

// referenceNames maps reference ids back to their display names for the
// export columns.
type referenceNames struct {
	locations  map[uuid.UUID]string
	categories map[uuid.UUID]string
	suppliers  map[uuid.UUID]string
}

func newReferenceNames(ctx context.Context, repos ledger.Repositories) (*referenceNames, error) {
	names := &referenceNames{
		locations:  make(map[uuid.UUID]string),
		categories: make(map[uuid.UUID]string),
		suppliers:  make(map[uuid.UUID]string),
	}

	locations, err := repos.Locations().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range locations {
		names.locations[locations[idx].ID] = locations[idx].Name
	}

	categories, err := repos.Categories().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range categories {
		names.categories[categories[idx].ID] = categories[idx].Name
	}

	suppliers, err := repos.Suppliers().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range suppliers {
		names.suppliers[suppliers[idx].ID] = suppliers[idx].Name
	}

	return names, nil
}

func (n *referenceNames) location(id uuid.UUID) string {
	return n.locations[id]
}

func (n *referenceNames) category(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return n.categories[*id]
}

func (n *referenceNames) supplier(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return n.suppliers[*id]
}
