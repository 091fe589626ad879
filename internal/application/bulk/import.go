package bulk

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retailpos/backoffice/internal/application/ledger"
	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/shared"
	"github.com/retailpos/backoffice/internal/infrastructure/csvenc"
)

// Column names after header normalization (lower-case, trimmed).
const (
	colSKU          = "sku"
	colBarcode      = "barcode"
	colName         = "name"
	colDescription  = "description"
	colCategory     = "category"
	colLocation     = "location"
	colSupplier     = "supplier"
	colStock        = "stock"
	colMinStock     = "min stock"
	colCostPrice    = "cost price"
	colSellingPrice = "selling price"
	colUnit         = "unit"
)

var requiredColumns = []string{colSKU, colName, colSellingPrice}

// ImportResult is the structured report of one CSV import batch.
type ImportResult struct {
	Success        bool     `json:"success"`
	ImportedCount  int      `json:"imported_count"`
	UpdatedCount   int      `json:"updated_count"`
	TotalProcessed int      `json:"total_processed"`
	Errors         []string `json:"errors"`
	EncodingUsed   string   `json:"encoding_used"`
	Message        string   `json:"message"`
}

// Importer reconciles an uploaded CSV against the item catalog:
// create-or-update per row, continuing past row failures, with the
// whole batch committed (or rolled back) as one transaction.
type Importer struct {
	scope  ledger.TransactionScope
	logger *zap.Logger
}

// NewImporter creates a bulk import service
func NewImporter(scope ledger.TransactionScope, logger *zap.Logger) *Importer {
	return &Importer{scope: scope, logger: logger}
}

// ImportCSV decodes, validates and applies an uploaded CSV file.
// Row failures are collected into the result; only decode failures,
// missing required columns and a failed batch commit abort the import.
func (im *Importer) ImportCSV(ctx context.Context, data []byte, defaultLocationID uuid.UUID, actor *uuid.UUID) (*ImportResult, error) {
	text, encodingUsed, err := csvenc.Decode(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILURE", "file has no header row")
	}
	columns := make(map[string]int, len(header))
	for idx, cell := range header {
		columns[strings.ToLower(strings.TrimSpace(cell))] = idx
	}
	var missing []string
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, shared.NewDomainErrorf("MISSING_COLUMNS",
			"missing required columns: %s", strings.Join(missing, ", "))
	}

	result := &ImportResult{EncodingUsed: encodingUsed, Errors: []string{}}

	err = im.scope.Execute(ctx, func(repos ledger.Repositories) error {
		lookups, err := newReferenceLookups(ctx, repos)
		if err != nil {
			return err
		}

		// Header is line 1; the first data row is line 2.
		lineNumber := 1
		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			lineNumber++
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: malformed CSV row", lineNumber))
				continue
			}
			if isBlankRow(record) {
				continue
			}
			result.TotalProcessed++

			created, err := im.processRow(ctx, repos, lookups, columns, record, defaultLocationID, actor)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", lineNumber, err.Error()))
				continue
			}
			if created {
				result.ImportedCount++
			} else {
				result.UpdatedCount++
			}
		}
		return nil
	})
	if err != nil {
		// The batch commit failed: everything rolled back, report one
		// top-level error instead of the per-row tallies.
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, shared.NewDomainErrorf("STORAGE_FAILURE", "import batch commit failed: %s", err.Error())
	}

	result.Success = len(result.Errors) == 0
	result.Message = fmt.Sprintf("%d imported, %d updated, %d failed",
		result.ImportedCount, result.UpdatedCount, len(result.Errors))

	im.logger.Info("csv import finished",
		zap.String("encoding", result.EncodingUsed),
		zap.Int("imported", result.ImportedCount),
		zap.Int("updated", result.UpdatedCount),
		zap.Int("failed", len(result.Errors)))

	return result, nil
}

// processRow validates and applies one data row. The bool result
// reports whether a new item was created (true) or an existing one
// updated (false).
func (im *Importer) processRow(
	ctx context.Context,
	repos ledger.Repositories,
	lookups *referenceLookups,
	columns map[string]int,
	record []string,
	defaultLocationID uuid.UUID,
	actor *uuid.UUID,
) (bool, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	sku := cell(colSKU)
	if sku == "" {
		return false, errors.New("missing SKU")
	}
	name := cell(colName)
	if name == "" {
		return false, errors.New("missing Name")
	}

	sellingPrice, err := ParseFlexibleDecimal(cell(colSellingPrice))
	if err != nil {
		return false, fmt.Errorf("invalid selling price %q", cell(colSellingPrice))
	}
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return false, fmt.Errorf("selling price must be greater than zero, got %s", sellingPrice.String())
	}

	locationID := defaultLocationID
	locationFromRow := false
	if locationName := cell(colLocation); locationName != "" {
		if id, ok := lookups.locationByName(locationName); ok {
			locationID = id
			locationFromRow = true
		} else if locationID == uuid.Nil {
			return false, fmt.Errorf("location %q not found", locationName)
		}
	}
	if locationID == uuid.Nil {
		return false, errors.New("no location given and no default location configured")
	}

	// Category and supplier resolve silently to none when absent or
	// unknown; a bad reference name never fails the row.
	var categoryID, supplierID *uuid.UUID
	if categoryName := cell(colCategory); categoryName != "" {
		if id, ok := lookups.categoryByName(categoryName); ok {
			categoryID = &id
		}
	}
	if supplierName := cell(colSupplier); supplierName != "" {
		if id, ok := lookups.supplierByName(supplierName); ok {
			supplierID = &id
		}
	}

	stock := decimal.Zero
	if raw := cell(colStock); raw != "" {
		stock, err = ParseFlexibleDecimal(raw)
		if err != nil {
			return false, fmt.Errorf("invalid stock %q", raw)
		}
	}
	var minStock *decimal.Decimal
	if raw := cell(colMinStock); raw != "" {
		parsed, err := ParseFlexibleDecimal(raw)
		if err != nil {
			return false, fmt.Errorf("invalid min stock %q", raw)
		}
		minStock = &parsed
	}
	var costPrice *decimal.Decimal
	if raw := cell(colCostPrice); raw != "" {
		parsed, err := ParseFlexibleDecimal(raw)
		if err != nil {
			return false, fmt.Errorf("invalid cost price %q", raw)
		}
		costPrice = &parsed
	}

	item, err := repos.Items().FindBySKU(ctx, sku)
	switch {
	case err == nil:
		item.Name = name
		item.SellingPrice = sellingPrice
		if locationFromRow {
			item.LocationID = locationID
		}
		if description := cell(colDescription); description != "" {
			item.Description = description
		}
		if barcode := cell(colBarcode); barcode != "" {
			item.Barcode = &barcode
		}
		if unit := cell(colUnit); unit != "" {
			item.Unit = unit
		}
		if categoryID != nil {
			item.CategoryID = categoryID
		}
		if supplierID != nil {
			item.SupplierID = supplierID
		}
		if minStock != nil {
			item.MinStockLevel = minStock
		}
		if costPrice != nil {
			item.CostPrice = costPrice
		}
		item.Touch()
		if err := repos.Items().Save(ctx, item); err != nil {
			return false, err
		}
		if err := im.reconcileStock(ctx, repos, item, stock, cell(colStock) != "", actor); err != nil {
			return false, err
		}
		return false, nil

	case errors.Is(err, shared.ErrNotFound):
		item, err := inventory.NewInventoryItem(sku, name, locationID, sellingPrice)
		if err != nil {
			return false, err
		}
		item.Description = cell(colDescription)
		if barcode := cell(colBarcode); barcode != "" {
			item.Barcode = &barcode
		}
		if unit := cell(colUnit); unit != "" {
			item.Unit = unit
		}
		item.CategoryID = categoryID
		item.SupplierID = supplierID
		item.MinStockLevel = minStock
		item.CostPrice = costPrice
		if err := repos.Items().Create(ctx, item); err != nil {
			return false, err
		}
		if err := im.reconcileStock(ctx, repos, item, stock, cell(colStock) != "", actor); err != nil {
			return false, err
		}
		return true, nil

	default:
		return false, err
	}
}

// reconcileStock moves an item's stock to the level given in the file.
// The delta goes through the ledger as a count movement so the audit
// chain stays unbroken; a level already in sync appends nothing.
func (im *Importer) reconcileStock(
	ctx context.Context,
	repos ledger.Repositories,
	item *inventory.InventoryItem,
	target decimal.Decimal,
	present bool,
	actor *uuid.UUID,
) error {
	if !present {
		return nil
	}
	delta := target.Sub(item.CurrentStock)
	if delta.IsZero() {
		return nil
	}
	_, err := ledger.ApplyInTx(ctx, repos, item.ID, delta, inventory.MovementTypeCount,
		ledger.MovementMetadata{
			Notes:       "bulk import reconciliation",
			PerformedBy: actor,
		})
	return err
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// referenceLookups caches case-insensitive name resolution for the
// reference entities so a large file does not re-query per row.
type referenceLookups struct {
	locations  map[string]uuid.UUID
	categories map[string]uuid.UUID
	suppliers  map[string]uuid.UUID
}

func newReferenceLookups(ctx context.Context, repos ledger.Repositories) (*referenceLookups, error) {
	lookups := &referenceLookups{
		locations:  make(map[string]uuid.UUID),
		categories: make(map[string]uuid.UUID),
		suppliers:  make(map[string]uuid.UUID),
	}

	locations, err := repos.Locations().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range locations {
		lookups.locations[strings.ToLower(locations[idx].Name)] = locations[idx].ID
	}

	categories, err := repos.Categories().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range categories {
		lookups.categories[strings.ToLower(categories[idx].Name)] = categories[idx].ID
	}

	suppliers, err := repos.Suppliers().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range suppliers {
		lookups.suppliers[strings.ToLower(suppliers[idx].Name)] = suppliers[idx].ID
	}

	return lookups, nil
}

func (l *referenceLookups) locationByName(name string) (uuid.UUID, bool) {
	return lookupName(l.locations, name)
}

func (l *referenceLookups) categoryByName(name string) (uuid.UUID, bool) {
	return lookupName(l.categories, name)
}

func (l *referenceLookups) supplierByName(name string) (uuid.UUID, bool) {
	return lookupName(l.suppliers, name)
}

func lookupName(m map[string]uuid.UUID, name string) (uuid.UUID, bool) {
	id, ok := m[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}
