package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/retailpos/backoffice/internal/application/bulk"
	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/reference"
	"github.com/retailpos/backoffice/internal/domain/shared"
	"github.com/retailpos/backoffice/internal/infrastructure/persistence"
	"github.com/retailpos/backoffice/internal/interfaces/http/handler"
)

type bulkFixture struct {
	db      *gorm.DB
	engine  *gin.Engine
	primary *reference.Location
	second  *reference.Location
}

func newBulkFixture(t *testing.T) *bulkFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, persistence.AutoMigrate(db))

	primary := &reference.Location{BaseEntity: shared.NewBaseEntity(), Name: "Main Store", Code: "MAIN", IsActive: true}
	require.NoError(t, db.Create(primary).Error)
	second := &reference.Location{BaseEntity: shared.NewBaseEntity(), Name: "Annex", Code: "ANX", IsActive: true}
	require.NoError(t, db.Create(second).Error)

	scope := persistence.NewGormTransactionScope(db)
	h := handler.NewBulkHandler(
		bulk.NewImporter(scope, zap.NewNop()),
		bulk.NewExporter(scope, zap.NewNop()),
		1<<20,
		primary.ID,
	)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/import", h.ImportCSV)

	return &bulkFixture{db: db, engine: engine, primary: primary, second: second}
}

func (f *bulkFixture) upload(t *testing.T, csv string, formFields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "items.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	for key, value := range formFields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestImportDefaultLocation(t *testing.T) {
	csv := "SKU,Name,Selling Price\nSKU-1,Widget,100\n"

	t.Run("configured fallback used when the form carries none", func(t *testing.T) {
		f := newBulkFixture(t)

		rec := f.upload(t, csv, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var item inventory.InventoryItem
		require.NoError(t, f.db.First(&item, "sku = ?", "SKU-1").Error)
		assert.Equal(t, f.primary.ID, item.LocationID)
	})

	t.Run("form field overrides the configured fallback", func(t *testing.T) {
		f := newBulkFixture(t)

		rec := f.upload(t, csv, map[string]string{"default_location_id": f.second.ID.String()})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var item inventory.InventoryItem
		require.NoError(t, f.db.First(&item, "sku = ?", "SKU-1").Error)
		assert.Equal(t, f.second.ID, item.LocationID)
	})
}
