package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailpos/backoffice/internal/application/bulk"
)

// BulkHandler exposes CSV import and export over HTTP
type BulkHandler struct {
	BaseHandler
	importer          *bulk.Importer
	exporter          *bulk.Exporter
	maxFileSize       int64
	defaultLocationID uuid.UUID
}

// NewBulkHandler creates a new BulkHandler. defaultLocationID is the
// configured fallback location for imports whose request carries none;
// uuid.Nil disables the fallback.
func NewBulkHandler(importer *bulk.Importer, exporter *bulk.Exporter, maxFileSize int64, defaultLocationID uuid.UUID) *BulkHandler {
	return &BulkHandler{
		importer:          importer,
		exporter:          exporter,
		maxFileSize:       maxFileSize,
		defaultLocationID: defaultLocationID,
	}
}

// ImportCSV reconciles an uploaded CSV against the catalog
// POST /api/v1/inventory/import
func (h *BulkHandler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "missing file upload")
		return
	}
	if fileHeader.Size > h.maxFileSize {
		h.BadRequest(c, fmt.Sprintf("file exceeds the %d byte limit", h.maxFileSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	defaultLocationID := h.defaultLocationID
	if raw := c.PostForm("default_location_id"); raw != "" {
		defaultLocationID, err = uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid default location id")
			return
		}
	}

	result, err := h.importer.ImportCSV(c.Request.Context(), data, defaultLocationID, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ExportCSV downloads the active catalog as UTF-8 CSV
// GET /api/v1/inventory/export
func (h *BulkHandler) ExportCSV(c *gin.Context) {
	var locationID *uuid.UUID
	if raw := c.Query("location_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid location id")
			return
		}
		locationID = &id
	}

	data, filename, err := h.exporter.ExportCSV(c.Request.Context(), locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
