package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailpos/backoffice/internal/application/ledger"
)

// InventoryHandler exposes the stock ledger over HTTP
type InventoryHandler struct {
	BaseHandler
	ledger *ledger.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(ledgerService *ledger.Service) *InventoryHandler {
	return &InventoryHandler{ledger: ledgerService}
}

// AdjustStock applies a manual stock adjustment
// POST /api/v1/inventory/:id/adjust
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}

	var req ledger.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.ItemID = itemID
	req.PerformedBy = actorID(c)

	movement, err := h.ledger.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}

// MovementHistory lists an item's ledger entries chronologically
// GET /api/v1/inventory/:id/movements
func (h *InventoryHandler) MovementHistory(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid item id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	history, err := h.ledger.History(c.Request.Context(), itemID, limit, offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}
