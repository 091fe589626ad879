package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apppurchasing "github.com/retailpos/backoffice/internal/application/purchasing"
)

// PurchasingHandler exposes purchase order management over HTTP
type PurchasingHandler struct {
	BaseHandler
	purchasing *apppurchasing.Service
}

// NewPurchasingHandler creates a new PurchasingHandler
func NewPurchasingHandler(purchasingService *apppurchasing.Service) *PurchasingHandler {
	return &PurchasingHandler{purchasing: purchasingService}
}

// CreateOrder creates a pending purchase order
// POST /api/v1/purchase-orders
func (h *PurchasingHandler) CreateOrder(c *gin.Context) {
	var req apppurchasing.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = actorID(c)

	order, err := h.purchasing.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetOrder loads one order with its lines
// GET /api/v1/purchase-orders/:id
func (h *PurchasingHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.purchasing.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus moves an order through its state machine; the transition
// into received credits stock
// PUT /api/v1/purchase-orders/:id/status
func (h *PurchasingHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid order id")
		return
	}
	var req apppurchasing.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Actor = actorID(c)

	order, err := h.purchasing.UpdateStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DeleteOrder removes an order that never affected stock
// DELETE /api/v1/purchase-orders/:id
func (h *PurchasingHandler) DeleteOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid order id")
		return
	}
	if err := h.purchasing.DeleteOrder(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SuggestReorder proposes replenishment lines for a supplier
// GET /api/v1/purchase-orders/suggest/:supplier_id
func (h *PurchasingHandler) SuggestReorder(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("supplier_id"))
	if err != nil {
		h.BadRequest(c, "invalid supplier id")
		return
	}
	suggestions, err := h.purchasing.SuggestReorder(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestions)
}
