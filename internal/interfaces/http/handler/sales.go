package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appsales "github.com/retailpos/backoffice/internal/application/sales"
)

// SalesHandler exposes sale processing over HTTP
type SalesHandler struct {
	BaseHandler
	sales *appsales.Service
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService *appsales.Service) *SalesHandler {
	return &SalesHandler{sales: salesService}
}

// CreateSale processes a new sale
// POST /api/v1/sales
func (h *SalesHandler) CreateSale(c *gin.Context) {
	var req appsales.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CashierID = actorID(c)

	sale, err := h.sales.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// GetSale loads one sale with its lines
// GET /api/v1/sales/:id
func (h *SalesHandler) GetSale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid sale id")
		return
	}
	sale, err := h.sales.GetSale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// GetSaleByReceipt loads a sale by its printed receipt number
// GET /api/v1/sales/receipt/:number
func (h *SalesHandler) GetSaleByReceipt(c *gin.Context) {
	sale, err := h.sales.GetSaleByReceipt(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// VoidSale reverses a completed sale
// POST /api/v1/sales/:id/void
func (h *SalesHandler) VoidSale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid sale id")
		return
	}
	sale, err := h.sales.VoidSale(c.Request.Context(), saleID, actorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}
