package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailpos/backoffice/internal/interfaces/http/handler"
	"github.com/retailpos/backoffice/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Inventory  *handler.InventoryHandler
	Sales      *handler.SalesHandler
	Purchasing *handler.PurchasingHandler
	Bulk       *handler.BulkHandler
}

// New builds the gin engine with all routes and middleware mounted
func New(handlers Handlers, logger *zap.Logger, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidators()

	engine := gin.New()
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.RequestLogger(logger))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	{
		inventory := v1.Group("/inventory")
		{
			inventory.POST("/:id/adjust", handlers.Inventory.AdjustStock)
			inventory.GET("/:id/movements", handlers.Inventory.MovementHistory)
			inventory.POST("/import", handlers.Bulk.ImportCSV)
			inventory.GET("/export", handlers.Bulk.ExportCSV)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", handlers.Sales.CreateSale)
			sales.GET("/:id", handlers.Sales.GetSale)
			sales.GET("/receipt/:number", handlers.Sales.GetSaleByReceipt)
			sales.POST("/:id/void", handlers.Sales.VoidSale)
		}

		orders := v1.Group("/purchase-orders")
		{
			orders.POST("", handlers.Purchasing.CreateOrder)
			orders.GET("/:id", handlers.Purchasing.GetOrder)
			orders.PUT("/:id/status", handlers.Purchasing.UpdateStatus)
			orders.DELETE("/:id", handlers.Purchasing.DeleteOrder)
			orders.GET("/suggest/:supplier_id", handlers.Purchasing.SuggestReorder)
		}
	}

	return engine
}
