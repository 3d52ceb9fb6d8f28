package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stocksync/inventory-service/internal/application"
	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/errors"
	"github.com/stocksync/inventory-service/pkg/logging"
	"github.com/stocksync/inventory-service/pkg/middleware"
)

// InventoryHandler serves the stock listing and the sync-all trigger.
type InventoryHandler struct {
	inventory *application.InventoryService
	sync      *application.SyncService
	logger    *logging.Logger
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(inventory *application.InventoryService, sync *application.SyncService, logger *logging.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		sync:      sync,
		logger:    logger.WithComponent("inventory-handler"),
	}
}

// RegisterRoutes mounts the inventory endpoints on a router group.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inventory", h.List)
	rg.POST("/inventory/sync", h.SyncAll)
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	status := domain.StockStatus(c.Query("status"))
	switch status {
	case "", domain.StockStatusInStock, domain.StockStatusLowStock, domain.StockStatusOutOfStock, domain.StockStatusOverstocked:
	default:
		middleware.AbortWithAppError(c, errors.ErrValidation("unknown stock status"))
		return
	}

	filter := application.StockFilter{
		ProductID: c.Query("productId"),
		ChannelID: c.Query("channelId"),
		Status:    status,
	}

	stock, err := h.inventory.ListStock(c.Request.Context(), filter)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"inventory": stock,
		"count":     len(stock),
	})
}

// SyncAll handles POST /inventory/sync
func (h *InventoryHandler) SyncAll(c *gin.Context) {
	reports, err := h.sync.SyncAllChannels(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": reports,
		"count":   len(reports),
	})
}
