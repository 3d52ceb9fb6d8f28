package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stocksync/inventory-service/internal/application"
	"github.com/stocksync/inventory-service/pkg/logging"
	"github.com/stocksync/inventory-service/pkg/middleware"
)

// DashboardHandler serves the aggregate stock overview.
type DashboardHandler struct {
	dashboard *application.DashboardService
	logger    *logging.Logger
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(dashboard *application.DashboardService, logger *logging.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger.WithComponent("dashboard-handler"),
	}
}

// RegisterRoutes mounts the dashboard endpoints on a router group.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.Stats)
}

// Stats handles GET /dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
