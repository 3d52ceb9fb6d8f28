package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stocksync/inventory-service/internal/application"
	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/errors"
	"github.com/stocksync/inventory-service/pkg/logging"
	"github.com/stocksync/inventory-service/pkg/metrics"
	"github.com/stocksync/inventory-service/pkg/middleware"
)

type recordMovementRequest struct {
	ProductID string `json:"productId" binding:"required"`
	ChannelID string `json:"channelId" binding:"required"`
	Type      string `json:"type" binding:"required,movement_type"`
	Quantity  int    `json:"quantity" binding:"required"`
	Reason    string `json:"reason" binding:"omitempty,safe_string,max=500"`
	Reference string `json:"reference" binding:"omitempty,safe_string,max=100"`
	CreatedBy string `json:"createdBy" binding:"omitempty,safe_string,max=100"`
}

// MovementHandler serves the stock movement ledger endpoints.
type MovementHandler struct {
	ledger  *application.LedgerService
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewMovementHandler creates a movement handler.
func NewMovementHandler(ledger *application.LedgerService, m *metrics.Metrics, logger *logging.Logger) *MovementHandler {
	return &MovementHandler{
		ledger:  ledger,
		metrics: m,
		logger:  logger.WithComponent("movement-handler"),
	}
}

// RegisterRoutes mounts the movement endpoints on a router group.
func (h *MovementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/movements", h.Record)
	rg.GET("/movements", h.List)
}

// Record handles POST /movements
func (h *MovementHandler) Record(c *gin.Context) {
	var req recordMovementRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		middleware.AbortWithAppError(c, appErr)
		return
	}

	cmd := application.RecordMovementCommand{
		ProductID: req.ProductID,
		ChannelID: req.ChannelID,
		Type:      domain.MovementType(req.Type),
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		Reference: req.Reference,
		CreatedBy: req.CreatedBy,
	}

	movement, updated, err := h.ledger.RecordMovement(c.Request.Context(), cmd)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	h.metrics.RecordMovement(string(movement.Type))
	middleware.AddSpanAttributes(c, map[string]interface{}{
		"movement.id":   movement.ID,
		"movement.type": string(movement.Type),
	})

	c.JSON(http.StatusCreated, gin.H{
		"success":          true,
		"movement":         movement,
		"updatedInventory": updated,
	})
}

// List handles GET /movements
func (h *MovementHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			middleware.AbortWithAppError(c, errors.ErrValidation("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	filter := application.MovementFilter{
		ProductID: c.Query("productId"),
		ChannelID: c.Query("channelId"),
		Type:      domain.MovementType(c.Query("type")),
		Limit:     limit,
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		middleware.AbortWithError(c, domain.ErrInvalidMovementType)
		return
	}

	movements, err := h.ledger.ListMovements(c.Request.Context(), filter)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"movements": movements,
		"count":     len(movements),
	})
}
