package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stocksync/inventory-service/internal/application"
	"github.com/stocksync/inventory-service/pkg/logging"
	"github.com/stocksync/inventory-service/pkg/metrics"
	"github.com/stocksync/inventory-service/pkg/middleware"
)

// ChannelHandler serves the sales channel endpoints, including the
// per-channel sync trigger.
type ChannelHandler struct {
	channels *application.ChannelService
	sync     *application.SyncService
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewChannelHandler creates a channel handler.
func NewChannelHandler(channels *application.ChannelService, sync *application.SyncService, m *metrics.Metrics, logger *logging.Logger) *ChannelHandler {
	return &ChannelHandler{
		channels: channels,
		sync:     sync,
		metrics:  m,
		logger:   logger.WithComponent("channel-handler"),
	}
}

// RegisterRoutes mounts the channel endpoints on a router group.
func (h *ChannelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/channels", h.Create)
	rg.GET("/channels", h.List)
	rg.GET("/channels/:id", h.Get)
	rg.PUT("/channels/:id", h.Update)
	rg.DELETE("/channels/:id", h.Delete)
	rg.POST("/channels/:id/sync", h.Sync)
}

// Create handles POST /channels
func (h *ChannelHandler) Create(c *gin.Context) {
	var cmd application.CreateChannelCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		middleware.AbortWithAppError(c, appErr)
		return
	}

	channel, err := h.channels.CreateChannel(c.Request.Context(), cmd)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"channel.id":   channel.ID,
		"channel.type": string(channel.Type),
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"channel": channel,
	})
}

// List handles GET /channels
func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.channels.ListChannels(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"channels": channels,
		"count":    len(channels),
	})
}

// Get handles GET /channels/:id
func (h *ChannelHandler) Get(c *gin.Context) {
	channel, err := h.channels.GetChannel(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"channel": channel,
	})
}

// Update handles PUT /channels/:id
func (h *ChannelHandler) Update(c *gin.Context) {
	var cmd application.UpdateChannelCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		middleware.AbortWithAppError(c, appErr)
		return
	}

	channel, err := h.channels.UpdateChannel(c.Request.Context(), c.Param("id"), cmd)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"channel": channel,
	})
}

// Delete handles DELETE /channels/:id
func (h *ChannelHandler) Delete(c *gin.Context) {
	if err := h.channels.DeleteChannel(c.Request.Context(), c.Param("id")); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type syncChannelRequest struct {
	ProductIDs []string `json:"productIds"`
}

// Sync handles POST /channels/:id/sync
func (h *ChannelHandler) Sync(c *gin.Context) {
	channelID := c.Param("id")

	// The body is optional; without one the whole catalog is synced.
	var req syncChannelRequest
	if c.Request.ContentLength > 0 {
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			middleware.AbortWithAppError(c, appErr)
			return
		}
	}

	channel, err := h.channels.GetChannel(c.Request.Context(), channelID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"channel.id":   channel.ID,
		"channel.type": string(channel.Type),
	})

	started := time.Now()
	outcome, err := h.sync.SyncChannel(c.Request.Context(), channelID, req.ProductIDs)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	h.metrics.RecordSyncCycle(string(channel.Type), string(outcome.Status), time.Since(started))
	h.metrics.RecordItemsSynced(string(channel.Type), outcome.SyncedCount, len(outcome.Errors))

	c.JSON(http.StatusOK, gin.H{
		"success":      outcome.Success,
		"syncedCount":  outcome.SyncedCount,
		"errors":       outcome.Errors,
		"status":       outcome.Status,
		"lastSyncedAt": outcome.LastSyncedAt,
	})
}
