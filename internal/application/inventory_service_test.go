package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/internal/infrastructure/memory"
)

func TestListStock(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))
	seedChannel(t, store, manualChannel(t, "CH-2", "Outlet"))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-1", 5))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-2", 60))
	// Orphan record: its product is gone.
	seedInventory(t, store, *domain.NewInventoryItem("PRD-404", "CH-1", 3))

	service := NewInventoryService(store, testLogger())

	views, err := service.ListStock(ctx, StockFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2, "orphan records are dropped from listings")

	low := views[0]
	assert.Equal(t, "WID-001", low.ProductSKU)
	assert.Equal(t, "Warehouse", low.ChannelName)
	assert.Equal(t, domain.StockStatusLowStock, low.Status)
	assert.Equal(t, 50, low.ReorderSuggestion)
	assert.InDelta(t, 5*12.50, low.StockValue, 0.001)

	healthy := views[1]
	assert.Equal(t, domain.StockStatusInStock, healthy.Status)
	assert.Zero(t, healthy.ReorderSuggestion)

	byChannel, err := service.ListStock(ctx, StockFilter{ChannelID: "CH-2"})
	require.NoError(t, err)
	require.Len(t, byChannel, 1)
	assert.Equal(t, "Outlet", byChannel[0].ChannelName)

	byStatus, err := service.ListStock(ctx, StockFilter{Status: domain.StockStatusLowStock})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "CH-1", byStatus[0].ChannelID)
}
