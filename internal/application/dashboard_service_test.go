package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/internal/infrastructure/memory"
)

func TestDashboardStats(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	widget := catalogProduct("PRD-1", "WID-001") // price 29.99, reorder point 10
	gadget := catalogProduct("PRD-2", "GAD-001")
	gadget.Price = 100.0
	gadget.Cost = 60.0
	seedProduct(t, store, widget)
	seedProduct(t, store, gadget)

	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))
	paused := manualChannel(t, "CH-2", "Outlet")
	paused.Pause()
	seedChannel(t, store, paused)

	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-1", 5))  // low stock
	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-2", 0))  // out of stock
	seedInventory(t, store, *domain.NewInventoryItem("PRD-2", "CH-1", 20)) // healthy

	ledger := NewLedgerService(store, NoopPublisher{}, testLogger(), NewRecordLocks())
	_, _, err := ledger.RecordMovement(ctx, RecordMovementCommand{
		ProductID: "PRD-1", ChannelID: "CH-1",
		Type: domain.MovementSale, Quantity: 1,
	})
	require.NoError(t, err)

	service := NewDashboardService(store, testLogger())
	stats, err := service.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalChannels)
	assert.Equal(t, 1, stats.ActiveChannels)
	assert.Equal(t, 24, stats.TotalUnits)
	assert.InDelta(t, 4*29.99+20*100.0, stats.TotalStockValue, 0.001)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)

	require.NotEmpty(t, stats.TopProducts)
	assert.Equal(t, "PRD-2", stats.TopProducts[0].ProductID, "ranked by stock value")

	require.Len(t, stats.RecentMovements, 1)
	assert.Equal(t, domain.MovementSale, stats.RecentMovements[0].Type)

	require.Len(t, stats.ChannelStats, 2)
	for _, cs := range stats.ChannelStats {
		switch cs.ChannelID {
		case "CH-1":
			assert.Equal(t, 2, cs.ProductCount)
			assert.Equal(t, 24, cs.TotalUnits)
		case "CH-2":
			assert.Equal(t, 0, cs.TotalUnits)
		}
	}
}

func TestDashboardStatsEmpty(t *testing.T) {
	service := NewDashboardService(memory.NewStore(), testLogger())

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.TotalUnits)
	assert.Empty(t, stats.TopProducts)
	assert.Empty(t, stats.RecentMovements)
	assert.Empty(t, stats.ChannelStats)
}
