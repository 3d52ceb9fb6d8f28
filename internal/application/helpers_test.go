package application

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/internal/infrastructure/memory"
	"github.com/stocksync/inventory-service/pkg/logging"
)

func testLogger() *logging.Logger {
	return logging.New(&logging.Config{
		Level:       logging.LevelError,
		ServiceName: "test",
		Output:      io.Discard,
	})
}

func seedProduct(t *testing.T, store *memory.Store, product domain.Product) {
	t.Helper()
	ctx := context.Background()
	products, err := store.Products(ctx)
	require.NoError(t, err)
	require.NoError(t, store.SaveProducts(ctx, append(products, product)))
}

func seedChannel(t *testing.T, store *memory.Store, channel domain.SalesChannel) {
	t.Helper()
	ctx := context.Background()
	channels, err := store.Channels(ctx)
	require.NoError(t, err)
	require.NoError(t, store.SaveChannels(ctx, append(channels, channel)))
}

func seedInventory(t *testing.T, store *memory.Store, item domain.InventoryItem) {
	t.Helper()
	ctx := context.Background()
	inventory, err := store.Inventory(ctx)
	require.NoError(t, err)
	require.NoError(t, store.SaveInventory(ctx, append(inventory, item)))
}

func manualChannel(t *testing.T, id, name string) domain.SalesChannel {
	t.Helper()
	channel, err := domain.NewSalesChannel(name, domain.ChannelTypeManual, domain.Credentials{})
	require.NoError(t, err)
	channel.ID = id
	return *channel
}

func catalogProduct(id, sku string) domain.Product {
	product := domain.NewProduct(sku, "Product "+sku, "", "widgets", 29.99, 12.50, 10, 50)
	product.ID = id
	return *product
}
