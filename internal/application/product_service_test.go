package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/internal/infrastructure/memory"
)

func newProductFixture(t *testing.T) (*ProductService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewProductService(store, testLogger()), store
}

func TestCreateProduct(t *testing.T) {
	service, _ := newProductFixture(t)

	product, inventory, err := service.CreateProduct(context.Background(), CreateProductCommand{
		SKU:   "wid-001",
		Name:  "Widget",
		Price: 29.99,
		Cost:  12.50,
	})
	require.NoError(t, err)

	assert.Contains(t, product.ID, "PRD-")
	assert.Equal(t, "WID-001", product.SKU, "SKUs are stored uppercase")
	assert.Equal(t, domain.DefaultReorderPoint, product.ReorderPoint)
	assert.Equal(t, domain.DefaultReorderQuantity, product.ReorderQuantity)
	assert.Empty(t, inventory)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	service, _ := newProductFixture(t)
	ctx := context.Background()

	_, _, err := service.CreateProduct(ctx, CreateProductCommand{SKU: "WID-001", Name: "Widget"})
	require.NoError(t, err)

	_, _, err = service.CreateProduct(ctx, CreateProductCommand{SKU: "wid-001", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestCreateProductWithInitialStock(t *testing.T) {
	service, store := newProductFixture(t)
	ctx := context.Background()
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))

	product, created, err := service.CreateProduct(ctx, CreateProductCommand{
		SKU:  "WID-001",
		Name: "Widget",
		InitialStock: []InitialStockEntry{
			{ChannelID: "CH-1", Quantity: 25},
			{ChannelID: "CH-404", Quantity: 99},
		},
	})
	require.NoError(t, err)

	require.Len(t, created, 1, "unknown channels are skipped")
	assert.Equal(t, product.ID, created[0].ProductID)
	assert.Equal(t, 25, created[0].Quantity)
	assert.Equal(t, 25, created[0].Available)

	inventory, err := store.Inventory(ctx)
	require.NoError(t, err)
	require.Len(t, inventory, 1)
}

func TestUpdateProduct(t *testing.T) {
	service, store := newProductFixture(t)
	ctx := context.Background()
	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedProduct(t, store, catalogProduct("PRD-2", "WID-002"))

	name := "Renamed"
	price := 39.99
	updated, err := service.UpdateProduct(ctx, "PRD-1", UpdateProductCommand{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.InDelta(t, 39.99, updated.Price, 0.001)

	conflict := "wid-002"
	_, err = service.UpdateProduct(ctx, "PRD-1", UpdateProductCommand{SKU: &conflict})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)

	_, err = service.UpdateProduct(ctx, "PRD-404", UpdateProductCommand{Name: &name})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProductCascades(t *testing.T) {
	service, store := newProductFixture(t)
	ctx := context.Background()

	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-1", 10))

	ledger := NewLedgerService(store, NoopPublisher{}, testLogger(), NewRecordLocks())
	_, _, err := ledger.RecordMovement(ctx, RecordMovementCommand{
		ProductID: "PRD-1", ChannelID: "CH-1",
		Type: domain.MovementSale, Quantity: 2,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(ctx, "PRD-1"))

	inventory, err := store.Inventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, inventory)

	movements, err := store.Movements(ctx)
	require.NoError(t, err)
	assert.Empty(t, movements)

	assert.ErrorIs(t, service.DeleteProduct(ctx, "PRD-1"), domain.ErrProductNotFound)
}

func TestListProducts(t *testing.T) {
	service, store := newProductFixture(t)
	ctx := context.Background()

	widget := catalogProduct("PRD-1", "WID-001")
	widget.Name = "Blue Widget"
	seedProduct(t, store, widget)

	gadget := catalogProduct("PRD-2", "GAD-001")
	gadget.Name = "Gadget"
	gadget.Category = "gadgets"
	seedProduct(t, store, gadget)

	all, err := service.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCategory, err := service.ListProducts(ctx, ProductFilter{Category: "gadgets"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "PRD-2", byCategory[0].ID)

	bySearch, err := service.ListProducts(ctx, ProductFilter{Search: "blue"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "PRD-1", bySearch[0].ID)

	bySKU, err := service.ListProducts(ctx, ProductFilter{Search: "gad-"})
	require.NoError(t, err)
	require.Len(t, bySKU, 1)
	assert.Equal(t, "PRD-2", bySKU[0].ID)
}
