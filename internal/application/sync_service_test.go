package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/internal/infrastructure/memory"
)

// fakeAdapter scripts platform behavior for reconciliation tests.
type fakeAdapter struct {
	channelType domain.ChannelType
	connectOK   bool
	connected   bool
	quantities  map[string]int
	failIDs     map[string]string
	syncedIDs   []string
}

func newFakeAdapter(quantities map[string]int) *fakeAdapter {
	return &fakeAdapter{
		channelType: domain.ChannelTypeManual,
		connectOK:   true,
		quantities:  quantities,
		failIDs:     map[string]string{},
	}
}

func (f *fakeAdapter) Type() domain.ChannelType { return f.channelType }

func (f *fakeAdapter) Connect(ctx context.Context, creds domain.Credentials) bool {
	f.connected = f.connectOK
	return f.connectOK
}

func (f *fakeAdapter) Disconnect()       { f.connected = false }
func (f *fakeAdapter) IsConnected() bool { return f.connected }

func (f *fakeAdapter) SyncInventory(ctx context.Context, productIDs []string) []domain.SyncResult {
	f.syncedIDs = append([]string(nil), productIDs...)
	results := make([]domain.SyncResult, 0, len(productIDs))
	for _, id := range productIDs {
		if reason, failed := f.failIDs[id]; failed {
			results = append(results, domain.SyncResult{ProductID: id, Success: false, Error: reason})
			continue
		}
		results = append(results, domain.SyncResult{ProductID: id, Success: true, Quantity: f.quantities[id]})
	}
	return results
}

func (f *fakeAdapter) UpdateStock(ctx context.Context, productID string, quantity int) bool {
	return true
}

// blockingAdapter parks SyncInventory until released, simulating a
// slow platform call.
type blockingAdapter struct {
	*fakeAdapter
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAdapter) SyncInventory(ctx context.Context, productIDs []string) []domain.SyncResult {
	close(b.entered)
	<-b.release
	return b.fakeAdapter.SyncInventory(ctx, productIDs)
}

func newSyncFixture(t *testing.T, adapter domain.ChannelAdapter) (*SyncService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	registry := domain.NewAdapterRegistry()
	registry.Register(adapter)
	return NewSyncService(store, registry, NoopPublisher{}, testLogger(), NewRecordLocks()), store
}

func TestSyncChannelOverwritesQuantities(t *testing.T) {
	adapter := newFakeAdapter(map[string]int{"PRD-1": 42, "PRD-2": 0})
	service, store := newSyncFixture(t, adapter)
	ctx := context.Background()

	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedProduct(t, store, catalogProduct("PRD-2", "WID-002"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-1", 10))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-2", "CH-1", 5))

	outcome, err := service.SyncChannel(ctx, "CH-1", nil)
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, 2, outcome.SyncedCount)
	assert.Empty(t, outcome.Errors)
	assert.Equal(t, domain.SyncStatusSuccess, outcome.Status)

	inventory, err := store.Inventory(ctx)
	require.NoError(t, err)
	for _, item := range inventory {
		require.NotNil(t, item.LastSyncedAt)
		switch item.ProductID {
		case "PRD-1":
			assert.Equal(t, 42, item.Quantity)
		case "PRD-2":
			assert.Equal(t, 0, item.Quantity)
		}
	}

	channels, err := store.Channels(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusSuccess, channels[0].SyncStatus)
	assert.Empty(t, channels[0].SyncError)
	assert.NotNil(t, channels[0].LastSyncedAt)
}

func TestSyncChannelCreatesMissingRecords(t *testing.T) {
	adapter := newFakeAdapter(map[string]int{"PRD-1": 25})
	service, store := newSyncFixture(t, adapter)
	ctx := context.Background()

	// Catalog product with no stock record on the channel yet.
	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))

	outcome, err := service.SyncChannel(ctx, "CH-1", nil)
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.SyncedCount)
	assert.Empty(t, outcome.Errors)

	inventory, err := store.Inventory(ctx)
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	assert.Equal(t, "PRD-1", inventory[0].ProductID)
	assert.Equal(t, "CH-1", inventory[0].ChannelID)
	assert.Equal(t, 25, inventory[0].Quantity)
	assert.NotNil(t, inventory[0].LastSyncedAt)
}

func TestSyncChannelExplicitProductIDs(t *testing.T) {
	adapter := newFakeAdapter(map[string]int{"PRD-1": 4, "PRD-2": 9})
	service, store := newSyncFixture(t, adapter)
	ctx := context.Background()

	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedProduct(t, store, catalogProduct("PRD-2", "WID-002"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))

	outcome, err := service.SyncChannel(ctx, "CH-1", []string{"PRD-2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"PRD-2"}, adapter.syncedIDs)
	assert.Equal(t, 1, outcome.SyncedCount)

	inventory, err := store.Inventory(ctx)
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	assert.Equal(t, "PRD-2", inventory[0].ProductID)
	assert.Equal(t, 9, inventory[0].Quantity)
}

func TestSyncChannelPartialFailure(t *testing.T) {
	adapter := newFakeAdapter(map[string]int{"PRD-1": 7})
	adapter.failIDs["PRD-2"] = "item not found on platform"
	service, store := newSyncFixture(t, adapter)
	ctx := context.Background()

	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedProduct(t, store, catalogProduct("PRD-2", "WID-002"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-1", 0))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-2", "CH-1", 3))

	outcome, err := service.SyncChannel(ctx, "CH-1", nil)
	require.NoError(t, err)

	assert.True(t, outcome.Success, "partial sync still counts as a success")
	assert.Equal(t, 1, outcome.SyncedCount)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "PRD-2", outcome.Errors[0].ProductID)
	assert.Equal(t, "item not found on platform", outcome.Errors[0].Error)
	assert.Equal(t, domain.SyncStatusSuccess, outcome.Status)

	channels, err := store.Channels(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Partial sync: 1 errors", channels[0].SyncError)
}

func TestSyncChannelAllItemsFail(t *testing.T) {
	adapter := newFakeAdapter(nil)
	adapter.failIDs["PRD-1"] = "rate limited"
	adapter.failIDs["PRD-2"] = "rate limited"
	service, store := newSyncFixture(t, adapter)
	ctx := context.Background()

	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedProduct(t, store, catalogProduct("PRD-2", "WID-002"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-1", 1))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-2", "CH-1", 2))

	outcome, err := service.SyncChannel(ctx, "CH-1", nil)
	require.NoError(t, err)

	assert.False(t, outcome.Success)
	assert.Equal(t, 0, outcome.SyncedCount)
	require.Len(t, outcome.Errors, 2)
	assert.Equal(t, domain.SyncStatusError, outcome.Status)

	channels, err := store.Channels(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sync failed: 2 errors", channels[0].SyncError)
}

func TestSyncChannelConnectFailure(t *testing.T) {
	adapter := newFakeAdapter(nil)
	adapter.connectOK = false
	service, store := newSyncFixture(t, adapter)
	ctx := context.Background()

	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))

	outcome, err := service.SyncChannel(ctx, "CH-1", nil)
	require.NoError(t, err)

	assert.False(t, outcome.Success)
	require.Len(t, outcome.Errors, 1)
	assert.Empty(t, outcome.Errors[0].ProductID, "cycle-level errors carry no product")
	assert.Equal(t, "Failed to connect to Warehouse", outcome.Errors[0].Error)
	assert.Equal(t, domain.SyncStatusError, outcome.Status)
}

func TestSyncChannelEmptyCatalog(t *testing.T) {
	service, store := newSyncFixture(t, newFakeAdapter(nil))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))

	outcome, err := service.SyncChannel(context.Background(), "CH-1", nil)
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, 0, outcome.SyncedCount)
	assert.Empty(t, outcome.Errors)
	assert.Equal(t, domain.SyncStatusSuccess, outcome.Status)
}

func TestSyncChannelValidation(t *testing.T) {
	service, store := newSyncFixture(t, newFakeAdapter(nil))
	ctx := context.Background()

	_, err := service.SyncChannel(ctx, "CH-404", nil)
	assert.ErrorIs(t, err, domain.ErrChannelNotFound)

	paused := manualChannel(t, "CH-1", "Warehouse")
	paused.Pause()
	seedChannel(t, store, paused)
	_, err = service.SyncChannel(ctx, "CH-1", nil)
	assert.ErrorIs(t, err, domain.ErrChannelNotActive)

	stuck := manualChannel(t, "CH-2", "Outlet")
	stuck.SyncStatus = domain.SyncStatusSyncing
	seedChannel(t, store, stuck)
	_, err = service.SyncChannel(ctx, "CH-2", nil)
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)
}

func TestSyncChannelKeepsConcurrentMovements(t *testing.T) {
	adapter := &blockingAdapter{
		fakeAdapter: newFakeAdapter(map[string]int{"PRD-1": 40}),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	store := memory.NewStore()
	registry := domain.NewAdapterRegistry()
	registry.Register(adapter)
	locks := NewRecordLocks()
	service := NewSyncService(store, registry, NoopPublisher{}, testLogger(), locks)
	ledger := NewLedgerService(store, NoopPublisher{}, testLogger(), locks)
	ctx := context.Background()

	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedProduct(t, store, catalogProduct("PRD-2", "WID-002"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))
	seedChannel(t, store, manualChannel(t, "CH-2", "Outlet"))
	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-1", 10))

	done := make(chan error, 1)
	go func() {
		_, err := service.SyncChannel(ctx, "CH-1", []string{"PRD-1"})
		done <- err
	}()

	// A movement lands on another record while the platform call is
	// still in flight.
	<-adapter.entered
	_, item, err := ledger.RecordMovement(ctx, RecordMovementCommand{
		ProductID: "PRD-2", ChannelID: "CH-2",
		Type: domain.MovementReplenishment, Quantity: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 10, item.Quantity)

	close(adapter.release)
	require.NoError(t, <-done)

	inventory, err := store.Inventory(ctx)
	require.NoError(t, err)

	idx := inventoryIndex(inventory, "PRD-2", "CH-2")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 10, inventory[idx].Quantity, "movement recorded mid-sync survives")

	idx = inventoryIndex(inventory, "PRD-1", "CH-1")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 40, inventory[idx].Quantity)
}

func TestSyncAllChannels(t *testing.T) {
	adapter := newFakeAdapter(map[string]int{"PRD-1": 9})
	service, store := newSyncFixture(t, adapter)
	ctx := context.Background()

	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))
	paused := manualChannel(t, "CH-2", "Outlet")
	paused.Pause()
	seedChannel(t, store, paused)
	seedInventory(t, store, *domain.NewInventoryItem("PRD-1", "CH-1", 0))

	reports, err := service.SyncAllChannels(ctx)
	require.NoError(t, err)

	require.Len(t, reports, 1, "paused channels are skipped")
	assert.Equal(t, "CH-1", reports[0].ChannelID)
	require.NotNil(t, reports[0].Outcome)
	assert.Equal(t, 1, reports[0].Outcome.SyncedCount)
}
