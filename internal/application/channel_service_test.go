package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/internal/infrastructure/memory"
)

func newChannelFixture(t *testing.T) (*ChannelService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewChannelService(store, testLogger()), store
}

func TestCreateChannel(t *testing.T) {
	service, _ := newChannelFixture(t)

	channel, err := service.CreateChannel(context.Background(), CreateChannelCommand{
		Name: "Main Store",
		Type: domain.ChannelTypeShopify,
		Credentials: CredentialsInput{
			APIKey:   "shpat_xxx",
			StoreURL: "https://main.myshopify.com",
		},
	})
	require.NoError(t, err)

	assert.Contains(t, channel.ID, "CH-")
	assert.True(t, channel.IsActive)
	assert.Equal(t, domain.SyncStatusIdle, channel.SyncStatus)
}

func TestCreateChannelValidation(t *testing.T) {
	service, _ := newChannelFixture(t)
	ctx := context.Background()

	_, err := service.CreateChannel(ctx, CreateChannelCommand{Name: "Warehouse", Type: domain.ChannelTypeManual})
	require.NoError(t, err)

	_, err = service.CreateChannel(ctx, CreateChannelCommand{Name: "warehouse", Type: domain.ChannelTypeManual})
	assert.ErrorIs(t, err, domain.ErrDuplicateChannelName)

	_, err = service.CreateChannel(ctx, CreateChannelCommand{Name: "Amazon US", Type: domain.ChannelTypeAmazon})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestUpdateChannel(t *testing.T) {
	service, _ := newChannelFixture(t)
	ctx := context.Background()

	channel, err := service.CreateChannel(ctx, CreateChannelCommand{
		Name: "Main Store",
		Type: domain.ChannelTypeShopify,
		Credentials: CredentialsInput{
			APIKey:   "shpat_xxx",
			StoreURL: "https://main.myshopify.com",
		},
	})
	require.NoError(t, err)

	inactive := false
	updated, err := service.UpdateChannel(ctx, channel.ID, UpdateChannelCommand{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = service.UpdateChannel(ctx, channel.ID, UpdateChannelCommand{Credentials: &CredentialsInput{}})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)

	name := "Renamed Store"
	updated, err = service.UpdateChannel(ctx, channel.ID, UpdateChannelCommand{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Store", updated.Name)
}

func TestUpdateChannelDuplicateName(t *testing.T) {
	service, _ := newChannelFixture(t)
	ctx := context.Background()

	first, err := service.CreateChannel(ctx, CreateChannelCommand{Name: "Warehouse", Type: domain.ChannelTypeManual})
	require.NoError(t, err)
	_, err = service.CreateChannel(ctx, CreateChannelCommand{Name: "Outlet", Type: domain.ChannelTypeManual})
	require.NoError(t, err)

	conflict := "outlet"
	_, err = service.UpdateChannel(ctx, first.ID, UpdateChannelCommand{Name: &conflict})
	assert.ErrorIs(t, err, domain.ErrDuplicateChannelName)
}

func TestDeleteChannelKeepsMovements(t *testing.T) {
	service, store := newChannelFixture(t)
	ctx := context.Background()

	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	channel, err := service.CreateChannel(ctx, CreateChannelCommand{Name: "Warehouse", Type: domain.ChannelTypeManual})
	require.NoError(t, err)

	ledger := NewLedgerService(store, NoopPublisher{}, testLogger(), NewRecordLocks())
	_, _, err = ledger.RecordMovement(ctx, RecordMovementCommand{
		ProductID: "PRD-1", ChannelID: channel.ID,
		Type: domain.MovementReplenishment, Quantity: 10,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteChannel(ctx, channel.ID))

	inventory, err := store.Inventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, inventory)

	movements, err := store.Movements(ctx)
	require.NoError(t, err)
	assert.Len(t, movements, 1, "movement history survives channel deletion")

	assert.ErrorIs(t, service.DeleteChannel(ctx, channel.ID), domain.ErrChannelNotFound)
}
