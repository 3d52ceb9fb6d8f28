package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/internal/infrastructure/memory"
)

func newLedgerFixture(t *testing.T) (*LedgerService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	seedProduct(t, store, catalogProduct("PRD-1", "WID-001"))
	seedChannel(t, store, manualChannel(t, "CH-1", "Warehouse"))
	return NewLedgerService(store, NoopPublisher{}, testLogger(), NewRecordLocks()), store
}

func TestRecordMovementCreatesRecord(t *testing.T) {
	ledger, store := newLedgerFixture(t)
	ctx := context.Background()

	movement, item, err := ledger.RecordMovement(ctx, RecordMovementCommand{
		ProductID: "PRD-1",
		ChannelID: "CH-1",
		Type:      domain.MovementReplenishment,
		Quantity:  15,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, movement.PreviousQuantity)
	assert.Equal(t, 15, movement.NewQuantity)
	assert.Equal(t, "system", movement.CreatedBy)
	assert.Equal(t, 15, item.Quantity)
	assert.Equal(t, 15, item.Available)

	inventory, err := store.Inventory(ctx)
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	assert.Equal(t, 15, inventory[0].Quantity)
}

func TestRecordMovementSaleSubtracts(t *testing.T) {
	ledger, _ := newLedgerFixture(t)
	ctx := context.Background()

	_, _, err := ledger.RecordMovement(ctx, RecordMovementCommand{
		ProductID: "PRD-1", ChannelID: "CH-1",
		Type: domain.MovementReplenishment, Quantity: 15,
	})
	require.NoError(t, err)

	movement, item, err := ledger.RecordMovement(ctx, RecordMovementCommand{
		ProductID: "PRD-1", ChannelID: "CH-1",
		Type: domain.MovementSale, Quantity: 8,
		Reference: "ORD-1001",
	})
	require.NoError(t, err)

	assert.Equal(t, 15, movement.PreviousQuantity)
	assert.Equal(t, 7, movement.NewQuantity)
	assert.Equal(t, 7, item.Quantity)
}

func TestRecordMovementClampsAtZero(t *testing.T) {
	ledger, _ := newLedgerFixture(t)
	ctx := context.Background()

	_, _, err := ledger.RecordMovement(ctx, RecordMovementCommand{
		ProductID: "PRD-1", ChannelID: "CH-1",
		Type: domain.MovementReplenishment, Quantity: 5,
	})
	require.NoError(t, err)

	movement, item, err := ledger.RecordMovement(ctx, RecordMovementCommand{
		ProductID: "PRD-1", ChannelID: "CH-1",
		Type: domain.MovementSale, Quantity: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, movement.PreviousQuantity)
	assert.Equal(t, 0, movement.NewQuantity, "stock never goes negative")
	assert.Equal(t, 20, movement.Quantity, "requested quantity is kept verbatim")
	assert.Equal(t, 0, item.Quantity)
}

func TestRecordMovementValidation(t *testing.T) {
	ledger, _ := newLedgerFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		cmd     RecordMovementCommand
		wantErr error
	}{
		{
			"unknown movement type",
			RecordMovementCommand{ProductID: "PRD-1", ChannelID: "CH-1", Type: "adjustment", Quantity: 1},
			domain.ErrInvalidMovementType,
		},
		{
			"zero quantity",
			RecordMovementCommand{ProductID: "PRD-1", ChannelID: "CH-1", Type: domain.MovementSale},
			domain.ErrInvalidQuantity,
		},
		{
			"unknown product",
			RecordMovementCommand{ProductID: "PRD-404", ChannelID: "CH-1", Type: domain.MovementSale, Quantity: 1},
			domain.ErrProductNotFound,
		},
		{
			"unknown channel",
			RecordMovementCommand{ProductID: "PRD-1", ChannelID: "CH-404", Type: domain.MovementSale, Quantity: 1},
			domain.ErrChannelNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ledger.RecordMovement(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordMovementNegativeQuantityNormalized(t *testing.T) {
	ledger, _ := newLedgerFixture(t)

	movement, item, err := ledger.RecordMovement(context.Background(), RecordMovementCommand{
		ProductID: "PRD-1", ChannelID: "CH-1",
		Type: domain.MovementReplenishment, Quantity: -10,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, movement.Quantity)
	assert.Equal(t, 10, item.Quantity, "direction comes from the type, not the sign")
}

func TestListMovements(t *testing.T) {
	ledger, store := newLedgerFixture(t)
	ctx := context.Background()
	seedChannel(t, store, manualChannel(t, "CH-2", "Outlet"))

	for _, cmd := range []RecordMovementCommand{
		{ProductID: "PRD-1", ChannelID: "CH-1", Type: domain.MovementReplenishment, Quantity: 20},
		{ProductID: "PRD-1", ChannelID: "CH-1", Type: domain.MovementSale, Quantity: 3},
		{ProductID: "PRD-1", ChannelID: "CH-2", Type: domain.MovementReplenishment, Quantity: 5},
	} {
		_, _, err := ledger.RecordMovement(ctx, cmd)
		require.NoError(t, err)
	}

	all, err := ledger.ListMovements(ctx, MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	byChannel, err := ledger.ListMovements(ctx, MovementFilter{ChannelID: "CH-2"})
	require.NoError(t, err)
	require.Len(t, byChannel, 1)
	assert.Equal(t, "CH-2", byChannel[0].ChannelID)

	byType, err := ledger.ListMovements(ctx, MovementFilter{Type: domain.MovementSale})
	require.NoError(t, err)
	require.Len(t, byType, 1)

	limited, err := ledger.ListMovements(ctx, MovementFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
