package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		movementType MovementType
		quantity     int
		want         int
	}{
		{MovementReplenishment, 10, 10},
		{MovementReturn, 3, 3},
		{MovementSale, 5, -5},
		{MovementCorrection, 7, -7},
		{MovementTransfer, 4, -4},
		{MovementSale, -5, -5},
		{MovementReplenishment, -10, 10},
	}

	for _, tt := range tests {
		t.Run(string(tt.movementType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.movementType.SignedDelta(tt.quantity))
		})
	}
}

func TestMovementTypeIsValid(t *testing.T) {
	for _, valid := range []MovementType{
		MovementReplenishment, MovementSale, MovementCorrection, MovementTransfer, MovementReturn,
	} {
		assert.True(t, valid.IsValid())
	}
	assert.False(t, MovementType("adjustment").IsValid())
	assert.False(t, MovementType("").IsValid())
}

func TestNewStockMovement(t *testing.T) {
	m := NewStockMovement("PRD-1", "CH-1", MovementSale, -5, 20, 15, "order", "ORD-42", "")

	assert.Contains(t, m.ID, "MOV-")
	assert.Equal(t, 5, m.Quantity, "quantity is stored absolute")
	assert.Equal(t, 20, m.PreviousQuantity)
	assert.Equal(t, 15, m.NewQuantity)
	assert.Equal(t, "system", m.CreatedBy, "defaults when no actor given")
	assert.False(t, m.CreatedAt.IsZero())
}

func TestNewStockMovementKeepsActor(t *testing.T) {
	m := NewStockMovement("PRD-1", "CH-1", MovementReplenishment, 10, 0, 10, "", "", "warehouse-app")
	assert.Equal(t, "warehouse-app", m.CreatedBy)
}
