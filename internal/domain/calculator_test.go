package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailable(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		reserved int
		want     int
	}{
		{"no reservations", 10, 0, 10},
		{"partial reservations", 10, 4, 6},
		{"fully reserved", 10, 10, 0},
		{"oversold reservations floor at zero", 5, 8, 0},
		{"empty record", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Available(tt.quantity, tt.reserved))
		})
	}
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, IsLowStock(5, 10))
	assert.True(t, IsLowStock(10, 10))
	assert.False(t, IsLowStock(11, 10))
	assert.False(t, IsLowStock(0, 10), "zero stock is out of stock, not low")
}

func TestReorderSuggestion(t *testing.T) {
	tests := []struct {
		name            string
		quantity        int
		reorderPoint    int
		reorderQuantity int
		want            int
	}{
		{"healthy stock suggests nothing", 40, 10, 50, 0},
		{"low stock suggests standard quantity", 8, 10, 50, 50},
		{"out of stock suggests standard quantity", 0, 10, 50, 50},
		{"deep deficit exceeds standard quantity", 2, 100, 50, 98},
		{"at reorder point", 10, 10, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReorderSuggestion(tt.quantity, tt.reorderPoint, tt.reorderQuantity))
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name            string
		quantity        int
		reorderPoint    int
		reorderQuantity int
		want            StockStatus
	}{
		{"empty record", 0, 10, 50, StockStatusOutOfStock},
		{"below reorder point", 5, 10, 50, StockStatusLowStock},
		{"at reorder point", 10, 10, 50, StockStatusLowStock},
		{"healthy", 60, 10, 50, StockStatusInStock},
		{"at overstock boundary", 120, 10, 50, StockStatusInStock},
		{"above overstock boundary", 121, 10, 50, StockStatusOverstocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.quantity, tt.reorderPoint, tt.reorderQuantity))
		})
	}
}

func TestStockMath(t *testing.T) {
	assert.InDelta(t, 150.0, StockValue(10, 15.0), 0.001)
	assert.InDelta(t, 299.9, PotentialRevenue(10, 29.99), 0.001)
	assert.InDelta(t, 149.9, PotentialProfit(10, 29.99, 15.0), 0.001)
}

func TestChannelDistribution(t *testing.T) {
	items := []InventoryItem{
		{ChannelID: "CH-a", Quantity: 30},
		{ChannelID: "CH-b", Quantity: 10},
		{ChannelID: "CH-a", Quantity: 10},
		{ChannelID: "CH-c", Quantity: 0},
	}

	shares := ChannelDistribution(items)
	assert.Len(t, shares, 3)

	assert.Equal(t, "CH-a", shares[0].ChannelID)
	assert.Equal(t, 40, shares[0].Quantity)
	assert.InDelta(t, 80.0, shares[0].Percentage, 0.001)

	assert.Equal(t, "CH-b", shares[1].ChannelID)
	assert.InDelta(t, 20.0, shares[1].Percentage, 0.001)

	assert.Equal(t, "CH-c", shares[2].ChannelID)
	assert.Zero(t, shares[2].Percentage)
}

func TestChannelDistributionZeroTotal(t *testing.T) {
	shares := ChannelDistribution([]InventoryItem{
		{ChannelID: "CH-a", Quantity: 0},
		{ChannelID: "CH-b", Quantity: 0},
	})

	assert.Len(t, shares, 2)
	for _, share := range shares {
		assert.Zero(t, share.Percentage)
	}
}
