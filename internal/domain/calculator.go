package domain

// Stock math shared by the ledger, sync and dashboard paths. All
// functions are pure; callers pass current records.

// StockStatus summarizes a record's stock position.
type StockStatus string

const (
	StockStatusOutOfStock  StockStatus = "out_of_stock"
	StockStatusLowStock    StockStatus = "low_stock"
	StockStatusOverstocked StockStatus = "overstocked"
	StockStatusInStock     StockStatus = "in_stock"
)

// Available returns sellable stock: on-hand minus reservations, floored
// at zero so oversold reservations never produce negative availability.
func Available(quantity, reserved int) int {
	available := quantity - reserved
	if available < 0 {
		return 0
	}
	return available
}

// IsLowStock reports whether stock is at or below the product's reorder
// point. Zero stock is out-of-stock, not low.
func IsLowStock(quantity, reorderPoint int) bool {
	return quantity > 0 && quantity <= reorderPoint
}

// IsOutOfStock reports whether the record holds no stock at all.
func IsOutOfStock(quantity int) bool {
	return quantity <= 0
}

// ReorderSuggestion returns how many units to reorder. Zero unless the
// record is low or out of stock; otherwise at least the product's
// standard reorder quantity, or more if even that would not reach the
// reorder point.
func ReorderSuggestion(quantity, reorderPoint, reorderQuantity int) int {
	if !IsLowStock(quantity, reorderPoint) && !IsOutOfStock(quantity) {
		return 0
	}
	deficit := reorderPoint - quantity
	if deficit > reorderQuantity {
		return deficit
	}
	return reorderQuantity
}

// StatusOf classifies a record's stock position. Overstocked means more
// than double the reorder point plus reorder quantity.
func StatusOf(quantity, reorderPoint, reorderQuantity int) StockStatus {
	switch {
	case IsOutOfStock(quantity):
		return StockStatusOutOfStock
	case IsLowStock(quantity, reorderPoint):
		return StockStatusLowStock
	case quantity > 2*(reorderPoint+reorderQuantity):
		return StockStatusOverstocked
	default:
		return StockStatusInStock
	}
}

// StockValue is the cost basis of the held quantity.
func StockValue(quantity int, cost float64) float64 {
	return float64(quantity) * cost
}

// PotentialRevenue is the sale value of the held quantity.
func PotentialRevenue(quantity int, price float64) float64 {
	return float64(quantity) * price
}

// PotentialProfit is the margin locked up in the held quantity.
func PotentialProfit(quantity int, price, cost float64) float64 {
	return float64(quantity) * (price - cost)
}

// ChannelShare is one channel's slice of a product's total stock.
type ChannelShare struct {
	ChannelID  string  `json:"channelId"`
	Quantity   int     `json:"quantity"`
	Percentage float64 `json:"percentage"`
}

// ChannelDistribution aggregates a product's stock records into
// per-channel quantities with their share of the total. An all-zero
// total yields zero percentages.
func ChannelDistribution(items []InventoryItem) []ChannelShare {
	totals := make(map[string]int)
	order := make([]string, 0, len(items))
	grand := 0

	for _, item := range items {
		if _, seen := totals[item.ChannelID]; !seen {
			order = append(order, item.ChannelID)
		}
		totals[item.ChannelID] += item.Quantity
		grand += item.Quantity
	}

	shares := make([]ChannelShare, 0, len(order))
	for _, channelID := range order {
		share := ChannelShare{ChannelID: channelID, Quantity: totals[channelID]}
		if grand > 0 {
			share.Percentage = float64(share.Quantity) / float64(grand) * 100
		}
		shares = append(shares, share)
	}
	return shares
}
