package domain

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is the stock record for one product on one channel.
// At most one record exists per (ProductID, ChannelID) pair.
type InventoryItem struct {
	ID           string     `json:"id" bson:"_id"`
	ProductID    string     `json:"productId" bson:"product_id"`
	ChannelID    string     `json:"channelId" bson:"channel_id"`
	Quantity     int        `json:"quantity" bson:"quantity"`
	Reserved     int        `json:"reserved" bson:"reserved"`
	Available    int        `json:"available" bson:"available"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty" bson:"last_synced_at,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updated_at"`
}

// NewInventoryItem creates a stock record for a product/channel pair.
func NewInventoryItem(productID, channelID string, quantity int) *InventoryItem {
	item := &InventoryItem{
		ID:        "INV-" + uuid.New().String()[:8],
		ProductID: productID,
		ChannelID: channelID,
		Quantity:  quantity,
		Reserved:  0,
		UpdatedAt: time.Now().UTC(),
	}
	item.Available = Available(item.Quantity, item.Reserved)
	return item
}

// SetQuantity overwrites the on-hand quantity, keeping reservations,
// and recomputes availability. Used by channel sync.
func (i *InventoryItem) SetQuantity(quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	i.Quantity = quantity
	i.Available = Available(i.Quantity, i.Reserved)
	i.UpdatedAt = time.Now().UTC()
}

// MarkSynced stamps the record with the time of the last successful
// channel sync.
func (i *InventoryItem) MarkSynced(t time.Time) {
	i.LastSyncedAt = &t
}
