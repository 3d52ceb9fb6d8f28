package domain

import "time"

// Event types published to the inventory topics.
const (
	EventMovementRecorded = "inventory.movement.recorded"
	EventChannelSynced    = "inventory.channel.synced"
)

// MovementRecordedEvent announces a ledger entry that changed stock.
type MovementRecordedEvent struct {
	MovementID       string       `json:"movementId"`
	ProductID        string       `json:"productId"`
	ChannelID        string       `json:"channelId"`
	Type             MovementType `json:"type"`
	Quantity         int          `json:"quantity"`
	PreviousQuantity int          `json:"previousQuantity"`
	NewQuantity      int          `json:"newQuantity"`
	OccurredAt       time.Time    `json:"occurredAt"`
}

// ChannelSyncedEvent announces the outcome of a reconciliation cycle.
type ChannelSyncedEvent struct {
	ChannelID   string     `json:"channelId"`
	ChannelType string     `json:"channelType"`
	Status      SyncStatus `json:"status"`
	SyncedCount int        `json:"syncedCount"`
	ErrorCount  int        `json:"errorCount"`
	OccurredAt  time.Time  `json:"occurredAt"`
}
