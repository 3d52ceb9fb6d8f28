package adapters

import (
	"context"
	"sync"

	"github.com/stocksync/inventory-service/internal/domain"
)

// ManualAdapter serves channels without an external platform, such as
// in-person or phone sales. It never calls out: connecting always
// succeeds, synced quantities are zero (the ledger is the source of
// truth for manual channels) and stock pushes are accepted as no-ops.
type ManualAdapter struct {
	mu        sync.RWMutex
	connected bool
}

// NewManualAdapter creates a new manual adapter
func NewManualAdapter() *ManualAdapter {
	return &ManualAdapter{}
}

func (a *ManualAdapter) Type() domain.ChannelType {
	return domain.ChannelTypeManual
}

func (a *ManualAdapter) Connect(ctx context.Context, creds domain.Credentials) bool {
	a.mu.Lock()
	a.connected = true
	a.mu.Unlock()
	return true
}

func (a *ManualAdapter) Disconnect() {
	a.mu.Lock()
	a.connected = false
	a.mu.Unlock()
}

func (a *ManualAdapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.connected
}

func (a *ManualAdapter) SyncInventory(ctx context.Context, productIDs []string) []domain.SyncResult {
	results := make([]domain.SyncResult, 0, len(productIDs))
	for _, id := range productIDs {
		results = append(results, domain.SyncResult{ProductID: id, Success: true, Quantity: 0})
	}
	return results
}

func (a *ManualAdapter) UpdateStock(ctx context.Context, productID string, quantity int) bool {
	return true
}
