package domain

import (
	"context"
	"fmt"
)

// SyncResult is the outcome of fetching one product's quantity from an
// external channel during a sync cycle.
type SyncResult struct {
	ProductID string `json:"productId"`
	Success   bool   `json:"success"`
	Quantity  int    `json:"quantity,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ChannelAdapter is the integration surface every sales platform
// implements. Adapters are stateful: Connect establishes a session with
// the given credentials and a failed connect leaves the adapter
// disconnected with credentials cleared. Calls never panic; per-item
// failures surface inside SyncResult entries.
type ChannelAdapter interface {
	Type() ChannelType

	// Connect validates the credentials against the platform. Returns
	// false on any failure.
	Connect(ctx context.Context, creds Credentials) bool

	// Disconnect drops the session and held credentials.
	Disconnect()

	IsConnected() bool

	// SyncInventory fetches current quantities for the given products,
	// returning exactly one result per requested ID, in request order.
	SyncInventory(ctx context.Context, productIDs []string) []SyncResult

	// UpdateStock pushes a quantity to the platform. Returns false when
	// disconnected or the platform call fails.
	UpdateStock(ctx context.Context, productID string, quantity int) bool
}

// AdapterRegistry hands out the shared adapter instance for each
// channel type.
type AdapterRegistry struct {
	adapters map[ChannelType]ChannelAdapter
}

func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{adapters: make(map[ChannelType]ChannelAdapter)}
}

// Register adds an adapter for its channel type, replacing any previous
// registration.
func (r *AdapterRegistry) Register(adapter ChannelAdapter) {
	r.adapters[adapter.Type()] = adapter
}

// Get returns the adapter for the given channel type.
func (r *AdapterRegistry) Get(channelType ChannelType) (ChannelAdapter, error) {
	adapter, ok := r.adapters[channelType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidChannelType, channelType)
	}
	return adapter, nil
}
