package domain

import "context"

// Store is the persistence boundary. Collections are read and written
// whole; callers mutate in memory and save back. Concurrency control
// lives above the store (record locks in the application layer), so
// implementations only need to make individual get/save calls safe.
type Store interface {
	Products(ctx context.Context) ([]Product, error)
	SaveProducts(ctx context.Context, products []Product) error

	Inventory(ctx context.Context) ([]InventoryItem, error)
	SaveInventory(ctx context.Context, items []InventoryItem) error

	Channels(ctx context.Context) ([]SalesChannel, error)
	SaveChannels(ctx context.Context, channels []SalesChannel) error

	Movements(ctx context.Context) ([]StockMovement, error)
	SaveMovements(ctx context.Context, movements []StockMovement) error

	HealthCheck(ctx context.Context) error
}
