// Package memory provides the default in-process Store backend.
package memory

import (
	"context"
	"sync"

	"github.com/stocksync/inventory-service/internal/domain"
)

// Store keeps all collections in memory behind a single RWMutex.
// Reads return copies so callers can mutate freely before saving back.
type Store struct {
	mu        sync.RWMutex
	products  []domain.Product
	inventory []domain.InventoryItem
	channels  []domain.SalesChannel
	movements []domain.StockMovement
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.products), nil
}

func (s *Store) SaveProducts(ctx context.Context, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = copySlice(products)
	return nil
}

func (s *Store) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.inventory), nil
}

func (s *Store) SaveInventory(ctx context.Context, items []domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = copySlice(items)
	return nil
}

func (s *Store) Channels(ctx context.Context) ([]domain.SalesChannel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.channels), nil
}

func (s *Store) SaveChannels(ctx context.Context, channels []domain.SalesChannel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = copySlice(channels)
	return nil
}

func (s *Store) Movements(ctx context.Context) ([]domain.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.movements), nil
}

func (s *Store) SaveMovements(ctx context.Context, movements []domain.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = copySlice(movements)
	return nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return nil
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
