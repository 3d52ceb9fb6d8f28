// Package mongodb provides a MongoDB-backed Store, one collection per
// entity. Saves replace the collection contents inside a transaction so
// a whole-collection write is atomic.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stocksync/inventory-service/internal/domain"
	mongoclient "github.com/stocksync/inventory-service/pkg/mongodb"
)

const (
	collProducts  = "products"
	collInventory = "inventory"
	collChannels  = "channels"
	collMovements = "movements"
)

// Store implements domain.Store on MongoDB.
type Store struct {
	client *mongoclient.Client
}

// NewStore creates a MongoDB-backed store.
func NewStore(client *mongoclient.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	return readAll[domain.Product](ctx, s.client.Collection(collProducts))
}

func (s *Store) SaveProducts(ctx context.Context, products []domain.Product) error {
	return s.replaceAll(ctx, collProducts, toDocs(products))
}

func (s *Store) Inventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return readAll[domain.InventoryItem](ctx, s.client.Collection(collInventory))
}

func (s *Store) SaveInventory(ctx context.Context, items []domain.InventoryItem) error {
	return s.replaceAll(ctx, collInventory, toDocs(items))
}

func (s *Store) Channels(ctx context.Context) ([]domain.SalesChannel, error) {
	return readAll[domain.SalesChannel](ctx, s.client.Collection(collChannels))
}

func (s *Store) SaveChannels(ctx context.Context, channels []domain.SalesChannel) error {
	return s.replaceAll(ctx, collChannels, toDocs(channels))
}

func (s *Store) Movements(ctx context.Context) ([]domain.StockMovement, error) {
	return readAll[domain.StockMovement](ctx, s.client.Collection(collMovements))
}

func (s *Store) SaveMovements(ctx context.Context, movements []domain.StockMovement) error {
	return s.replaceAll(ctx, collMovements, toDocs(movements))
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return s.client.HealthCheck(ctx)
}

func readAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return results, nil
}

func (s *Store) replaceAll(ctx context.Context, collection string, docs []interface{}) error {
	return s.client.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		coll := s.client.Collection(collection)

		if _, err := coll.DeleteMany(sessCtx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", collection, err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := coll.InsertMany(sessCtx, docs); err != nil {
			return fmt.Errorf("failed to write %s: %w", collection, err)
		}
		return nil
	})
}

func toDocs[T any](in []T) []interface{} {
	docs := make([]interface{}, len(in))
	for i := range in {
		docs[i] = in[i]
	}
	return docs
}
