package application

import (
	"context"
	"fmt"
	"time"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/logging"
)

// StockView is a stock record enriched with catalog data and derived
// stock health fields.
type StockView struct {
	ID                string             `json:"id"`
	ProductID         string             `json:"productId"`
	ProductSKU        string             `json:"productSku"`
	ProductName       string             `json:"productName"`
	ChannelID         string             `json:"channelId"`
	ChannelName       string             `json:"channelName"`
	Quantity          int                `json:"quantity"`
	Reserved          int                `json:"reserved"`
	Available         int                `json:"available"`
	Status            domain.StockStatus `json:"status"`
	ReorderSuggestion int                `json:"reorderSuggestion"`
	StockValue        float64            `json:"stockValue"`
	LastSyncedAt      *time.Time         `json:"lastSyncedAt,omitempty"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// StockFilter narrows stock listings.
type StockFilter struct {
	ProductID string
	ChannelID string
	Status    domain.StockStatus
}

// InventoryService serves enriched stock listings.
type InventoryService struct {
	store  domain.Store
	logger *logging.Logger
}

// NewInventoryService creates an inventory query service.
func NewInventoryService(store domain.Store, logger *logging.Logger) *InventoryService {
	return &InventoryService{
		store:  store,
		logger: logger.WithComponent("inventory"),
	}
}

// ListStock returns stock records joined with their product and channel,
// optionally filtered. Records whose product or channel no longer exists
// are skipped.
func (s *InventoryService) ListStock(ctx context.Context, filter StockFilter) ([]StockView, error) {
	inventory, err := s.store.Inventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}

	views := make([]StockView, 0, len(inventory))
	for _, item := range inventory {
		if filter.ProductID != "" && item.ProductID != filter.ProductID {
			continue
		}
		if filter.ChannelID != "" && item.ChannelID != filter.ChannelID {
			continue
		}

		pIdx := productIndex(products, item.ProductID)
		cIdx := channelIndex(channels, item.ChannelID)
		if pIdx < 0 || cIdx < 0 {
			continue
		}
		product := &products[pIdx]

		status := domain.StatusOf(item.Quantity, product.ReorderPoint, product.ReorderQuantity)
		if filter.Status != "" && status != filter.Status {
			continue
		}

		views = append(views, StockView{
			ID:                item.ID,
			ProductID:         item.ProductID,
			ProductSKU:        product.SKU,
			ProductName:       product.Name,
			ChannelID:         item.ChannelID,
			ChannelName:       channels[cIdx].Name,
			Quantity:          item.Quantity,
			Reserved:          item.Reserved,
			Available:         item.Available,
			Status:            status,
			ReorderSuggestion: domain.ReorderSuggestion(item.Quantity, product.ReorderPoint, product.ReorderQuantity),
			StockValue:        domain.StockValue(item.Quantity, product.Cost),
			LastSyncedAt:      item.LastSyncedAt,
			UpdatedAt:         item.UpdatedAt,
		})
	}

	return views, nil
}
