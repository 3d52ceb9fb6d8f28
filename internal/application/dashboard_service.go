package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/logging"
)

const (
	recentMovementCount = 10
	topProductCount     = 5
)

// ChannelStats summarizes one channel's share of the tracked stock.
type ChannelStats struct {
	ChannelID    string             `json:"channelId"`
	ChannelName  string             `json:"channelName"`
	Type         domain.ChannelType `json:"type"`
	ProductCount int                `json:"productCount"`
	TotalUnits   int                `json:"totalUnits"`
	StockValue   float64            `json:"stockValue"`
	Percentage   float64            `json:"percentage"`
	SyncStatus   domain.SyncStatus  `json:"syncStatus"`
	LastSyncedAt *time.Time         `json:"lastSyncedAt,omitempty"`
}

// ProductValue ranks a product by the retail value of its stock across
// all channels.
type ProductValue struct {
	ProductID   string  `json:"productId"`
	ProductSKU  string  `json:"productSku"`
	ProductName string  `json:"productName"`
	TotalUnits  int     `json:"totalUnits"`
	StockValue  float64 `json:"stockValue"`
}

// DashboardStats is the aggregate stock overview.
type DashboardStats struct {
	TotalProducts   int                    `json:"totalProducts"`
	TotalChannels   int                    `json:"totalChannels"`
	ActiveChannels  int                    `json:"activeChannels"`
	TotalUnits      int                    `json:"totalUnits"`
	TotalStockValue float64                `json:"totalStockValue"`
	PotentialProfit float64                `json:"potentialProfit"`
	LowStockCount   int                    `json:"lowStockCount"`
	OutOfStockCount int                    `json:"outOfStockCount"`
	ChannelStats    []ChannelStats         `json:"channelStats"`
	TopProducts     []ProductValue         `json:"topProducts"`
	RecentMovements []domain.StockMovement `json:"recentMovements"`
}

// DashboardService aggregates stock health across the whole system.
type DashboardService struct {
	store  domain.Store
	logger *logging.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(store domain.Store, logger *logging.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		logger: logger.WithComponent("dashboard"),
	}
}

// Stats computes the dashboard aggregates. Stock value is priced at
// retail; low and out-of-stock counts are per stock record, so one
// product can count once per channel.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}
	inventory, err := s.store.Inventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	movements, err := s.store.Movements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}

	stats := &DashboardStats{
		TotalProducts: len(products),
		TotalChannels: len(channels),
	}
	for i := range channels {
		if channels[i].IsActive {
			stats.ActiveChannels++
		}
	}

	productTotals := make(map[string]*ProductValue)
	channelTotals := make(map[string]*ChannelStats)
	channelProducts := make(map[string]map[string]bool)

	for _, item := range inventory {
		pIdx := productIndex(products, item.ProductID)
		if pIdx < 0 {
			continue
		}
		product := &products[pIdx]

		stats.TotalUnits += item.Quantity
		stats.TotalStockValue += domain.PotentialRevenue(item.Quantity, product.Price)
		stats.PotentialProfit += domain.PotentialProfit(item.Quantity, product.Price, product.Cost)

		if domain.IsOutOfStock(item.Quantity) {
			stats.OutOfStockCount++
		} else if domain.IsLowStock(item.Quantity, product.ReorderPoint) {
			stats.LowStockCount++
		}

		pv, ok := productTotals[product.ID]
		if !ok {
			pv = &ProductValue{ProductID: product.ID, ProductSKU: product.SKU, ProductName: product.Name}
			productTotals[product.ID] = pv
		}
		pv.TotalUnits += item.Quantity
		pv.StockValue += domain.PotentialRevenue(item.Quantity, product.Price)

		cIdx := channelIndex(channels, item.ChannelID)
		if cIdx < 0 {
			continue
		}
		channel := &channels[cIdx]
		cs, ok := channelTotals[channel.ID]
		if !ok {
			cs = &ChannelStats{
				ChannelID:    channel.ID,
				ChannelName:  channel.Name,
				Type:         channel.Type,
				SyncStatus:   channel.SyncStatus,
				LastSyncedAt: channel.LastSyncedAt,
			}
			channelTotals[channel.ID] = cs
			channelProducts[channel.ID] = make(map[string]bool)
		}
		cs.TotalUnits += item.Quantity
		cs.StockValue += domain.PotentialRevenue(item.Quantity, product.Price)
		channelProducts[channel.ID][product.ID] = true
	}

	shares := domain.ChannelDistribution(inventory)
	for _, share := range shares {
		if cs, ok := channelTotals[share.ChannelID]; ok {
			cs.Percentage = share.Percentage
		}
	}

	stats.ChannelStats = make([]ChannelStats, 0, len(channels))
	for i := range channels {
		cs, ok := channelTotals[channels[i].ID]
		if !ok {
			stats.ChannelStats = append(stats.ChannelStats, ChannelStats{
				ChannelID:    channels[i].ID,
				ChannelName:  channels[i].Name,
				Type:         channels[i].Type,
				SyncStatus:   channels[i].SyncStatus,
				LastSyncedAt: channels[i].LastSyncedAt,
			})
			continue
		}
		cs.ProductCount = len(channelProducts[cs.ChannelID])
		stats.ChannelStats = append(stats.ChannelStats, *cs)
	}

	stats.TopProducts = make([]ProductValue, 0, len(productTotals))
	for _, pv := range productTotals {
		stats.TopProducts = append(stats.TopProducts, *pv)
	}
	sort.SliceStable(stats.TopProducts, func(i, j int) bool {
		if stats.TopProducts[i].StockValue != stats.TopProducts[j].StockValue {
			return stats.TopProducts[i].StockValue > stats.TopProducts[j].StockValue
		}
		return stats.TopProducts[i].ProductSKU < stats.TopProducts[j].ProductSKU
	})
	if len(stats.TopProducts) > topProductCount {
		stats.TopProducts = stats.TopProducts[:topProductCount]
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].CreatedAt.After(movements[j].CreatedAt)
	})
	if len(movements) > recentMovementCount {
		movements = movements[:recentMovementCount]
	}
	stats.RecentMovements = movements

	return stats, nil
}
