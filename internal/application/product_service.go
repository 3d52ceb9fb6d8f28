package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/logging"
)

// InitialStockEntry seeds a stock record for one channel at creation.
type InitialStockEntry struct {
	ChannelID string `json:"channelId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"min=0"`
}

// CreateProductCommand carries a new catalog entry.
type CreateProductCommand struct {
	SKU             string              `json:"sku" binding:"required,sku"`
	Name            string              `json:"name" binding:"required,safe_string,max=200"`
	Description     string              `json:"description" binding:"omitempty,safe_string,max=2000"`
	Category        string              `json:"category" binding:"omitempty,safe_string,max=100"`
	Price           float64             `json:"price" binding:"min=0"`
	Cost            float64             `json:"cost" binding:"min=0"`
	ReorderPoint    int                 `json:"reorderPoint" binding:"min=0"`
	ReorderQuantity int                 `json:"reorderQuantity" binding:"min=0"`
	InitialStock    []InitialStockEntry `json:"initialStock" binding:"omitempty,dive"`
}

// UpdateProductCommand carries a partial catalog update. Nil fields are
// left untouched.
type UpdateProductCommand struct {
	SKU             *string  `json:"sku" binding:"omitempty,sku"`
	Name            *string  `json:"name" binding:"omitempty,safe_string,max=200"`
	Description     *string  `json:"description" binding:"omitempty,safe_string,max=2000"`
	Category        *string  `json:"category" binding:"omitempty,safe_string,max=100"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	Cost            *float64 `json:"cost" binding:"omitempty,min=0"`
	ReorderPoint    *int     `json:"reorderPoint" binding:"omitempty,min=0"`
	ReorderQuantity *int     `json:"reorderQuantity" binding:"omitempty,min=0"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Search   string
}

// ProductService manages the product catalog.
type ProductService struct {
	store  domain.Store
	logger *logging.Logger
}

// NewProductService creates a product service.
func NewProductService(store domain.Store, logger *logging.Logger) *ProductService {
	return &ProductService{
		store:  store,
		logger: logger.WithComponent("products"),
	}
}

// CreateProduct adds a product to the catalog. SKUs are unique
// case-insensitively. Initial stock entries naming a known channel seed
// that channel's record; entries for unknown channels are skipped.
func (s *ProductService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*domain.Product, []domain.InventoryItem, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load products: %w", err)
	}

	for i := range products {
		if products[i].SKUEquals(cmd.SKU) {
			return nil, nil, domain.ErrDuplicateSKU
		}
	}

	product := domain.NewProduct(
		cmd.SKU, cmd.Name, cmd.Description, cmd.Category,
		cmd.Price, cmd.Cost, cmd.ReorderPoint, cmd.ReorderQuantity,
	)

	products = append(products, *product)
	if err := s.store.SaveProducts(ctx, products); err != nil {
		return nil, nil, fmt.Errorf("failed to save products: %w", err)
	}

	created := make([]domain.InventoryItem, 0, len(cmd.InitialStock))
	if len(cmd.InitialStock) > 0 {
		channels, err := s.store.Channels(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load channels: %w", err)
		}
		inventory, err := s.store.Inventory(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load inventory: %w", err)
		}

		for _, entry := range cmd.InitialStock {
			if channelIndex(channels, entry.ChannelID) < 0 {
				s.logger.Warn("Skipping initial stock for unknown channel",
					"productId", product.ID, "channelId", entry.ChannelID)
				continue
			}
			item := domain.NewInventoryItem(product.ID, entry.ChannelID, entry.Quantity)
			inventory = append(inventory, *item)
			created = append(created, *item)
		}

		if len(created) > 0 {
			if err := s.store.SaveInventory(ctx, inventory); err != nil {
				return nil, nil, fmt.Errorf("failed to save inventory: %w", err)
			}
		}
	}

	s.logger.Info("Product created", "productId", product.ID, "sku", product.SKU)
	return product, created, nil
}

// GetProduct returns one product by id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	idx := productIndex(products, id)
	if idx < 0 {
		return nil, domain.ErrProductNotFound
	}
	product := products[idx]
	return &product, nil
}

// ListProducts returns the catalog, optionally filtered by category and
// a case-insensitive search over SKU and name.
func (s *ProductService) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	if filter.Category == "" && filter.Search == "" {
		return products, nil
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.SKU), search) &&
			!strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// UpdateProduct applies a partial update. A SKU change is re-checked
// for uniqueness against the rest of the catalog.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, cmd UpdateProductCommand) (*domain.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	idx := productIndex(products, id)
	if idx < 0 {
		return nil, domain.ErrProductNotFound
	}
	product := &products[idx]

	if cmd.SKU != nil && !product.SKUEquals(*cmd.SKU) {
		for i := range products {
			if i != idx && products[i].SKUEquals(*cmd.SKU) {
				return nil, domain.ErrDuplicateSKU
			}
		}
		product.SKU = strings.ToUpper(strings.TrimSpace(*cmd.SKU))
	}
	if cmd.Name != nil {
		product.Name = *cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
	}
	if cmd.Price != nil {
		product.Price = *cmd.Price
	}
	if cmd.Cost != nil {
		product.Cost = *cmd.Cost
	}
	if cmd.ReorderPoint != nil {
		product.ReorderPoint = *cmd.ReorderPoint
	}
	if cmd.ReorderQuantity != nil {
		product.ReorderQuantity = *cmd.ReorderQuantity
	}
	product.Touch()

	if err := s.store.SaveProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to save products: %w", err)
	}

	updated := *product
	return &updated, nil
}

// DeleteProduct removes a product and cascades to its stock records and
// movement history.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	products, err := s.store.Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	idx := productIndex(products, id)
	if idx < 0 {
		return domain.ErrProductNotFound
	}
	products = append(products[:idx], products[idx+1:]...)
	if err := s.store.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}

	inventory, err := s.store.Inventory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	keptInventory := inventory[:0]
	for _, item := range inventory {
		if item.ProductID != id {
			keptInventory = append(keptInventory, item)
		}
	}
	if err := s.store.SaveInventory(ctx, keptInventory); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}

	movements, err := s.store.Movements(ctx)
	if err != nil {
		return fmt.Errorf("failed to load movements: %w", err)
	}
	keptMovements := movements[:0]
	for _, m := range movements {
		if m.ProductID != id {
			keptMovements = append(keptMovements, m)
		}
	}
	if err := s.store.SaveMovements(ctx, keptMovements); err != nil {
		return fmt.Errorf("failed to save movements: %w", err)
	}

	s.logger.Info("Product deleted", "productId", id)
	return nil
}
