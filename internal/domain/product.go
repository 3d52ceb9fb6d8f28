package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultReorderPoint    = 10
	DefaultReorderQuantity = 50
)

// Product is a catalog entry. Stock is tracked separately per channel
// in InventoryItem records.
type Product struct {
	ID              string    `json:"id" bson:"_id"`
	SKU             string    `json:"sku" bson:"sku"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	Category        string    `json:"category,omitempty" bson:"category,omitempty"`
	Price           float64   `json:"price" bson:"price"`
	Cost            float64   `json:"cost" bson:"cost"`
	ReorderPoint    int       `json:"reorderPoint" bson:"reorder_point"`
	ReorderQuantity int       `json:"reorderQuantity" bson:"reorder_quantity"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updated_at"`
}

// NewProduct creates a product with generated ID and defaulted reorder
// parameters. SKU is normalized to upper case.
func NewProduct(sku, name, description, category string, price, cost float64, reorderPoint, reorderQuantity int) *Product {
	now := time.Now().UTC()

	if reorderPoint <= 0 {
		reorderPoint = DefaultReorderPoint
	}
	if reorderQuantity <= 0 {
		reorderQuantity = DefaultReorderQuantity
	}

	return &Product{
		ID:              "PRD-" + uuid.New().String()[:8],
		SKU:             strings.ToUpper(strings.TrimSpace(sku)),
		Name:            name,
		Description:     description,
		Category:        category,
		Price:           price,
		Cost:            cost,
		ReorderPoint:    reorderPoint,
		ReorderQuantity: reorderQuantity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SKUEquals compares SKUs case-insensitively.
func (p *Product) SKUEquals(sku string) bool {
	return strings.EqualFold(p.SKU, strings.TrimSpace(sku))
}

// Touch updates the modification timestamp.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
}
