package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/stocksync/inventory-service/internal/domain"
)

var tracer = otel.Tracer("inventory-service/adapters")

const shopifyAPIVersion = "2024-01"

// ShopifyAdapter implements ChannelAdapter for Shopify stores via the
// Admin REST API. The store URL and access token come from the channel
// credentials at connect time.
type ShopifyAdapter struct {
	mu         sync.RWMutex
	connected  bool
	creds      domain.Credentials
	httpClient *http.Client
}

// NewShopifyAdapter creates a new Shopify adapter
func NewShopifyAdapter() *ShopifyAdapter {
	return &ShopifyAdapter{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *ShopifyAdapter) Type() domain.ChannelType {
	return domain.ChannelTypeShopify
}

// Connect validates the credentials against the shop endpoint. A failed
// probe leaves the adapter disconnected with credentials cleared.
func (a *ShopifyAdapter) Connect(ctx context.Context, creds domain.Credentials) bool {
	ctx, span := tracer.Start(ctx, "shopify.connect")
	defer span.End()

	if creds.APIKey == "" || creds.StoreURL == "" {
		a.disconnect()
		return false
	}

	url := fmt.Sprintf("%s/admin/api/%s/shop.json", creds.StoreURL, shopifyAPIVersion)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		a.disconnect()
		return false
	}
	req.Header.Set("X-Shopify-Access-Token", creds.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		span.SetAttributes(attribute.Bool("connected", false))
		a.disconnect()
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.SetAttributes(attribute.Bool("connected", false))
		a.disconnect()
		return false
	}

	a.mu.Lock()
	a.connected = true
	a.creds = creds
	a.mu.Unlock()

	span.SetAttributes(attribute.Bool("connected", true))
	return true
}

func (a *ShopifyAdapter) Disconnect() {
	a.disconnect()
}

func (a *ShopifyAdapter) disconnect() {
	a.mu.Lock()
	a.connected = false
	a.creds = domain.Credentials{}
	a.mu.Unlock()
}

func (a *ShopifyAdapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.connected
}

func (a *ShopifyAdapter) session() (domain.Credentials, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.creds, a.connected
}

// SyncInventory fetches current quantities per product. Each product is
// fetched independently; a failed fetch fails only that entry.
func (a *ShopifyAdapter) SyncInventory(ctx context.Context, productIDs []string) []domain.SyncResult {
	ctx, span := tracer.Start(ctx, "shopify.sync_inventory")
	defer span.End()
	span.SetAttributes(attribute.Int("product.count", len(productIDs)))

	creds, connected := a.session()
	if !connected {
		return notConnectedResults(productIDs, "Shopify")
	}

	results := make([]domain.SyncResult, 0, len(productIDs))
	for _, productID := range productIDs {
		quantity, err := a.fetchInventoryLevel(ctx, creds, productID)
		if err != nil {
			results = append(results, domain.SyncResult{ProductID: productID, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, domain.SyncResult{ProductID: productID, Success: true, Quantity: quantity})
	}
	return results
}

func (a *ShopifyAdapter) fetchInventoryLevel(ctx context.Context, creds domain.Credentials, productID string) (int, error) {
	url := fmt.Sprintf("%s/admin/api/%s/inventory_levels.json?inventory_item_ids=%s",
		creds.StoreURL, shopifyAPIVersion, productID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", creds.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch inventory level: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("inventory level request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		InventoryLevels []struct {
			Available int `json:"available"`
		} `json:"inventory_levels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode inventory level: %w", err)
	}

	if len(payload.InventoryLevels) == 0 {
		return 0, fmt.Errorf("no inventory level found for product %s", productID)
	}

	quantity := payload.InventoryLevels[0].Available
	if quantity < 0 {
		quantity = 0
	}
	return quantity, nil
}

// UpdateStock pushes a quantity to Shopify.
func (a *ShopifyAdapter) UpdateStock(ctx context.Context, productID string, quantity int) bool {
	ctx, span := tracer.Start(ctx, "shopify.update_stock")
	defer span.End()

	creds, connected := a.session()
	if !connected {
		return false
	}

	body, err := json.Marshal(map[string]interface{}{
		"inventory_item_id": productID,
		"available":         quantity,
	})
	if err != nil {
		return false
	}

	url := fmt.Sprintf("%s/admin/api/%s/inventory_levels/set.json", creds.StoreURL, shopifyAPIVersion)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("X-Shopify-Access-Token", creds.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func notConnectedResults(productIDs []string, platform string) []domain.SyncResult {
	results := make([]domain.SyncResult, 0, len(productIDs))
	for _, id := range productIDs {
		results = append(results, domain.SyncResult{
			ProductID: id,
			Success:   false,
			Error:     fmt.Sprintf("%s is not connected", platform),
		})
	}
	return results
}
