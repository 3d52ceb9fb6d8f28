package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/stocksync/inventory-service/internal/domain"
)

// WooCommerceAdapter implements ChannelAdapter for WooCommerce stores
// via the wp-json REST API with basic auth (consumer key/secret).
type WooCommerceAdapter struct {
	mu         sync.RWMutex
	connected  bool
	creds      domain.Credentials
	httpClient *http.Client
}

// NewWooCommerceAdapter creates a new WooCommerce adapter
func NewWooCommerceAdapter() *WooCommerceAdapter {
	return &WooCommerceAdapter{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *WooCommerceAdapter) Type() domain.ChannelType {
	return domain.ChannelTypeWooCommerce
}

// Connect probes the products endpoint with the consumer credentials.
func (a *WooCommerceAdapter) Connect(ctx context.Context, creds domain.Credentials) bool {
	ctx, span := tracer.Start(ctx, "woocommerce.connect")
	defer span.End()

	if creds.APIKey == "" || creds.APISecret == "" || creds.StoreURL == "" {
		a.disconnect()
		return false
	}

	url := fmt.Sprintf("%s/wp-json/wc/v3/products?per_page=1", creds.StoreURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		a.disconnect()
		return false
	}
	req.SetBasicAuth(creds.APIKey, creds.APISecret)

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

func (a *WooCommerceAdapter) Disconnect() {
	a.disconnect()
}

func (a *WooCommerceAdapter) disconnect() {
	a.mu.Lock()
	a.connected = false
	a.creds = domain.Credentials{}
	a.mu.Unlock()
}

func (a *WooCommerceAdapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.connected
}

func (a *WooCommerceAdapter) session() (domain.Credentials, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.creds, a.connected
}

// SyncInventory fetches stock_quantity per product, one request each.
func (a *WooCommerceAdapter) SyncInventory(ctx context.Context, productIDs []string) []domain.SyncResult {
	ctx, span := tracer.Start(ctx, "woocommerce.sync_inventory")
	defer span.End()
	span.SetAttributes(attribute.Int("product.count", len(productIDs)))

	creds, connected := a.session()
	if !connected {
		return notConnectedResults(productIDs, "WooCommerce")
	}

	results := make([]domain.SyncResult, 0, len(productIDs))
	for _, productID := range productIDs {
		quantity, err := a.fetchStockQuantity(ctx, creds, productID)
		if err != nil {
			results = append(results, domain.SyncResult{ProductID: productID, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, domain.SyncResult{ProductID: productID, Success: true, Quantity: quantity})
	}
	return results
}

func (a *WooCommerceAdapter) fetchStockQuantity(ctx context.Context, creds domain.Credentials, productID string) (int, error) {
	url := fmt.Sprintf("%s/wp-json/wc/v3/products/%s", creds.StoreURL, productID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(creds.APIKey, creds.APISecret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch product: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("product request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		StockQuantity *int `json:"stock_quantity"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode product: %w", err)
	}

	// Products without managed stock report null
	if payload.StockQuantity == nil || *payload.StockQuantity < 0 {
		return 0, nil
	}
	return *payload.StockQuantity, nil
}

// UpdateStock pushes a stock quantity to WooCommerce.
func (a *WooCommerceAdapter) UpdateStock(ctx context.Context, productID string, quantity int) bool {
	ctx, span := tracer.Start(ctx, "woocommerce.update_stock")
	defer span.End()

	creds, connected := a.session()
	if !connected {
		return false
	}

	body, err := json.Marshal(map[string]interface{}{
		"stock_quantity": quantity,
	})
	if err != nil {
		return false
	}

	url := fmt.Sprintf("%s/wp-json/wc/v3/products/%s", creds.StoreURL, productID)
	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.SetBasicAuth(creds.APIKey, creds.APISecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
