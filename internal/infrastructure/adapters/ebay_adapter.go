package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/stocksync/inventory-service/internal/domain"
)

// EbayAdapter implements ChannelAdapter for eBay via the Sell Inventory
// API. APIKey/APISecret map to the OAuth application keys.
type EbayAdapter struct {
	mu          sync.RWMutex
	connected   bool
	creds       domain.Credentials
	accessToken string
	httpClient  *http.Client
	baseURL     string
	authURL     string
}

// NewEbayAdapter creates a new eBay adapter
func NewEbayAdapter() *EbayAdapter {
	return &EbayAdapter{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.ebay.com",
		authURL:    "https://api.ebay.com/identity/v1/oauth2/token",
	}
}

func (a *EbayAdapter) Type() domain.ChannelType {
	return domain.ChannelTypeEbay
}

// Connect obtains a client-credentials token from eBay.
func (a *EbayAdapter) Connect(ctx context.Context, creds domain.Credentials) bool {
	ctx, span := tracer.Start(ctx, "ebay.connect")
	defer span.End()

	if creds.APIKey == "" || creds.APISecret == "" {
		a.disconnect()
		return false
	}

	token, err := a.getAccessToken(ctx, creds)
	if err != nil {
		span.SetAttributes(attribute.Bool("connected", false))
		a.disconnect()
		return false
	}

	a.mu.Lock()
	a.connected = true
	a.creds = creds
	a.accessToken = token
	a.mu.Unlock()

	span.SetAttributes(attribute.Bool("connected", true))
	return true
}

func (a *EbayAdapter) getAccessToken(ctx context.Context, creds domain.Credentials) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("scope", "https://api.ebay.com/oauth/api_scope/sell.inventory")

	req, err := http.NewRequestWithContext(ctx, "POST", a.authURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}

	basic := base64.StdEncoding.EncodeToString([]byte(creds.APIKey + ":" + creds.APISecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request failed: %s", string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}

	return tokenResp.AccessToken, nil
}

func (a *EbayAdapter) Disconnect() {
	a.disconnect()
}

func (a *EbayAdapter) disconnect() {
	a.mu.Lock()
	a.connected = false
	a.creds = domain.Credentials{}
	a.accessToken = ""
	a.mu.Unlock()
}

func (a *EbayAdapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.connected
}

func (a *EbayAdapter) token() (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.accessToken, a.connected
}

// SyncInventory fetches ship-to-home availability per inventory item.
func (a *EbayAdapter) SyncInventory(ctx context.Context, productIDs []string) []domain.SyncResult {
	ctx, span := tracer.Start(ctx, "ebay.sync_inventory")
	defer span.End()
	span.SetAttributes(attribute.Int("product.count", len(productIDs)))

	accessToken, connected := a.token()
	if !connected {
		return notConnectedResults(productIDs, "eBay")
	}

	results := make([]domain.SyncResult, 0, len(productIDs))
	for _, productID := range productIDs {
		quantity, err := a.fetchInventoryItem(ctx, accessToken, productID)
		if err != nil {
			results = append(results, domain.SyncResult{ProductID: productID, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, domain.SyncResult{ProductID: productID, Success: true, Quantity: quantity})
	}
	return results
}

func (a *EbayAdapter) fetchInventoryItem(ctx context.Context, accessToken, productID string) (int, error) {
	endpoint := fmt.Sprintf("%s/sell/inventory/v1/inventory_item/%s", a.baseURL, url.PathEscape(productID))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch inventory item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("inventory item request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Availability struct {
			ShipToLocationAvailability struct {
				Quantity int `json:"quantity"`
			} `json:"shipToLocationAvailability"`
		} `json:"availability"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode inventory item: %w", err)
	}

	quantity := payload.Availability.ShipToLocationAvailability.Quantity
	if quantity < 0 {
		quantity = 0
	}
	return quantity, nil
}

// UpdateStock replaces the ship-to-home quantity for an inventory item.
func (a *EbayAdapter) UpdateStock(ctx context.Context, productID string, quantity int) bool {
	ctx, span := tracer.Start(ctx, "ebay.update_stock")
	defer span.End()

	accessToken, connected := a.token()
	if !connected {
		return false
	}

	body, err := json.Marshal(map[string]interface{}{
		"availability": map[string]interface{}{
			"shipToLocationAvailability": map[string]interface{}{
				"quantity": quantity,
			},
		},
	})
	if err != nil {
		return false
	}

	endpoint := fmt.Sprintf("%s/sell/inventory/v1/inventory_item/%s", a.baseURL, url.PathEscape(productID))
	req, err := http.NewRequestWithContext(ctx, "PUT", endpoint, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent
}
