package adapters

import (
	"context"
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

// AmazonAdapter implements ChannelAdapter for Amazon Seller Central via
// the SP-API. Credentials map to the LWA client: APIKey is the client
// ID, APISecret the client secret.
type AmazonAdapter struct {
	mu          sync.RWMutex
	connected   bool
	creds       domain.Credentials
	accessToken string
	httpClient  *http.Client
	baseURL     string
	authURL     string
}

// NewAmazonAdapter creates a new Amazon adapter against the NA endpoint
func NewAmazonAdapter() *AmazonAdapter {
	return &AmazonAdapter{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://sellingpartnerapi-na.amazon.com",
		authURL:    "https://api.amazon.com/auth/o2/token",
	}
}

func (a *AmazonAdapter) Type() domain.ChannelType {
	return domain.ChannelTypeAmazon
}

// Connect exchanges the LWA credentials for an access token. The token
// is held for the session; a failed exchange clears everything.
func (a *AmazonAdapter) Connect(ctx context.Context, creds domain.Credentials) bool {
	ctx, span := tracer.Start(ctx, "amazon.connect")
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

func (a *AmazonAdapter) getAccessToken(ctx context.Context, creds domain.Credentials) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("scope", "sellingpartnerapi::inventory")
	data.Set("client_id", creds.APIKey)
	data.Set("client_secret", creds.APISecret)

	req, err := http.NewRequestWithContext(ctx, "POST", a.authURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
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

func (a *AmazonAdapter) Disconnect() {
	a.disconnect()
}

func (a *AmazonAdapter) disconnect() {
	a.mu.Lock()
	a.connected = false
	a.creds = domain.Credentials{}
	a.accessToken = ""
	a.mu.Unlock()
}

func (a *AmazonAdapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.connected
}

func (a *AmazonAdapter) token() (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.accessToken, a.connected
}

// SyncInventory fetches fulfillable quantities from the FBA inventory
// API, one SKU per request.
func (a *AmazonAdapter) SyncInventory(ctx context.Context, productIDs []string) []domain.SyncResult {
	ctx, span := tracer.Start(ctx, "amazon.sync_inventory")
	defer span.End()
	span.SetAttributes(attribute.Int("product.count", len(productIDs)))

	accessToken, connected := a.token()
	if !connected {
		return notConnectedResults(productIDs, "Amazon")
	}

	results := make([]domain.SyncResult, 0, len(productIDs))
	for _, productID := range productIDs {
		quantity, err := a.fetchInventorySummary(ctx, accessToken, productID)
		if err != nil {
			results = append(results, domain.SyncResult{ProductID: productID, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, domain.SyncResult{ProductID: productID, Success: true, Quantity: quantity})
	}
	return results
}

func (a *AmazonAdapter) fetchInventorySummary(ctx context.Context, accessToken, productID string) (int, error) {
	endpoint := fmt.Sprintf("%s/fba/inventory/v1/summaries?granularityType=Marketplace&sellerSkus=%s",
		a.baseURL, url.QueryEscape(productID))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-amz-access-token", accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch inventory summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("inventory summary request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Payload struct {
			InventorySummaries []struct {
				InventoryDetails struct {
					FulfillableQuantity int `json:"fulfillableQuantity"`
				} `json:"inventoryDetails"`
			} `json:"inventorySummaries"`
		} `json:"payload"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode inventory summary: %w", err)
	}

	if len(payload.Payload.InventorySummaries) == 0 {
		return 0, fmt.Errorf("no inventory summary found for product %s", productID)
	}

	quantity := payload.Payload.InventorySummaries[0].InventoryDetails.FulfillableQuantity
	if quantity < 0 {
		quantity = 0
	}
	return quantity, nil
}

// UpdateStock is not supported for FBA-managed stock; Amazon owns the
// fulfillable quantity. Always returns false when called.
func (a *AmazonAdapter) UpdateStock(ctx context.Context, productID string, quantity int) bool {
	_, span := tracer.Start(ctx, "amazon.update_stock")
	defer span.End()
	span.SetAttributes(attribute.Bool("supported", false))
	return false
}
