package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChannelType identifies the external platform a channel sells on.
type ChannelType string

const (
	ChannelTypeShopify     ChannelType = "shopify"
	ChannelTypeWooCommerce ChannelType = "woocommerce"
	ChannelTypeAmazon      ChannelType = "amazon"
	ChannelTypeEbay        ChannelType = "ebay"
	ChannelTypeManual      ChannelType = "manual"
)

func (t ChannelType) IsValid() bool {
	switch t {
	case ChannelTypeShopify, ChannelTypeWooCommerce, ChannelTypeAmazon, ChannelTypeEbay, ChannelTypeManual:
		return true
	}
	return false
}

// RequiresCredentials reports whether channels of this type need API
// credentials to connect. Manual channels are operated in-house.
func (t ChannelType) RequiresCredentials() bool {
	return t != ChannelTypeManual
}

// SyncStatus is the lifecycle state of a channel's reconciliation.
type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusError   SyncStatus = "error"
)

// Credentials hold a channel's API access material. Never serialized in
// API responses.
type Credentials struct {
	APIKey    string `json:"-" bson:"api_key"`
	APISecret string `json:"-" bson:"api_secret"`
	StoreURL  string `json:"-" bson:"store_url"`
}

// Empty reports whether no credential material is present.
func (c Credentials) Empty() bool {
	return c.APIKey == "" && c.APISecret == "" && c.StoreURL == ""
}

// SalesChannel is an external (or manual) sales outlet whose stock
// levels this service tracks and reconciles.
type SalesChannel struct {
	ID           string      `json:"id" bson:"_id"`
	Name         string      `json:"name" bson:"name"`
	Type         ChannelType `json:"type" bson:"type"`
	Credentials  Credentials `json:"-" bson:"credentials"`
	IsActive     bool        `json:"isActive" bson:"is_active"`
	LastSyncedAt *time.Time  `json:"lastSyncedAt,omitempty" bson:"last_synced_at,omitempty"`
	SyncStatus   SyncStatus  `json:"syncStatus" bson:"sync_status"`
	SyncError    string      `json:"syncError,omitempty" bson:"sync_error,omitempty"`
	CreatedAt    time.Time   `json:"createdAt" bson:"created_at"`
}

// NewSalesChannel creates an active channel in the idle sync state.
func NewSalesChannel(name string, channelType ChannelType, creds Credentials) (*SalesChannel, error) {
	if !channelType.IsValid() {
		return nil, ErrInvalidChannelType
	}
	if channelType.RequiresCredentials() && creds.Empty() {
		return nil, ErrMissingCredentials
	}

	return &SalesChannel{
		ID:          "CH-" + uuid.New().String()[:8],
		Name:        strings.TrimSpace(name),
		Type:        channelType,
		Credentials: creds,
		IsActive:    true,
		SyncStatus:  SyncStatusIdle,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// NameEquals compares channel names case-insensitively.
func (c *SalesChannel) NameEquals(name string) bool {
	return strings.EqualFold(c.Name, strings.TrimSpace(name))
}

// BeginSync transitions the channel into the syncing state. Rejected
// when the channel is inactive or a cycle is already running.
func (c *SalesChannel) BeginSync() error {
	if !c.IsActive {
		return ErrChannelNotActive
	}
	if c.SyncStatus == SyncStatusSyncing {
		return ErrSyncInProgress
	}
	c.SyncStatus = SyncStatusSyncing
	c.SyncError = ""
	return nil
}

// CompleteSync records the outcome of a finished cycle. A cycle with at
// least one success completes as success even when some items failed;
// the partial error text is preserved for operators.
func (c *SalesChannel) CompleteSync(syncErr string) {
	now := time.Now().UTC()
	c.SyncStatus = SyncStatusSuccess
	c.SyncError = syncErr
	c.LastSyncedAt = &now
}

// FailSync marks the cycle as failed with the given reason.
func (c *SalesChannel) FailSync(reason string) {
	now := time.Now().UTC()
	c.SyncStatus = SyncStatusError
	c.SyncError = reason
	c.LastSyncedAt = &now
}

// Pause deactivates the channel without losing its configuration.
func (c *SalesChannel) Pause() {
	c.IsActive = false
}

// Resume reactivates a paused channel.
func (c *SalesChannel) Resume() {
	c.IsActive = true
}
