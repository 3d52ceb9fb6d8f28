package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalesChannel(t *testing.T) {
	creds := Credentials{APIKey: "key", StoreURL: "https://shop.example.com"}

	channel, err := NewSalesChannel("Main Store", ChannelTypeShopify, creds)
	require.NoError(t, err)

	assert.Contains(t, channel.ID, "CH-")
	assert.Equal(t, "Main Store", channel.Name)
	assert.True(t, channel.IsActive)
	assert.Equal(t, SyncStatusIdle, channel.SyncStatus)
	assert.Nil(t, channel.LastSyncedAt)
}

func TestNewSalesChannelValidation(t *testing.T) {
	_, err := NewSalesChannel("Bad", ChannelType("etsy"), Credentials{APIKey: "k"})
	assert.ErrorIs(t, err, ErrInvalidChannelType)

	_, err = NewSalesChannel("No Creds", ChannelTypeAmazon, Credentials{})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewSalesChannel("Warehouse", ChannelTypeManual, Credentials{})
	assert.NoError(t, err, "manual channels need no credentials")
}

func TestBeginSync(t *testing.T) {
	channel, err := NewSalesChannel("Warehouse", ChannelTypeManual, Credentials{})
	require.NoError(t, err)

	require.NoError(t, channel.BeginSync())
	assert.Equal(t, SyncStatusSyncing, channel.SyncStatus)

	assert.ErrorIs(t, channel.BeginSync(), ErrSyncInProgress)

	channel.CompleteSync("")
	channel.Pause()
	assert.ErrorIs(t, channel.BeginSync(), ErrChannelNotActive)

	channel.Resume()
	assert.NoError(t, channel.BeginSync())
}

func TestCompleteSync(t *testing.T) {
	channel, err := NewSalesChannel("Warehouse", ChannelTypeManual, Credentials{})
	require.NoError(t, err)
	require.NoError(t, channel.BeginSync())

	channel.CompleteSync("Partial sync: 2 errors")

	assert.Equal(t, SyncStatusSuccess, channel.SyncStatus)
	assert.Equal(t, "Partial sync: 2 errors", channel.SyncError)
	require.NotNil(t, channel.LastSyncedAt)
}

func TestFailSync(t *testing.T) {
	channel, err := NewSalesChannel("Warehouse", ChannelTypeManual, Credentials{})
	require.NoError(t, err)
	require.NoError(t, channel.BeginSync())

	channel.FailSync("Failed to connect to Warehouse")

	assert.Equal(t, SyncStatusError, channel.SyncStatus)
	assert.Equal(t, "Failed to connect to Warehouse", channel.SyncError)
	require.NotNil(t, channel.LastSyncedAt)
}

func TestNameEquals(t *testing.T) {
	channel, err := NewSalesChannel("Main Store", ChannelTypeManual, Credentials{})
	require.NoError(t, err)

	assert.True(t, channel.NameEquals("main store"))
	assert.True(t, channel.NameEquals("  MAIN STORE  "))
	assert.False(t, channel.NameEquals("Other Store"))
}
