package adapters

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/resilience"
)

type scriptedAdapter struct {
	connectAfter int
	connectCalls int
	results      []domain.SyncResult
}

func (s *scriptedAdapter) Type() domain.ChannelType { return domain.ChannelTypeManual }

func (s *scriptedAdapter) Connect(ctx context.Context, creds domain.Credentials) bool {
	s.connectCalls++
	return s.connectCalls > s.connectAfter
}

func (s *scriptedAdapter) Disconnect()       {}
func (s *scriptedAdapter) IsConnected() bool { return true }

func (s *scriptedAdapter) SyncInventory(ctx context.Context, productIDs []string) []domain.SyncResult {
	return s.results
}

func (s *scriptedAdapter) UpdateStock(ctx context.Context, productID string, quantity int) bool {
	return true
}

func testBreaker() *resilience.CircuitBreaker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("test"), logger)
}

func TestResilientConnectRetries(t *testing.T) {
	inner := &scriptedAdapter{connectAfter: 2}
	wrapped := NewResilient(inner, testBreaker())

	assert.True(t, wrapped.Connect(context.Background(), domain.Credentials{}))
	assert.Equal(t, 3, inner.connectCalls, "first success on the third attempt")
}

func TestResilientConnectGivesUp(t *testing.T) {
	inner := &scriptedAdapter{connectAfter: 100}
	wrapped := NewResilient(inner, testBreaker())

	assert.False(t, wrapped.Connect(context.Background(), domain.Credentials{}))
	assert.Equal(t, resilience.DefaultRetryMaxAttempts, inner.connectCalls)
}

func TestResilientSyncPassesThrough(t *testing.T) {
	inner := &scriptedAdapter{results: []domain.SyncResult{
		{ProductID: "PRD-1", Success: true, Quantity: 8},
	}}
	wrapped := NewResilient(inner, testBreaker())

	results := wrapped.SyncInventory(context.Background(), []string{"PRD-1"})
	require.Len(t, results, 1)
	assert.Equal(t, 8, results[0].Quantity)
}

func TestResilientSyncEmptyBatch(t *testing.T) {
	wrapped := NewResilient(&scriptedAdapter{}, testBreaker())
	assert.Nil(t, wrapped.SyncInventory(context.Background(), nil))
}

func TestResilientSyncCancelledContext(t *testing.T) {
	inner := &scriptedAdapter{results: []domain.SyncResult{{ProductID: "PRD-1", Success: true}}}
	wrapped := NewResilient(inner, testBreaker())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := wrapped.SyncInventory(ctx, []string{"PRD-1", "PRD-2"})
	require.Len(t, results, 2)
	for _, result := range results {
		assert.False(t, result.Success)
	}
}
