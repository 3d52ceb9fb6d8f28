package adapters

import (
	"context"
	"time"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/resilience"
)

// Default timeouts for wrapped adapter calls. Sync budgets scale with
// the number of requested products since adapters fetch per item.
const (
	DefaultConnectTimeout = 15 * time.Second
	DefaultPerItemTimeout = 30 * time.Second
)

// Resilient decorates a ChannelAdapter with a circuit breaker, call
// timeouts, and retries on the connect probe. A tripped breaker fails
// sync calls without touching the platform.
type Resilient struct {
	inner   domain.ChannelAdapter
	breaker *resilience.CircuitBreaker
	retry   *resilience.RetryConfig

	connectTimeout time.Duration
	perItemTimeout time.Duration
}

// NewResilient wraps an adapter with the given circuit breaker.
func NewResilient(inner domain.ChannelAdapter, breaker *resilience.CircuitBreaker) *Resilient {
	return &Resilient{
		inner:          inner,
		breaker:        breaker,
		retry:          resilience.DefaultRetryConfig(),
		connectTimeout: DefaultConnectTimeout,
		perItemTimeout: DefaultPerItemTimeout,
	}
}

func (r *Resilient) Type() domain.ChannelType {
	return r.inner.Type()
}

// Connect retries the probe with backoff; connect failures are cheap
// and transient auth-service blips are common.
func (r *Resilient) Connect(ctx context.Context, creds domain.Credentials) bool {
	ctx, cancel := context.WithTimeout(ctx, r.connectTimeout*time.Duration(r.retry.MaxAttempts))
	defer cancel()

	ok, err := resilience.RetryWithResult(ctx, r.retry, func() (bool, error) {
		callCtx, callCancel := context.WithTimeout(ctx, r.connectTimeout)
		defer callCancel()

		if !r.inner.Connect(callCtx, creds) {
			return false, domain.ErrMissingCredentials
		}
		return true, nil
	})

	return err == nil && ok
}

func (r *Resilient) Disconnect() {
	r.inner.Disconnect()
}

func (r *Resilient) IsConnected() bool {
	return r.inner.IsConnected()
}

// SyncInventory runs the fetch through the circuit breaker under a
// deadline proportional to the batch size. Breaker rejections and
// timeouts fail every requested product with the rejection reason.
func (r *Resilient) SyncInventory(ctx context.Context, productIDs []string) []domain.SyncResult {
	if len(productIDs) == 0 {
		return nil
	}

	budget := r.perItemTimeout * time.Duration(len(productIDs))
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	out, err := r.breaker.Execute(ctx, func() (interface{}, error) {
		results := r.inner.SyncInventory(ctx, productIDs)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return results, nil
	})
	if err != nil {
		return failedResults(productIDs, err.Error())
	}

	results, ok := out.([]domain.SyncResult)
	if !ok {
		return failedResults(productIDs, "unexpected adapter response")
	}
	return results
}

// UpdateStock pushes through the breaker with a single-item deadline.
func (r *Resilient) UpdateStock(ctx context.Context, productID string, quantity int) bool {
	ctx, cancel := context.WithTimeout(ctx, r.perItemTimeout)
	defer cancel()

	out, err := r.breaker.Execute(ctx, func() (interface{}, error) {
		return r.inner.UpdateStock(ctx, productID, quantity), nil
	})
	if err != nil {
		return false
	}

	ok, _ := out.(bool)
	return ok
}

func failedResults(productIDs []string, reason string) []domain.SyncResult {
	results := make([]domain.SyncResult, 0, len(productIDs))
	for _, id := range productIDs {
		results = append(results, domain.SyncResult{ProductID: id, Success: false, Error: reason})
	}
	return results
}
