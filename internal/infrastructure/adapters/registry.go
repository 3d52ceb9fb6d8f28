package adapters

import (
	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/resilience"
)

// NewRegistry wires one adapter per supported channel type, each behind
// its own circuit breaker.
func NewRegistry(breakers *resilience.CircuitBreakerRegistry) *domain.AdapterRegistry {
	registry := domain.NewAdapterRegistry()

	for _, adapter := range []domain.ChannelAdapter{
		NewShopifyAdapter(),
		NewWooCommerceAdapter(),
		NewAmazonAdapter(),
		NewEbayAdapter(),
		NewManualAdapter(),
	} {
		breaker := breakers.Get("adapter-" + string(adapter.Type()))
		registry.Register(NewResilient(adapter, breaker))
	}

	return registry
}
