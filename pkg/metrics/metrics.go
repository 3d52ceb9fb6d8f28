package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all inventory service metrics
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Ledger metrics
	MovementsRecorded *prometheus.CounterVec

	// Sync metrics
	SyncCyclesTotal *prometheus.CounterVec
	SyncDuration    *prometheus.HistogramVec
	ItemsSynced     *prometheus.CounterVec

	// Channel API metrics
	ChannelAPIRequests *prometheus.CounterVec
	ChannelAPIDuration *prometheus.HistogramVec

	// Event metrics
	EventsPublished *prometheus.CounterVec
	PublishDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
}

// DefaultConfig returns default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "inventory",
	}
}

// New creates a new Metrics instance
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		serviceName: config.ServiceName,
		registry:    registry,
	}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "path"},
	)

	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being processed",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	m.MovementsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "movements_recorded_total",
			Help:      "Total number of stock movements recorded",
		},
		[]string{"service", "type"},
	)

	m.SyncCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "sync_cycles_total",
			Help:      "Total number of channel sync cycles",
		},
		[]string{"service", "channel_type", "status"},
	)

	m.SyncDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "sync_duration_seconds",
			Help:      "Channel sync cycle duration in seconds",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"service", "channel_type"},
	)

	m.ItemsSynced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "items_synced_total",
			Help:      "Total number of inventory records synced from channels",
		},
		[]string{"service", "channel_type", "status"},
	)

	m.ChannelAPIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "channel_api_requests_total",
			Help:      "Total number of outbound channel API requests",
		},
		[]string{"service", "channel_type", "operation", "status"},
	)

	m.ChannelAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "channel_api_request_duration_seconds",
			Help:      "Outbound channel API request duration in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "channel_type", "operation"},
	)

	m.EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "events_published_total",
			Help:      "Total number of domain events published",
		},
		[]string{"service", "topic", "event_type", "status"},
	)

	m.PublishDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "event_publish_duration_seconds",
			Help:      "Domain event publish duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"service", "topic"},
	)

	m.CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"service", "name"},
	)

	m.CircuitBreakerTrips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "circuit_breaker_trips_total",
			Help:      "Total number of circuit breaker trips",
		},
		[]string{"service", "name"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.MovementsRecorded,
		m.SyncCyclesTotal,
		m.SyncDuration,
		m.ItemsSynced,
		m.ChannelAPIRequests,
		m.ChannelAPIDuration,
		m.EventsPublished,
		m.PublishDuration,
		m.CircuitBreakerState,
		m.CircuitBreakerTrips,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments in-flight requests
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements in-flight requests
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}

// RecordMovement records a ledger movement by type
func (m *Metrics) RecordMovement(movementType string) {
	m.MovementsRecorded.WithLabelValues(m.serviceName, movementType).Inc()
}

// RecordSyncCycle records a completed sync cycle
func (m *Metrics) RecordSyncCycle(channelType, status string, duration time.Duration) {
	m.SyncCyclesTotal.WithLabelValues(m.serviceName, channelType, status).Inc()
	m.SyncDuration.WithLabelValues(m.serviceName, channelType).Observe(duration.Seconds())
}

// RecordItemsSynced records per-item sync outcomes
func (m *Metrics) RecordItemsSynced(channelType string, succeeded, failed int) {
	if succeeded > 0 {
		m.ItemsSynced.WithLabelValues(m.serviceName, channelType, "success").Add(float64(succeeded))
	}
	if failed > 0 {
		m.ItemsSynced.WithLabelValues(m.serviceName, channelType, "error").Add(float64(failed))
	}
}

// RecordChannelAPIRequest records an outbound platform API call
func (m *Metrics) RecordChannelAPIRequest(channelType, operation string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ChannelAPIRequests.WithLabelValues(m.serviceName, channelType, operation, status).Inc()
	m.ChannelAPIDuration.WithLabelValues(m.serviceName, channelType, operation).Observe(duration.Seconds())
}

// RecordEventPublished records a domain event publish
func (m *Metrics) RecordEventPublished(topic, eventType string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(m.serviceName, topic, eventType, status).Inc()
	m.PublishDuration.WithLabelValues(m.serviceName, topic).Observe(duration.Seconds())
}

// SetCircuitBreakerState sets the state gauge for a breaker
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.CircuitBreakerState.WithLabelValues(m.serviceName, name).Set(float64(state))
}

// RecordCircuitBreakerTrip records a breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(name string) {
	m.CircuitBreakerTrips.WithLabelValues(m.serviceName, name).Inc()
}
