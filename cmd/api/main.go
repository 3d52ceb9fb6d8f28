package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stocksync/inventory-service/internal/api/handlers"
	"github.com/stocksync/inventory-service/internal/application"
	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/internal/infrastructure/adapters"
	"github.com/stocksync/inventory-service/internal/infrastructure/events"
	"github.com/stocksync/inventory-service/internal/infrastructure/memory"
	mongostore "github.com/stocksync/inventory-service/internal/infrastructure/mongodb"
	"github.com/stocksync/inventory-service/pkg/kafka"
	"github.com/stocksync/inventory-service/pkg/logging"
	"github.com/stocksync/inventory-service/pkg/metrics"
	"github.com/stocksync/inventory-service/pkg/middleware"
	"github.com/stocksync/inventory-service/pkg/mongodb"
	"github.com/stocksync/inventory-service/pkg/resilience"
	"github.com/stocksync/inventory-service/pkg/tracing"
)

const serviceName = "inventory-service"

func main() {
	logger := logging.New(&logging.Config{
		Level:       logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		ServiceName: serviceName,
		Environment: getEnv("ENVIRONMENT", "development"),
		Version:     getEnv("VERSION", "unknown"),
	})
	logger.SetDefault()

	if err := run(logger); err != nil {
		logger.WithError(err).Error("Service exited with error")
		os.Exit(1)
	}
}

func run(logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(getEnv("GIN_MODE", gin.ReleaseMode))

	tracerProvider, err := tracing.Initialize(ctx, &tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: getEnv("VERSION", "unknown"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
		SampleRate:     1.0,
		Enabled:        getEnv("TRACING_ENABLED", "false") == "true",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracerProvider.Shutdown(shutdownCtx)
	}()

	store, closeStore, err := buildStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	m := metrics.New(metrics.DefaultConfig(serviceName))

	publisher, closePublisher := buildPublisher(logger, m)
	defer closePublisher()

	breakers := resilience.NewCircuitBreakerRegistry(logger.Logger)
	registry := adapters.NewRegistry(breakers)

	locks := application.NewRecordLocks()

	productService := application.NewProductService(store, logger)
	channelService := application.NewChannelService(store, logger)
	inventoryService := application.NewInventoryService(store, logger)
	ledgerService := application.NewLedgerService(store, publisher, logger, locks)
	syncService := application.NewSyncService(store, registry, publisher, logger, locks)
	dashboardService := application.NewDashboardService(store, logger)

	router := gin.New()
	middleware.Setup(router, middleware.DefaultConfig(serviceName, logger.Logger))
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.SimpleTracingMiddleware(serviceName))
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return store.HealthCheck(checkCtx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	api := router.Group("/api/v1")
	handlers.NewProductHandler(productService, logger).RegisterRoutes(api)
	handlers.NewChannelHandler(channelService, syncService, m, logger).RegisterRoutes(api)
	handlers.NewInventoryHandler(inventoryService, syncService, logger).RegisterRoutes(api)
	handlers.NewMovementHandler(ledgerService, m, logger).RegisterRoutes(api)
	handlers.NewDashboardHandler(dashboardService, logger).RegisterRoutes(api)

	srv := &http.Server{
		Addr:              ":" + getEnv("PORT", "8080"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("Shutdown complete")
	return nil
}

func buildStore(ctx context.Context, logger *logging.Logger) (domain.Store, func(), error) {
	backend := getEnv("STORE_BACKEND", "memory")
	switch backend {
	case "memory":
		logger.Info("Using in-memory store")
		return memory.NewStore(), func() {}, nil

	case "mongodb":
		client, err := mongodb.NewClient(ctx, &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "inventory"),
			ConnectTimeout: 10 * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		logger.Info("Using mongodb store", "database", getEnv("MONGODB_DATABASE", "inventory"))
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Close(closeCtx)
		}
		return mongostore.NewStore(client), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

func buildPublisher(logger *logging.Logger, m *metrics.Metrics) (application.EventPublisher, func()) {
	if getEnv("EVENTS_ENABLED", "false") != "true" {
		logger.Info("Event publishing disabled")
		return application.NoopPublisher{}, func() {}
	}

	config := kafka.DefaultConfig()
	config.Brokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	config.ClientID = serviceName

	producer := kafka.NewProducer(config)
	publisher := events.NewKafkaPublisher(producer, logger, m)
	logger.Info("Event publishing enabled", "brokers", getEnv("KAFKA_BROKERS", "localhost:9092"))
	return publisher, func() { _ = publisher.Close() }
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
