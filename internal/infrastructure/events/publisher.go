package events

import (
	"context"
	"time"

	"github.com/stocksync/inventory-service/pkg/kafka"
	"github.com/stocksync/inventory-service/pkg/logging"
	"github.com/stocksync/inventory-service/pkg/metrics"
)

const source = "inventory-service"

// KafkaPublisher emits domain events to Kafka with publish metrics.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *logging.Logger
	metrics  *metrics.Metrics
}

// NewKafkaPublisher creates a publisher over an existing producer.
func NewKafkaPublisher(producer *kafka.Producer, logger *logging.Logger, m *metrics.Metrics) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		logger:   logger.WithComponent("events"),
		metrics:  m,
	}
}

// Publish wraps the payload in the event envelope and sends it keyed by
// subject so events for one entity stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, eventType, subject string, data interface{}) error {
	event := kafka.NewEvent(eventType, source, subject, data)

	started := time.Now()
	err := p.producer.PublishEvent(ctx, topic, event)
	duration := time.Since(started)

	p.logger.EventPublish(ctx, topic, eventType, err == nil, duration)
	if p.metrics != nil {
		p.metrics.RecordEventPublished(topic, eventType, err == nil, duration)
	}
	return err
}

// Close releases the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
