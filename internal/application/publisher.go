package application

import "context"

// EventPublisher is the outbound event boundary. Publishing is best
// effort; services log failures and never fail the operation over them.
type EventPublisher interface {
	Publish(ctx context.Context, topic, eventType, subject string, data interface{}) error
}

// NoopPublisher drops all events. Used when eventing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, topic, eventType, subject string, data interface{}) error {
	return nil
}
