package domain

import "context"

// EventPublisher is the messaging port for order events.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}
