package port

import (
	"context"

	"mesaYaAdmin/internal/modules/realtime/domain"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

// PubSubPort consumes external events (Kafka) until ctx is done.
type PubSubPort interface {
	Consume(ctx context.Context, handler func(*domain.Message) error) error
}

// Broadcaster pushes a message to the connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler is registered per Kafka topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// MessageSender delivers a message to a single websocket session.
type MessageSender interface {
	SendDomainMessage(msg *domain.Message)
}

// AvailabilityFinder resolves the tables free for a reservation query.
type AvailabilityFinder interface {
	Availability(ctx context.Context, token string, query tables.AvailabilityQuery) ([]tables.Table, error)
}
