package infrastructure

import (
	"context"
	"log/slog"

	"mesaYaAdmin/internal/modules/realtime/application/port"
	"mesaYaAdmin/internal/modules/realtime/domain"
)

// HandlerRegistry routes consumed events to the handler registered for the
// Kafka topic they were read from.
type HandlerRegistry struct {
	handlers map[string][]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string][]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = append(r.handlers[h.Topic()], h)
}

// Topics lists the Kafka topics that have at least one handler.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	source := msg.Source
	if source == "" {
		source = msg.Topic
	}
	handlers, ok := r.handlers[source]
	if !ok {
		slog.Debug("no handler for topic", slog.String("topic", source))
		return nil
	}
	for _, handler := range handlers {
		if err := handler.Handle(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}
