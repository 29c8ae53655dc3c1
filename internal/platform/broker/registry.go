package broker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"mesaYaAdmin/internal/modules/realtime/application/port"
	"mesaYaAdmin/internal/modules/realtime/domain"
)

// Dispatcher routes a consumed event to its topic handlers.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg *domain.Message) error
}

// StartKafkaConsumers runs one consumer per topic until ctx is done. The
// returned wait function blocks until every consumer has stopped.
func StartKafkaConsumers(
	ctx context.Context,
	dispatcher Dispatcher,
	brokers []string,
	groupID string,
	topics []string,
) (wait func() error) {
	if len(brokers) == 0 || len(topics) == 0 {
		slog.Info("kafka consumers disabled", slog.Int("brokers", len(brokers)), slog.Int("topics", len(topics)))
		return func() error { return nil }
	}
	consumers := make([]port.PubSubPort, 0, len(topics))
	for _, topic := range topics {
		consumers = append(consumers, NewKafkaConsumer(brokers, groupID, topic))
	}
	return runConsumers(ctx, dispatcher, consumers)
}

func runConsumers(ctx context.Context, dispatcher Dispatcher, consumers []port.PubSubPort) func() error {
	group, groupCtx := errgroup.WithContext(ctx)
	for _, consumer := range consumers {
		consumer := consumer
		group.Go(func() error {
			return consumer.Consume(groupCtx, func(msg *domain.Message) error {
				return dispatcher.Dispatch(groupCtx, msg)
			})
		})
	}
	slog.Info("kafka consumers started", slog.Int("count", len(consumers)))
	return group.Wait
}
