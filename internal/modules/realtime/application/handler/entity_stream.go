package handler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"mesaYaAdmin/internal/modules/realtime/application/port"
	"mesaYaAdmin/internal/modules/realtime/application/usecase"
	"mesaYaAdmin/internal/modules/realtime/domain"
	"mesaYaAdmin/internal/shared/normalization"
)

// AvailabilityRefresher repeats the open table picker lookups.
type AvailabilityRefresher interface {
	Refresh() int
}

// EntityStreamHandler forwards the events of one Kafka topic to the browser as
// "<entity>.changed" so open lists reload. Actions outside the allowed set are
// dropped.
type EntityStreamHandler struct {
	entity         string
	kafkaTopic     string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
	availability   AvailabilityRefresher
}

func NewEntityStreamHandler(entity, kafkaTopic string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase, availability AvailabilityRefresher) *EntityStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityStreamHandler{
		entity:         normalization.NormalizeEntity(entity),
		kafkaTopic:     kafkaTopic,
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
		availability:   availability,
	}
}

func (h *EntityStreamHandler) Topic() string { return h.kafkaTopic }

func (h *EntityStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	action := strings.ToLower(strings.TrimSpace(msg.Action))
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[action]; !ok {
			slog.Debug("entity-stream action ignored", slog.String("topic", h.kafkaTopic), slog.String("action", msg.Action))
			return nil
		}
	}

	entity := h.entity
	if entity == "" {
		entity = normalization.NormalizeEntity(msg.Entity)
	}
	if !normalization.IsValidEntity(entity) {
		slog.Debug("entity-stream unknown entity", slog.String("topic", h.kafkaTopic), slog.String("entity", msg.Entity))
		return nil
	}

	timestamp := msg.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	metadata := domain.Metadata{"action": action}
	if msg.ResourceID != "" {
		metadata["resourceId"] = msg.ResourceID
	}
	h.broadcastUC.Execute(ctx, &domain.Message{
		Topic:      domain.ChangedTopic(entity),
		Entity:     entity,
		Action:     domain.ActionChanged,
		ResourceID: msg.ResourceID,
		Metadata:   metadata,
		Timestamp:  timestamp,
	})

	if h.availability != nil && entity != normalization.EntityCustomers {
		refreshed := h.availability.Refresh()
		slog.Info("entity-stream refresh availability", slog.String("entity", entity), slog.String("action", action), slog.Int("sessions", refreshed))
	}
	return nil
}

var _ port.TopicHandler = (*EntityStreamHandler)(nil)
