package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	domain "mesaYaAdmin/internal/modules/realtime/domain"
	"mesaYaAdmin/internal/shared/normalization"
)

// EventSink receives entity events pushed over HTTP.
type EventSink interface {
	Handle(ctx context.Context, msg *domain.Message) error
}

// EventRequest is the body of POST /eventos, the same shape as the Kafka events.
type EventRequest struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
}

// EventResponse acknowledges an accepted event.
type EventResponse struct {
	Success bool   `json:"success"`
	Entity  string `json:"entity"`
	Action  string `json:"action"`
}

// EventsHandler lets the reservation API push entity events when no Kafka
// broker is deployed. Accepted events follow the Kafka path.
type EventsHandler struct {
	sink EventSink
}

func NewEventsHandler(sink EventSink) *EventsHandler {
	return &EventsHandler{sink: sink}
}

func (h *EventsHandler) Register(g *echo.Group) {
	g.POST("/eventos", h.Publish)
}

func (h *EventsHandler) Publish(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		slog.Warn("events http: invalid request body", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entity := normalization.NormalizeEntity(req.Entity)
	if !normalization.IsValidEntity(entity) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown entity")
	}
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "action field is required")
	}

	msg := &domain.Message{
		Topic:      domain.CustomTopic(entity, action),
		Entity:     entity,
		Action:     action,
		ResourceID: strings.TrimSpace(req.ResourceID),
		Metadata:   req.Metadata,
		Data:       req.Data,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.sink.Handle(c.Request().Context(), msg); err != nil {
		slog.Error("events http: dispatch failed", slog.String("entity", entity), slog.String("action", action), slog.Any("error", err))
		return echo.NewHTTPError(http.StatusBadGateway, "event dispatch failed")
	}

	slog.Info("events http: event accepted",
		slog.String("entity", entity),
		slog.String("action", action),
		slog.String("resourceId", msg.ResourceID),
	)
	return c.JSON(http.StatusAccepted, EventResponse{Success: true, Entity: entity, Action: action})
}
