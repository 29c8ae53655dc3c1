package transport

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mesaYaAdmin/internal/modules/realtime/application/usecase"
	domain "mesaYaAdmin/internal/modules/realtime/domain"
	"mesaYaAdmin/internal/modules/realtime/infrastructure"
	tables "mesaYaAdmin/internal/modules/tables/domain"
)

// AvailabilityHandler exposes /ws/reservas. The reservation form sends an
// availability command on every date, time or party size change and receives
// the table picker contents back.
type AvailabilityHandler struct {
	hub          *infrastructure.Hub
	availability *usecase.AvailabilityUseCase
}

func NewAvailabilityHandler(hub *infrastructure.Hub, availability *usecase.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{hub: hub, availability: availability}
}

func (h *AvailabilityHandler) Register(g *echo.Group) {
	g.GET("/ws/reservas", h.Connect)
}

func (h *AvailabilityHandler) Connect(c echo.Context) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	peerIP := c.RealIP()
	token, userID := identity(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("reservations ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
		return nil
	}

	sessionID := uuid.NewString()
	client := infrastructure.NewClient(h.hub, conn, userID, sessionID, token, 8, nil)
	client.Commands().Register(domain.ActionAvailability, h.handleAvailability)
	h.availability.Open(sessionID, token, client)
	client.AddCloseHook(func(cl *infrastructure.Client) {
		h.availability.Close(cl.SessionID())
	})
	h.hub.AttachClient(client, nil)

	go client.WritePump()
	go client.ReadPump()

	client.SendDomainMessage(connectedMessage("reservas", sessionID, userID, []string{domain.TopicAvailability}))
	slog.Info("reservations ws connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("ip", peerIP), slog.String("reqID", requestID))
	return nil
}

func (h *AvailabilityHandler) handleAvailability(_ context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
	query, err := decodeCommand[tables.AvailabilityQuery](cmd.Payload)
	if err != nil {
		slog.Warn("ws availability payload decode failed", slog.String("sessionId", client.SessionID()), slog.Any("error", err))
		sendCommandError(client, domain.AvailabilityEntity, domain.ActionAvailability, "invalid payload")
		return
	}
	if err := h.availability.Query(client.SessionID(), query); err != nil {
		slog.Warn("ws availability query rejected", slog.String("sessionId", client.SessionID()), slog.Any("error", err))
		sendCommandError(client, domain.AvailabilityEntity, domain.ActionAvailability, err.Error())
	}
}
