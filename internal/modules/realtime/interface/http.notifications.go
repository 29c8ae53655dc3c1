package transport

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mesaYaAdmin/internal/modules/realtime/infrastructure"
)

// NotificationsHandler exposes /ws/notificaciones, the stream every admin page
// listens on to reload its list when an entity changes upstream.
type NotificationsHandler struct {
	hub *infrastructure.Hub
}

func NewNotificationsHandler(hub *infrastructure.Hub) *NotificationsHandler {
	return &NotificationsHandler{hub: hub}
}

func (h *NotificationsHandler) Register(g *echo.Group) {
	g.GET("/ws/notificaciones", h.Connect)
}

func (h *NotificationsHandler) Connect(c echo.Context) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	peerIP := c.RealIP()
	token, userID := identity(c)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("notifications ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
		return nil
	}

	sessionID := "notif-" + uuid.NewString()
	client := infrastructure.NewClient(h.hub, conn, userID, sessionID, token, 8, nil)
	h.hub.AttachClientToAll(client)

	go client.WritePump()
	go client.ReadPump()

	client.SendDomainMessage(connectedMessage("notifications", sessionID, userID, []string{"*"}))
	slog.Info("notifications ws connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("ip", peerIP), slog.String("reqID", requestID))
	return nil
}
