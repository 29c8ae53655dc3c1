package transport

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	domain "mesaYaAdmin/internal/modules/realtime/domain"
	"mesaYaAdmin/internal/modules/realtime/infrastructure"
	"mesaYaAdmin/internal/shared/auth"
)

// upgrader keeps gorilla's same-origin check: the token may come from the
// session cookie, so a foreign page must not open a socket with it.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// identity returns the token and operator id stored by the auth middleware.
// Without a configured key the operator is anonymous.
func identity(c echo.Context) (token, userID string) {
	token, _ = c.Get(auth.TokenContextKey).(string)
	if token == "" {
		token = auth.ExtractToken(c.Request(), "token")
	}
	if claims, ok := c.Get(auth.ClaimsContextKey).(*auth.Claims); ok && claims != nil {
		userID = claims.Subject
	}
	if userID == "" {
		userID = "anonymous"
	}
	return token, userID
}

func sendCommandError(client *infrastructure.Client, entity, action, reason string) {
	metadata := domain.Metadata{
		"sessionId": client.SessionID(),
		"action":    action,
	}
	if strings.TrimSpace(reason) != "" {
		metadata["reason"] = reason
	}
	message := &domain.Message{
		Topic:    domain.ErrorTopic(entity),
		Entity:   entity,
		Action:   domain.ActionError,
		Metadata: metadata,
		Data: map[string]string{
			"message": reason,
		},
		Timestamp: time.Now().UTC(),
	}
	client.SendDomainMessage(message)
}

func connectedMessage(mode, sessionID, userID string, topics []string) *domain.Message {
	return &domain.Message{
		Topic:  domain.TopicSystemConnected,
		Entity: domain.SystemEntity,
		Action: domain.ActionConnected,
		Metadata: domain.Metadata{
			"sessionId": sessionID,
			"userId":    userID,
		},
		Data: map[string]any{
			"mode":   mode,
			"topics": topics,
		},
		Timestamp: time.Now().UTC(),
	}
}

func decodeCommand[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(raw) == 0 {
		return payload, nil
	}
	return payload, json.Unmarshal(raw, &payload)
}
