package infrastructure

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"mesaYaAdmin/internal/modules/admin/application/port"
	"mesaYaAdmin/internal/shared/normalization"
)

const maxErrorBody = 2048

// decodeAPIError turns a non-2xx response into a *port.APIError carrying the
// message the API reported, which may be a string or a list of strings.
func decodeAPIError(res *http.Response) *port.APIError {
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	apiErr := &port.APIError{
		Status:  res.StatusCode,
		Message: extractMessage(body),
		Kind:    kindForStatus(res.StatusCode),
	}
	if apiErr.Kind == port.ErrUpstream {
		slog.Error("api unexpected status",
			slog.Int("status", res.StatusCode),
			slog.String("url", res.Request.URL.String()),
			slog.String("body", strings.TrimSpace(string(body))),
		)
	}
	return apiErr
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return port.ErrForbidden
	case status == http.StatusNotFound:
		return port.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusConflict || status == http.StatusUnprocessableEntity:
		return port.ErrValidation
	default:
		return port.ErrUpstream
	}
}

func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	container, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	switch typed := container["message"].(type) {
	case string:
		return strings.TrimSpace(typed)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if text := normalization.AsString(item); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, "; ")
	}
	return normalization.AsString(container["error"])
}
