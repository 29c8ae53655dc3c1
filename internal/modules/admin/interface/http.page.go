package transport

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaAdmin/internal/modules/admin/application/port"
	"mesaYaAdmin/internal/shared/auth"
)

// Page is the frame shared by every view: navigation state and the two
// dismissable alerts.
type Page struct {
	Title  string
	Active string
	Flash  string
	Error  string
}

var flashMessages = map[string]map[string]string{
	"clientes": {
		"creado":      "Cliente creado correctamente.",
		"actualizado": "Cliente actualizado correctamente.",
		"eliminado":   "Cliente eliminado correctamente.",
	},
	"mesas": {
		"creado":      "Mesa creada correctamente.",
		"actualizado": "Mesa actualizada correctamente.",
		"eliminado":   "Mesa eliminada correctamente.",
	},
	"reservas": {
		"creado":    "Reserva creada correctamente.",
		"cancelado": "Reserva cancelada.",
	},
}

func newPage(c echo.Context, title, active string) Page {
	return Page{
		Title:  title,
		Active: active,
		Flash:  flashMessages[active][strings.TrimSpace(c.QueryParam("ok"))],
	}
}

// tokenFrom returns the operator token stored by the auth middleware.
func tokenFrom(c echo.Context) string {
	token, _ := c.Get(auth.TokenContextKey).(string)
	return token
}

// redirectWithFlash implements post/redirect/get so a reload never resubmits.
func redirectWithFlash(c echo.Context, target, flash string) error {
	return c.Redirect(http.StatusSeeOther, target+"?ok="+url.QueryEscape(flash))
}

// failureMessage prefixes the message the API (or validation) reported.
func failureMessage(prefix string, err error) string {
	return prefix + ": " + port.ErrorMessage(err)
}

// failureStatus is the status used when a form is re-rendered with an error.
func failureStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, port.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, port.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, port.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}
