package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaAdmin/internal/shared/auth"
)

// RouteRegistrar is implemented by every handler group mounted behind the
// admin authentication.
type RouteRegistrar interface {
	Register(g *echo.Group)
}

// Mount installs the renderer, the health check and the authenticated admin
// routes on e.
func Mount(e *echo.Echo, validator *auth.JWTValidator, registrars ...RouteRegistrar) error {
	renderer, err := NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	group := e.Group("", Authenticate(validator))
	for _, registrar := range registrars {
		registrar.Register(group)
	}
	return nil
}
