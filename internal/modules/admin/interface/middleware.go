package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaAdmin/internal/shared/auth"
)

// Authenticate resolves the operator token from the Authorization header, the
// token cookie or the token query parameter and stores it for the gateways.
// When the validator has no key configured every request is let through.
func Authenticate(validator *auth.JWTValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token := auth.ExtractToken(req, "token")

			if validator.Enabled() {
				claims, err := validator.Validate(token)
				if err != nil {
					status := http.StatusUnauthorized
					slog.Warn("admin request rejected",
						slog.String("path", req.URL.Path),
						slog.String("ip", c.RealIP()),
						slog.Bool("missingToken", errors.Is(err, auth.ErrMissingToken)),
						slog.Any("error", err),
					)
					return echo.NewHTTPError(status, "Sesión no válida")
				}
				c.Set(auth.ClaimsContextKey, claims)
			}

			// Tokens handed over in the URL are kept in a cookie so links and
			// form posts keep working.
			if token != "" && req.URL.Query().Get("token") == token {
				c.SetCookie(&http.Cookie{
					Name:     auth.TokenCookie,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(auth.TokenContextKey, token)
			return next(c)
		}
	}
}

// RequestLogger logs one slog line per request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			attrs := []any{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("latency", time.Since(start)),
				slog.String("requestId", res.Header().Get(echo.HeaderXRequestID)),
			}
			switch {
			case res.Status >= http.StatusInternalServerError:
				slog.Error("http request", append(attrs, slog.Any("error", err))...)
			case res.Status >= http.StatusBadRequest:
				slog.Warn("http request", attrs...)
			default:
				slog.Info("http request", attrs...)
			}
			return nil
		}
	}
}
