// Package auth implements the gateway's shared-secret authentication.
package auth

import (
	"crypto/subtle"
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/nervousmammoth/neo4j-api/internal/config"
	"github.com/nervousmammoth/neo4j-api/pkg/apperror"
	"github.com/nervousmammoth/neo4j-api/pkg/logger"
)

// HeaderAPIKey is the request header carrying the shared secret.
// Header name matching is case-insensitive (net/http canonicalizes it);
// the value comparison is exact, with no trimming.
const HeaderAPIKey = "X-API-Key"

var Module = fx.Module("auth",
	fx.Provide(NewMiddleware),
)

// Middleware authenticates requests against the configured API key.
type Middleware struct {
	cfg *config.Config
	log *slog.Logger
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(cfg *config.Config, log *slog.Logger) *Middleware {
	return &Middleware{
		cfg: cfg,
		log: log.With(logger.Scope("auth")),
	}
}

// RequireAPIKey returns an Echo middleware that rejects requests without a
// valid X-API-Key header. The key comparison is constant-time.
func (m *Middleware) RequireAPIKey() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderAPIKey)
			if key == "" {
				m.log.Warn("request rejected: missing API key",
					slog.String("path", c.Request().URL.Path),
				)
				return apperror.ErrMissingAPIKey
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(m.cfg.API.Key)) != 1 {
				m.log.Warn("request rejected: invalid API key",
					slog.String("path", c.Request().URL.Path),
				)
				return apperror.ErrInvalidAPIKey
			}

			return next(c)
		}
	}
}
