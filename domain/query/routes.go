package query

import (
	"github.com/labstack/echo/v4"

	"github.com/nervousmammoth/neo4j-api/pkg/auth"
)

// RegisterRoutes registers the query endpoint behind API-key auth.
func RegisterRoutes(e *echo.Echo, h *Handler, authMW *auth.Middleware) {
	g := e.Group("/api/:database/graph", authMW.RequireAPIKey())
	g.POST("/query", h.ExecuteQuery)
}
