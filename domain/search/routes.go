package search

import (
	"github.com/labstack/echo/v4"

	"github.com/nervousmammoth/neo4j-api/pkg/auth"
)

// RegisterRoutes registers search routes behind API-key auth.
func RegisterRoutes(e *echo.Echo, h *Handler, authMW *auth.Middleware) {
	g := e.Group("/api/:database/search", authMW.RequireAPIKey())
	g.GET("/node/full", h.SearchNodes)
	g.GET("/edge/full", h.SearchEdges)
}
