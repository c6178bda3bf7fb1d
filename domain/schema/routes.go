package schema

import (
	"github.com/labstack/echo/v4"

	"github.com/nervousmammoth/neo4j-api/pkg/auth"
)

// RegisterRoutes registers schema discovery routes behind API-key auth.
func RegisterRoutes(e *echo.Echo, h *Handler, authMW *auth.Middleware) {
	g := e.Group("/api/:database/graph/schema", authMW.RequireAPIKey())
	g.GET("/node/types", h.NodeTypes)
	g.GET("/edge/types", h.EdgeTypes)
}
