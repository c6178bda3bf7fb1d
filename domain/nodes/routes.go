package nodes

import (
	"github.com/labstack/echo/v4"

	"github.com/nervousmammoth/neo4j-api/pkg/auth"
)

// RegisterRoutes registers node operation routes behind API-key auth.
// Static segments register before the :id route so "count" and "expand"
// are not captured as node ids.
func RegisterRoutes(e *echo.Echo, h *Handler, authMW *auth.Middleware) {
	g := e.Group("/api/:database/graph", authMW.RequireAPIKey())
	g.GET("/nodes/count", h.CountNodes)
	g.POST("/nodes/expand", h.ExpandNode)
	g.GET("/nodes/:id", h.GetNode)
	g.GET("/edges/count", h.CountEdges)
}
