// Package schema exposes label and relationship-type discovery endpoints.
package schema

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nervousmammoth/neo4j-api/internal/config"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
	"github.com/nervousmammoth/neo4j-api/pkg/apperror"
	"github.com/nervousmammoth/neo4j-api/pkg/logger"
)

// Handler handles schema discovery requests.
type Handler struct {
	store graphdb.Store
	cfg   *config.Config
	log   *slog.Logger
}

// NewHandler creates a new schema handler.
func NewHandler(store graphdb.Store, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		store: store,
		cfg:   cfg,
		log:   log.With(logger.Scope("schema")),
	}
}

// TypesResponse lists node labels or relationship types.
type TypesResponse struct {
	Types []string `json:"types"`
}

// NodeTypes returns all node labels in the database.
// GET /api/:database/graph/schema/node/types
func (h *Handler) NodeTypes(c echo.Context) error {
	return h.listTypes(c, "CALL db.labels() YIELD label RETURN label")
}

// EdgeTypes returns all relationship types in the database.
// GET /api/:database/graph/schema/edge/types
func (h *Handler) EdgeTypes(c echo.Context) error {
	return h.listTypes(c, "CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType")
}

func (h *Handler) listTypes(c echo.Context, cypher string) error {
	if !h.store.Available() {
		return apperror.ErrNeo4jUnavailable
	}

	records, err := h.store.ExecuteQuery(
		c.Request().Context(),
		cypher,
		nil,
		c.Param("database"),
		h.cfg.API.QueryTimeout(),
	)
	if err != nil {
		return err
	}

	types := make([]string, 0, len(records))
	for _, rec := range records {
		for _, v := range rec.Values {
			if s, ok := v.(graphdb.Scalar); ok {
				if name, ok := s.Val.(string); ok {
					types = append(types, name)
				}
			}
		}
	}

	return c.JSON(http.StatusOK, TypesResponse{Types: types})
}
