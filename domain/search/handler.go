// Package search implements substring search over nodes and relationships.
//
// Search is a simple parameterized CONTAINS scan, case-insensitive, across
// every string-convertible property. It never interpolates user input into
// Cypher text.
package search

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nervousmammoth/neo4j-api/domain/query"
	"github.com/nervousmammoth/neo4j-api/internal/config"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
	"github.com/nervousmammoth/neo4j-api/pkg/apperror"
	"github.com/nervousmammoth/neo4j-api/pkg/logger"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

const nodeSearchCypher = `
MATCH (n)
WHERE any(key IN keys(n) WHERE toLower(toString(n[key])) CONTAINS toLower($term))
RETURN n
LIMIT $limit`

const edgeSearchCypher = `
MATCH (a)-[r]->(b)
WHERE any(key IN keys(r) WHERE toLower(toString(r[key])) CONTAINS toLower($term))
   OR toLower(type(r)) CONTAINS toLower($term)
RETURN a, r, b
LIMIT $limit`

// Handler handles search requests.
type Handler struct {
	store graphdb.Store
	cfg   *config.Config
	log   *slog.Logger
}

// NewHandler creates a new search handler.
func NewHandler(store graphdb.Store, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		store: store,
		cfg:   cfg,
		log:   log.With(logger.Scope("search")),
	}
}

// SearchResponse carries matched graph elements in Linkurious format.
type SearchResponse struct {
	Nodes []query.Node `json:"nodes"`
	Edges []query.Edge `json:"edges"`
}

// SearchNodes searches node properties for a substring.
// GET /api/:database/search/node/full?q=...&limit=N
func (h *Handler) SearchNodes(c echo.Context) error {
	return h.search(c, nodeSearchCypher)
}

// SearchEdges searches relationship properties and types for a substring.
// GET /api/:database/search/edge/full?q=...&limit=N
func (h *Handler) SearchEdges(c echo.Context) error {
	return h.search(c, edgeSearchCypher)
}

func (h *Handler) search(c echo.Context, cypher string) error {
	term := c.QueryParam("q")
	if term == "" {
		return apperror.NewBadRequest("query parameter 'q' is required")
	}

	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return err
	}

	if !h.store.Available() {
		return apperror.ErrNeo4jUnavailable
	}

	records, execErr := h.store.ExecuteQuery(
		c.Request().Context(),
		cypher,
		map[string]any{"term": term, "limit": limit},
		c.Param("database"),
		h.cfg.API.QueryTimeout(),
	)
	if execErr != nil {
		return execErr
	}

	nodes, edges := query.ExtractGraphElements(records)

	return c.JSON(http.StatusOK, SearchResponse{Nodes: nodes, Edges: edges})
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, apperror.NewBadRequest("limit must be a positive integer")
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, nil
}
