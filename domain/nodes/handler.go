// Package nodes implements direct node lookup, neighborhood expansion and
// element counting.
package nodes

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nervousmammoth/neo4j-api/domain/query"
	"github.com/nervousmammoth/neo4j-api/internal/config"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
	"github.com/nervousmammoth/neo4j-api/pkg/apperror"
	"github.com/nervousmammoth/neo4j-api/pkg/logger"
)

const (
	defaultExpandLimit = 100
	maxExpandLimit     = 1000
)

// Handler handles node operation requests.
type Handler struct {
	store graphdb.Store
	cfg   *config.Config
	log   *slog.Logger
}

// NewHandler creates a new nodes handler.
func NewHandler(store graphdb.Store, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		store: store,
		cfg:   cfg,
		log:   log.With(logger.Scope("nodes")),
	}
}

// CountResponse is the payload for count endpoints.
type CountResponse struct {
	Count int64 `json:"count"`
}

// ExpandRequest is the request body for neighborhood expansion.
type ExpandRequest struct {
	NodeID string `json:"node_id"`
	Limit  int    `json:"limit"`
}

// GraphResponse carries graph elements in Linkurious format.
type GraphResponse struct {
	Nodes []query.Node `json:"nodes"`
	Edges []query.Edge `json:"edges"`
}

// GetNode fetches a single node by element id.
// GET /api/:database/graph/nodes/:id
func (h *Handler) GetNode(c echo.Context) error {
	nodeID := c.Param("id")
	database := c.Param("database")

	if !h.store.Available() {
		return apperror.ErrNeo4jUnavailable
	}

	records, err := h.store.ExecuteQuery(
		c.Request().Context(),
		"MATCH (n) WHERE elementId(n) = $id RETURN n",
		map[string]any{"id": nodeID},
		database,
		h.cfg.API.QueryTimeout(),
	)
	if err != nil {
		return err
	}

	nodes, _ := query.ExtractGraphElements(records)
	if len(nodes) == 0 {
		return apperror.ErrNodeNotFound.WithDetails(map[string]any{
			"node_id":  nodeID,
			"database": database,
		})
	}

	return c.JSON(http.StatusOK, nodes[0])
}

// ExpandNode returns a node's direct neighborhood.
// POST /api/:database/graph/nodes/expand
func (h *Handler) ExpandNode(c echo.Context) error {
	var req ExpandRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body").WithInternal(err)
	}
	if req.NodeID == "" {
		return apperror.NewBadRequest("node_id must not be empty")
	}
	if req.Limit <= 0 {
		req.Limit = defaultExpandLimit
	}
	if req.Limit > maxExpandLimit {
		req.Limit = maxExpandLimit
	}

	if !h.store.Available() {
		return apperror.ErrNeo4jUnavailable
	}

	records, err := h.store.ExecuteQuery(
		c.Request().Context(),
		`MATCH (n) WHERE elementId(n) = $id
MATCH (n)-[r]-(m)
RETURN n, r, m
LIMIT $limit`,
		map[string]any{"id": req.NodeID, "limit": req.Limit},
		c.Param("database"),
		h.cfg.API.QueryTimeout(),
	)
	if err != nil {
		return err
	}

	nodes, edges := query.ExtractGraphElements(records)

	return c.JSON(http.StatusOK, GraphResponse{Nodes: nodes, Edges: edges})
}

// CountNodes returns the total node count.
// GET /api/:database/graph/nodes/count
func (h *Handler) CountNodes(c echo.Context) error {
	return h.count(c, "MATCH (n) RETURN count(n) AS count")
}

// CountEdges returns the total relationship count.
// GET /api/:database/graph/edges/count
func (h *Handler) CountEdges(c echo.Context) error {
	return h.count(c, "MATCH ()-[r]->() RETURN count(r) AS count")
}

func (h *Handler) count(c echo.Context, cypher string) error {
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

	var count int64
	if len(records) > 0 && len(records[0].Values) > 0 {
		if s, ok := records[0].Values[0].(graphdb.Scalar); ok {
			if n, ok := s.Val.(int64); ok {
				count = n
			}
		}
	}

	return c.JSON(http.StatusOK, CountResponse{Count: count})
}
