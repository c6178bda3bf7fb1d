package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nervousmammoth/neo4j-api/internal/config"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
)

// Handler handles health check requests. Health endpoints are public: no
// API key required.
type Handler struct {
	store graphdb.Store
	cfg   *config.Config
}

// NewHandler creates a new health handler.
func NewHandler(store graphdb.Store, cfg *config.Config) *Handler {
	return &Handler{store: store, cfg: cfg}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Neo4j   string `json:"neo4j"`
	Version string `json:"version"`
	Error   string `json:"error,omitempty"`
}

// Health reports API health and Neo4j connectivity.
// GET /api/health
func (h *Handler) Health(c echo.Context) error {
	version := h.cfg.API.Version

	if !h.store.Available() {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "unhealthy",
			Neo4j:   "disconnected",
			Version: version,
			Error:   "Neo4j client not initialized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.store.VerifyConnectivity(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "unhealthy",
			Neo4j:   "disconnected",
			Version: version,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Neo4j:   "connected",
		Version: version,
	})
}

// Healthz is a bare liveness probe.
// GET /healthz
func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
