package query

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nervousmammoth/neo4j-api/internal/config"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
	"github.com/nervousmammoth/neo4j-api/pkg/apperror"
	"github.com/nervousmammoth/neo4j-api/pkg/logger"
)

// maxQueryLength bounds how much of the caller's query text is echoed back
// in error payloads.
const maxQueryLength = 100

// tracer is resolved lazily through the global provider, so it is a no-op
// unless the tracing module installed an exporter.
var tracer = otel.Tracer("domain/query")

// Handler handles the read-only Cypher query endpoint.
type Handler struct {
	store graphdb.Store
	cfg   *config.Config
	log   *slog.Logger
}

// NewHandler creates a new query handler.
func NewHandler(store graphdb.Store, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		store: store,
		cfg:   cfg,
		log:   log.With(logger.Scope("query")),
	}
}

// ExecuteQuery executes a read-only Cypher query against the path-selected
// database and returns the result as Linkurious nodes/edges.
// POST /api/:database/graph/query
func (h *Handler) ExecuteQuery(c echo.Context) error {
	database := c.Param("database")

	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body").WithInternal(err)
	}
	if req.Query == "" {
		return apperror.NewBadRequest("query must not be empty")
	}

	if !IsReadOnly(req.Query) {
		keyword := ForbiddenKeyword(req.Query)
		h.log.Warn("write operation blocked",
			slog.String("forbidden_keyword", keyword),
			slog.String("database", database),
		)
		return apperror.ErrWriteForbidden.WithDetails(map[string]any{
			"query":              truncateQuery(req.Query),
			"forbidden_keyword":  keyword,
			"allowed_operations": AllowedOperations,
		})
	}

	if !h.store.Available() {
		h.log.Warn("query rejected: store unavailable")
		return apperror.ErrNeo4jUnavailable
	}

	ctx, span := tracer.Start(c.Request().Context(), "graphdb.query",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "neo4j"),
			attribute.String("db.name", database),
		),
	)
	defer span.End()

	start := time.Now()
	records, err := h.store.ExecuteQuery(
		ctx,
		req.Query,
		req.Parameters,
		database,
		h.cfg.API.QueryTimeout(),
	)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		return h.executionError(err, req.Query)
	}
	span.SetAttributes(attribute.Int("db.records_returned", len(records)))

	nodes, edges := ExtractGraphElements(records)

	return c.JSON(http.StatusOK, QueryResponse{
		Nodes:            nodes,
		Edges:            edges,
		TruncatedByLimit: false,
		Meta: QueryMeta{
			QueryType:       "r",
			RecordsReturned: len(records),
			ExecutionTimeMs: roundMillis(elapsed),
		},
	})
}

// executionError shapes anticipated store failures; anything unrecognized
// propagates to the generic error handler as a 500.
func (h *Handler) executionError(err error, queryText string) error {
	lower := strings.ToLower(err.Error())

	if errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "timed out") {
		h.log.Warn("query execution timed out", logger.Error(err))
		return apperror.ErrQueryTimeout.WithDetails(map[string]any{
			"timeout_seconds": h.cfg.API.QueryTimeoutSeconds,
			"query":           truncateQuery(queryText),
		}).WithInternal(err)
	}

	if errors.Is(err, graphdb.ErrUnavailable) {
		return apperror.ErrNeo4jUnavailable
	}

	var queryErr *graphdb.QueryError
	if errors.As(err, &queryErr) {
		h.log.Error("query execution failed", logger.Error(err))
		details := map[string]any{
			"query":       truncateQuery(queryText),
			"neo4j_error": err.Error(),
		}
		if pos, ok := extractErrorPosition(err.Error()); ok {
			details["position"] = pos
		}
		return apperror.ErrQuerySyntax.WithDetails(details).WithInternal(err)
	}

	return err
}

// truncateQuery shortens a query for inclusion in error payloads.
func truncateQuery(q string) string {
	if len(q) <= maxQueryLength {
		return q
	}
	return q[:maxQueryLength] + "... [truncated]"
}

// errorPositionRe matches "(line X, column Y)" or "position Y" locators in
// database error messages.
var errorPositionRe = regexp.MustCompile(`(?i)column\s+(\d+)|position\s+(\d+)`)

func extractErrorPosition(msg string) (int, bool) {
	m := errorPositionRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	for _, group := range m[1:] {
		if group == "" {
			continue
		}
		if n, err := strconv.Atoi(group); err == nil {
			return n, true
		}
	}
	return 0, false
}

// roundMillis converts a duration to milliseconds rounded to 2 decimals.
func roundMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
