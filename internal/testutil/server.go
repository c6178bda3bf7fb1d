package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/nervousmammoth/neo4j-api/domain/health"
	"github.com/nervousmammoth/neo4j-api/domain/nodes"
	"github.com/nervousmammoth/neo4j-api/domain/query"
	"github.com/nervousmammoth/neo4j-api/domain/schema"
	"github.com/nervousmammoth/neo4j-api/domain/search"
	"github.com/nervousmammoth/neo4j-api/internal/config"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
	"github.com/nervousmammoth/neo4j-api/internal/server"
	"github.com/nervousmammoth/neo4j-api/pkg/auth"
)

// TestAPIKey is the shared secret the test server accepts.
const TestAPIKey = "test-api-key-12345"

// TestServer wraps an Echo instance with every route registered against a
// fake store.
type TestServer struct {
	Echo   *echo.Echo
	Store  *FakeStore
	Config *config.Config
	Log    *slog.Logger
}

// NewTestServer creates a test server with all routes registered.
func NewTestServer(store *FakeStore) *TestServer {
	cfg := &config.Config{
		Neo4j: config.Neo4jConfig{
			URI:      "bolt://localhost:7687",
			Username: "neo4j",
			Password: "password",
			Database: "neo4j",
		},
		API: config.APIConfig{
			Key:                 TestAPIKey,
			Version:             "1.0.0",
			QueryTimeoutSeconds: 30,
		},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := server.NewEcho(cfg, log)

	authMiddleware := auth.NewMiddleware(cfg, log)

	var s graphdb.Store = store
	health.RegisterRoutes(e, health.NewHandler(s, cfg))
	query.RegisterRoutes(e, query.NewHandler(s, cfg, log), authMiddleware)
	schema.RegisterRoutes(e, schema.NewHandler(s, cfg, log), authMiddleware)
	search.RegisterRoutes(e, search.NewHandler(s, cfg, log), authMiddleware)
	nodes.RegisterRoutes(e, nodes.NewHandler(s, cfg, log), authMiddleware)

	return &TestServer{
		Echo:   e,
		Store:  store,
		Config: cfg,
		Log:    log,
	}
}

// Request performs an HTTP request against the test server
func (s *TestServer) Request(method, path string, opts ...RequestOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)

	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

// GET performs a GET request
func (s *TestServer) GET(path string, opts ...RequestOption) *httptest.ResponseRecorder {
	return s.Request(http.MethodGet, path, opts...)
}

// POST performs a POST request
func (s *TestServer) POST(path string, opts ...RequestOption) *httptest.ResponseRecorder {
	return s.Request(http.MethodPost, path, opts...)
}

// RequestOption modifies an HTTP request
type RequestOption func(*http.Request)

// WithHeader adds a header to the request
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithAPIKey adds an X-API-Key header
func WithAPIKey(key string) RequestOption {
	return WithHeader(auth.HeaderAPIKey, key)
}

// WithJSON sets a JSON request body
func WithJSON(v any) RequestOption {
	return func(r *http.Request) {
		b, err := json.Marshal(v)
		if err != nil {
			panic(err)
		}
		r.Body = io.NopCloser(bytes.NewReader(b))
		r.ContentLength = int64(len(b))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
}

// DecodeJSON unmarshals a recorded response body into v.
func DecodeJSON(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

// ErrorCode extracts error.code from a structured error response body.
func ErrorCode(rec *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		return ""
	}
	return body.Error.Code
}
