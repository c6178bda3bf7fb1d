package health_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nervousmammoth/neo4j-api/domain/health"
	"github.com/nervousmammoth/neo4j-api/internal/testutil"
)

func TestHealth_Connected(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.GET("/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp health.HealthResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "connected", resp.Neo4j)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Empty(t, resp.Error)
}

func TestHealth_ConnectivityFailure(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{
		ConnectivityErr: errors.New("dial tcp 127.0.0.1:7687: connection refused"),
	})

	rec := ts.GET("/api/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp health.HealthResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "disconnected", resp.Neo4j)
	assert.Contains(t, resp.Error, "connection refused")
}

func TestHealth_ClientNotInitialized(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{Unavailable: true})

	rec := ts.GET("/api/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp health.HealthResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "Neo4j client not initialized", resp.Error)
}

func TestHealth_NoAPIKeyRequired(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	// No X-API-Key header on either probe.
	assert.Equal(t, http.StatusOK, ts.GET("/api/health").Code)
	assert.Equal(t, http.StatusOK, ts.GET("/healthz").Code)
}

func TestHealthz(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.GET("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
