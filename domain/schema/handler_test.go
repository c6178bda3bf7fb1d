package schema_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nervousmammoth/neo4j-api/domain/schema"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
	"github.com/nervousmammoth/neo4j-api/internal/testutil"
)

func scalarRecords(key string, values ...string) []graphdb.Record {
	records := make([]graphdb.Record, 0, len(values))
	for _, v := range values {
		records = append(records, graphdb.Record{
			Keys:   []string{key},
			Values: []graphdb.Value{graphdb.Scalar{Val: v}},
		})
	}
	return records
}

func TestNodeTypes(t *testing.T) {
	store := &testutil.FakeStore{Records: scalarRecords("label", "Person", "Movie", "Company")}
	ts := testutil.NewTestServer(store)

	rec := ts.GET("/api/neo4j/graph/schema/node/types", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp schema.TypesResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Equal(t, []string{"Person", "Movie", "Company"}, resp.Types)
	assert.Contains(t, store.LastQuery, "db.labels()")
}

func TestEdgeTypes(t *testing.T) {
	store := &testutil.FakeStore{Records: scalarRecords("relationshipType", "ACTED_IN", "DIRECTED")}
	ts := testutil.NewTestServer(store)

	rec := ts.GET("/api/neo4j/graph/schema/edge/types", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp schema.TypesResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Equal(t, []string{"ACTED_IN", "DIRECTED"}, resp.Types)
	assert.Contains(t, store.LastQuery, "db.relationshipTypes()")
}

func TestNodeTypes_EmptyDatabase(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.GET("/api/neo4j/graph/schema/node/types", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp schema.TypesResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Empty(t, resp.Types)
}

func TestSchema_RequiresAPIKey(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.GET("/api/neo4j/graph/schema/node/types")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "MISSING_API_KEY", testutil.ErrorCode(rec))
}

func TestSchema_StoreUnavailable(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{Unavailable: true})

	rec := ts.GET("/api/neo4j/graph/schema/edge/types", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NEO4J_UNAVAILABLE", testutil.ErrorCode(rec))
}
