package search_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nervousmammoth/neo4j-api/domain/search"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
	"github.com/nervousmammoth/neo4j-api/internal/testutil"
)

func TestSearchNodes(t *testing.T) {
	store := &testutil.FakeStore{
		Records: []graphdb.Record{{
			Keys: []string{"n"},
			Values: []graphdb.Value{
				graphdb.Node{
					ElementID:  "4:abc:1",
					Labels:     []string{"Person"},
					Properties: map[string]any{"name": "Alice"},
				},
			},
		}},
	}
	ts := testutil.NewTestServer(store)

	rec := ts.GET("/api/neo4j/search/node/full?q=ali", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp search.SearchResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	require.Len(t, resp.Nodes, 1)
	assert.Equal(t, "4:abc:1", resp.Nodes[0].ID)
	assert.Empty(t, resp.Edges)

	assert.Equal(t, "ali", store.LastParams["term"])
	assert.Equal(t, 50, store.LastParams["limit"])
}

func TestSearchEdges(t *testing.T) {
	alice := graphdb.Node{ElementID: "4:abc:1", Labels: []string{"Person"}, Properties: map[string]any{"name": "Alice"}}
	bob := graphdb.Node{ElementID: "4:abc:2", Labels: []string{"Person"}, Properties: map[string]any{"name": "Bob"}}

	store := &testutil.FakeStore{
		Records: []graphdb.Record{{
			Keys: []string{"a", "r", "b"},
			Values: []graphdb.Value{
				alice,
				graphdb.Relationship{ElementID: "5:abc:7", Type: "KNOWS", Start: &alice, End: &bob},
				bob,
			},
		}},
	}
	ts := testutil.NewTestServer(store)

	rec := ts.GET("/api/neo4j/search/edge/full?q=knows", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp search.SearchResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Len(t, resp.Nodes, 2)
	require.Len(t, resp.Edges, 1)
	assert.Equal(t, "KNOWS", resp.Edges[0].Data.Type)
}

func TestSearch_EmptyResultIsEmptyArrays(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.GET("/api/neo4j/search/node/full?q=nomatch", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	// Arrays must serialize as [] rather than null.
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, rec.Body.String())
}

func TestSearch_MissingTerm(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.GET("/api/neo4j/search/node/full", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", testutil.ErrorCode(rec))
}

func TestSearch_LimitHandling(t *testing.T) {
	tests := []struct {
		name      string
		rawLimit  string
		wantCode  int
		wantLimit int
	}{
		{"explicit limit", "25", http.StatusOK, 25},
		{"capped at max", "9999", http.StatusOK, 500},
		{"zero rejected", "0", http.StatusBadRequest, 0},
		{"negative rejected", "-5", http.StatusBadRequest, 0},
		{"non-numeric rejected", "abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &testutil.FakeStore{}
			ts := testutil.NewTestServer(store)

			rec := ts.GET("/api/neo4j/search/node/full?q=x&limit="+tt.rawLimit,
				testutil.WithAPIKey(testutil.TestAPIKey))
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantLimit, store.LastParams["limit"])
			}
		})
	}
}

func TestSearch_RequiresAPIKey(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.GET("/api/neo4j/search/node/full?q=x")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "MISSING_API_KEY", testutil.ErrorCode(rec))
}

func TestSearch_StoreUnavailable(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{Unavailable: true})

	rec := ts.GET("/api/neo4j/search/edge/full?q=x", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NEO4J_UNAVAILABLE", testutil.ErrorCode(rec))
}
