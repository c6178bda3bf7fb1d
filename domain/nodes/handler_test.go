package nodes_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nervousmammoth/neo4j-api/domain/nodes"
	"github.com/nervousmammoth/neo4j-api/domain/query"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
	"github.com/nervousmammoth/neo4j-api/internal/testutil"
)

func nodeRecord(id string, label string, props map[string]any) graphdb.Record {
	return graphdb.Record{
		Keys: []string{"n"},
		Values: []graphdb.Value{
			graphdb.Node{ElementID: id, Labels: []string{label}, Properties: props},
		},
	}
}

func TestGetNode(t *testing.T) {
	store := &testutil.FakeStore{
		Records: []graphdb.Record{nodeRecord("4:abc:42", "Person", map[string]any{"name": "Alice"})},
	}
	ts := testutil.NewTestServer(store)

	rec := ts.GET("/api/neo4j/graph/nodes/4:abc:42", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	var node query.Node
	require.NoError(t, testutil.DecodeJSON(rec, &node))
	assert.Equal(t, "4:abc:42", node.ID)
	assert.Equal(t, []string{"Person"}, node.Data.Categories)

	assert.Equal(t, map[string]any{"id": "4:abc:42"}, store.LastParams)
	assert.Equal(t, "neo4j", store.LastDatabase)
}

func TestGetNode_NotFound(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.GET("/api/neo4j/graph/nodes/4:abc:999", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NODE_NOT_FOUND", testutil.ErrorCode(rec))

	var body struct {
		Error struct {
			Details struct {
				NodeID   string `json:"node_id"`
				Database string `json:"database"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, testutil.DecodeJSON(rec, &body))
	assert.Equal(t, "4:abc:999", body.Error.Details.NodeID)
	assert.Equal(t, "neo4j", body.Error.Details.Database)
}

func TestExpandNode(t *testing.T) {
	center := graphdb.Node{ElementID: "4:abc:1", Labels: []string{"Person"}, Properties: map[string]any{"name": "Alice"}}
	neighbor := graphdb.Node{ElementID: "4:abc:2", Labels: []string{"Movie"}, Properties: map[string]any{"title": "Heat"}}

	store := &testutil.FakeStore{
		Records: []graphdb.Record{{
			Keys: []string{"n", "r", "m"},
			Values: []graphdb.Value{
				center,
				graphdb.Relationship{ElementID: "5:abc:3", Type: "ACTED_IN", Start: &center, End: &neighbor},
				neighbor,
			},
		}},
	}
	ts := testutil.NewTestServer(store)

	rec := ts.POST("/api/neo4j/graph/nodes/expand",
		testutil.WithAPIKey(testutil.TestAPIKey),
		testutil.WithJSON(map[string]any{"node_id": "4:abc:1"}),
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp nodes.GraphResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Len(t, resp.Nodes, 2)
	require.Len(t, resp.Edges, 1)
	assert.Equal(t, "ACTED_IN", resp.Edges[0].Data.Type)

	// Default limit applies when the body omits it.
	assert.Equal(t, 100, store.LastParams["limit"])
	assert.Equal(t, "4:abc:1", store.LastParams["id"])
}

func TestExpandNode_LimitCapped(t *testing.T) {
	store := &testutil.FakeStore{}
	ts := testutil.NewTestServer(store)

	rec := ts.POST("/api/neo4j/graph/nodes/expand",
		testutil.WithAPIKey(testutil.TestAPIKey),
		testutil.WithJSON(map[string]any{"node_id": "4:abc:1", "limit": 50000}),
	)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1000, store.LastParams["limit"])
}

func TestExpandNode_MissingNodeID(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.POST("/api/neo4j/graph/nodes/expand",
		testutil.WithAPIKey(testutil.TestAPIKey),
		testutil.WithJSON(map[string]any{}),
	)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", testutil.ErrorCode(rec))
}

func TestCountNodes(t *testing.T) {
	store := &testutil.FakeStore{
		Records: []graphdb.Record{{
			Keys:   []string{"count"},
			Values: []graphdb.Value{graphdb.Scalar{Val: int64(1234)}},
		}},
	}
	ts := testutil.NewTestServer(store)

	rec := ts.GET("/api/neo4j/graph/nodes/count", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp nodes.CountResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Equal(t, int64(1234), resp.Count)
	assert.Contains(t, store.LastQuery, "count(n)")
}

func TestCountEdges(t *testing.T) {
	store := &testutil.FakeStore{
		Records: []graphdb.Record{{
			Keys:   []string{"count"},
			Values: []graphdb.Value{graphdb.Scalar{Val: int64(99)}},
		}},
	}
	ts := testutil.NewTestServer(store)

	rec := ts.GET("/api/neo4j/graph/edges/count", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp nodes.CountResponse
	require.NoError(t, testutil.DecodeJSON(rec, &resp))
	assert.Equal(t, int64(99), resp.Count)
	assert.Contains(t, store.LastQuery, "count(r)")
}

func TestNodes_RequiresAPIKey(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{})

	rec := ts.GET("/api/neo4j/graph/nodes/count")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "MISSING_API_KEY", testutil.ErrorCode(rec))
}

func TestNodes_StoreUnavailable(t *testing.T) {
	ts := testutil.NewTestServer(&testutil.FakeStore{Unavailable: true})

	rec := ts.GET("/api/neo4j/graph/nodes/count", testutil.WithAPIKey(testutil.TestAPIKey))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NEO4J_UNAVAILABLE", testutil.ErrorCode(rec))
}
