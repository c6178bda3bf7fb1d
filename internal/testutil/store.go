package testutil

import (
	"context"
	"time"

	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
)

// FakeStore is an in-memory graphdb.Store for handler tests. It returns the
// configured records or error and captures the last call's arguments.
type FakeStore struct {
	Unavailable     bool
	Records         []graphdb.Record
	Err             error
	ConnectivityErr error

	LastQuery    string
	LastParams   map[string]any
	LastDatabase string
	LastTimeout  time.Duration
}

var _ graphdb.Store = (*FakeStore)(nil)

func (f *FakeStore) ExecuteQuery(_ context.Context, query string, params map[string]any, database string, timeout time.Duration) ([]graphdb.Record, error) {
	f.LastQuery = query
	f.LastParams = params
	f.LastDatabase = database
	f.LastTimeout = timeout

	if f.Err != nil {
		return nil, f.Err
	}
	return f.Records, nil
}

func (f *FakeStore) VerifyConnectivity(context.Context) error {
	return f.ConnectivityErr
}

func (f *FakeStore) Available() bool {
	return !f.Unavailable
}
