// Package graphdb wraps the Neo4j driver behind a small read-only store
// interface and a closed value model for query results.
package graphdb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/fx"

	"github.com/nervousmammoth/neo4j-api/internal/config"
	"github.com/nervousmammoth/neo4j-api/pkg/logger"
)

var Module = fx.Module("graphdb",
	fx.Provide(
		NewClient,
		func(c *Client) Store { return c },
	),
	fx.Invoke(RegisterLifecycle),
)

// ErrUnavailable is returned when the driver never initialized or has been
// closed. Handlers surface it as a 503.
var ErrUnavailable = errors.New("neo4j driver is not available")

// QueryError marks a failure the database reported for the query itself
// (syntax, semantics, transaction timeout), as opposed to transport or
// connectivity failures.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string { return e.Err.Error() }
func (e *QueryError) Unwrap() error { return e.Err }

// Store is the read-only capability handlers depend on.
type Store interface {
	// ExecuteQuery runs a Cypher query against the given database and
	// returns all records, converted to the closed value model. An empty
	// database name selects the configured default.
	ExecuteQuery(ctx context.Context, query string, params map[string]any, database string, timeout time.Duration) ([]Record, error)
	// VerifyConnectivity checks that the database is reachable.
	VerifyConnectivity(ctx context.Context) error
	// Available reports whether the underlying driver initialized.
	Available() bool
}

// Client implements Store on top of neo4j.DriverWithContext.
//
// A failed driver construction leaves the client in an explicit unavailable
// state instead of failing startup: every request gate checks Available()
// and answers 503 until the configuration is fixed and the process
// restarted.
type Client struct {
	cfg    *config.Config
	log    *slog.Logger
	driver neo4j.DriverWithContext
}

// NewClient builds the Neo4j client. Driver construction errors are logged,
// not returned, so the HTTP surface still comes up.
func NewClient(cfg *config.Config, log *slog.Logger) *Client {
	log = log.With(logger.Scope("graphdb"))

	c := &Client{cfg: cfg, log: log}

	auth := neo4j.BasicAuth(cfg.Neo4j.Username, cfg.Neo4j.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4j.URI, auth, func(dc *neo4j.Config) {
		dc.MaxConnectionLifetime = cfg.Neo4j.MaxConnectionLifetime
		dc.MaxConnectionPoolSize = cfg.Neo4j.MaxConnectionPoolSize
		dc.ConnectionAcquisitionTimeout = cfg.Neo4j.ConnectionTimeout
	})
	if err != nil {
		log.Error("failed to initialize Neo4j driver", logger.Error(err))
		return c
	}

	c.driver = driver
	log.Info("Neo4j driver initialized", slog.String("uri", cfg.Neo4j.URI))
	return c
}

// RegisterLifecycle verifies connectivity on start (non-fatal) and closes
// the driver on stop.
func RegisterLifecycle(lc fx.Lifecycle, c *Client, log *slog.Logger) {
	log = log.With(logger.Scope("graphdb"))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !c.Available() {
				log.Warn("Neo4j driver not initialized, starting degraded")
				return nil
			}
			if err := c.VerifyConnectivity(ctx); err != nil {
				log.Warn("Neo4j connectivity check failed", logger.Error(err))
			} else {
				log.Info("Neo4j connectivity verified")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return c.Close(ctx)
		},
	})
}

// Available reports whether the driver initialized.
func (c *Client) Available() bool {
	return c.driver != nil
}

// VerifyConnectivity checks that the database is reachable.
func (c *Client) VerifyConnectivity(ctx context.Context) error {
	if !c.Available() {
		return ErrUnavailable
	}
	return c.driver.VerifyConnectivity(ctx)
}

// ExecuteQuery runs a Cypher query in a read transaction and collects every
// record. The timeout bounds both the driver call (context) and the server
// side transaction (WithTxTimeout).
func (c *Client) ExecuteQuery(ctx context.Context, query string, params map[string]any, database string, timeout time.Duration) ([]Record, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}

	if database == "" {
		database = c.cfg.Neo4j.Database
	}
	if params == nil {
		params = map[string]any{}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	}, neo4j.WithTxTimeout(timeout))
	if err != nil {
		c.log.Debug("query execution failed",
			slog.String("database", database),
			logger.Error(err),
		)
		if neo4j.IsNeo4jError(err) {
			return nil, &QueryError{Err: err}
		}
		return nil, err
	}

	records := result.([]*neo4j.Record)
	c.log.Debug("query executed",
		slog.String("database", database),
		slog.Int("records", len(records)),
	)
	return ConvertRecords(records), nil
}

// Close releases the driver's connection pool.
func (c *Client) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}
	err := c.driver.Close(ctx)
	c.driver = nil
	if err != nil {
		return err
	}
	c.log.Info("Neo4j driver closed")
	return nil
}
