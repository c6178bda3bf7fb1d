// Package main provides the entry point for the Neo4j read-only API gateway.
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/nervousmammoth/neo4j-api/domain/health"
	"github.com/nervousmammoth/neo4j-api/domain/nodes"
	"github.com/nervousmammoth/neo4j-api/domain/query"
	"github.com/nervousmammoth/neo4j-api/domain/schema"
	"github.com/nervousmammoth/neo4j-api/domain/search"
	"github.com/nervousmammoth/neo4j-api/domain/tracing"
	"github.com/nervousmammoth/neo4j-api/internal/config"
	"github.com/nervousmammoth/neo4j-api/internal/graphdb"
	"github.com/nervousmammoth/neo4j-api/internal/server"
	"github.com/nervousmammoth/neo4j-api/pkg/auth"
	"github.com/nervousmammoth/neo4j-api/pkg/logger"
)

func main() {
	// Load .env if present (for local development). Existing environment
	// variables take precedence.
	_ = godotenv.Load()

	fx.New(
		// Logging
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		graphdb.Module,
		server.Module,
		tracing.Module,

		// Auth module
		auth.Module,

		// Domain modules
		health.Module,
		query.Module,
		schema.Module,
		search.Module,
		nodes.Module,
	).Run()
}
