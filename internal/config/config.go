package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"8000"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Neo4j connection settings
	Neo4j Neo4jConfig

	// API settings
	API APIConfig

	// OpenTelemetry tracing
	Otel OtelConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Neo4jConfig holds Neo4j driver settings
type Neo4jConfig struct {
	URI                   string        `env:"NEO4J_URI,required"`
	Username              string        `env:"NEO4J_USERNAME,required"`
	Password              string        `env:"NEO4J_PASSWORD,required"`
	Database              string        `env:"NEO4J_DATABASE" envDefault:"neo4j"`
	MaxConnectionLifetime time.Duration `env:"NEO4J_MAX_CONNECTION_LIFETIME" envDefault:"1h"`
	MaxConnectionPoolSize int           `env:"NEO4J_MAX_CONNECTION_POOL_SIZE" envDefault:"50"`
	ConnectionTimeout     time.Duration `env:"NEO4J_CONNECTION_TIMEOUT" envDefault:"30s"`
}

// APIConfig holds the gateway's own API settings
type APIConfig struct {
	Key                 string  `env:"API_KEY,required"`
	Version             string  `env:"API_VERSION" envDefault:"1.0.0"`
	QueryTimeoutSeconds float64 `env:"QUERY_TIMEOUT_SECONDS" envDefault:"30"`
}

// QueryTimeout returns the per-query execution timeout as a duration.
func (a APIConfig) QueryTimeout() time.Duration {
	return time.Duration(a.QueryTimeoutSeconds * float64(time.Second))
}

// validNeo4jSchemes are the URI schemes the driver accepts.
var validNeo4jSchemes = []string{
	"bolt://", "bolt+s://", "bolt+ssc://",
	"neo4j://", "neo4j+s://", "neo4j+ssc://",
}

// Validate checks constraints that env tags cannot express.
func (c *Config) Validate() error {
	uri := strings.TrimSpace(c.Neo4j.URI)
	if uri == "" {
		return fmt.Errorf("NEO4J_URI cannot be empty")
	}
	valid := false
	for _, scheme := range validNeo4jSchemes {
		if strings.HasPrefix(uri, scheme) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("NEO4J_URI must start with a bolt:// or neo4j:// scheme, got %q", c.Neo4j.URI)
	}

	if strings.TrimSpace(c.Neo4j.Username) == "" {
		return fmt.Errorf("NEO4J_USERNAME cannot be empty")
	}
	if strings.TrimSpace(c.API.Key) == "" {
		return fmt.Errorf("API_KEY cannot be empty")
	}
	if c.API.QueryTimeoutSeconds <= 0 {
		return fmt.Errorf("QUERY_TIMEOUT_SECONDS must be positive, got %v", c.API.QueryTimeoutSeconds)
	}
	return nil
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
