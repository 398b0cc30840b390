package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	DB     DBConfig
	Query  QueryConfig
	Server ServerConfig
}

// DBConfig holds database configuration
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"3306"`
	User     string `envconfig:"DB_USER" default:"root"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Database string `envconfig:"DB_NAME" default:"anicatalog"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
}

// QueryConfig holds pagination policy for the catalog listings.
// The defaults reproduce the permissive behavior the API has always had:
// out-of-range limits are corrected silently and non-positive pages are
// passed through unclamped.
type QueryConfig struct {
	DefaultLimit     int  `envconfig:"QUERY_DEFAULT_LIMIT" default:"10"`
	MaxLimit         int  `envconfig:"QUERY_MAX_LIMIT" default:"100"`
	StrictPagination bool `envconfig:"QUERY_STRICT_PAGINATION" default:"false"`
	ClampPage        bool `envconfig:"QUERY_CLAMP_PAGE" default:"false"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
	// RateLimit is requests per second across all clients; Burst is the
	// momentary excess allowed on top of it. Zero disables limiting.
	RateLimit float64 `envconfig:"SERVER_RATE_LIMIT" default:"50"`
	Burst     int     `envconfig:"SERVER_RATE_BURST" default:"100"`
}

// DSN returns the MySQL data source name
func (c *DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to load db config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Query); err != nil {
		return nil, fmt.Errorf("failed to load query config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Query.DefaultLimit < 1 {
		return fmt.Errorf("QUERY_DEFAULT_LIMIT must be positive")
	}
	if c.Query.MaxLimit < c.Query.DefaultLimit {
		return fmt.Errorf("QUERY_MAX_LIMIT must be at least QUERY_DEFAULT_LIMIT")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("SERVER_RATE_LIMIT must not be negative")
	}
	return nil
}
