// Package server is the sync service the CLI reconciles against. It exposes
// the push/pull API over JSON and keeps one score row per (user, date).
package server

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the sync service configuration. Environment variables are
// parsed from the PUZZLE_ prefix, e.g. PUZZLE_HTTP_PORT, PUZZLE_AUTH_SECRET.
type Config struct {
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8787"`
	DBPath   string `envconfig:"DB_PATH" default:"dailypuzzle-server.db"`

	// AuthSecret signs and verifies bearer tokens. The service refuses to
	// start without one.
	AuthSecret string `envconfig:"AUTH_SECRET"`

	TokenTTL        time.Duration `envconfig:"TOKEN_TTL" default:"720h"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// NewConfig parses the service configuration from the environment.
func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("PUZZLE", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("PUZZLE_AUTH_SECRET is required")
	}
	return &cfg, nil
}

// HTTPAddr returns the listen address.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
