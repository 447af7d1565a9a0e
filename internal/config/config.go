// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from PLACEPULSE_*
// environment variables. All fields have working defaults so the client runs
// against a local development backend with no configuration at all.
type Config struct {
	// GraphQLEndpoint is the single URL every operation is POSTed to.
	GraphQLEndpoint string `env:"PLACEPULSE_GRAPHQL_ENDPOINT" envDefault:"http://localhost:3000/graphql"`

	// DBPath is the sqlite file backing the session store.
	DBPath string `env:"PLACEPULSE_DB_PATH" envDefault:"placepulse.db"`

	// SecretKey is an optional hex-encoded 32-byte key. When set, the session
	// record is encrypted at rest with AES-256-GCM; when empty, it is stored
	// as plain JSON.
	SecretKey string `env:"PLACEPULSE_SECRET_KEY"`

	// RefreshTimeout bounds the token-refresh mutation so a stalled refresh
	// cannot hang the original caller. Exceeding it counts as refresh failure.
	RefreshTimeout time.Duration `env:"PLACEPULSE_REFRESH_TIMEOUT" envDefault:"15s"`

	// DefaultLat and DefaultLng seed the checkin command when no coordinates
	// are given.
	DefaultLat float64 `env:"PLACEPULSE_DEFAULT_LAT" envDefault:"10.762622"`
	DefaultLng float64 `env:"PLACEPULSE_DEFAULT_LNG" envDefault:"106.660172"`
}

// Load reads configuration from environment variables and returns a
// validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.EncryptionKey(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EncryptionKey decodes SecretKey into the 32-byte AES-256 key, or returns
// nil when encryption is not configured.
func (c *Config) EncryptionKey() ([]byte, error) {
	if c.SecretKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("PLACEPULSE_SECRET_KEY is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("PLACEPULSE_SECRET_KEY must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
