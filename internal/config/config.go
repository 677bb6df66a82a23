// Package config loads process configuration from environment variables.
// Every knob has a default that preserves the reference behavior, so the
// server runs with no environment at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DevJWTSecret is the fallback signing key. Anything real must inject
// MARKET_JWT_SECRET instead; main warns loudly when this is in use.
const DevJWTSecret = "dev-only-insecure-secret"

type Config struct {
	// Port is the HTTP listen port.
	Port string

	// DBPath is the SQLite DSN. Empty means fully in-memory state.
	DBPath string

	// JWTSecret signs session tokens.
	JWTSecret string

	// TokenTTL bounds session lifetime.
	TokenTTL time.Duration

	// OpeningBalance is granted to every new account, in minor units.
	OpeningBalance int64

	// Currency is the ISO code all ledgers and transactions use.
	Currency string
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("MARKET_PORT", "8080"),
		DBPath:         os.Getenv("MARKET_DB"),
		JWTSecret:      getEnv("MARKET_JWT_SECRET", DevJWTSecret),
		TokenTTL:       24 * time.Hour,
		OpeningBalance: 10000,
		Currency:       getEnv("MARKET_CURRENCY", "KES"),
	}

	if v := os.Getenv("MARKET_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MARKET_TOKEN_TTL %q: %w", v, err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("MARKET_TOKEN_TTL must be positive, got %q", v)
		}
		cfg.TokenTTL = ttl
	}

	if v := os.Getenv("MARKET_OPENING_BALANCE"); v != "" {
		opening, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MARKET_OPENING_BALANCE %q: %w", v, err)
		}
		if opening < 0 {
			return nil, fmt.Errorf("MARKET_OPENING_BALANCE must not be negative, got %q", v)
		}
		cfg.OpeningBalance = opening
	}

	return cfg, nil
}

// UsingDevSecret reports whether the insecure fallback key is in play.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
