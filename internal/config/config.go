// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultAddr     = ":8080"
	defaultDBPath   = "data/giftex.db"
	defaultTokenTTL = 24 * time.Hour
)

// Config holds everything the server needs to start.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the SQLite database file path. Parent directories are
	// created on open.
	DBPath string

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for everything except JWT_SECRET.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:      envOr("ADDR", defaultAddr),
		DBPath:    envOr("DB_PATH", defaultDBPath),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  defaultTokenTTL,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS %q", v)
		}
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
