// Package config loads the application configuration from environment variables.
// The configuration is read once at startup and treated as immutable.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting of the server.
type Config struct {
	// DatabaseURL is the Postgres connection URL of the hosted database.
	DatabaseURL string `env:"DATABASE_URL,required"`

	// JWTSecret signs access tokens. Must be set to a strong value in production.
	JWTSecret string `env:"JWT_SECRET,required"`

	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// PublicSiteURL is the origin of the web frontend, used for CORS.
	PublicSiteURL string `env:"PUBLIC_SITE_URL" envDefault:"http://localhost:3000"`

	// RedisAddr is the host:port of the Redis session store.
	// When empty, sessions fall back to the Postgres repository.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// AccessTokenTTL is the lifetime of issued JWT access tokens.
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`

	// SessionTTL is the lifetime of refresh-token sessions.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// MaxSessionsPerUser caps concurrent active sessions; the oldest
	// session is evicted when the cap is exceeded.
	MaxSessionsPerUser int `env:"MAX_SESSIONS_PER_USER" envDefault:"5"`

	// RunMigrations applies pending schema migrations at startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"false"`

	// AuthRatePerMinute limits signup/login/refresh attempts per client IP.
	AuthRatePerMinute int `env:"AUTH_RATE_PER_MINUTE" envDefault:"30"`
	AuthRateBurst     int `env:"AUTH_RATE_BURST" envDefault:"10"`
}

// Load parses the configuration from the process environment.
// It returns an error if a required variable is missing or malformed.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	if cfg.MaxSessionsPerUser < 1 {
		cfg.MaxSessionsPerUser = 1
	}
	return cfg, nil
}
