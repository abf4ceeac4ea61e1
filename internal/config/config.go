// Package config loads process-wide configuration from environment
// variables and constructs the shared logger. Everything here is read
// once at startup and treated as immutable afterwards.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings for the server.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"meetgrid"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// JWTSecret signs every issued credential. There is no default: a
	// missing secret is a startup error, never a silent fallback.
	JWTSecret     string `env:"JWT_SECRET"`
	JWTTTLSeconds int    `env:"JWT_TTL_SECONDS" envDefault:"3600"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.JWTTTLSeconds <= 0 {
		return Config{}, errors.New("JWT_TTL_SECONDS must be positive")
	}
	return cfg, nil
}

// TokenTTL returns the credential lifetime as a duration.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLSeconds) * time.Second
}

// DSN builds a libpq-compatible connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// DatabaseURL builds a postgres:// URL for the migration runner.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}
