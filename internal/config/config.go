package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
// once at startup and is not modified afterwards.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type AuthConfig struct {
	Token     string `envconfig:"AUTH_TOKEN" default:"APEX_SUPPLEMENTS_TOKEN_2025"` // Shared bearer token issued at login
	UsersFile string `envconfig:"USERS_FILE" default:"data/users.json"`
}

type CatalogConfig struct {
	File  string `envconfig:"CATALOG_FILE" default:"data/store.json"`
	Watch bool   `envconfig:"CATALOG_WATCH" default:"false"` // Cache the catalog and reload it when the file changes
}

// Load reads configuration from an optional .env file and the environment
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Variables already set in the environment win over the file.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Auth.Token == "" {
		return fmt.Errorf("AUTH_TOKEN must not be empty")
	}

	if c.Catalog.File == "" {
		return fmt.Errorf("CATALOG_FILE is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}
