// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
)

// State backends selectable with STATE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Backends lists the valid STATE_BACKEND values.
var Backends = []string{BackendMemory, BackendFile, BackendValkey, BackendPostgres, BackendS3}

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Client state storage
	StateBackend string
	StateDir     string // file backend

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// S3-compatible object storage
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string

	// API writes allowed per client per minute. Zero disables limiting.
	RateLimit int

	// Minutes a client's state stays cached after its last request. Zero
	// disables eviction.
	ClientIdleMinutes int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is read first; variables already set in the environment win. Returns an
// error if critical values are missing in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		StateBackend: envOrDefault("STATE_BACKEND", BackendFile),
		StateDir:     envOrDefault("STATE_DIR", "data"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "storefront"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "storefront"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "storefront-state"),
		S3Prefix:    envOrDefault("S3_PREFIX", "state/"),
	}

	var err error
	if cfg.ValkeyDB, err = intOrDefault("VALKEY_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = intOrDefault("RATE_LIMIT", 120); err != nil {
		return nil, err
	}
	if cfg.ClientIdleMinutes, err = intOrDefault("CLIENT_IDLE_MINUTES", 30); err != nil {
		return nil, err
	}

	if !slices.Contains(Backends, cfg.StateBackend) {
		return nil, fmt.Errorf("STATE_BACKEND must be one of %v, got %q", Backends, cfg.StateBackend)
	}
	if cfg.StateBackend == BackendS3 && (cfg.S3Endpoint == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "") {
		return nil, fmt.Errorf("S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY must be set for the s3 backend")
	}

	if cfg.Env == "production" {
		if cfg.StateBackend == BackendPostgres && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.StateBackend == BackendMemory {
			return nil, fmt.Errorf("STATE_BACKEND=memory loses all client state on restart and is not allowed in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StateFile returns the path of the file backend's state file.
func (c *Config) StateFile() string {
	return filepath.Join(c.StateDir, "state.json")
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intOrDefault reads an integer environment variable.
func intOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}
