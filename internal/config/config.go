package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/repository"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store backends
const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
)

// Config holds all application configuration
type Config struct {
	// Backing store
	StoreBackend string `envconfig:"STORE_BACKEND" default:"postgres"`

	// Database (postgres backend). DATABASE_URL wins over the discrete fields.
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"thebench"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"thebench"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Supabase (supabase backend)
	SupabaseURL            string `envconfig:"SUPABASE_URL"`
	SupabaseServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`

	// Redis run lock; empty disables locking
	RedisURL      string        `envconfig:"REDIS_URL"`
	ImportLockTTL time.Duration `envconfig:"IMPORT_LOCK_TTL" default:"30m"`

	// Application
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	// Import
	BatchSize        int    `envconfig:"IMPORT_BATCH_SIZE" default:"100"`
	ProgressInterval int    `envconfig:"IMPORT_PROGRESS_INTERVAL" default:"1000"`
	Schedule         string `envconfig:"IMPORT_SCHEDULE"`

	// Monitoring
	EnableMetrics  bool   `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort    int    `envconfig:"METRICS_PORT" default:"9090"`
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL"`
}

// Override adjusts a loaded config before validation, e.g. from CLI flags
type Override func(*Config)

// Load loads configuration from environment variables
// It first attempts to load from .env file if one exists
func Load(overrides ...Override) (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Frontend-style variable name shared with the web app
	if cfg.SupabaseURL == "" {
		cfg.SupabaseURL = os.Getenv("NEXT_PUBLIC_SUPABASE_URL")
	}

	for _, override := range overrides {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" && c.DatabasePassword == "" {
			return fmt.Errorf("DATABASE_URL or DATABASE_PASSWORD is required for the postgres backend")
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %s or %s)", c.StoreBackend, BackendPostgres, BackendSupabase)
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be positive")
	}

	if c.ProgressInterval <= 0 {
		return fmt.Errorf("IMPORT_PROGRESS_INTERVAL must be positive")
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be console or json")
	}

	return nil
}

// DatabaseConfig returns the repository connection settings
func (c *Config) DatabaseConfig() repository.Config {
	return repository.Config{
		URL:      c.DatabaseURL,
		Host:     c.DatabaseHost,
		Port:     strconv.Itoa(c.DatabasePort),
		User:     c.DatabaseUser,
		Password: c.DatabasePassword,
		Database: c.DatabaseName,
		SSLMode:  c.DatabaseSSLMode,
	}
}

// LockEnabled reports whether imports should take the Redis run lock
func (c *Config) LockEnabled() bool {
	return c.RedisURL != ""
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad(overrides ...Override) *Config {
	cfg, err := Load(overrides...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
