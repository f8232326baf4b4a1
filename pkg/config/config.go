package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/firmdash/firmdash-sync/pkg/apperrors"
)

// Config holds all configuration for firmdash-sync.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (tokens, passwords) must only come from environment variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// Source (practice-management platform) API configuration
	Source SourceConfig `yaml:"source"`

	// Database configuration (PostgreSQL target store)
	Database DatabaseConfig `yaml:"database"`

	// Sync pipeline tuning
	Sync SyncConfig `yaml:"sync"`
}

// SourceConfig holds the practice-management API connection settings.
// The API authenticates every request with two headers: a bearer token
// and a tenant access key.
type SourceConfig struct {
	BaseURL     string `yaml:"base_url" env:"KARBON_BASE_URL" env-default:"https://api.karbonhq.com/v3"`
	BearerToken string `yaml:"-" env:"KARBON_BEARER_TOKEN"` // Secret - not in YAML
	AccessKey   string `yaml:"-" env:"KARBON_ACCESS_KEY"`   // Secret - not in YAML
	// TimeoutSeconds bounds a single page request, not the whole fetch.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"KARBON_TIMEOUT_SECONDS" env-default:"60"`
}

// DatabaseConfig holds PostgreSQL target store configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"firmdash"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"firmdash"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
}

// SyncConfig holds pipeline tuning knobs.
type SyncConfig struct {
	// MaxPages is the pagination safety valve per entity type. Hitting it
	// terminates the fetch with a truncated outcome instead of looping on a
	// source that never stops handing out next links.
	MaxPages int `yaml:"max_pages" env:"SYNC_MAX_PAGES" env-default:"500"`
	// ChunkSize is the number of rows per batch upsert call.
	ChunkSize int `yaml:"chunk_size" env:"SYNC_CHUNK_SIZE" env-default:"100"`
	// MigrationsPath points at the SQL migration files applied on startup.
	MigrationsPath string `yaml:"migrations_path" env:"SYNC_MIGRATIONS_PATH" env-default:"migrations"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. If config.yaml does not exist (scheduler deployments are often
// env-only), configuration is read from the environment alone. The version
// parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings that must be present before any entity work
// starts. A failure here is fatal: the run exits non-zero without creating a
// sync run record.
func (c *Config) Validate() error {
	var missing []string

	if c.Source.BaseURL == "" {
		missing = append(missing, "KARBON_BASE_URL")
	}
	if c.Source.BearerToken == "" {
		missing = append(missing, "KARBON_BEARER_TOKEN")
	}
	if c.Source.AccessKey == "" {
		missing = append(missing, "KARBON_ACCESS_KEY")
	}
	if c.Database.Host == "" {
		missing = append(missing, "PGHOST")
	}
	if c.Database.User == "" {
		missing = append(missing, "PGUSER")
	}
	if c.Database.Database == "" {
		missing = append(missing, "PGDATABASE")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrMissingCredentials, strings.Join(missing, ", "))
	}

	if c.Sync.MaxPages <= 0 {
		return fmt.Errorf("sync.max_pages must be positive, got %d", c.Sync.MaxPages)
	}
	if c.Sync.ChunkSize <= 0 {
		return fmt.Errorf("sync.chunk_size must be positive, got %d", c.Sync.ChunkSize)
	}

	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
