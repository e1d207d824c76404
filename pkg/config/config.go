package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for aquasense-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8740"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL tabular store)
	Database DatabaseConfig `yaml:"database"`

	// Redis configuration (optional dataset snapshot cache)
	Redis RedisConfig `yaml:"redis"`

	// Text-generation collaborator
	LLM LLMConfig `yaml:"llm"`

	// Engine tuning
	Engine EngineConfig `yaml:"engine"`
}

// DatabaseConfig holds PostgreSQL configuration for the tabular store.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"aquasense"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"aquasense_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// RedisConfig holds Redis configuration. Host left empty disables the
// snapshot cache; the in-memory cache is always active.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// LLMConfig holds text-generation collaborator configuration. An empty
// Provider disables LLM phrasing and the composer runs rule-based only.
type LLMConfig struct {
	// Provider is "openai" (any OpenAI-compatible endpoint) or "anthropic".
	Provider    string  `yaml:"provider" env:"LLM_PROVIDER" env-default:""`
	Endpoint    string  `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model       string  `yaml:"model" env:"LLM_MODEL" env-default:""`
	APIKey      string  `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML
	MaxTokens   int     `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"2000"`
	Temperature float64 `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.7"`
}

// Enabled reports whether a text-generation collaborator is configured.
func (c *LLMConfig) Enabled() bool {
	return c.Provider != "" && c.Model != ""
}

// EngineConfig holds query-engine tuning knobs.
type EngineConfig struct {
	// FetchLimit bounds one bulk select from the store.
	FetchLimit int `yaml:"fetch_limit" env:"ENGINE_FETCH_LIMIT" env-default:"10000"`
	// InsertBatchSize bounds one bulk insert round-trip.
	InsertBatchSize int `yaml:"insert_batch_size" env:"ENGINE_INSERT_BATCH_SIZE" env-default:"1000"`
	// DeleteBatchSize bounds one bulk delete round-trip.
	DeleteBatchSize int `yaml:"delete_batch_size" env:"ENGINE_DELETE_BATCH_SIZE" env-default:"1000"`
	// StoreTimeoutSeconds is the budget for one store access before the
	// engine falls back to the cached dataset.
	StoreTimeoutSeconds int `yaml:"store_timeout_seconds" env:"ENGINE_STORE_TIMEOUT_SECONDS" env-default:"3"`
	// MaxContextRows caps rows serialized into an LLM prompt.
	MaxContextRows int `yaml:"max_context_rows" env:"ENGINE_MAX_CONTEXT_ROWS" env-default:"10"`
	// MaxDisplayRows caps rows rendered by the rule-based composer.
	MaxDisplayRows int `yaml:"max_display_rows" env:"ENGINE_MAX_DISPLAY_ROWS" env-default:"10"`
	// NumericTolerance is the band for numeric filters. The same tolerance
	// applies to pH and geographic coordinates.
	NumericTolerance float64 `yaml:"numeric_tolerance" env:"ENGINE_NUMERIC_TOLERANCE" env-default:"0.000001"`
	// ManualsPath optionally overrides the built-in manual corpus (YAML).
	ManualsPath string `yaml:"manuals_path" env:"ENGINE_MANUALS_PATH" env-default:""`
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml is absent, environment variables alone are
// used. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	err := cleanenv.ReadConfig("config.yaml", cfg)
	if errors.Is(err, os.ErrNotExist) {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Engine.FetchLimit <= 0 {
		return fmt.Errorf("engine.fetch_limit must be positive")
	}
	if c.Engine.InsertBatchSize <= 0 || c.Engine.DeleteBatchSize <= 0 {
		return fmt.Errorf("engine batch sizes must be positive")
	}
	if c.Engine.NumericTolerance <= 0 {
		return fmt.Errorf("engine.numeric_tolerance must be positive")
	}
	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case "openai", "anthropic":
		default:
			return fmt.Errorf("unsupported llm provider: %s", c.LLM.Provider)
		}
		if c.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when llm.provider is set")
		}
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
