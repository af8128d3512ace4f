// Package config loads the finplan application settings and calculator input
// files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AppConfig holds all configuration for the finplan server
type AppConfig struct {
	Environment string        `yaml:"environment" toml:"environment"`
	Server      ServerConfig  `yaml:"server" toml:"server"`
	Cache       CacheConfig   `yaml:"cache" toml:"cache"`
	Storage     StorageConfig `yaml:"storage" toml:"storage"`
	Logging     LoggingConfig `yaml:"logging" toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string          `yaml:"host" toml:"host"`
	Port         int             `yaml:"port" toml:"port"`
	ReadTimeout  string          `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout string          `yaml:"write_timeout" toml:"write_timeout"`
	CORSOrigin   string          `yaml:"cors_origin" toml:"cors_origin"`
	RateLimit    RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
}

// RateLimitConfig configures the per-client token bucket. A zero rate
// disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `yaml:"burst" toml:"burst"`
}

// CacheConfig selects the result cache backend: memory, redis or none.
type CacheConfig struct {
	Backend   string `yaml:"backend" toml:"backend"`
	RedisAddr string `yaml:"redis_addr" toml:"redis_addr"`
	TTL       string `yaml:"ttl" toml:"ttl"`
	// MaxEntries caps the memory backend. Zero uses the store default.
	MaxEntries int `yaml:"max_entries" toml:"max_entries"`
}

// StorageConfig selects the snapshot store: memory or postgres.
type StorageConfig struct {
	Backend       string `yaml:"backend" toml:"backend"`
	DatabaseURL   string `yaml:"database_url" toml:"database_url"`
	SnapshotLimit int    `yaml:"snapshot_limit" toml:"snapshot_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // console or json
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetReadTimeout parses the read timeout, defaulting to 15s.
func (c ServerConfig) GetReadTimeout() time.Duration {
	return parseDuration(c.ReadTimeout, 15*time.Second)
}

// GetWriteTimeout parses the write timeout, defaulting to 30s.
func (c ServerConfig) GetWriteTimeout() time.Duration {
	return parseDuration(c.WriteTimeout, 30*time.Second)
}

// Address returns host:port for the listener.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetTTL parses the cache entry lifetime, defaulting to one hour.
func (c CacheConfig) GetTTL() time.Duration {
	return parseDuration(c.TTL, time.Hour)
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment: "development",
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  "15s",
			WriteTimeout: "30s",
			CORSOrigin:   "*",
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 10,
				Burst:             20,
			},
		},
		Cache: CacheConfig{
			Backend:    "memory",
			RedisAddr:  "localhost:6379",
			TTL:        "1h",
			MaxEntries: 10000,
		},
		Storage: StorageConfig{
			Backend:       "memory",
			SnapshotLimit: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Files are merged in order; the parser is chosen by extension (.toml, .yaml,
// .yml). Missing files are skipped.
func LoadConfig(paths ...string) (*AppConfig, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			err = toml.Unmarshal(data, config)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, config)
		default:
			return nil, fmt.Errorf("unsupported config file type %s", path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *AppConfig) {
	if env := os.Getenv("FINPLAN_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FINPLAN_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FINPLAN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if rps := os.Getenv("FINPLAN_RATE_LIMIT"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			config.Server.RateLimit.RequestsPerSecond = v
		}
	}

	if level := os.Getenv("FINPLAN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("FINPLAN_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if backend := os.Getenv("FINPLAN_CACHE_BACKEND"); backend != "" {
		config.Cache.Backend = backend
	}

	if addr := os.Getenv("FINPLAN_REDIS_ADDR"); addr != "" {
		config.Cache.RedisAddr = addr
	}

	if backend := os.Getenv("FINPLAN_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}

	// DATABASE_URL is the conventional name; the prefixed one wins.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.Storage.DatabaseURL = url
	}
	if url := os.Getenv("FINPLAN_DATABASE_URL"); url != "" {
		config.Storage.DatabaseURL = url
	}
}

// Validate checks the backend selections and listener settings.
func (c *AppConfig) Validate() error {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("server.rate_limit.requests_per_second cannot be negative")
	}

	switch c.Cache.Backend {
	case "memory", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache.backend %q (memory, redis, none)", c.Cache.Backend)
	}

	switch c.Storage.Backend {
	case "memory":
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage.database_url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q (memory, postgres)", c.Storage.Backend)
	}

	if c.Storage.SnapshotLimit <= 0 {
		c.Storage.SnapshotLimit = 50
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *AppConfig) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
