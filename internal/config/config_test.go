package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.GetTTL())
	assert.Equal(t, 10000, cfg.Cache.MaxEntries)
	assert.Equal(t, 15*time.Second, cfg.Server.GetReadTimeout())
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeTemp(t, "finplan.toml", `
environment = "production"

[server]
port = 9090
write_timeout = "45s"

[server.rate_limit]
requests_per_second = 2.5
burst = 5

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "10m"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset keys keep defaults")
	assert.Equal(t, 45*time.Second, cfg.Server.GetWriteTimeout())
	assert.Equal(t, 2.5, cfg.Server.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Server.RateLimit.Burst)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cache.GetTTL())
}

func TestLoadConfig_YAMLLayered(t *testing.T) {
	base := writeTemp(t, "base.yaml", "server:\n  port: 7000\nlogging:\n  level: debug\n")
	override := writeTemp(t, "override.yml", "server:\n  port: 7001\n")

	cfg, err := LoadConfig(base, "", "does-not-exist.yaml", override)
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FINPLAN_PORT", "6060")
	t.Setenv("FINPLAN_LOG_LEVEL", "warn")
	t.Setenv("FINPLAN_STORAGE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://fallback")
	t.Setenv("FINPLAN_DATABASE_URL", "postgres://finplan@db/finplan")
	t.Setenv("FINPLAN_RATE_LIMIT", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "postgres", cfg.Storage.Backend)
	assert.Equal(t, "postgres://finplan@db/finplan", cfg.Storage.DatabaseURL)
	assert.Zero(t, cfg.Server.RateLimit.RequestsPerSecond)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		message string
	}{
		{"unknown extension", "finplan.ini", "port=1", "unsupported config file type"},
		{"bad toml", "finplan.toml", "[server\n", "failed to parse config file"},
		{"unknown cache", "finplan.yaml", "cache:\n  backend: memcached\n", "unknown cache.backend"},
		{"postgres without url", "finplan.yaml", "storage:\n  backend: postgres\n", "database_url is required"},
		{"port out of range", "finplan.yaml", "server:\n  port: 70000\n", "out of range"},
	}

	t.Setenv("DATABASE_URL", "")
	t.Setenv("FINPLAN_DATABASE_URL", "")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeTemp(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
