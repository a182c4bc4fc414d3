package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:                "8081",
		DataBackend:         "memory",
		SQLiteDBPath:        "./test.db",
		AggregatesMode:      AggregatesFixture,
		ViewCacheSize:       100,
		ViewCacheTTL:        5 * time.Minute,
		ExportRatePerMinute: 30,
		LogLevel:            "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid memory backend config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid sqlite backend config",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.AggregatesMode = AggregatesDerived
			},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite]",
		},
		{
			name: "sqlite backend missing database path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "missing fixture file",
			mutate:      func(c *Config) { c.FixtureFile = "/non/existent/fixture.yaml" },
			wantErr:     true,
			errorString: "fixture file is not readable: /non/existent/fixture.yaml",
		},
		{
			name:        "invalid aggregates mode",
			mutate:      func(c *Config) { c.AggregatesMode = "stored" },
			wantErr:     true,
			errorString: "invalid aggregates mode 'stored': must be one of [fixture derived]",
		},
		{
			name:        "invalid view cache size - too small",
			mutate:      func(c *Config) { c.ViewCacheSize = 0 },
			wantErr:     true,
			errorString: "invalid view cache size 0: must be at least 1",
		},
		{
			name:        "invalid view cache ttl - too short",
			mutate:      func(c *Config) { c.ViewCacheTTL = 500 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid view cache ttl 500ms: must be at least 1 second",
		},
		{
			name:        "invalid view cache ttl - too long",
			mutate:      func(c *Config) { c.ViewCacheTTL = 25 * time.Hour },
			wantErr:     true,
			errorString: "invalid view cache ttl 25h0m0s: must be at most 24 hours",
		},
		{
			name:        "invalid export rate",
			mutate:      func(c *Config) { c.ExportRatePerMinute = 0 },
			wantErr:     true,
			errorString: "invalid export rate 0: must be at least 1 per minute",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateCombinesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.AggregatesMode = "nope"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed:")
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "invalid aggregates mode")
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestConfig_ValidateWithFixtureFile(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(fixture, []byte("transactions: []\n"), 0644))

	cfg := validConfig()
	cfg.FixtureFile = fixture
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATA_BACKEND", "SQLITE_DB_PATH", "FIXTURE_FILE", "AGGREGATES_MODE",
		"VIEW_CACHE_SIZE", "VIEW_CACHE_TTL", "EXPORT_RATE_PER_MINUTE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "8081", cfg.Port)
		assert.Equal(t, "memory", cfg.DataBackend)
		assert.Equal(t, "./data/findash.db", cfg.SQLiteDBPath)
		assert.Empty(t, cfg.FixtureFile)
		assert.Equal(t, AggregatesFixture, cfg.AggregatesMode)
		assert.Equal(t, 100, cfg.ViewCacheSize)
		assert.Equal(t, 5*time.Minute, cfg.ViewCacheTTL)
		assert.Equal(t, 30, cfg.ExportRatePerMinute)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_BACKEND", "sqlite")
		t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		t.Setenv("AGGREGATES_MODE", "DERIVED")
		t.Setenv("VIEW_CACHE_SIZE", "25")
		t.Setenv("VIEW_CACHE_TTL", "1m")
		t.Setenv("EXPORT_RATE_PER_MINUTE", "5")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := Load()

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "sqlite", cfg.DataBackend)
		assert.Equal(t, "/tmp/test.db", cfg.SQLiteDBPath)
		assert.Equal(t, AggregatesDerived, cfg.AggregatesMode)
		assert.Equal(t, 25, cfg.ViewCacheSize)
		assert.Equal(t, time.Minute, cfg.ViewCacheTTL)
		assert.Equal(t, 5, cfg.ExportRatePerMinute)
		assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	})

	t.Run("invalid numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("VIEW_CACHE_SIZE", "lots")
		t.Setenv("VIEW_CACHE_TTL", "soon")

		cfg := Load()

		assert.Equal(t, 100, cfg.ViewCacheSize)
		assert.Equal(t, 5*time.Minute, cfg.ViewCacheTTL)
	})
}
