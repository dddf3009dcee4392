package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		Storage:                StorageCSV,
		UsersFile:              "users.csv",
		HistoryFile:            "search_history.csv",
		DatabaseDSN:            "gamedeals.db",
		CatalogEndpoint:        "https://www.cheapshark.com/api/1.0",
		CatalogTimeout:         10 * time.Second,
		CatalogRequestInterval: 250 * time.Millisecond,
		LogLevel:               "warn",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
	require.NoError(t, defaults().Validate())
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    func(c *Config)
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-s", "sqlite", "-u", "u.csv", "-h", "h.csv", "-d", "x.db", "-e", "http://127.0.0.1:1", "-t", "3", "-l", "debug"},
			expected: func(c *Config) {
				c.Storage = StorageSQLite
				c.UsersFile = "u.csv"
				c.HistoryFile = "h.csv"
				c.DatabaseDSN = "x.db"
				c.CatalogEndpoint = "http://127.0.0.1:1"
				c.CatalogTimeout = 3 * time.Second
				c.LogLevel = "debug"
			},
		},
		{
			name:     "config flag is ignored here",
			args:     []string{"-c", "cfg.json", "-u", "other.csv"},
			expected: func(c *Config) { c.UsersFile = "other.csv" },
		},
		{
			name:     "no flags keep defaults",
			args:     nil,
			expected: func(c *Config) {},
		},
		{
			name:        "bad timeout panics",
			args:        []string{"-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			want := defaults()
			tt.expected(want)

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestValidate(t *testing.T) {
	c := defaults()
	c.Storage = "postgres"
	assert.ErrorContains(t, c.Validate(), "unknown storage backend")

	c = defaults()
	c.CatalogEndpoint = ""
	assert.Error(t, c.Validate())

	c = defaults()
	c.CatalogTimeout = 0
	assert.Error(t, c.Validate())
}
