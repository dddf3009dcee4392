package config

import (
	"fmt"
	"os"
	"time"
)

// Storage backends.
const (
	StorageCSV    = "csv"
	StorageSQLite = "sqlite"
)

// Config holds runtime settings for the gamedeals CLI.
type Config struct {
	// Storage selects the persistence backend: StorageCSV or StorageSQLite.
	Storage string

	UsersFile   string
	HistoryFile string
	DatabaseDSN string

	CatalogEndpoint        string
	CatalogTimeout         time.Duration
	CatalogRequestInterval time.Duration

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = StorageCSV
	c.UsersFile = "users.csv"
	c.HistoryFile = "search_history.csv"
	c.DatabaseDSN = "gamedeals.db"
	c.CatalogEndpoint = "https://www.cheapshark.com/api/1.0"
	c.CatalogTimeout = 10 * time.Second
	c.CatalogRequestInterval = 250 * time.Millisecond
	c.LogLevel = "warn"
}

// Validate reports settings that cannot be used as given.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageCSV, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage, StorageCSV, StorageSQLite)
	}
	if c.CatalogEndpoint == "" {
		return fmt.Errorf("catalog endpoint must not be empty")
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive, got %s", c.CatalogTimeout)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
