package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gamedeals/internal/flagx"
	"github.com/dmitrijs2005/gamedeals/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so they can be written as "10s" or integer nanoseconds.
type JsonConfig struct {
	Storage                string         `json:"storage"`
	UsersFile              string         `json:"users_file"`
	HistoryFile            string         `json:"history_file"`
	DatabaseDSN            string         `json:"database_dsn"`
	CatalogEndpoint        string         `json:"catalog_endpoint"`
	CatalogTimeout         timex.Duration `json:"catalog_timeout"`
	CatalogRequestInterval timex.Duration `json:"catalog_request_interval"`
	LogLevel               string         `json:"log_level"`
}

// parseJson overlays cfg with the keys present in the file named by -c or
// -config. Keys missing from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Storage, jc.Storage)
	setString(&cfg.UsersFile, jc.UsersFile)
	setString(&cfg.HistoryFile, jc.HistoryFile)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.CatalogEndpoint, jc.CatalogEndpoint)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.CatalogTimeout.Duration > 0 {
		cfg.CatalogTimeout = jc.CatalogTimeout.Duration
	}
	if jc.CatalogRequestInterval.Duration > 0 {
		cfg.CatalogRequestInterval = jc.CatalogRequestInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
