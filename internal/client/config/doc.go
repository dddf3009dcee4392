// Package config loads runtime configuration for the gamedeals CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string   storage backend: csv (default) or sqlite
//	-u string   users CSV file (default users.csv)
//	-h string   search history CSV file (default search_history.csv)
//	-d string   SQLite database DSN (default gamedeals.db)
//	-e string   catalog API endpoint
//	-t int      catalog request timeout in seconds (default 10)
//	-l string   log level (default warn)
//
// # JSON schema
//
//	{
//	  "storage": "sqlite",
//	  "users_file": "users.csv",
//	  "history_file": "search_history.csv",
//	  "database_dsn": "gamedeals.db",
//	  "catalog_endpoint": "https://www.cheapshark.com/api/1.0",
//	  "catalog_timeout": "10s",
//	  "catalog_request_interval": "250ms",
//	  "log_level": "info"
//	}
//
// The request interval is JSON-only. Environment variables are not read.
package config
