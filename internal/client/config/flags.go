package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gamedeals/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   storage backend: csv or sqlite
//	-u string   users CSV file
//	-h string   search history CSV file
//	-d string   SQLite database DSN
//	-e string   catalog API endpoint
//	-t int      catalog request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// Only these flags are picked from args (via flagx.FilterArgs), so -c/-config
// and anything else is left to other parsers.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-s", "-u", "-h", "-d", "-e", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (csv or sqlite)")
	fs.StringVar(&cfg.UsersFile, "u", cfg.UsersFile, "users CSV file")
	fs.StringVar(&cfg.HistoryFile, "h", cfg.HistoryFile, "search history CSV file")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite database DSN")
	fs.StringVar(&cfg.CatalogEndpoint, "e", cfg.CatalogEndpoint, "catalog API endpoint")
	timeout := fs.Int("t", int(cfg.CatalogTimeout.Seconds()), "catalog request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.CatalogTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
