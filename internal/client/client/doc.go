// Package client bootstraps the local persistence used by the gamedeals CLI.
//
// InitDatabase opens an SQLite database through the pure-Go modernc driver
// and applies the embedded goose migrations (see package migrations), which
// create the users and search_history tables used by the SQLite credential
// store and activity log. The CSV backends do not need it.
package client
