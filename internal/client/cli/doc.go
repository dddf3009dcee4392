// Package cli provides the interactive gamedeals command-line client.
//
// It wires configuration, the selected storage backend (CSV files or
// SQLite), the authentication and history services and the catalog client,
// then runs a numbered menu loop:
//
//   - Login (email, arithmetic challenge, password)
//   - Register (email, password twice, security question and answer)
//   - Forgot Password (security answer, new password twice)
//   - once logged in: search for games, view search history, logout
//
// Passwords are read without echo through golang.org/x/term when stdin is a
// terminal. The loop is started via App.Run(ctx), which blocks until the
// user exits.
package cli
