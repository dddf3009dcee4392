package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// execIface defines the minimal command surface the menu loop needs.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	currentUser() string
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Search(ctx context.Context) error
	ShowHistory(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runMenu drives the numbered menus until the user exits, input ends or ctx
// is canceled.
//
//	Not logged in:            Logged in:
//	  1. Login                  1. Search for games
//	  2. Register               2. View search history
//	  3. Forgot Password        3. Logout
//	  4. Exit
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runMenu(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for ctx.Err() == nil {
		var choice string
		var err error

		if a.isLoggedIn() {
			fmt.Fprintf(w, "\nLogged in as: %s\n", a.currentUser())
			fmt.Fprintln(w, "\n1. Search for games")
			fmt.Fprintln(w, "2. View search history")
			fmt.Fprintln(w, "3. Logout")
			choice, err = getSimpleText(reader, "Enter your choice (1-3)", w)
			if err != nil {
				return
			}

			switch choice {
			case "1":
				_ = a.Search(ctx)
			case "2":
				_ = a.ShowHistory(ctx)
			case "3":
				_ = a.Logout(ctx)
			default:
				fmt.Fprintln(w, "Invalid choice. Please try again.")
			}
			continue
		}

		fmt.Fprintln(w, "\n1. Login")
		fmt.Fprintln(w, "2. Register")
		fmt.Fprintln(w, "3. Forgot Password")
		fmt.Fprintln(w, "4. Exit")
		choice, err = getSimpleText(reader, "Enter your choice (1-4)", w)
		if err != nil {
			return
		}

		switch choice {
		case "1":
			_ = a.Login(ctx)
		case "2":
			_ = a.Register(ctx)
		case "3":
			_ = a.ResetPassword(ctx)
		case "4":
			fmt.Fprintln(w, "Goodbye!")
			return
		default:
			fmt.Fprintln(w, "Invalid choice. Please try again.")
		}
	}
}
