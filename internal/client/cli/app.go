package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gamedeals/internal/client/captcha"
	"github.com/dmitrijs2005/gamedeals/internal/client/catalog"
	"github.com/dmitrijs2005/gamedeals/internal/client/client"
	"github.com/dmitrijs2005/gamedeals/internal/client/config"
	"github.com/dmitrijs2005/gamedeals/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/gamedeals/internal/client/repositories/history"
	"github.com/dmitrijs2005/gamedeals/internal/client/services"
	"github.com/dmitrijs2005/gamedeals/internal/cryptox"
	"github.com/dmitrijs2005/gamedeals/internal/logging"
)

// App holds the wired services and the interactive session state.
type App struct {
	config         *config.Config
	authService    services.AuthService
	historyService services.HistoryService
	catalog        catalog.Catalog
	storeNames     map[string]string
	userName       string
	reader         *bufio.Reader
	out            io.Writer
	log            logging.Logger
	closers        []func() error
}

// NewApp opens the configured storage backend, loads the credential table
// and builds the services. Call Close when done.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{
		config: c,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		log:    log,
	}

	var (
		store credentials.Store
		repo  history.Repository
	)

	switch c.Storage {
	case config.StorageSQLite:
		db, err := client.InitDatabase(ctx, c.DatabaseDSN)
		if err != nil {
			log.Error(ctx, "error initializing database", "dsn", c.DatabaseDSN, "error", err)
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		store = credentials.NewSQLiteStore(db)
		repo = history.NewSQLiteRepository(db)
	case config.StorageCSV:
		store = credentials.NewCSVStore(c.UsersFile)
		repo = history.NewCSVRepository(c.HistoryFile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Storage)
	}

	table, err := store.Load(ctx)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load users: %w", err)
	}
	log.Debug(ctx, "credential table loaded", "users", len(table), "storage", c.Storage)

	a.authService = services.NewAuthService(store, table, captcha.NewGenerator(nil),
		cryptox.NewBcryptHasher(bcrypt.DefaultCost), log)
	a.historyService = services.NewHistoryService(repo, nil, log)
	a.catalog = catalog.New(c.CatalogEndpoint, c.CatalogTimeout, c.CatalogRequestInterval, log)

	return a, nil
}

// Run shows the main menu until the user exits, stdin is closed or ctx is
// canceled.
func (a *App) Run(ctx context.Context) {
	a.log.Info(ctx, "session started")
	runMenu(ctx, a, a.reader, a.out)
	a.log.Info(ctx, "session finished")
}

// Close releases storage handles.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) currentUser() string {
	return a.userName
}

// printf writes user-facing output.
func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
