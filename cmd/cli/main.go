package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gamedeals/internal/buildinfo"
	"github.com/dmitrijs2005/gamedeals/internal/client/cli"
	"github.com/dmitrijs2005/gamedeals/internal/client/config"
	"github.com/dmitrijs2005/gamedeals/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	logger := logging.New(os.Stderr, level).With("session_id", uuid.NewString())

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	app.Run(ctx)

}
