// Package app wires configuration, logging, the identity store, the user
// service, optional seed data and the console, and runs them until the
// console exits or the process is signalled.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/identitystore/internal/cli"
	"github.com/dmitrijs2005/identitystore/internal/config"
	"github.com/dmitrijs2005/identitystore/internal/logging"
	"github.com/dmitrijs2005/identitystore/internal/seed"
	"github.com/dmitrijs2005/identitystore/internal/services"
	"github.com/dmitrijs2005/identitystore/internal/store"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *store.MemoryStore
	users   *services.UserService
	console *cli.App
}

// NewApp builds the application. Log output goes to logOut, the console
// reads in and writes out.
func NewApp(c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger := logging.New(logOut, c.LogLevel, c.LogFormat)

	opts := []store.Option{store.WithLogger(logger)}
	if c.RetainSideTablesOnDelete {
		opts = append(opts, store.WithSideTableRetention())
	}
	st := store.NewMemoryStore(opts...)

	us := services.NewUserService(st, c, logger)

	if c.SeedFile != "" {
		n, err := seed.LoadFile(context.Background(), c.SeedFile, us, logger)
		if err != nil {
			return nil, fmt.Errorf("seed init error: %w", err)
		}
		logger.Info(context.Background(), "seed loaded", "file", c.SeedFile, "users", n)
	}

	return &App{
		config:  c,
		logger:  logger,
		store:   st,
		users:   us,
		console: cli.NewApp(us, logger, in, out),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the console exits, ctx is cancelled or a termination
// signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "users", app.store.Count(ctx))

	app.initSignalHandler(cancelFunc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.console.Run(ctx)
	}()

	// a console blocked on input is abandoned on shutdown
	select {
	case <-done:
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "Stopped", "users", app.store.Count(context.Background()))
}
