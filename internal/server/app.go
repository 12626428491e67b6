// Package server wires configuration, storage, services and the REST API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/booktracker/internal/logging"
	"github.com/dmitrijs2005/booktracker/internal/server/config"
	"github.com/dmitrijs2005/booktracker/internal/server/httpapi"
	"github.com/dmitrijs2005/booktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/booktracker/internal/server/services"
)

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	repos  repomanager.RepositoryManager
}

// NewApp opens the connection pool. No connection is made until Run.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(c.DBMaxOpenConns)
	db.SetMaxIdleConns(c.DBMaxIdleConns)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		repos:  repomanager.NewPostgresRepositoryManager(),
	}, nil
}

// Run connects to the database, applies migrations and serves the API until
// ctx is cancelled or SIGINT/SIGTERM arrives. The pool is closed on return.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "config", app.config.String())

	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db connect error: %w", err)
	}
	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return err
	}

	us := services.NewUserService(app.db, app.repos, app.config, app.logger)
	bs := services.NewBookService(app.db, app.repos, app.logger)

	srv := httpapi.NewServer(app.config.HTTPAddr, app.logger, us, bs, app.db,
		app.config.CORSOrigins, app.config.ShutdownTimeout)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
