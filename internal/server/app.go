// Package server initializes and runs the application: it opens the
// database, runs migrations, connects the blob store and starts the HTTP
// server with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/researchhub/backend/internal/logging"
	"github.com/researchhub/backend/internal/server/blob"
	"github.com/researchhub/backend/internal/server/config"
	"github.com/researchhub/backend/internal/server/httpapi"
	"github.com/researchhub/backend/internal/server/papers"
	"github.com/researchhub/backend/internal/server/repos"
	"github.com/researchhub/backend/internal/server/repositories/repomanager"
	"github.com/researchhub/backend/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := blob.NewS3Store(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	us := users.NewService(db, rm, cfg)
	rs := repos.NewService(db, rm)
	ps := papers.NewService(db, rm, store, logger, cfg.MaxUploadBytes)

	srv := httpapi.NewServer(cfg, logger, us, rs, ps)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until the context is cancelled or an OS signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "Starting app...")

	err := app.server.Run(ctx)

	app.logger.Info(ctx, "Closing database connection...")
	if closeErr := app.db.Close(); closeErr != nil {
		app.logger.Error(ctx, "error closing database", "error", closeErr.Error())
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
