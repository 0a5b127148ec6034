// Package server initializes and runs the application server. It opens the
// database, applies migrations, wires the service layer to its backends
// (PostgreSQL, the S3 pin store, the chat-completion upstream) and starts
// the HTTP endpoint with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/eudaimonia-labs/eudaimonia/internal/logging"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/companion"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/config"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/httpapi"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/pinning"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/repositories/repomanager"
	"github.com/eudaimonia-labs/eudaimonia/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
	export *services.ExportService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	pinner, err := pinning.NewS3Pinner(ctx, pinning.S3Options{
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("pin store init error: %w", err)
	}

	completer := companion.NewOpenAIClient(c.CompanionBaseURL, c.CompanionAPIKey, c.CompanionModel)

	memberships := services.NewMembershipService(db, rm)
	exports := services.NewExportService(db, rm, pinner, logger)

	svcs := httpapi.Services{
		Users:       services.NewUserService(db, rm, c),
		Worlds:      services.NewWorldService(db, rm),
		Memberships: memberships,
		Posts:       services.NewPostService(db, rm),
		Friendships: services.NewFriendshipService(db, rm),
		Governance:  services.NewGovernanceService(db, rm),
		Profiles:    services.NewProfileService(db, rm),
		Artifacts:   services.NewArtifactService(db, rm, pinner),
		Exports:     exports,
		Companion:   services.NewCompanionService(memberships, completer),
	}

	srv, err := httpapi.NewServer(c.EndpointAddr, logger, svcs, c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("server init error: %w", err)
	}

	return &App{config: c, logger: logger, db: db, server: srv, export: exports}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// ExportService exposes the export runner so the admin CLI can drive
// pending jobs against the same wiring the server uses.
func (app *App) ExportService() *services.ExportService {
	return app.export
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
