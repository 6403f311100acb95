package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/aussiebroadwan/guildhall/internal/guild/http"
	"github.com/aussiebroadwan/guildhall/internal/guild/metrics"
	"github.com/aussiebroadwan/guildhall/internal/guild/service"
	"github.com/aussiebroadwan/guildhall/internal/guild/store"
	"github.com/aussiebroadwan/guildhall/internal/guild/store/drivers/postgres"
	"github.com/aussiebroadwan/guildhall/internal/guild/store/drivers/sqlite"
	"github.com/aussiebroadwan/guildhall/pkg/cryptox"
	"github.com/aussiebroadwan/guildhall/pkg/httpx"
	"github.com/aussiebroadwan/guildhall/pkg/jwtx"
	"github.com/aussiebroadwan/guildhall/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=".
var BuildVersion = "v0.1.0"

// Application encapsulates the guild service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	issuer   *jwtx.Issuer
	registry *prometheus.Registry

	// Services
	authService   *service.AuthService
	serverService *service.ServerService
	inviteService *service.InviteService

	// HTTP server
	server   *http.Server
	router   *httpapi.Router
	listener net.Listener
	ready    chan struct{}
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
		ready:  make(chan struct{}),
	}

	policy, err := service.ParseUseCountPolicy(cfg.InviteUsePolicy)
	if err != nil {
		return nil, err
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	httpx.LoadRateLimitsFromEnv()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	issuer, err := InitIssuer(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.issuer = issuer

	app.initMetrics()
	app.initServices(policy)
	app.initHTTP()

	return app, nil
}

// NewLogger returns the service logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "guild-service",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// Run serves HTTP until ctx is cancelled or the server fails, then shuts
// down gracefully.
func (app *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to listen on %s: %w", app.server.Addr, err)
	}
	app.listener = ln
	close(app.ready)

	app.logger.Info("guild service starting",
		"addr", ln.Addr().String(),
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.Serve(ln)
	}()

	// Block until we are asked to stop or the server fails
	select {
	case err := <-serverErrors:
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
	}

	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-serverErrors
	return nil
}

// Ready is closed once Run is listening.
func (app *Application) Ready() <-chan struct{} { return app.ready }

// Addr is the address Run listens on. Only valid after Ready is closed.
func (app *Application) Addr() net.Addr { return app.listener.Addr() }

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down guild service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGrace)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("guild service stopped")
	return nil
}

// OpenStore opens the configured database and applies migrations.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	var (
		db  store.Store
		err error
	)

	switch cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.DatabaseMaxConns))
	default:
		db, err = sqlite.NewStore(cfg.DatabaseFile, sqlite.WithMaxOpenConns(cfg.DatabaseMaxConns))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterMetrics(app.registry)
}

// initServices initializes all business logic services
func (app *Application) initServices(policy service.UseCountPolicy) {
	app.authService = &service.AuthService{Store: app.db, Issuer: app.issuer}
	app.serverService = &service.ServerService{Store: app.db}
	app.inviteService = &service.InviteService{Store: app.db, Policy: policy}

	app.logger.Info("invite use counting", "policy", policy.String())
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.issuer,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.Metrics = app.registry
	router.AuthService = app.authService
	router.ServerService = app.serverService
	router.InviteService = app.inviteService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
