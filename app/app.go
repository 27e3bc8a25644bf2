package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ryan-huber-j/FFXIVBot/app/eventbus"
	"github.com/ryan-huber-j/FFXIVBot/app/modules/professionals"
	professionalsmigrations "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/repositories/migrations"
	"github.com/ryan-huber-j/FFXIVBot/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"go.opentelemetry.io/otel"
)

// App owns the shared resources and the professionals module.
type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	Registry      *prometheus.Registry
	Professionals *professionals.Module

	opsServer *http.Server
}

// NewLogger returns a JSON logger in production and a text logger otherwise.
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("service", cfg.Observability.ServiceName))
}

// NewApp connects to Postgres and NATS, migrates the schema and builds the
// professionals module.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	app.DB = bun.NewDB(sqldb, pgdialect.New())
	if err := app.DB.PingContext(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := Migrate(ctx, app.DB, logger); err != nil {
		_ = app.Close()
		return nil, err
	}

	bus, err := eventbus.NewEventBus(ctx, eventbus.Options{
		URL:      cfg.NATS.URL,
		NKeySeed: cfg.NATS.NKeySeed,
	}, logger)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 15 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}
	app.Router = router

	module, err := professionals.NewProfessionalsModule(ctx, cfg, professionals.Dependencies{
		Logger:   logger,
		DB:       app.DB,
		EventBus: bus,
		Router:   router,
		Registry: app.Registry,
		Tracer:   otel.Tracer(cfg.Observability.ServiceName),
	}, ctx)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Professionals = module

	return app, nil
}

// Migrate applies pending professionals migrations.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrator := migrate.NewMigrator(db, professionalsmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	if err := migrator.Lock(ctx); err != nil {
		return fmt.Errorf("failed to lock migrations: %w", err)
	}
	defer func() {
		if err := migrator.Unlock(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to unlock migrations", slog.Any("error", err))
		}
	}()

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	if group.IsZero() {
		logger.InfoContext(ctx, "Database schema is up to date")
	} else {
		logger.InfoContext(ctx, "Database migrated", slog.String("group", group.String()))
	}
	return nil
}

// Close releases everything NewApp opened, in reverse order.
func (app *App) Close() error {
	var errs []error
	if app.opsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := app.opsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ops server: %w", err))
		}
		cancel()
	}
	if app.Professionals != nil {
		if err := app.Professionals.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("message router: %w", err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
