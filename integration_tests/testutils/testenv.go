// Package testutils starts the containers the integration tests run against.
package testutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/ryan-huber-j/FFXIVBot/app"
	"github.com/ryan-huber-j/FFXIVBot/app/eventbus"
	"github.com/ryan-huber-j/FFXIVBot/integration_tests/containers"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/testcontainers/testcontainers-go"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// TestEnvironment holds all resources needed for integration testing
type TestEnvironment struct {
	PgContainer   testcontainers.Container
	NatsContainer testcontainers.Container
	DSN           string
	NatsURL       string
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Logger        *slog.Logger
}

// NewTestEnvironment starts Postgres and NATS, migrates the schema and
// connects an event bus.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	env := &TestEnvironment{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	pg, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}
	env.PgContainer, env.DSN = pg, dsn

	nc, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Close(ctx)
		return nil, err
	}
	env.NatsContainer, env.NatsURL = nc, natsURL

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		env.Close(ctx)
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	env.DB = bun.NewDB(sqlDB, pgdialect.New())

	if err := app.Migrate(ctx, env.DB, env.Logger); err != nil {
		env.Close(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, eventbus.Options{URL: natsURL, AckWait: 5 * time.Second}, env.Logger)
	if err != nil {
		env.Close(ctx)
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	env.EventBus = bus

	if err := bus.CreateStream(ctx, professionalsevents.StreamName, professionalsevents.StreamSubjects); err != nil {
		env.Close(ctx)
		return nil, err
	}

	return env, nil
}

// Reset empties the tables and the stream between tests.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	if _, err := env.DB.ExecContext(ctx, "TRUNCATE participants, contracts"); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	if _, err := env.DB.ExecContext(ctx, "DELETE FROM river_job"); err != nil {
		// River creates its tables lazily, on first queue start.
		var exists bool
		if qerr := env.DB.QueryRowContext(ctx, "SELECT to_regclass('river_job') IS NOT NULL").Scan(&exists); qerr != nil || exists {
			return fmt.Errorf("failed to clear river jobs: %w", err)
		}
	}

	stream, err := env.EventBus.GetJetStream().Stream(ctx, professionalsevents.StreamName)
	if err != nil {
		if errors.Is(err, jetstream.ErrStreamNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up stream: %w", err)
	}
	if err := stream.Purge(ctx); err != nil {
		return fmt.Errorf("failed to purge stream: %w", err)
	}
	return nil
}

// Close terminates everything NewTestEnvironment started.
func (env *TestEnvironment) Close(ctx context.Context) {
	if env.EventBus != nil {
		_ = env.EventBus.Close()
	}
	if env.DB != nil {
		_ = env.DB.Close()
	}
	for _, c := range []testcontainers.Container{env.NatsContainer, env.PgContainer} {
		if c != nil {
			_ = c.Terminate(ctx)
		}
	}
}
