package professionals

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	professionalsservice "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/application"
	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	professionalshandlers "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/handlers"
	"github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/lodestone"
	professionalsqueue "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/queue"
	professionalsdb "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/repositories"
	professionalsrouter "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/router"
	"github.com/ryan-huber-j/FFXIVBot/config"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	professionalsmetrics "github.com/ryan-huber-j/FFXIVBot/pkg/observability/metrics/professionals"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// EventBus is what the module needs from the message bus.
type EventBus interface {
	message.Publisher
	message.Subscriber
	CreateStream(ctx context.Context, streamName, subject string) error
	GetJetStream() jetstream.JetStream
}

// Dependencies are the shared resources the module is built on.
type Dependencies struct {
	Logger   *slog.Logger
	DB       *bun.DB
	EventBus EventBus
	Router   *message.Router
	Registry *prometheus.Registry
	Tracer   trace.Tracer
}

// Module represents the professionals module.
type Module struct {
	Service professionalsservice.Service
	Router  *professionalsrouter.ProfessionalsRouter
	Queue   *professionalsqueue.Service

	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewProfessionalsModule wires the scraper, store, service, handlers,
// router and reset queue together.
func NewProfessionalsModule(ctx context.Context, cfg *config.Config, deps Dependencies, routerCtx context.Context) (*Module, error) {
	logger := deps.Logger.With(slog.String("module", "professionals"))
	logger.InfoContext(ctx, "Initializing professionals module")

	metrics, err := professionalsmetrics.NewPrometheus(deps.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register professionals metrics: %w", err)
	}
	scraperMetrics, err := lodestone.NewMetrics(deps.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register lodestone metrics: %w", err)
	}

	source := lodestone.NewClient(lodestone.Config{
		BaseURL:           cfg.Lodestone.BaseURL,
		RequestsPerSecond: cfg.Lodestone.RequestsPerSecond,
		Burst:             cfg.Lodestone.Burst,
		CacheTTL:          cfg.Lodestone.CacheTTL,
		CacheSize:         cfg.Lodestone.CacheSize,
		Timeout:           cfg.Lodestone.Timeout,
	}, logger, scraperMetrics, deps.Tracer)

	scope := professionalsdomain.Scope{
		FreeCompanyID: cfg.Lodestone.FreeCompanyID,
		World:         cfg.Lodestone.WorldName,
	}
	service := professionalsservice.NewProfessionalsService(
		professionalsdb.NewRepository(deps.DB),
		source,
		professionalsservice.Settings{
			Scope:           scope,
			DataCenter:      cfg.Lodestone.DataCenter,
			ContractAmounts: cfg.Competition.ContractAmounts,
			Payouts:         professionalsdomain.PayoutTable(cfg.Competition.Payouts),
		},
		logger,
		metrics,
		deps.Tracer,
		deps.DB,
	)

	if err := deps.EventBus.CreateStream(ctx, professionalsevents.StreamName, professionalsevents.StreamSubjects); err != nil {
		return nil, fmt.Errorf("failed to create professionals stream: %w", err)
	}

	queue, err := professionalsqueue.NewService(ctx, deps.DB, professionalsqueue.Options{
		DSN:           cfg.Postgres.DSN,
		ResetEnabled:  cfg.Competition.ResetEnabled,
		ResetSchedule: cfg.Competition.ResetSchedule,
	}, service, deps.EventBus, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create professionals queue: %w", err)
	}

	handlers := professionalshandlers.NewProfessionalsHandlers(service, deps.EventBus, queue, scope, logger)
	router := professionalsrouter.NewProfessionalsRouter(logger, deps.Router, deps.EventBus, deps.EventBus, deps.Registry, deps.Tracer, metrics)
	if err := router.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure professionals router: %w", err)
	}

	return &Module{
		Service: service,
		Router:  router,
		Queue:   queue,
		logger:  logger,
	}, nil
}

// Run starts the reset queue and blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if m.Queue != nil {
		if err := m.Queue.Start(ctx); err != nil {
			m.logger.ErrorContext(ctx, "Failed to start professionals queue", slog.Any("error", err))
			return
		}
	}

	m.logger.InfoContext(ctx, "Professionals module running")
	<-ctx.Done()
	m.logger.Info("Professionals module goroutine stopped")
}

// Close stops the queue and the module router.
func (m *Module) Close() error {
	m.logger.Info("Stopping professionals module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	var firstErr error
	if m.Queue != nil {
		if err := m.Queue.Stop(context.Background()); err != nil {
			firstErr = fmt.Errorf("error stopping professionals queue: %w", err)
		}
	}
	if m.Router != nil {
		if err := m.Router.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("error closing professionals router: %w", err)
		}
	}
	return firstErr
}
