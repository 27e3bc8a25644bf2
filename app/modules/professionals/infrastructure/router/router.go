package professionalsrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	professionalshandlers "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/handlers"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/ryan-huber-j/FFXIVBot/pkg/handlerwrapper"
	"go.opentelemetry.io/otel/trace"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// ProfessionalsRouter handles routing for professionals module events.
type ProfessionalsRouter struct {
	logger             *slog.Logger
	Router             *message.Router
	subscriber         message.Subscriber
	publisher          message.Publisher
	prometheusRegistry prometheus.Registerer
	tracer             trace.Tracer
	metrics            handlerwrapper.Metrics
}

// NewProfessionalsRouter creates a new ProfessionalsRouter.
func NewProfessionalsRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	prometheusRegistry prometheus.Registerer,
	tracer trace.Tracer,
	metrics handlerwrapper.Metrics,
) *ProfessionalsRouter {
	return &ProfessionalsRouter{
		logger:             logger,
		Router:             router,
		subscriber:         subscriber,
		publisher:          publisher,
		prometheusRegistry: prometheusRegistry,
		tracer:             tracer,
		metrics:            metrics,
	}
}

// Configure sets up the router with the necessary handlers and middleware.
func (r *ProfessionalsRouter) Configure(routerCtx context.Context, handlers professionalshandlers.Handlers) error {
	if os.Getenv(TestEnvironmentFlag) != TestEnvironmentValue && r.prometheusRegistry != nil {
		metricsBuilder := metrics.NewPrometheusMetricsBuilder(r.prometheusRegistry, "", "")
		metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    handlerwrapper.Metrics
}

// registerHandler registers a typed handler. Handlers publish their own
// results, so the router gets no publisher.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "professionals." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		nil,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.publisher,
			deps.metrics,
			handler,
		),
	)
}

// RegisterHandlers registers every professionals request topic.
func (r *ProfessionalsRouter) RegisterHandlers(ctx context.Context, handlers professionalshandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		metrics:    r.metrics,
	}

	registerHandler(deps, professionalsevents.ParticipateRequestedV1, handlers.HandleParticipateRequested)
	registerHandler(deps, professionalsevents.CoachRequestedV1, handlers.HandleCoachRequested)
	registerHandler(deps, professionalsevents.ParticipationEndRequestedV1, handlers.HandleParticipationEndRequested)
	registerHandler(deps, professionalsevents.ContractCreateRequestedV1, handlers.HandleContractCreateRequested)
	registerHandler(deps, professionalsevents.ContractEndRequestedV1, handlers.HandleContractEndRequested)
	registerHandler(deps, professionalsevents.StatusRequestedV1, handlers.HandleStatusRequested)
	registerHandler(deps, professionalsevents.ResultsRequestedV1, handlers.HandleResultsRequested)
	registerHandler(deps, professionalsevents.CompetitionStartRequestedV1, handlers.HandleCompetitionStartRequested)
	registerHandler(deps, professionalsevents.CompetitionScheduleRequestedV1, handlers.HandleCompetitionScheduleRequested)
	registerHandler(deps, professionalsevents.CompetitionScheduleListRequestedV1, handlers.HandleCompetitionScheduleListRequested)

	return nil
}

// Close stops the router.
func (r *ProfessionalsRouter) Close() error {
	return r.Router.Close()
}
