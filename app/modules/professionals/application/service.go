package professionalsservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	professionalsdb "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/repositories"
	"github.com/ryan-huber-j/FFXIVBot/pkg/attr"
	professionalsmetrics "github.com/ryan-huber-j/FFXIVBot/pkg/observability/metrics/professionals"
	"github.com/ryan-huber-j/FFXIVBot/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ProfessionalsService"

// Settings are the competition rules the service enforces.
type Settings struct {
	Scope           professionalsdomain.Scope
	DataCenter      string
	ContractAmounts []int64
	Payouts         professionalsdomain.PayoutTable
}

// ProfessionalsService implements the Service interface.
type ProfessionalsService struct {
	repo     professionalsdb.Repository
	source   RankingSource
	settings Settings
	logger   *slog.Logger
	metrics  professionalsmetrics.ProfessionalsMetrics
	tracer   trace.Tracer
	db       *bun.DB

	pick    professionalsdomain.Picker
	newID   func() string
	nowFunc func() time.Time
}

// NewProfessionalsService creates a new ProfessionalsService.
func NewProfessionalsService(
	repo professionalsdb.Repository,
	source RankingSource,
	settings Settings,
	logger *slog.Logger,
	metrics professionalsmetrics.ProfessionalsMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts ...Option,
) *ProfessionalsService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ProfessionalsService{
		repo:     repo,
		source:   source,
		settings: settings,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
		pick:     professionalsdomain.DefaultPicker,
		newID:    newRunID,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option customizes a ProfessionalsService.
type Option func(*ProfessionalsService)

// WithPicker replaces the random source used for tie breaks and the drawing.
func WithPicker(pick professionalsdomain.Picker) Option {
	return func(s *ProfessionalsService) {
		if pick != nil {
			s.pick = pick
		}
	}
}

// WithClock replaces the clock used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(s *ProfessionalsService) {
		if now != nil {
			s.nowFunc = now
		}
	}
}

// WithRunIDs replaces the run identifier generator.
func WithRunIDs(next func() string) Option {
	return func(s *ProfessionalsService) {
		if next != nil {
			s.newID = next
		}
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ProfessionalsService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operationName),
		attr.String("identifier", identifier),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ProfessionalsService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
