// Package professionalsmetrics records service and handler metrics for the
// professionals module.
package professionalsmetrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ProfessionalsMetrics is the metrics surface used by the service and the
// event handlers.
type ProfessionalsMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)

	RecordAggregationRun(ctx context.Context, outcome string, players, mentions int)

	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
}

type prometheusMetrics struct {
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	aggregationRuns   *prometheus.CounterVec
	lastPlayers       prometheus.Gauge
	lastMentions      prometheus.Gauge
	handlers          *prometheus.CounterVec
	handlerDuration   *prometheus.HistogramVec
}

// NewPrometheus creates the module collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (ProfessionalsMetrics, error) {
	m := &prometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ffxivbot",
			Subsystem: "professionals",
			Name:      "operations_total",
			Help:      "Service operations by name and status.",
		}, []string{"service", "operation", "status"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ffxivbot",
			Subsystem: "professionals",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		aggregationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ffxivbot",
			Subsystem: "professionals",
			Name:      "aggregation_runs_total",
			Help:      "Competition result runs by outcome.",
		}, []string{"outcome"}),
		lastPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ffxivbot",
			Subsystem: "professionals",
			Name:      "last_run_player_scores",
			Help:      "Player scores produced by the last successful run.",
		}),
		lastMentions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ffxivbot",
			Subsystem: "professionals",
			Name:      "last_run_honorable_mentions",
			Help:      "Honorable mentions produced by the last successful run.",
		}),
		handlers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ffxivbot",
			Subsystem: "professionals",
			Name:      "handler_messages_total",
			Help:      "Handled messages by handler and status.",
		}, []string{"handler", "status"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ffxivbot",
			Subsystem: "professionals",
			Name:      "handler_duration_seconds",
			Help:      "Handler latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
	}

	if reg == nil {
		return m, nil
	}
	collectors := []prometheus.Collector{
		m.operations, m.operationDuration, m.aggregationRuns,
		m.lastPlayers, m.lastMentions, m.handlers, m.handlerDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "attempt").Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "success").Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(service, operation, "failure").Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.operationDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordAggregationRun(_ context.Context, outcome string, players, mentions int) {
	m.aggregationRuns.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		m.lastPlayers.Set(float64(players))
		m.lastMentions.Set(float64(mentions))
	}
}

func (m *prometheusMetrics) RecordHandlerAttempt(_ context.Context, handlerName string) {
	m.handlers.WithLabelValues(handlerName, "attempt").Inc()
}

func (m *prometheusMetrics) RecordHandlerSuccess(_ context.Context, handlerName string) {
	m.handlers.WithLabelValues(handlerName, "success").Inc()
}

func (m *prometheusMetrics) RecordHandlerFailure(_ context.Context, handlerName string) {
	m.handlers.WithLabelValues(handlerName, "failure").Inc()
}

func (m *prometheusMetrics) RecordHandlerDuration(_ context.Context, handlerName string, duration time.Duration) {
	m.handlerDuration.WithLabelValues(handlerName).Observe(duration.Seconds())
}

type noop struct{}

// NewNoop returns metrics that record nothing.
func NewNoop() ProfessionalsMetrics { return noop{} }

func (noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (noop) RecordOperationFailure(context.Context, string, string)                 {}
func (noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noop) RecordAggregationRun(context.Context, string, int, int)                 {}
func (noop) RecordHandlerAttempt(context.Context, string)                           {}
func (noop) RecordHandlerSuccess(context.Context, string)                           {}
func (noop) RecordHandlerFailure(context.Context, string)                           {}
func (noop) RecordHandlerDuration(context.Context, string, time.Duration)           {}
