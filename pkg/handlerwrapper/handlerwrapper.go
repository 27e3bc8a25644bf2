// Package handlerwrapper adapts typed event handlers to Watermill handler
// functions. A wrapped handler decodes its JSON payload, runs inside a span
// and publishes every Result it returns to the Result's topic.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ryan-huber-j/FFXIVBot/pkg/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TopicMetadataKey records the topic a message was published to.
const TopicMetadataKey = "topic"

// Result is one outgoing event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// Metrics observes handler outcomes. A nil Metrics is ignored.
type Metrics interface {
	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
}

// NewMessage encodes payload as JSON and carries the correlation ID of ctx.
func NewMessage(ctx context.Context, topic string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	msg.Metadata.Set(TopicMetadataKey, topic)
	if id := attr.CorrelationIDFromContext(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}
	return msg, nil
}

// Publish encodes and publishes a single Result.
func Publish(ctx context.Context, publisher message.Publisher, r Result) error {
	msg, err := NewMessage(ctx, r.Topic, r.Payload)
	if err != nil {
		return err
	}
	for k, v := range r.Metadata {
		msg.Metadata.Set(k, v)
	}
	if err := publisher.Publish(r.Topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", r.Topic, err)
	}
	return nil
}

// WrapTransformingTyped decodes the message payload into T, calls handler and
// publishes its results. Payloads that cannot be decoded are logged and
// acknowledged, since redelivery cannot fix them.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher message.Publisher,
	metrics Metrics,
	handler func(context.Context, *T) ([]Result, error),
) message.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(handlerName)
	}

	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))
		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("message_id", msg.UUID),
			attribute.String("correlation_id", attr.CorrelationIDFromContext(ctx)),
		))
		defer span.End()

		if metrics != nil {
			metrics.RecordHandlerAttempt(ctx, handlerName)
			start := time.Now()
			defer func() { metrics.RecordHandlerDuration(ctx, handlerName, time.Since(start)) }()
		}

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Dropping message with undecodable payload",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			span.RecordError(err)
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			return nil, nil
		}

		out, err := handler(ctx, payload)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			// Results produced before the failure still reach the caller.
			if pubErr := publishAll(ctx, publisher, out); pubErr != nil {
				logger.ErrorContext(ctx, "Failed to publish results of failed handler",
					attr.ExtractCorrelationID(ctx),
					attr.String("handler", handlerName),
					attr.Error(pubErr),
				)
			}
			return nil, err
		}

		if err := publishAll(ctx, publisher, out); err != nil {
			span.RecordError(err)
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			return nil, err
		}

		if metrics != nil {
			metrics.RecordHandlerSuccess(ctx, handlerName)
		}
		return nil, nil
	}
}

func publishAll(ctx context.Context, publisher message.Publisher, out []Result) error {
	for _, r := range out {
		if r.Topic == "" {
			return fmt.Errorf("handler result has no topic")
		}
		if err := Publish(ctx, publisher, r); err != nil {
			return err
		}
	}
	return nil
}
