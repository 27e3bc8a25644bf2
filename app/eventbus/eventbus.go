// Package eventbus connects Watermill to NATS JetStream.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/nats-io/nkeys"
	"github.com/ryan-huber-j/FFXIVBot/pkg/attr"
)

// EventBus is a Watermill publisher and subscriber backed by JetStream.
type EventBus interface {
	message.Publisher
	message.Subscriber
	// CreateStream makes sure a stream captures subject, adding the subject
	// to an existing stream when needed.
	CreateStream(ctx context.Context, streamName, subject string) error
	GetJetStream() jetstream.JetStream
}

// Options configures the connection.
type Options struct {
	URL string
	// NKeySeed authenticates with an NKey user when set.
	NKeySeed string
	// ConsumerPrefix namespaces durable consumers and queue groups.
	ConsumerPrefix string
	AckWait        time.Duration
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	js         jetstream.JetStream
	natsConn   *nc.Conn
	logger     *slog.Logger

	streamMu       sync.Mutex
	createdStreams map[string]bool
}

var _ EventBus = (*eventBus)(nil)

// NewEventBus connects to NATS and builds the Watermill publisher and
// subscriber.
func NewEventBus(ctx context.Context, opts Options, logger *slog.Logger) (EventBus, error) {
	natsOpts, err := connectionOptions(opts)
	if err != nil {
		return nil, err
	}

	conn, err := nc.Connect(opts.URL, natsOpts...)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to NATS", attr.Error(err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	prefix := opts.ConsumerPrefix
	if prefix == "" {
		prefix = "ffxivbot"
	}
	ackWait := opts.AckWait
	if ackWait <= 0 {
		ackWait = 30 * time.Second
	}

	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}
	jsConfig := nats.JetStreamConfig{
		// Streams are created explicitly through CreateStream.
		AutoProvision: false,
		TrackMsgId:    true,
		DurablePrefix: prefix,
	}

	publisher, err := nats.NewPublisher(nats.PublisherConfig{
		URL:         opts.URL,
		NatsOptions: natsOpts,
		Marshaler:   marshaler,
		JetStream:   jsConfig,
	}, wmLogger)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(nats.SubscriberConfig{
		URL:              opts.URL,
		QueueGroupPrefix: prefix,
		SubscribersCount: 1,
		AckWaitTimeout:   ackWait,
		CloseTimeout:     10 * time.Second,
		NatsOptions:      natsOpts,
		Unmarshaler:      marshaler,
		JetStream:        jsConfig,
	}, wmLogger)
	if err != nil {
		_ = publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	return &eventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		natsConn:       conn,
		logger:         logger,
		createdStreams: make(map[string]bool),
	}, nil
}

func connectionOptions(opts Options) ([]nc.Option, error) {
	natsOpts := []nc.Option{
		nc.Name("ffxivbot"),
		nc.RetryOnFailedConnect(true),
		nc.MaxReconnects(-1),
	}
	if opts.NKeySeed == "" {
		return natsOpts, nil
	}

	kp, err := nkeys.FromSeed([]byte(opts.NKeySeed))
	if err != nil {
		return nil, fmt.Errorf("invalid NATS nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive NATS nkey: %w", err)
	}
	return append(natsOpts, nc.Nkey(pub, kp.Sign)), nil
}

func (eb *eventBus) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}
	if err := eb.publisher.Publish(topic, msgs...); err != nil {
		eb.logger.Error("Failed to publish message", attr.String("topic", topic), attr.Error(err))
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	msgs, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	eb.logger.InfoContext(ctx, "Subscription started", attr.String("topic", topic))
	return msgs, nil
}

func (eb *eventBus) GetJetStream() jetstream.JetStream {
	return eb.js
}

func (eb *eventBus) CreateStream(ctx context.Context, streamName, subject string) error {
	eb.streamMu.Lock()
	defer eb.streamMu.Unlock()

	if eb.createdStreams[streamName] {
		return nil
	}
	logger := eb.logger.With(attr.String("stream_name", streamName), attr.String("subject", subject))

	stream, err := eb.js.Stream(ctx, streamName)
	switch {
	case errors.Is(err, jetstream.ErrStreamNotFound):
		_, err = eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
			Storage:  jetstream.FileStorage,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
		logger.InfoContext(ctx, "Stream created")
	case err != nil:
		return fmt.Errorf("failed to look up stream %s: %w", streamName, err)
	default:
		info, err := stream.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stream info: %w", err)
		}
		if !slices.Contains(info.Config.Subjects, subject) {
			info.Config.Subjects = append(info.Config.Subjects, subject)
			if _, err := eb.js.UpdateStream(ctx, info.Config); err != nil {
				return fmt.Errorf("failed to add subject to stream %s: %w", streamName, err)
			}
			logger.InfoContext(ctx, "Stream updated with new subject")
		}
	}

	eb.createdStreams[streamName] = true
	return nil
}

// Close closes the publisher, subscriber and connection.
func (eb *eventBus) Close() error {
	var errs []error
	if eb.publisher != nil {
		if err := eb.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	if eb.natsConn != nil {
		eb.natsConn.Close()
	}
	return errors.Join(errs...)
}
