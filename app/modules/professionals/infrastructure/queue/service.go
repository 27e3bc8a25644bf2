package professionalsqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/riverqueue/river/rivertype"
	"github.com/ryan-huber-j/FFXIVBot/pkg/attr"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/uptrace/bun"
)

const queueName = "professionals"

// Metrics is the subset of the professionals metrics the queue records.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// QueueService schedules competition resets.
type QueueService interface {
	// ScheduleReset enqueues a one-off reset at the given time.
	ScheduleReset(ctx context.Context, at time.Time) (JobInfo, error)
	// ScheduledResets lists pending reset jobs.
	ScheduledResets(ctx context.Context) ([]JobInfo, error)
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// JobInfo describes a queued reset.
type JobInfo = professionalsevents.ScheduledResetV1

// Options configures the queue service.
type Options struct {
	DSN           string
	ResetEnabled  bool
	ResetSchedule string
}

// Service runs competition resets on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	db      *bun.DB
	logger  *slog.Logger
	metrics Metrics
}

// NewService connects River to Postgres, migrates its tables and registers
// the reset worker. With ResetEnabled the reset also runs on ResetSchedule.
func NewService(ctx context.Context, bunDB *bun.DB, opts Options, starter CompetitionStarter, publisher message.Publisher, logger *slog.Logger, metrics Metrics) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_professionals_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")
	ctxLogger.Info("Initializing professionals queue service")

	fail := func(msg string, err error) error {
		ctxLogger.Error(msg, attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return fmt.Errorf("%s: %w", msg, err)
	}

	config, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fail("failed to parse DSN", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fail("failed to create pgx pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fail("failed to ping database", err)
	}

	driver := riverpgxv5.New(pool)
	migrator, err := rivermigrate.New(driver, nil)
	if err != nil {
		pool.Close()
		return nil, fail("failed to create River migrator", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		pool.Close()
		return nil, fail("failed to migrate River tables", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewCompetitionResetWorker(starter, publisher, ctxLogger))

	riverConfig := &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 5},
			queueName:          {MaxWorkers: 1},
		},
		Workers: workers,
	}

	if opts.ResetEnabled {
		phrase := opts.ResetSchedule
		if phrase == "" {
			phrase = DefaultResetSchedule
		}
		schedule, err := NewPhraseSchedule(phrase, time.Now(), ctxLogger)
		if err != nil {
			pool.Close()
			return nil, fail("invalid reset schedule", err)
		}
		riverConfig.PeriodicJobs = []*river.PeriodicJob{
			river.NewPeriodicJob(schedule, func() (river.JobArgs, *river.InsertOpts) {
				return CompetitionResetJob{Week: WeekKey(time.Now())}, &river.InsertOpts{
					Queue:      queueName,
					UniqueOpts: river.UniqueOpts{ByArgs: true},
				}
			}, nil),
		}
		ctxLogger.Info("Weekly competition reset enabled", attr.String("schedule", phrase))
	}

	client, err := river.NewClient(driver, riverConfig)
	if err != nil {
		pool.Close()
		return nil, fail("failed to create River client", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))
	ctxLogger.Info("Professionals queue service initialized")

	return &Service{
		client:  client,
		pool:    pool,
		db:      bunDB,
		logger:  ctxLogger,
		metrics: metrics,
	}, nil
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	return s.track(ctx, "start_service", func() error {
		if err := s.client.Start(ctx); err != nil {
			return fmt.Errorf("failed to start River client: %w", err)
		}
		return nil
	})
}

// Stop waits for running jobs and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	return s.track(ctx, "stop_service", func() error {
		defer s.pool.Close()
		if err := s.client.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop River client: %w", err)
		}
		return nil
	})
}

// ScheduleReset enqueues a reset at at. A second reset in the same ISO week
// keeps the first job, which is returned with Duplicate set.
func (s *Service) ScheduleReset(ctx context.Context, at time.Time) (JobInfo, error) {
	var info JobInfo
	err := s.track(ctx, "schedule_reset", func() error {
		if at.IsZero() {
			return errors.New("reset time is required")
		}
		job := CompetitionResetJob{Week: WeekKey(at)}
		res, err := s.client.Insert(ctx, job, &river.InsertOpts{
			Queue:       queueName,
			ScheduledAt: at,
			UniqueOpts:  river.UniqueOpts{ByArgs: true},
		})
		if err != nil {
			return fmt.Errorf("failed to schedule competition reset: %w", err)
		}
		info = jobInfo(res.Job)
		info.Duplicate = res.UniqueSkippedAsDuplicate
		s.logger.InfoContext(ctx, "Competition reset scheduled",
			attr.Int64("job_id", res.Job.ID),
			attr.String("week", job.Week),
			attr.Any("duplicate", res.UniqueSkippedAsDuplicate),
		)
		return nil
	})
	return info, err
}

func jobInfo(job *rivertype.JobRow) JobInfo {
	info := JobInfo{
		ID:          job.ID,
		State:       string(job.State),
		Attempt:     job.Attempt,
		MaxAttempts: job.MaxAttempts,
	}
	var args CompetitionResetJob
	if err := json.Unmarshal(job.EncodedArgs, &args); err == nil {
		info.Week = args.Week
	}
	if !job.ScheduledAt.IsZero() {
		info.ScheduledAt = job.ScheduledAt.UTC().Format(time.RFC3339)
	}
	return info
}

// ScheduledResets lists resets that have not run yet.
func (s *Service) ScheduledResets(ctx context.Context) ([]JobInfo, error) {
	type riverJobRow struct {
		ID          int64             `bun:"id"`
		State       string            `bun:"state"`
		Args        map[string]string `bun:"args,type:jsonb"`
		ScheduledAt *time.Time        `bun:"scheduled_at"`
		Attempt     int16             `bun:"attempt"`
		MaxAttempts int16             `bun:"max_attempts"`
	}

	var jobs []JobInfo
	err := s.track(ctx, "scheduled_resets", func() error {
		var rows []riverJobRow
		err := s.db.NewSelect().
			Table("river_job").
			Column("id", "state", "args", "scheduled_at", "attempt", "max_attempts").
			Where("kind = ?", CompetitionResetJob{}.Kind()).
			Where("state IN (?, ?, ?)", "available", "scheduled", "retryable").
			Order("scheduled_at ASC NULLS LAST").
			Scan(ctx, &rows)
		if err != nil {
			return fmt.Errorf("failed to query scheduled resets: %w", err)
		}

		jobs = make([]JobInfo, len(rows))
		for i, row := range rows {
			info := JobInfo{
				ID:          row.ID,
				State:       row.State,
				Week:        row.Args["week"],
				Attempt:     int(row.Attempt),
				MaxAttempts: int(row.MaxAttempts),
			}
			if row.ScheduledAt != nil {
				info.ScheduledAt = row.ScheduledAt.UTC().Format(time.RFC3339)
			}
			jobs[i] = info
		}
		return nil
	})
	return jobs, err
}

// HealthCheck pings the River pool.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return errors.New("river client is not initialized")
	}
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("river database unreachable: %w", err)
	}
	return nil
}

func (s *Service) track(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, operation, "river")

	if err := fn(); err != nil {
		s.logger.ErrorContext(ctx, "Queue operation failed",
			attr.String("operation", operation),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, operation, "river")
		return err
	}

	s.metrics.RecordOperationSuccess(ctx, operation, "river")
	s.metrics.RecordOperationDuration(ctx, operation, "river", time.Since(start))
	return nil
}
