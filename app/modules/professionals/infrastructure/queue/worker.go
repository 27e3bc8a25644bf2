package professionalsqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"
	professionalsservice "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/application"
	professionalshandlers "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/handlers"
	"github.com/ryan-huber-j/FFXIVBot/pkg/attr"
	"github.com/ryan-huber-j/FFXIVBot/pkg/handlerwrapper"
	"github.com/ryan-huber-j/FFXIVBot/pkg/results"
)

// CompetitionStarter is the part of the service a reset needs.
type CompetitionStarter interface {
	StartNewCompetition(ctx context.Context) (results.OperationResult[professionalsservice.CompetitionStarted, error], error)
}

// CompetitionResetWorker runs CompetitionResetJob.
type CompetitionResetWorker struct {
	river.WorkerDefaults[CompetitionResetJob]
	starter   CompetitionStarter
	publisher message.Publisher
	logger    *slog.Logger
}

// NewCompetitionResetWorker creates a new CompetitionResetWorker.
func NewCompetitionResetWorker(starter CompetitionStarter, publisher message.Publisher, logger *slog.Logger) *CompetitionResetWorker {
	return &CompetitionResetWorker{starter: starter, publisher: publisher, logger: logger}
}

// Work resets the competition and publishes the announcement. Errors are
// returned so River retries the job.
func (w *CompetitionResetWorker) Work(ctx context.Context, job *river.Job[CompetitionResetJob]) error {
	logger := w.logger.With(
		attr.Int64("job_id", job.ID),
		attr.String("week", job.Args.Week),
	)
	logger.InfoContext(ctx, "Running competition reset")

	result, err := w.starter.StartNewCompetition(ctx)
	if err != nil {
		return fmt.Errorf("failed to start new competition: %w", err)
	}
	if result.IsFailure() {
		// Domain failures will not change on retry.
		logger.WarnContext(ctx, "Competition reset refused", attr.Error(*result.Failure))
		return nil
	}

	if err := handlerwrapper.Publish(ctx, w.publisher, professionalshandlers.CompetitionStartedResult(*result.Success)); err != nil {
		return fmt.Errorf("failed to announce new competition: %w", err)
	}

	logger.InfoContext(ctx, "Competition reset completed",
		attr.Int64("last_week_seals", result.Success.Seals),
		attr.Any("ranked", result.Success.Ranked),
	)
	return nil
}
