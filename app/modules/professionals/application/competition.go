package professionalsservice

import (
	"context"
	"fmt"

	"github.com/ryan-huber-j/FFXIVBot/pkg/attr"
	"github.com/ryan-huber-j/FFXIVBot/pkg/results"
	"github.com/uptrace/bun"
)

// StartNewCompetition reports last week's Free Company seal total and clears
// every participant and contract so enrollment starts over.
func (s *ProfessionalsService) StartNewCompetition(ctx context.Context) (results.OperationResult[CompetitionStarted, error], error) {
	type startResult = results.OperationResult[CompetitionStarted, error]
	fcID := s.settings.Scope.FreeCompanyID

	return withTelemetry(s, ctx, "StartNewCompetition", fcID, func(ctx context.Context) (startResult, error) {
		started := CompetitionStarted{FreeCompanyID: fcID, DataCenter: s.settings.DataCenter}

		rankings, err := s.source.FreeCompanyRankings(ctx, s.settings.DataCenter)
		if err != nil {
			return startResult{}, fmt.Errorf("failed to fetch Free Company rankings: %w", err)
		}
		for _, r := range rankings {
			if r.ID == fcID {
				started.Ranked = true
				started.Rank = r.Rank
				started.Seals = r.Seals
				break
			}
		}

		result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (startResult, error) {
			if err := s.repo.DeleteAllContracts(ctx, db); err != nil {
				return startResult{}, fmt.Errorf("failed to clear contracts: %w", err)
			}
			if err := s.repo.DeleteAllParticipants(ctx, db); err != nil {
				return startResult{}, fmt.Errorf("failed to clear participants: %w", err)
			}
			return results.SuccessResult[CompetitionStarted, error](started), nil
		})
		if err != nil {
			return result, err
		}

		s.logger.InfoContext(ctx, "New competition started",
			attr.ExtractCorrelationID(ctx),
			attr.String("free_company_id", fcID),
			attr.Int64("last_week_seals", started.Seals),
			attr.Any("ranked", started.Ranked),
		)
		return result, nil
	})
}
