package professionalsservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/ryan-huber-j/FFXIVBot/pkg/attr"
	"github.com/ryan-huber-j/FFXIVBot/pkg/results"
)

func newRunID() string {
	return uuid.NewString()
}

// run tracks one aggregation so every progress notice carries its ID.
type run struct {
	id     string
	notify ProgressFunc
}

func (r run) enter(ctx context.Context, state RunState) {
	if r.notify == nil {
		return
	}
	r.notify(ctx, Progress{RunID: r.id, State: state, Message: stateMessages[state]})
}

// RunAggregation fetches participants, membership and the leaderboard, then
// scores the competition and evaluates contracts. The first failing fetch
// ends the run; nothing is retried and no partial result is returned.
func (s *ProfessionalsService) RunAggregation(
	ctx context.Context,
	scope professionalsdomain.Scope,
	payouts professionalsdomain.PayoutTable,
	notify ProgressFunc,
) (*professionalsdomain.CompetitionResults, error) {
	if payouts == nil {
		payouts = s.settings.Payouts
	}
	r := run{id: s.newID(), notify: notify}

	type aggregationResult = results.OperationResult[professionalsdomain.CompetitionResults, error]

	result, err := withTelemetry(s, ctx, "RunAggregation", r.id, func(ctx context.Context) (aggregationResult, error) {
		out, err := s.aggregate(ctx, r, scope, payouts)
		if err != nil {
			return aggregationResult{}, err
		}
		return results.SuccessResult[professionalsdomain.CompetitionResults, error](out), nil
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordAggregationRun(ctx, "failure", 0, 0)
		}
		return nil, err
	}

	out := *result.Success
	if s.metrics != nil {
		s.metrics.RecordAggregationRun(ctx, "success", len(out.PlayerScores), len(out.HonorableMentions))
	}
	return &out, nil
}

func (s *ProfessionalsService) aggregate(
	ctx context.Context,
	r run,
	scope professionalsdomain.Scope,
	payouts professionalsdomain.PayoutTable,
) (professionalsdomain.CompetitionResults, error) {
	var none professionalsdomain.CompetitionResults

	r.enter(ctx, StateFetchingParticipants)
	rows, err := s.repo.GetAllParticipants(ctx, nil)
	if err != nil {
		return none, fmt.Errorf("failed to fetch participants: %w", err)
	}
	participants := make([]professionalsdomain.Participant, len(rows))
	for i, row := range rows {
		participants[i] = row.ToDomain()
	}

	r.enter(ctx, StateFetchingMembership)
	members, err := s.source.FetchMembership(ctx, scope)
	if err != nil {
		return none, fmt.Errorf("%w: %w", ErrRankingSource, err)
	}

	r.enter(ctx, StateFetchingLeaderboard)
	rankings, err := s.source.FetchLeaderboard(ctx, scope)
	if err != nil {
		return none, fmt.Errorf("%w: %w", ErrRankingSource, err)
	}

	r.enter(ctx, StateScoring)
	out := professionalsdomain.ScoreCompetition(professionalsdomain.ScoreInput{
		Members:      members,
		Rankings:     rankings,
		Participants: participants,
	}, s.pick)

	r.enter(ctx, StateEvaluatingContracts)
	contractRows, err := s.repo.GetAllContracts(ctx, nil)
	if err != nil {
		return none, fmt.Errorf("failed to fetch contracts: %w", err)
	}
	contracts := make([]professionalsdomain.Contract, len(contractRows))
	for i, row := range contractRows {
		contracts[i] = row.ToDomain()
	}
	out.ContractResults = professionalsdomain.EvaluateContracts(out.PlayerScores, contracts, payouts)

	out.RunID = r.id
	out.GeneratedAt = s.nowFunc().UTC()

	s.logger.InfoContext(ctx, "Competition scored",
		attr.ExtractCorrelationID(ctx),
		attr.String("run_id", r.id),
		attr.Int("participants", len(participants)),
		attr.Int("members", len(members)),
		attr.Int("leaderboard_records", len(rankings)),
		attr.Int("player_scores", len(out.PlayerScores)),
		attr.Int("honorable_mentions", len(out.HonorableMentions)),
		attr.String("win_reason", string(out.WinReason)),
	)

	r.enter(ctx, StateDone)
	return out, nil
}
