package professionalsservice

import (
	"context"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/ryan-huber-j/FFXIVBot/pkg/results"
)

// RankingSource yields Lodestone data for a competition scope.
type RankingSource interface {
	FetchMembership(ctx context.Context, scope professionalsdomain.Scope) ([]professionalsdomain.MembershipRecord, error)
	FetchLeaderboard(ctx context.Context, scope professionalsdomain.Scope) ([]professionalsdomain.LeaderboardRecord, error)
	FreeCompanyRankings(ctx context.Context, dataCenter string) ([]professionalsdomain.FreeCompanyRanking, error)
}

// Service defines the professionals competition operations. Domain failures
// (validation problems, refused commands) come back as a failure result;
// the error return is reserved for infrastructure problems.
type Service interface {
	ParticipateAsPlayer(ctx context.Context, req ParticipantRequest) (results.OperationResult[professionalsdomain.Participant, error], error)
	ParticipateAsCoach(ctx context.Context, req ParticipantRequest) (results.OperationResult[professionalsdomain.Participant, error], error)
	EndParticipation(ctx context.Context, discordID string) (results.OperationResult[professionalsdomain.DiscordID, error], error)
	CreateContract(ctx context.Context, req ContractRequest) (results.OperationResult[ContractCreated, error], error)
	EndContract(ctx context.Context, discordID string) (results.OperationResult[professionalsdomain.DiscordID, error], error)
	GetParticipationStatus(ctx context.Context, discordID string) (results.OperationResult[ParticipationStatus, error], error)
	StartNewCompetition(ctx context.Context) (results.OperationResult[CompetitionStarted, error], error)

	// RunAggregation fetches everything a competition needs and scores it.
	// notify receives one Progress per stage, in order. Fetch errors end the
	// run without a result.
	RunAggregation(ctx context.Context, scope professionalsdomain.Scope, payouts professionalsdomain.PayoutTable, notify ProgressFunc) (*professionalsdomain.CompetitionResults, error)
}
