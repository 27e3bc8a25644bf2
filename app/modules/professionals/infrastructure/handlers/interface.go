package professionalshandlers

import (
	"context"

	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/ryan-huber-j/FFXIVBot/pkg/handlerwrapper"
)

// Handlers defines the contract for professionals event handlers.
type Handlers interface {
	HandleParticipateRequested(ctx context.Context, payload *professionalsevents.ParticipateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCoachRequested(ctx context.Context, payload *professionalsevents.ParticipateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleParticipationEndRequested(ctx context.Context, payload *professionalsevents.MemberRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleContractCreateRequested(ctx context.Context, payload *professionalsevents.ContractCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleContractEndRequested(ctx context.Context, payload *professionalsevents.MemberRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleStatusRequested(ctx context.Context, payload *professionalsevents.MemberRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleResultsRequested(ctx context.Context, payload *professionalsevents.ResultsRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCompetitionStartRequested(ctx context.Context, payload *professionalsevents.CompetitionStartRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCompetitionScheduleRequested(ctx context.Context, payload *professionalsevents.CompetitionScheduleRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCompetitionScheduleListRequested(ctx context.Context, payload *professionalsevents.CompetitionStartRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
