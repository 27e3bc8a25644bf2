package professionalshandlers

import (
	"context"
	"errors"
	"fmt"

	professionalsservice "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/application"
	"github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/report"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/ryan-huber-j/FFXIVBot/pkg/handlerwrapper"
)

// HandleCompetitionStartRequested clears enrollment for a new week on demand.
// The weekly job does the same through CompetitionStartedResult.
func (h *ProfessionalsHandlers) HandleCompetitionStartRequested(ctx context.Context, payload *professionalsevents.CompetitionStartRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	const command = "start_competition"

	result, err := h.service.StartNewCompetition(ctx)
	if err != nil {
		return h.unexpected(ctx, payload.RequestedBy, command, err)
	}
	if result.IsFailure() {
		return failureResults(payload.RequestedBy, command, *result.Failure), nil
	}

	return []handlerwrapper.Result{CompetitionStartedResult(*result.Success)}, nil
}

// CompetitionStartedResult builds the new-week announcement.
func CompetitionStartedResult(started professionalsservice.CompetitionStarted) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: professionalsevents.CompetitionStartedV1,
		Payload: &professionalsevents.CompetitionStartedPayloadV1{
			FreeCompanyID: started.FreeCompanyID,
			DataCenter:    started.DataCenter,
			Ranked:        started.Ranked,
			Rank:          started.Rank,
			Seals:         started.Seals,
			Message:       competitionStartedMessage(started),
		},
	}
}

func competitionStartedMessage(started professionalsservice.CompetitionStarted) string {
	const opener = "A new professionals competition has started!"
	if !started.Ranked {
		return fmt.Sprintf("%s Last week our Free Company did not place in the %s rankings.", opener, started.DataCenter)
	}
	return fmt.Sprintf("%s Last week our Free Company earned %s seals and placed rank %d on %s.",
		opener, report.Thousands(started.Seals), started.Rank, started.DataCenter)
}
