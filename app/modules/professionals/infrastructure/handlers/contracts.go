package professionalshandlers

import (
	"context"
	"errors"
	"fmt"

	professionalsservice "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/application"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/ryan-huber-j/FFXIVBot/pkg/handlerwrapper"
)

// HandleContractCreateRequested records the caller's pledge.
func (h *ProfessionalsHandlers) HandleContractCreateRequested(ctx context.Context, payload *professionalsevents.ContractCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	const command = "contract"

	result, err := h.service.CreateContract(ctx, professionalsservice.ContractRequest{
		DiscordID: payload.DiscordID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Amount:    payload.Amount,
	})
	if err != nil {
		return h.unexpected(ctx, payload.DiscordID, command, err)
	}
	if result.IsFailure() {
		return failureResults(payload.DiscordID, command, *result.Failure), nil
	}

	msg := fmt.Sprintf("Contract created to earn %d seals per week.", payload.Amount)
	if payload.FirstName != "" && payload.LastName != "" {
		msg = fmt.Sprintf("Contract created for %s %s to earn %d seals per week.", payload.FirstName, payload.LastName, payload.Amount)
	}

	created := *result.Success
	return []handlerwrapper.Result{{
		Topic: professionalsevents.ContractCreateResponseV1,
		Payload: &professionalsevents.ContractCreatedPayloadV1{
			DiscordID:   payload.DiscordID,
			Participant: created.Participant,
			Contract:    created.Contract,
			Message:     msg,
		},
	}}, nil
}

// HandleContractEndRequested withdraws the caller's contract.
func (h *ProfessionalsHandlers) HandleContractEndRequested(ctx context.Context, payload *professionalsevents.MemberRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	const command = "end_contract"

	result, err := h.service.EndContract(ctx, payload.DiscordID)
	if err != nil {
		return h.unexpected(ctx, payload.DiscordID, command, err)
	}
	if result.IsFailure() {
		return failureResults(payload.DiscordID, command, *result.Failure), nil
	}

	return []handlerwrapper.Result{{
		Topic: professionalsevents.ContractEndResponseV1,
		Payload: &professionalsevents.MemberConfirmedPayloadV1{
			DiscordID: payload.DiscordID,
			Message:   fmt.Sprintf("Ended contract for %s.", displayName(payload)),
		},
	}}, nil
}
