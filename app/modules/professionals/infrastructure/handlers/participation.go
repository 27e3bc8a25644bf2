package professionalshandlers

import (
	"context"
	"errors"
	"fmt"

	professionalsservice "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/application"
	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/report"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/ryan-huber-j/FFXIVBot/pkg/handlerwrapper"
)

// HandleParticipateRequested enrolls the caller as a player.
func (h *ProfessionalsHandlers) HandleParticipateRequested(ctx context.Context, payload *professionalsevents.ParticipateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return h.participate(ctx, payload, "participate", false)
}

// HandleCoachRequested enrolls the caller as a coach.
func (h *ProfessionalsHandlers) HandleCoachRequested(ctx context.Context, payload *professionalsevents.ParticipateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return h.participate(ctx, payload, "coach", true)
}

func (h *ProfessionalsHandlers) participate(ctx context.Context, payload *professionalsevents.ParticipateRequestedPayloadV1, command string, coach bool) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	req := professionalsservice.ParticipantRequest{
		DiscordID: payload.DiscordID,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	}

	call, topic, role := h.service.ParticipateAsPlayer, professionalsevents.ParticipateResponseV1, "participant"
	if coach {
		call, topic, role = h.service.ParticipateAsCoach, professionalsevents.CoachResponseV1, "coach"
	}

	result, err := call(ctx, req)
	if err != nil {
		return h.unexpected(ctx, payload.DiscordID, command, err)
	}
	if result.IsFailure() {
		return failureResults(payload.DiscordID, command, *result.Failure), nil
	}

	p := *result.Success
	return []handlerwrapper.Result{{
		Topic: topic,
		Payload: &professionalsevents.ParticipantRegisteredPayloadV1{
			DiscordID:   payload.DiscordID,
			Participant: p,
			Message:     fmt.Sprintf("Registered %s as a %s.", p.FullName(), role),
		},
	}}, nil
}

// HandleParticipationEndRequested withdraws the caller and their contract.
func (h *ProfessionalsHandlers) HandleParticipationEndRequested(ctx context.Context, payload *professionalsevents.MemberRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	const command = "end_participation"

	result, err := h.service.EndParticipation(ctx, payload.DiscordID)
	if err != nil {
		return h.unexpected(ctx, payload.DiscordID, command, err)
	}
	if result.IsFailure() {
		return failureResults(payload.DiscordID, command, *result.Failure), nil
	}

	return []handlerwrapper.Result{{
		Topic: professionalsevents.ParticipationEndResponseV1,
		Payload: &professionalsevents.MemberConfirmedPayloadV1{
			DiscordID: payload.DiscordID,
			Message:   fmt.Sprintf("Withdrew %s from professionals.", displayName(payload)),
		},
	}}, nil
}

// HandleStatusRequested reports the caller's enrollment and contract.
func (h *ProfessionalsHandlers) HandleStatusRequested(ctx context.Context, payload *professionalsevents.MemberRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	const command = "status"

	result, err := h.service.GetParticipationStatus(ctx, payload.DiscordID)
	if err != nil {
		return h.unexpected(ctx, payload.DiscordID, command, err)
	}
	if result.IsFailure() {
		return failureResults(payload.DiscordID, command, *result.Failure), nil
	}

	status := *result.Success
	return []handlerwrapper.Result{{
		Topic: professionalsevents.StatusResponseV1,
		Payload: &professionalsevents.StatusPayloadV1{
			DiscordID:   payload.DiscordID,
			Participant: status.Participant,
			Contract:    status.Contract,
			Message:     statusMessage(status),
		},
	}}, nil
}

func statusMessage(status professionalsservice.ParticipationStatus) string {
	p, c := status.Participant, status.Contract
	switch {
	case p == nil && c == nil:
		return "You are not registered for professionals."
	case p == nil:
		return fmt.Sprintf("You have a contract to earn %s seals per week but are not registered.", report.Thousands(c.Amount))
	}

	role := "participant"
	if p.IsCoach {
		role = "coach"
	}
	msg := fmt.Sprintf("You are registered as a %s as %s.", role, p.FullName())
	if c != nil {
		msg += fmt.Sprintf(" Your contract is to earn %s seals per week.", report.Thousands(c.Amount))
	}
	return msg
}

// displayName falls back to a mention when the front end sent no name.
func displayName(payload *professionalsevents.MemberRequestedPayloadV1) string {
	if payload.DisplayName != "" {
		return payload.DisplayName
	}
	id, err := professionalsdomain.ParseDiscordID(payload.DiscordID)
	if err != nil {
		return payload.DiscordID
	}
	return report.Mention(id)
}
