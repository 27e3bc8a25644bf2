package professionalshandlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	professionalsservice "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/application"
	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/ryan-huber-j/FFXIVBot/pkg/handlerwrapper"
)

// ResetScheduler queues competition resets.
type ResetScheduler interface {
	ScheduleReset(ctx context.Context, at time.Time) (professionalsevents.ScheduledResetV1, error)
	ScheduledResets(ctx context.Context) ([]professionalsevents.ScheduledResetV1, error)
}

var errSchedulingUnavailable = errors.New("reset scheduling unavailable")

const resetTimeLayout = "2006-01-02 15:04 MST"

func schedulingUnavailable() error {
	return &professionalsservice.UserError{
		Kind:        errSchedulingUnavailable,
		UserMessage: "Competition resets cannot be scheduled right now.",
	}
}

// HandleCompetitionScheduleRequested queues a one-off reset.
func (h *ProfessionalsHandlers) HandleCompetitionScheduleRequested(ctx context.Context, payload *professionalsevents.CompetitionScheduleRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	const command = "schedule_competition"

	if h.scheduler == nil {
		return failureResults(payload.RequestedBy, command, schedulingUnavailable()), nil
	}

	at, verrs := h.parseResetTime(payload.At)
	if verrs != nil {
		return failureResults(payload.RequestedBy, command, verrs), nil
	}

	reset, err := h.scheduler.ScheduleReset(ctx, at)
	if err != nil {
		return h.unexpected(ctx, payload.RequestedBy, command, err)
	}

	msg := fmt.Sprintf("Scheduled a competition reset for %s (week %s).", formatResetTime(reset.ScheduledAt), reset.Week)
	if reset.Duplicate {
		msg = fmt.Sprintf("A competition reset is already scheduled for week %s at %s.", reset.Week, formatResetTime(reset.ScheduledAt))
	}

	return []handlerwrapper.Result{{
		Topic: professionalsevents.CompetitionScheduledV1,
		Payload: &professionalsevents.CompetitionScheduledPayloadV1{
			RequestedBy: payload.RequestedBy,
			Reset:       reset,
			Message:     msg,
		},
	}}, nil
}

// HandleCompetitionScheduleListRequested lists resets that have not run yet.
func (h *ProfessionalsHandlers) HandleCompetitionScheduleListRequested(ctx context.Context, payload *professionalsevents.CompetitionStartRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	const command = "list_competition_schedule"

	if h.scheduler == nil {
		return failureResults(payload.RequestedBy, command, schedulingUnavailable()), nil
	}

	resets, err := h.scheduler.ScheduledResets(ctx)
	if err != nil {
		return h.unexpected(ctx, payload.RequestedBy, command, err)
	}

	return []handlerwrapper.Result{{
		Topic: professionalsevents.CompetitionScheduleListResponseV1,
		Payload: &professionalsevents.CompetitionScheduleListPayloadV1{
			RequestedBy: payload.RequestedBy,
			Resets:      resets,
			Message:     scheduleListMessage(resets),
		},
	}}, nil
}

func (h *ProfessionalsHandlers) parseResetTime(raw string) (time.Time, professionalsdomain.ValidationErrors) {
	at, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, professionalsdomain.ValidationErrors{{Field: "at", Message: "must be an RFC 3339 timestamp."}}
	}
	if !at.After(h.now()) {
		return time.Time{}, professionalsdomain.ValidationErrors{{Field: "at", Message: "must be in the future."}}
	}
	return at.UTC(), nil
}

func scheduleListMessage(resets []professionalsevents.ScheduledResetV1) string {
	if len(resets) == 0 {
		return "No competition resets are scheduled."
	}
	lines := make([]string, 0, len(resets)+1)
	lines = append(lines, "Upcoming competition resets:")
	for _, r := range resets {
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", r.Week, formatResetTime(r.ScheduledAt), r.State))
	}
	return strings.Join(lines, "\n")
}

func formatResetTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(resetTimeLayout)
}
