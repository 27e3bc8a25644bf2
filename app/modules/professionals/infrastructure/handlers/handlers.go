package professionalshandlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	professionalsservice "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/application"
	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/report"
	"github.com/ryan-huber-j/FFXIVBot/pkg/attr"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/ryan-huber-j/FFXIVBot/pkg/handlerwrapper"
)

// ProfessionalsHandlers implements the Handlers interface.
type ProfessionalsHandlers struct {
	service   professionalsservice.Service
	publisher message.Publisher
	scope     professionalsdomain.Scope
	scheduler ResetScheduler
	palette   report.ChartPalette
	logger    *slog.Logger
	now       func() time.Time
}

// NewProfessionalsHandlers creates a new ProfessionalsHandlers. publisher
// carries progress notices that must go out while a handler is still running.
// A nil scheduler refuses reset scheduling requests.
func NewProfessionalsHandlers(
	service professionalsservice.Service,
	publisher message.Publisher,
	scheduler ResetScheduler,
	scope professionalsdomain.Scope,
	logger *slog.Logger,
) *ProfessionalsHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfessionalsHandlers{
		service:   service,
		publisher: publisher,
		scheduler: scheduler,
		scope:     scope,
		palette:   report.DefaultPalette,
		logger:    logger,
		now:       time.Now,
	}
}

var _ Handlers = (*ProfessionalsHandlers)(nil)

// failureResults maps a failure result to the event the caller sees.
func failureResults(discordID, command string, failure error) []handlerwrapper.Result {
	var verrs professionalsdomain.ValidationErrors
	if errors.As(failure, &verrs) {
		return []handlerwrapper.Result{{
			Topic: professionalsevents.ValidationFailedV1,
			Payload: &professionalsevents.ValidationFailedPayloadV1{
				DiscordID: discordID,
				Command:   command,
				Errors:    verrs,
				Message:   report.FormatValidationErrors(verrs),
			},
		}}
	}

	var ue *professionalsservice.UserError
	if errors.As(failure, &ue) {
		return []handlerwrapper.Result{{
			Topic: professionalsevents.CommandFailedV1,
			Payload: &professionalsevents.CommandFailedPayloadV1{
				DiscordID: discordID,
				Command:   command,
				Reason:    ue.Error(),
				Message:   ue.UserMessage,
			},
		}}
	}

	return unexpectedResults(discordID, command, failure)
}

func unexpectedResults(discordID, command string, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: professionalsevents.CommandFailedV1,
		Payload: &professionalsevents.CommandFailedPayloadV1{
			DiscordID: discordID,
			Command:   command,
			Reason:    err.Error(),
			Message:   professionalsevents.UnexpectedErrorMessage,
		},
	}}
}

// unexpected tells the caller something went wrong and hands err back to the
// router so the message is retried.
func (h *ProfessionalsHandlers) unexpected(ctx context.Context, discordID, command string, err error) ([]handlerwrapper.Result, error) {
	h.logger.ErrorContext(ctx, "Command failed unexpectedly",
		attr.ExtractCorrelationID(ctx),
		attr.String("command", command),
		attr.String("discord_id", discordID),
		attr.Error(err),
	)
	return unexpectedResults(discordID, command, err), err
}
