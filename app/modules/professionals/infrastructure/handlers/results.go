package professionalshandlers

import (
	"context"
	"errors"

	professionalsservice "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/application"
	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/lodestone"
	"github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/infrastructure/report"
	"github.com/ryan-huber-j/FFXIVBot/pkg/attr"
	professionalsevents "github.com/ryan-huber-j/FFXIVBot/pkg/events/professionals"
	"github.com/ryan-huber-j/FFXIVBot/pkg/handlerwrapper"
)

// HandleResultsRequested runs a competition aggregation. Progress is published
// as each stage starts; the completed event carries the announcement and the
// requested attachments. A ranking source failure is reported and
// acknowledged, since an immediate retry would hit the same Lodestone
// condition. Any other failure is returned for retry.
func (h *ProfessionalsHandlers) HandleResultsRequested(ctx context.Context, payload *professionalsevents.ResultsRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}
	const command = "post_competition_results"

	credits, verrs := parseCredits(payload)
	if verrs != nil {
		return failureResults(payload.RequestedBy, command, verrs), nil
	}

	scope := h.scope
	if payload.FreeCompanyID != "" {
		scope.FreeCompanyID = payload.FreeCompanyID
	}
	if payload.World != "" {
		scope.World = payload.World
	}

	notify := func(ctx context.Context, p professionalsservice.Progress) {
		err := handlerwrapper.Publish(ctx, h.publisher, handlerwrapper.Result{
			Topic: professionalsevents.ResultsProgressV1,
			Payload: &professionalsevents.ResultsProgressPayloadV1{
				RunID:       p.RunID,
				RequestedBy: payload.RequestedBy,
				State:       string(p.State),
				Message:     p.Message,
			},
		})
		if err != nil {
			h.logger.WarnContext(ctx, "Failed to publish results progress",
				attr.ExtractCorrelationID(ctx),
				attr.String("run_id", p.RunID),
				attr.String("state", string(p.State)),
				attr.Error(err),
			)
		}
	}

	results, err := h.service.RunAggregation(ctx, scope, payload.Payouts, notify)
	if err != nil && !errors.Is(err, professionalsservice.ErrRankingSource) {
		return h.unexpected(ctx, payload.RequestedBy, command, err)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Competition results failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("requested_by", payload.RequestedBy),
			attr.String("kind", lodestone.Kind(err)),
			attr.Error(err),
		)
		return []handlerwrapper.Result{{
			Topic: professionalsevents.ResultsFailedV1,
			Payload: &professionalsevents.ResultsFailedPayloadV1{
				RequestedBy: payload.RequestedBy,
				Kind:        lodestone.Kind(err),
				Reason:      err.Error(),
				Message:     professionalsevents.UnexpectedErrorMessage,
			},
		}}, nil
	}

	completed := &professionalsevents.ResultsCompletedPayloadV1{
		RequestedBy: payload.RequestedBy,
		Results:     *results,
		Message:     report.FormatResults(results, credits),
	}

	if payload.IncludeChart {
		chart, err := report.RenderScoreChart(results, h.palette)
		if err != nil {
			h.logger.WarnContext(ctx, "Omitting score chart", attr.ExtractCorrelationID(ctx), attr.Error(err))
		} else {
			completed.ChartPNG = chart
		}
	}
	if payload.IncludeWorkbook {
		workbook, err := report.ExportWorkbook(results)
		if err != nil {
			h.logger.WarnContext(ctx, "Omitting results workbook", attr.ExtractCorrelationID(ctx), attr.Error(err))
		} else {
			completed.Workbook = workbook
		}
	}

	return []handlerwrapper.Result{{
		Topic:   professionalsevents.ResultsCompletedV1,
		Payload: completed,
	}}, nil
}

func parseCredits(payload *professionalsevents.ResultsRequestedPayloadV1) (report.Credits, professionalsdomain.ValidationErrors) {
	var (
		credits report.Credits
		errs    professionalsdomain.ValidationErrors
	)

	id, err := professionalsdomain.ParseDiscordID(payload.RequestedBy)
	if err != nil {
		errs = append(errs, professionalsdomain.ValidationError{Field: "requested_by", Message: "must be an integer."})
	}
	credits.RequestedBy = id

	bot, err := professionalsdomain.ParseDiscordID(payload.BotID)
	if err != nil {
		errs = append(errs, professionalsdomain.ValidationError{Field: "bot_id", Message: "must be an integer."})
	}
	credits.Bot = bot

	if len(errs) > 0 {
		return credits, errs
	}
	return credits, nil
}
