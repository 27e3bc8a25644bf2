// Package professionalsevents defines the topics and payloads exchanged with
// the chat front end.
package professionalsevents

import (
	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
)

// StreamName is the JetStream stream carrying every professionals topic.
const StreamName = "professionals"

// StreamSubjects matches every topic below.
const StreamSubjects = "professionals.>"

// Request topics.
const (
	ParticipateRequestedV1      = "professionals.participate.request.v1"
	CoachRequestedV1            = "professionals.coach.request.v1"
	ParticipationEndRequestedV1 = "professionals.participation.end.request.v1"
	ContractCreateRequestedV1   = "professionals.contract.create.request.v1"
	ContractEndRequestedV1      = "professionals.contract.end.request.v1"
	StatusRequestedV1           = "professionals.status.request.v1"
	ResultsRequestedV1          = "professionals.results.request.v1"
	CompetitionStartRequestedV1 = "professionals.competition.start.request.v1"

	CompetitionScheduleRequestedV1     = "professionals.competition.schedule.request.v1"
	CompetitionScheduleListRequestedV1 = "professionals.competition.schedule.list.request.v1"
)

// Response topics.
const (
	ParticipateResponseV1      = "professionals.participate.response.v1"
	CoachResponseV1            = "professionals.coach.response.v1"
	ParticipationEndResponseV1 = "professionals.participation.end.response.v1"
	ContractCreateResponseV1   = "professionals.contract.create.response.v1"
	ContractEndResponseV1      = "professionals.contract.end.response.v1"
	StatusResponseV1           = "professionals.status.response.v1"

	ValidationFailedV1 = "professionals.validation_failed.v1"
	CommandFailedV1    = "professionals.command_failed.v1"

	ResultsProgressV1  = "professionals.results.progress.v1"
	ResultsCompletedV1 = "professionals.results.completed.v1"
	ResultsFailedV1    = "professionals.results.failed.v1"

	CompetitionStartedV1 = "professionals.competition.started.v1"

	CompetitionScheduledV1            = "professionals.competition.schedule.response.v1"
	CompetitionScheduleListResponseV1 = "professionals.competition.schedule.list.response.v1"
)

// UnexpectedErrorMessage is shown when a command fails for a reason the
// caller cannot fix.
const UnexpectedErrorMessage = "An unexpected error occurred"

// --- Requests ---

// ParticipateRequestedPayloadV1 enrolls a player or coach.
type ParticipateRequestedPayloadV1 struct {
	DiscordID string `json:"discord_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MemberRequestedPayloadV1 identifies the caller of a command without fields.
type MemberRequestedPayloadV1 struct {
	DiscordID   string `json:"discord_id"`
	DisplayName string `json:"display_name,omitempty"`
}

// ContractCreateRequestedPayloadV1 pledges a seal amount.
type ContractCreateRequestedPayloadV1 struct {
	DiscordID string `json:"discord_id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Amount    int64  `json:"amount"`
}

// ResultsRequestedPayloadV1 asks for a competition run. Scope and payouts
// fall back to the configured values when omitted.
type ResultsRequestedPayloadV1 struct {
	RequestedBy     string                          `json:"requested_by"`
	BotID           string                          `json:"bot_id"`
	FreeCompanyID   string                          `json:"free_company_id,omitempty"`
	World           string                          `json:"world,omitempty"`
	Payouts         professionalsdomain.PayoutTable `json:"payouts,omitempty"`
	IncludeChart    bool                            `json:"include_chart,omitempty"`
	IncludeWorkbook bool                            `json:"include_workbook,omitempty"`
}

// CompetitionStartRequestedPayloadV1 clears enrollment for a new week.
type CompetitionStartRequestedPayloadV1 struct {
	RequestedBy string `json:"requested_by,omitempty"`
}

// CompetitionScheduleRequestedPayloadV1 queues a one-off reset. At is RFC 3339.
type CompetitionScheduleRequestedPayloadV1 struct {
	RequestedBy string `json:"requested_by"`
	At          string `json:"at"`
}

// --- Responses ---

// ParticipantRegisteredPayloadV1 confirms a player or coach enrollment.
type ParticipantRegisteredPayloadV1 struct {
	DiscordID   string                          `json:"discord_id"`
	Participant professionalsdomain.Participant `json:"participant"`
	Message     string                          `json:"message"`
}

// MemberConfirmedPayloadV1 confirms a command that only carried the caller.
type MemberConfirmedPayloadV1 struct {
	DiscordID string `json:"discord_id"`
	Message   string `json:"message"`
}

// ContractCreatedPayloadV1 confirms an accepted contract.
type ContractCreatedPayloadV1 struct {
	DiscordID   string                          `json:"discord_id"`
	Participant professionalsdomain.Participant `json:"participant"`
	Contract    professionalsdomain.Contract    `json:"contract"`
	Message     string                          `json:"message"`
}

// StatusPayloadV1 reports a caller's enrollment.
type StatusPayloadV1 struct {
	DiscordID   string                           `json:"discord_id"`
	Participant *professionalsdomain.Participant `json:"participant,omitempty"`
	Contract    *professionalsdomain.Contract    `json:"contract,omitempty"`
	Message     string                           `json:"message"`
}

// ValidationFailedPayloadV1 lists every invalid field of a command.
type ValidationFailedPayloadV1 struct {
	DiscordID string                               `json:"discord_id"`
	Command   string                               `json:"command"`
	Errors    professionalsdomain.ValidationErrors `json:"errors"`
	Message   string                               `json:"message"`
}

// CommandFailedPayloadV1 reports a refused or failed command.
type CommandFailedPayloadV1 struct {
	DiscordID string `json:"discord_id"`
	Command   string `json:"command"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
}

// ResultsProgressPayloadV1 is published as a run enters each stage.
type ResultsProgressPayloadV1 struct {
	RunID       string `json:"run_id"`
	RequestedBy string `json:"requested_by"`
	State       string `json:"state"`
	Message     string `json:"message"`
}

// ResultsCompletedPayloadV1 carries a finished run and its renderings.
type ResultsCompletedPayloadV1 struct {
	RequestedBy string                                 `json:"requested_by"`
	Results     professionalsdomain.CompetitionResults `json:"results"`
	Message     string                                 `json:"message"`
	ChartPNG    []byte                                 `json:"chart_png,omitempty"`
	Workbook    []byte                                 `json:"workbook,omitempty"`
}

// ResultsFailedPayloadV1 reports a run that ended without results.
type ResultsFailedPayloadV1 struct {
	RequestedBy string `json:"requested_by"`
	Kind        string `json:"kind"`
	Reason      string `json:"reason"`
	Message     string `json:"message"`
}

// CompetitionStartedPayloadV1 announces a new week and last week's total.
type CompetitionStartedPayloadV1 struct {
	FreeCompanyID string `json:"free_company_id"`
	DataCenter    string `json:"data_center"`
	Ranked        bool   `json:"ranked"`
	Rank          int    `json:"rank,omitempty"`
	Seals         int64  `json:"seals"`
	Message       string `json:"message"`
}

// ScheduledResetV1 is one queued competition reset.
type ScheduledResetV1 struct {
	ID          int64  `json:"id"`
	State       string `json:"state"`
	Week        string `json:"week"`
	ScheduledAt string `json:"scheduled_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
	Duplicate   bool   `json:"duplicate,omitempty"`
}

// CompetitionScheduledPayloadV1 confirms a queued reset.
type CompetitionScheduledPayloadV1 struct {
	RequestedBy string           `json:"requested_by"`
	Reset       ScheduledResetV1 `json:"reset"`
	Message     string           `json:"message"`
}

// CompetitionScheduleListPayloadV1 lists resets that have not run yet.
type CompetitionScheduleListPayloadV1 struct {
	RequestedBy string             `json:"requested_by"`
	Resets      []ScheduledResetV1 `json:"resets"`
	Message     string             `json:"message"`
}
