package professionalsservice

import (
	"context"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
)

// ParticipantRequest enrolls a player or coach. DiscordID is the raw wire value.
type ParticipantRequest struct {
	DiscordID string
	FirstName string
	LastName  string
}

// ContractRequest pledges a seal amount. Names may be omitted for existing
// participants.
type ContractRequest struct {
	DiscordID string
	FirstName string
	LastName  string
	Amount    int64
}

// ContractCreated is the stored state after a contract is accepted.
type ContractCreated struct {
	Participant professionalsdomain.Participant `json:"participant"`
	Contract    professionalsdomain.Contract    `json:"contract"`
}

// ParticipationStatus is a participant's enrollment, either part of which may
// be absent.
type ParticipationStatus struct {
	Participant *professionalsdomain.Participant `json:"participant,omitempty"`
	Contract    *professionalsdomain.Contract    `json:"contract,omitempty"`
}

// CompetitionStarted reports how the Free Company did in the week that just
// ended. Seals is 0 and Ranked false when it missed the top 100.
type CompetitionStarted struct {
	FreeCompanyID string `json:"free_company_id"`
	DataCenter    string `json:"data_center"`
	Ranked        bool   `json:"ranked"`
	Rank          int    `json:"rank,omitempty"`
	Seals         int64  `json:"seals"`
}

// RunState is a stage of an aggregation run.
type RunState string

const (
	StateFetchingParticipants RunState = "FETCHING_PARTICIPANTS"
	StateFetchingMembership   RunState = "FETCHING_MEMBERSHIP"
	StateFetchingLeaderboard  RunState = "FETCHING_LEADERBOARD"
	StateScoring              RunState = "SCORING"
	StateEvaluatingContracts  RunState = "EVALUATING_CONTRACTS"
	StateDone                 RunState = "DONE"
)

var stateMessages = map[RunState]string{
	StateFetchingParticipants: "Fetching participants...",
	StateFetchingMembership:   "Fetching Free Company members...",
	StateFetchingLeaderboard:  "Fetching Grand Company rankings...",
	StateScoring:              "Scoring...",
	StateEvaluatingContracts:  "Evaluating contracts...",
	StateDone:                 "Done.",
}

// Progress is emitted when a run enters a new state.
type Progress struct {
	RunID   string   `json:"run_id"`
	State   RunState `json:"state"`
	Message string   `json:"message"`
}

// ProgressFunc receives progress notices. It runs synchronously on the
// aggregation goroutine.
type ProgressFunc func(ctx context.Context, p Progress)
