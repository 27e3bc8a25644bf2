package professionalsdomain

import "time"

// DiscordID is the platform-assigned identifier of a participant.
type DiscordID int64

// Participant is a locally registered competitor or coach.
type Participant struct {
	DiscordID DiscordID `json:"discord_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsCoach   bool      `json:"is_coach"`
}

// FullName returns the character name as it appears on the Lodestone.
func (p Participant) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Contract is a pledged seal target for the current competition.
type Contract struct {
	DiscordID DiscordID `json:"discord_id"`
	Amount    int64     `json:"amount"`
}

// Scope selects which Free Company and world a run aggregates.
type Scope struct {
	FreeCompanyID string `json:"free_company_id"`
	World         string `json:"world"`
}

// MembershipRecord is one Free Company member as published externally.
type MembershipRecord struct {
	IdentityToken string `json:"identity_token"`
	Name          string `json:"name"`
	Tier          string `json:"tier"`
}

// LeaderboardRecord is one Grand Company weekly ranking row. The same identity
// may appear more than once across pages.
type LeaderboardRecord struct {
	IdentityToken string `json:"identity_token"`
	Name          string `json:"name"`
	Rank          int    `json:"rank"`
	Score         int64  `json:"score"`
}

// FreeCompany is a search result from the Free Company listing.
type FreeCompany struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FreeCompanyRanking is one row of the weekly Free Company ranking.
type FreeCompanyRanking struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rank  int    `json:"rank"`
	Seals int64  `json:"seals"`
}

// PlayerScore is a ranked, registered participant.
type PlayerScore struct {
	DiscordID DiscordID `json:"discord_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Rank      int       `json:"rank"`
	Seals     int64     `json:"seals"`
	IsCoach   bool      `json:"is_coach"`
}

// HonorableMention is a ranked Free Company member with no registration.
type HonorableMention struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Rank      int    `json:"rank"`
	Seals     int64  `json:"seals"`
}

// ContractResult is the outcome of a single contract.
type ContractResult struct {
	DiscordID DiscordID `json:"discord_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Amount    int64     `json:"amount"`
	Completed bool      `json:"completed"`
	Payout    int64     `json:"payout"`
}

// WinReason explains how a winner was (or was not) selected.
type WinReason string

const (
	WinReasonNoEligiblePlayers WinReason = "NO_ELIGIBLE_PLAYERS"
	WinReasonHighestSeals      WinReason = "HIGHEST_SEALS"
	WinReasonTieBreaker        WinReason = "TIE_BREAKER"
	WinReasonRandomDrawing     WinReason = "RANDOM_DRAWING"
)

// PayoutTable maps a pledged amount to the gil paid on completion.
type PayoutTable map[int64]int64

// CompetitionResults is the output of one aggregation run.
type CompetitionResults struct {
	RunID             string             `json:"run_id"`
	GeneratedAt       time.Time          `json:"generated_at"`
	PlayerScores      []PlayerScore      `json:"player_scores"`
	Winner            *PlayerScore       `json:"winner,omitempty"`
	WinReason         WinReason          `json:"win_reason"`
	DrawingWinner     *PlayerScore       `json:"drawing_winner,omitempty"`
	DrawingReason     WinReason          `json:"drawing_reason"`
	ContractResults   []ContractResult   `json:"contract_results"`
	HonorableMentions []HonorableMention `json:"honorable_mentions"`
}

// Players returns the non-coach player scores.
func (r *CompetitionResults) Players() []PlayerScore {
	return filterScores(r.PlayerScores, false)
}

// Coaches returns the coach player scores.
func (r *CompetitionResults) Coaches() []PlayerScore {
	return filterScores(r.PlayerScores, true)
}

func filterScores(scores []PlayerScore, coach bool) []PlayerScore {
	out := make([]PlayerScore, 0, len(scores))
	for _, s := range scores {
		if s.IsCoach == coach {
			out = append(out, s)
		}
	}
	return out
}
