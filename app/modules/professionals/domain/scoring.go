package professionalsdomain

// ScoreInput is everything a competition needs once fetching is done.
type ScoreInput struct {
	Members      []MembershipRecord
	Rankings     []LeaderboardRecord
	Participants []Participant
}

// ScoreCompetition matches, aggregates and classifies, then selects the
// competition and drawing winners. Contract results are left empty.
func ScoreCompetition(in ScoreInput, pick Picker) CompetitionResults {
	matches := MatchIdentities(in.Members, in.Participants)
	rows := AggregateLeaderboard(in.Rankings)
	scores, mentions := Classify(rows, matches)

	winner, winReason := SelectWinner(scores, pick)
	drawing, drawingReason := SelectDrawingWinner(scores, winner, pick)

	return CompetitionResults{
		PlayerScores:      scores,
		Winner:            winner,
		WinReason:         winReason,
		DrawingWinner:     drawing,
		DrawingReason:     drawingReason,
		ContractResults:   []ContractResult{},
		HonorableMentions: mentions,
	}
}
