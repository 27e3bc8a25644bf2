package professionalsdomain

// AggregatedRow merges every leaderboard record of one identity.
type AggregatedRow struct {
	IdentityToken string
	Name          string
	BestRank      int
	TotalScore    int64
	Records       int
}

// AggregateLeaderboard groups records by identity token, summing scores and
// keeping the best (lowest) rank. Rows come back in order of first appearance.
func AggregateLeaderboard(records []LeaderboardRecord) []AggregatedRow {
	index := make(map[string]int, len(records))
	rows := make([]AggregatedRow, 0, len(records))

	for _, r := range records {
		i, ok := index[r.IdentityToken]
		if !ok {
			index[r.IdentityToken] = len(rows)
			rows = append(rows, AggregatedRow{
				IdentityToken: r.IdentityToken,
				Name:          r.Name,
				BestRank:      r.Rank,
				TotalScore:    r.Score,
				Records:       1,
			})
			continue
		}

		row := &rows[i]
		row.TotalScore += r.Score
		row.Records++
		if r.Rank < row.BestRank {
			row.BestRank = r.Rank
		}
	}

	return rows
}
