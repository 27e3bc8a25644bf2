package professionalsdomain

// Classify turns aggregated rows into player scores and honorable mentions.
//
// Only identities present in the membership matches are considered; rows for
// players outside the Free Company are ignored. A member with no leaderboard
// row produces nothing, so an unranked participant has no PlayerScore.
// Coaches are kept here and filtered at selection time.
func Classify(rows []AggregatedRow, matches []IdentityMatch) ([]PlayerScore, []HonorableMention) {
	byToken := make(map[string]AggregatedRow, len(rows))
	for _, r := range rows {
		byToken[r.IdentityToken] = r
	}

	scores := []PlayerScore{}
	mentions := []HonorableMention{}

	for _, m := range matches {
		row, ranked := byToken[m.Member.IdentityToken]
		if !ranked {
			continue
		}

		if m.Matched() {
			scores = append(scores, PlayerScore{
				DiscordID: m.Participant.DiscordID,
				FirstName: m.Participant.FirstName,
				LastName:  m.Participant.LastName,
				Rank:      row.BestRank,
				Seals:     row.TotalScore,
				IsCoach:   m.Participant.IsCoach,
			})
			continue
		}

		first, last := splitMentionName(m.Member.Name)
		mentions = append(mentions, HonorableMention{
			FirstName: first,
			LastName:  last,
			Rank:      row.BestRank,
			Seals:     row.TotalScore,
		})
	}

	return scores, mentions
}
