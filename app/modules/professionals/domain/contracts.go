package professionalsdomain

// EvaluateContracts scores each player's contract, in player score order.
// Players without a contract produce no result. A completed contract whose
// amount is missing from payouts pays 0.
func EvaluateContracts(scores []PlayerScore, contracts []Contract, payouts PayoutTable) []ContractResult {
	byID := make(map[DiscordID]Contract, len(contracts))
	for _, c := range contracts {
		byID[c.DiscordID] = c
	}

	results := []ContractResult{}
	for _, s := range scores {
		c, ok := byID[s.DiscordID]
		if !ok {
			continue
		}

		completed := s.Seals >= c.Amount
		var payout int64
		if completed {
			payout = payouts[c.Amount]
		}

		results = append(results, ContractResult{
			DiscordID: s.DiscordID,
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Amount:    c.Amount,
			Completed: completed,
			Payout:    payout,
		})
	}
	return results
}
