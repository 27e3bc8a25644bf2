package professionalsdomain

import "math/rand/v2"

// Picker returns a uniformly distributed index in [0, n). n is always > 0.
type Picker func(n int) int

// DefaultPicker draws from the process-wide random source.
func DefaultPicker(n int) int {
	return rand.IntN(n)
}

// EligiblePlayers drops coaches from the prize pool.
func EligiblePlayers(scores []PlayerScore) []PlayerScore {
	return filterScores(scores, false)
}

// SelectWinner picks the non-coach player with the most seals. Ties at the top
// are broken by pick.
func SelectWinner(scores []PlayerScore, pick Picker) (*PlayerScore, WinReason) {
	eligible := EligiblePlayers(scores)
	if len(eligible) == 0 {
		return nil, WinReasonNoEligiblePlayers
	}

	best := eligible[0].Seals
	for _, s := range eligible[1:] {
		if s.Seals > best {
			best = s.Seals
		}
	}

	var tied []PlayerScore
	for _, s := range eligible {
		if s.Seals == best {
			tied = append(tied, s)
		}
	}

	if len(tied) == 1 {
		winner := tied[0]
		return &winner, WinReasonHighestSeals
	}

	winner := tied[pickIndex(pick, len(tied))]
	return &winner, WinReasonTieBreaker
}

// SelectDrawingWinner picks a random non-coach player other than winner.
func SelectDrawingWinner(scores []PlayerScore, winner *PlayerScore, pick Picker) (*PlayerScore, WinReason) {
	var pool []PlayerScore
	for _, s := range EligiblePlayers(scores) {
		if winner != nil && s.DiscordID == winner.DiscordID {
			continue
		}
		pool = append(pool, s)
	}

	if len(pool) == 0 {
		return nil, WinReasonNoEligiblePlayers
	}

	drawn := pool[pickIndex(pick, len(pool))]
	return &drawn, WinReasonRandomDrawing
}

func pickIndex(pick Picker, n int) int {
	if pick == nil {
		pick = DefaultPicker
	}
	i := pick(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}
