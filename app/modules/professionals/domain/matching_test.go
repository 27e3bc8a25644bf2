package professionalsdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		input     string
		wantFirst string
		wantLast  string
		wantOK    bool
	}{
		{"Juhdu Khigbaa", "Juhdu", "Khigbaa", true},
		{"Mononymous", "", "", false},
		{"Three Part Name", "", "", false},
		{" Leading", "", "", false},
		{"Trailing ", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			first, last, ok := SplitName(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestMatchIdentities(t *testing.T) {
	participants := []Participant{
		{DiscordID: 1, FirstName: "Juhdu", LastName: "Khigbaa"},
		{DiscordID: 2, FirstName: "Coach", LastName: "Person", IsCoach: true},
	}

	t.Run("exact match", func(t *testing.T) {
		matches := MatchIdentities([]MembershipRecord{
			{IdentityToken: "x", Name: "Juhdu Khigbaa", Tier: "Member"},
			{IdentityToken: "y", Name: "Coach Person", Tier: "Officer"},
		}, participants)

		require.Len(t, matches, 2)
		require.True(t, matches[0].Matched())
		assert.Equal(t, DiscordID(1), matches[0].Participant.DiscordID)
		require.True(t, matches[1].Matched())
		assert.True(t, matches[1].Participant.IsCoach)
	})

	t.Run("match is case-sensitive", func(t *testing.T) {
		matches := MatchIdentities([]MembershipRecord{
			{IdentityToken: "x", Name: "juhdu khigbaa"},
		}, participants)

		require.Len(t, matches, 1)
		assert.False(t, matches[0].Matched())
	})

	t.Run("unsplittable names are unmatched", func(t *testing.T) {
		matches := MatchIdentities([]MembershipRecord{
			{IdentityToken: "x", Name: "Juhdu Van Khigbaa"},
			{IdentityToken: "y", Name: "Juhdu"},
		}, participants)

		require.Len(t, matches, 2)
		assert.False(t, matches[0].Matched())
		assert.False(t, matches[1].Matched())
	})

	t.Run("repeated identity keeps first record", func(t *testing.T) {
		matches := MatchIdentities([]MembershipRecord{
			{IdentityToken: "x", Name: "Juhdu Khigbaa", Tier: "First"},
			{IdentityToken: "x", Name: "Juhdu Khigbaa", Tier: "Second"},
		}, participants)

		require.Len(t, matches, 1)
		assert.Equal(t, "First", matches[0].Member.Tier)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, MatchIdentities(nil, nil))
	})
}
