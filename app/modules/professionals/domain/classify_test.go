package professionalsdomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	juhdu := Participant{DiscordID: 123456789012345678, FirstName: "Juhdu", LastName: "Khigbaa"}
	coach := Participant{DiscordID: 42, FirstName: "Coach", LastName: "Person", IsCoach: true}
	unranked := Participant{DiscordID: 7, FirstName: "Never", LastName: "Ranked"}

	members := []MembershipRecord{
		{IdentityToken: "m1", Name: "Juhdu Khigbaa"},
		{IdentityToken: "m2", Name: "Coach Person"},
		{IdentityToken: "m3", Name: "Never Ranked"},
		{IdentityToken: "m4", Name: "Honorable Member"},
		{IdentityToken: "m5", Name: "Quiet Member"},
	}
	rows := []AggregatedRow{
		{IdentityToken: "m1", Name: "Juhdu Khigbaa", BestRank: 1, TotalScore: 50},
		{IdentityToken: "m2", Name: "Coach Person", BestRank: 2, TotalScore: 10000000},
		{IdentityToken: "m4", Name: "Honorable Member", BestRank: 10, TotalScore: 250000},
		{IdentityToken: "outsider", Name: "Not Ours", BestRank: 3, TotalScore: 900000},
	}

	matches := MatchIdentities(members, []Participant{juhdu, coach, unranked})
	scores, mentions := Classify(rows, matches)

	wantScores := []PlayerScore{
		{DiscordID: juhdu.DiscordID, FirstName: "Juhdu", LastName: "Khigbaa", Rank: 1, Seals: 50},
		{DiscordID: coach.DiscordID, FirstName: "Coach", LastName: "Person", Rank: 2, Seals: 10000000, IsCoach: true},
	}
	wantMentions := []HonorableMention{
		{FirstName: "Honorable", LastName: "Member", Rank: 10, Seals: 250000},
	}

	if diff := cmp.Diff(wantScores, scores); diff != "" {
		t.Errorf("player scores mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantMentions, mentions); diff != "" {
		t.Errorf("honorable mentions mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyMultiTokenMention(t *testing.T) {
	matches := MatchIdentities([]MembershipRecord{
		{IdentityToken: "m1", Name: "Ser Aymeric de Borel"},
	}, nil)
	rows := []AggregatedRow{{IdentityToken: "m1", BestRank: 4, TotalScore: 100}}

	scores, mentions := Classify(rows, matches)

	assert.Empty(t, scores)
	assert.Equal(t, []HonorableMention{
		{FirstName: "Ser", LastName: "Aymeric de Borel", Rank: 4, Seals: 100},
	}, mentions)
}

func TestClassifyIdentityInAtMostOneList(t *testing.T) {
	participants := []Participant{{DiscordID: 1, FirstName: "Alpha", LastName: "One"}}
	members := []MembershipRecord{
		{IdentityToken: "a", Name: "Alpha One"},
		{IdentityToken: "b", Name: "Beta Two"},
	}
	rows := AggregateLeaderboard([]LeaderboardRecord{
		{IdentityToken: "a", Rank: 5, Score: 10},
		{IdentityToken: "b", Rank: 6, Score: 20},
		{IdentityToken: "a", Rank: 9, Score: 30},
	})

	scores, mentions := Classify(rows, MatchIdentities(members, participants))

	assert.Len(t, scores, 1)
	assert.Len(t, mentions, 1)
	assert.Equal(t, int64(40), scores[0].Seals)
	assert.Equal(t, 5, scores[0].Rank)
	assert.Equal(t, "Beta", mentions[0].FirstName)
}

func TestClassifyEmpty(t *testing.T) {
	scores, mentions := Classify(nil, nil)
	assert.NotNil(t, scores)
	assert.NotNil(t, mentions)
	assert.Empty(t, scores)
	assert.Empty(t, mentions)
}
