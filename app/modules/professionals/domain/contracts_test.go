package professionalsdomain

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

var testPayouts = PayoutTable{
	300000:  450000,
	420000:  550000,
	500000:  650000,
	800000:  900000,
	1000000: 3200000,
}

func TestEvaluateContracts(t *testing.T) {
	tests := []struct {
		name      string
		scores    []PlayerScore
		contracts []Contract
		payouts   PayoutTable
		want      []ContractResult
	}{
		{
			name:      "no scores",
			scores:    nil,
			contracts: []Contract{{DiscordID: 1, Amount: 300000}},
			payouts:   testPayouts,
			want:      []ContractResult{},
		},
		{
			name: "completed contract pays out",
			scores: []PlayerScore{
				{DiscordID: 1, FirstName: "A", LastName: "B", Seals: 500000},
			},
			contracts: []Contract{{DiscordID: 1, Amount: 500000}},
			payouts:   testPayouts,
			want: []ContractResult{
				{DiscordID: 1, FirstName: "A", LastName: "B", Amount: 500000, Completed: true, Payout: 650000},
			},
		},
		{
			name: "incomplete contract pays nothing",
			scores: []PlayerScore{
				{DiscordID: 1, FirstName: "Juhdu", LastName: "Khigbaa", Seals: 50},
			},
			contracts: []Contract{{DiscordID: 1, Amount: 500000}},
			payouts:   testPayouts,
			want: []ContractResult{
				{DiscordID: 1, FirstName: "Juhdu", LastName: "Khigbaa", Amount: 500000, Completed: false, Payout: 0},
			},
		},
		{
			name: "player without contract is absent",
			scores: []PlayerScore{
				{DiscordID: 1, Seals: 500000},
				{DiscordID: 2, Seals: 500000},
			},
			contracts: []Contract{{DiscordID: 2, Amount: 300000}},
			payouts:   testPayouts,
			want: []ContractResult{
				{DiscordID: 2, Amount: 300000, Completed: true, Payout: 450000},
			},
		},
		{
			name:      "contract without player score is absent",
			scores:    []PlayerScore{{DiscordID: 1, Seals: 10}},
			contracts: []Contract{{DiscordID: 99, Amount: 300000}},
			payouts:   testPayouts,
			want:      []ContractResult{},
		},
		{
			name:      "amount missing from payout table degrades to zero",
			scores:    []PlayerScore{{DiscordID: 1, Seals: 777}},
			contracts: []Contract{{DiscordID: 1, Amount: 777}},
			payouts:   testPayouts,
			want: []ContractResult{
				{DiscordID: 1, Amount: 777, Completed: true, Payout: 0},
			},
		},
		{
			name: "output follows player score order",
			scores: []PlayerScore{
				{DiscordID: 3, Seals: 1},
				{DiscordID: 1, Seals: 1},
				{DiscordID: 2, Seals: 1},
			},
			contracts: []Contract{
				{DiscordID: 1, Amount: 300000},
				{DiscordID: 2, Amount: 300000},
				{DiscordID: 3, Amount: 300000},
			},
			payouts: testPayouts,
			want: []ContractResult{
				{DiscordID: 3, Amount: 300000},
				{DiscordID: 1, Amount: 300000},
				{DiscordID: 2, Amount: 300000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateContracts(tt.scores, tt.contracts, tt.payouts))
		})
	}
}

func TestEvaluateContractsPayoutIffCompletedAndListed(t *testing.T) {
	faker := gofakeit.New(7)
	amounts := []int64{300000, 420000, 500000, 800000, 1000000, 123456}

	var scores []PlayerScore
	var contracts []Contract
	for i := 0; i < 200; i++ {
		id := DiscordID(i + 1)
		scores = append(scores, PlayerScore{DiscordID: id, Seals: int64(faker.IntRange(0, 1200000))})
		contracts = append(contracts, Contract{DiscordID: id, Amount: amounts[faker.IntRange(0, len(amounts)-1)]})
	}

	for _, r := range EvaluateContracts(scores, contracts, testPayouts) {
		_, listed := testPayouts[r.Amount]
		assert.Equal(t, r.Completed && listed, r.Payout != 0, "contract %d", r.DiscordID)
	}
}
