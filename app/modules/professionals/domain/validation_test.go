package professionalsdomain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultAmounts = []int64{300000, 420000, 500000, 800000, 1000000}

func TestParseDiscordID(t *testing.T) {
	id, err := ParseDiscordID("123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, DiscordID(123456789012345678), id)

	_, err = ParseDiscordID("not-a-number")
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, ValidationErrors{{Field: "discord_id", Message: "must be an integer."}}, verrs)
}

func TestValidateParticipant(t *testing.T) {
	tests := []struct {
		name string
		in   Participant
		want ValidationErrors
	}{
		{
			name: "valid",
			in:   Participant{DiscordID: 1, FirstName: "Juhdu", LastName: "Khigbaa"},
		},
		{
			name: "empty names",
			in:   Participant{DiscordID: 1},
			want: ValidationErrors{
				{Field: "first_name", Message: "must be non-empty."},
				{Field: "last_name", Message: "must be non-empty."},
			},
		},
		{
			name: "punctuation and whitespace",
			in:   Participant{DiscordID: 1, FirstName: "Ju-hdu", LastName: "Khig baa"},
			want: ValidationErrors{
				{Field: "first_name", Message: "must be alphanumeric."},
				{Field: "last_name", Message: "must be alphanumeric."},
			},
		},
		{
			name: "unicode letters are alphanumeric",
			in:   Participant{DiscordID: 1, FirstName: "Zoë", LastName: "Lúin2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateParticipant(tt.in))
		})
	}
}

func TestValidateContractInput(t *testing.T) {
	tests := []struct {
		name    string
		in      ContractInput
		allowed []int64
		want    ValidationErrors
	}{
		{
			name:    "valid with names",
			in:      ContractInput{DiscordID: 1, FirstName: "Juhdu", LastName: "Khigbaa", Amount: 500000},
			allowed: defaultAmounts,
		},
		{
			name:    "valid without names",
			in:      ContractInput{DiscordID: 1, Amount: 300000},
			allowed: defaultAmounts,
		},
		{
			name:    "amount with one allowed value",
			in:      ContractInput{DiscordID: 1, Amount: 1},
			allowed: []int64{300000},
			want:    ValidationErrors{{Field: "amount", Message: "must be 300000."}},
		},
		{
			name:    "amount with two allowed values",
			in:      ContractInput{DiscordID: 1, Amount: 1},
			allowed: []int64{420000, 300000},
			want:    ValidationErrors{{Field: "amount", Message: "must be 420000 or 300000."}},
		},
		{
			name:    "amount with many allowed values is sorted",
			in:      ContractInput{DiscordID: 1, Amount: 1},
			allowed: []int64{1000000, 300000, 800000, 420000, 500000},
			want: ValidationErrors{{
				Field:   "amount",
				Message: "must be one of: 300000, 420000, 500000, 800000, or 1000000.",
			}},
		},
		{
			name:    "first name without last name",
			in:      ContractInput{DiscordID: 1, FirstName: "Juhdu", Amount: 300000},
			allowed: defaultAmounts,
			want:    ValidationErrors{{Field: "last_name", Message: "must be non-empty if first name is provided."}},
		},
		{
			name:    "last name without first name",
			in:      ContractInput{DiscordID: 1, LastName: "Khigbaa", Amount: 300000},
			allowed: defaultAmounts,
			want:    ValidationErrors{{Field: "first_name", Message: "must be non-empty if last name is provided."}},
		},
		{
			name:    "bad amount and bad names together",
			in:      ContractInput{DiscordID: 1, FirstName: "J!", LastName: "K?", Amount: 5},
			allowed: []int64{300000},
			want: ValidationErrors{
				{Field: "amount", Message: "must be 300000."},
				{Field: "first_name", Message: "must be alphanumeric."},
				{Field: "last_name", Message: "must be alphanumeric."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateContractInput(tt.in, tt.allowed))
		})
	}
}

func TestValidationErrorsError(t *testing.T) {
	err := ValidationErrors{
		{Field: "first_name", Message: "must be non-empty."},
		{Field: "amount", Message: "must be 300000."},
	}
	assert.Equal(t, "validation failed with errors: first_name: must be non-empty., amount: must be 300000.", err.Error())
}
