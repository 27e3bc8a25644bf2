package professionalsservice

import "errors"

// UserError is a refused command. UserMessage is safe to show to the caller.
type UserError struct {
	Kind        error
	UserMessage string
}

func (e *UserError) Error() string {
	return e.Kind.Error()
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

var (
	ErrNamesRequired = errors.New("names required for new participant")
	ErrCoachContract = errors.New("coach attempted to create a contract")

	// ErrRankingSource wraps every failure to read membership or rankings.
	ErrRankingSource = errors.New("ranking source failed")
)

func namesRequired() error {
	return &UserError{Kind: ErrNamesRequired, UserMessage: "First name and last name are required for new participants."}
}

func coachContract() error {
	return &UserError{Kind: ErrCoachContract, UserMessage: "Coaches may not create contracts."}
}
