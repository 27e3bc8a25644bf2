package professionalsdomain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ValidationError describes one invalid input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when one or more command fields are invalid.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Field + ": " + e.Message
	}
	return "validation failed with errors: " + strings.Join(parts, ", ")
}

// ContractInput is a contract request before it is accepted.
type ContractInput struct {
	DiscordID DiscordID
	FirstName string
	LastName  string
	Amount    int64
}

// ParseDiscordID parses the identifier as carried on the wire.
func ParseDiscordID(raw string) (DiscordID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, ValidationErrors{{Field: "discord_id", Message: "must be an integer."}}
	}
	return DiscordID(id), nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func validateAlphanumeric(value, field string) []ValidationError {
	if value != "" && !isAlphanumeric(value) {
		return []ValidationError{{Field: field, Message: "must be alphanumeric."}}
	}
	return nil
}

func validateRequiredName(value, field string) []ValidationError {
	if value == "" {
		return []ValidationError{{Field: field, Message: "must be non-empty."}}
	}
	return validateAlphanumeric(value, field)
}

// ValidateParticipant checks the names of an enrollment request.
func ValidateParticipant(p Participant) ValidationErrors {
	var errs ValidationErrors
	errs = append(errs, validateRequiredName(p.FirstName, "first_name")...)
	errs = append(errs, validateRequiredName(p.LastName, "last_name")...)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateContractInput checks a contract request against the allowed amounts.
// Names are optional but must be given together.
func ValidateContractInput(in ContractInput, allowed []int64) ValidationErrors {
	var errs ValidationErrors

	if !slices.Contains(allowed, in.Amount) {
		errs = append(errs, ValidationError{Field: "amount", Message: AllowedAmountsMessage(allowed)})
	}

	switch {
	case in.FirstName != "" && in.LastName == "":
		errs = append(errs, ValidationError{Field: "last_name", Message: "must be non-empty if first name is provided."})
	case in.LastName != "" && in.FirstName == "":
		errs = append(errs, ValidationError{Field: "first_name", Message: "must be non-empty if last name is provided."})
	default:
		errs = append(errs, validateAlphanumeric(in.FirstName, "first_name")...)
		errs = append(errs, validateAlphanumeric(in.LastName, "last_name")...)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AllowedAmountsMessage renders the amount whitelist for a validation message.
func AllowedAmountsMessage(allowed []int64) string {
	switch len(allowed) {
	case 0:
		return "must be a configured contract amount."
	case 1:
		return fmt.Sprintf("must be %d.", allowed[0])
	case 2:
		return fmt.Sprintf("must be %d or %d.", allowed[0], allowed[1])
	}

	sorted := slices.Clone(allowed)
	slices.Sort(sorted)

	head := make([]string, len(sorted)-1)
	for i, a := range sorted[:len(sorted)-1] {
		head[i] = strconv.FormatInt(a, 10)
	}
	return fmt.Sprintf("must be one of: %s, or %d.", strings.Join(head, ", "), sorted[len(sorted)-1])
}
