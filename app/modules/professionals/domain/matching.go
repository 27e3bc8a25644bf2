package professionalsdomain

import "strings"

// IdentityMatch links one external identity to a registered participant.
// Participant is nil when the member is not registered.
type IdentityMatch struct {
	Member      MembershipRecord
	Participant *Participant
}

// Matched reports whether the identity belongs to a registered participant.
func (m IdentityMatch) Matched() bool {
	return m.Participant != nil
}

// SplitName splits a Lodestone display name into first and last name.
// ok is false unless the name is exactly two tokens separated by one space.
func SplitName(name string) (first, last string, ok bool) {
	first, last, found := strings.Cut(name, " ")
	if !found || first == "" || last == "" || strings.Contains(last, " ") {
		return "", "", false
	}
	return first, last, true
}

// splitMentionName keeps every token after the first as the last name.
func splitMentionName(name string) (first, last string) {
	tokens := strings.Split(name, " ")
	return tokens[0], strings.Join(tokens[1:], " ")
}

type nameKey struct {
	first string
	last  string
}

// MatchIdentities joins membership records to participants by exact full-name
// match. The result follows membership order; repeated identity tokens keep
// their first occurrence.
func MatchIdentities(members []MembershipRecord, participants []Participant) []IdentityMatch {
	byName := make(map[nameKey]*Participant, len(participants))
	for i := range participants {
		key := nameKey{participants[i].FirstName, participants[i].LastName}
		if _, exists := byName[key]; !exists {
			byName[key] = &participants[i]
		}
	}

	seen := make(map[string]struct{}, len(members))
	matches := make([]IdentityMatch, 0, len(members))
	for _, m := range members {
		if _, dup := seen[m.IdentityToken]; dup {
			continue
		}
		seen[m.IdentityToken] = struct{}{}

		match := IdentityMatch{Member: m}
		if first, last, ok := SplitName(m.Name); ok {
			if p, found := byName[nameKey{first, last}]; found {
				cp := *p
				match.Participant = &cp
			}
		}
		matches = append(matches, match)
	}
	return matches
}
