package professionalsqueue

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// DefaultResetSchedule matches the weekly Grand Company ranking rollover.
const DefaultResetSchedule = "next tuesday at 8:00 am"

// PhraseSchedule turns a natural-language phrase into a River periodic
// schedule. The phrase is evaluated in UTC relative to the previous run.
type PhraseSchedule struct {
	phrase string
	parser *when.Parser
	logger *slog.Logger
}

// NewPhraseSchedule validates phrase against now.
func NewPhraseSchedule(phrase string, now time.Time, logger *slog.Logger) (*PhraseSchedule, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w := when.New(nil)
	w.Add(en.All...)

	s := &PhraseSchedule{phrase: phrase, parser: w, logger: logger}
	if _, err := s.parse(now); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PhraseSchedule) parse(current time.Time) (time.Time, error) {
	ref := current.UTC()
	r, err := s.parser.Parse(s.phrase, ref)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse schedule %q: %w", s.phrase, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("schedule %q does not describe a time", s.phrase)
	}

	next := r.Time.UTC().Truncate(time.Minute)
	if !next.After(ref) {
		next = next.AddDate(0, 0, 7)
	}
	return next, nil
}

// Next returns the first run strictly after current. A phrase that stops
// parsing falls back to one week later.
func (s *PhraseSchedule) Next(current time.Time) time.Time {
	next, err := s.parse(current)
	if err != nil {
		s.logger.Error("Falling back to weekly reset", slog.String("schedule", s.phrase), slog.Any("error", err))
		return current.UTC().AddDate(0, 0, 7)
	}
	return next
}

// WeekKey returns the ISO week containing t, such as "2026-W12".
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
