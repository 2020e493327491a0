package review

import (
	"slices"
	"time"

	"github.com/phrazzld/scry-hanzi/internal/domain"
	"github.com/phrazzld/scry-hanzi/internal/lexicon"
)

// PromptInfo is everything the prompt line shows.
type PromptInfo struct {
	DueCount int
	Char     string
	// Expected is how many pronunciations the user has to type.
	Expected int
	Result   Result
	Unsaved  bool
}

// DueWindow counts the cards that will be due within a horizon.
type DueWindow struct {
	Label  string
	Within time.Duration
	Count  int
}

// CardStats summarizes the scheduling state of one card.
type CardStats struct {
	Char               string
	Index              int
	ReviewCount        int
	ConsecutiveCorrect int
	EaseFactor         float64
	Interval           int
	OverdueBy          time.Duration
}

// Stats is a snapshot of deck progress.
type Stats struct {
	Total       int
	New         int
	Expired     int
	SeenPercent float64
	// Current is nil when no card is on screen.
	Current  *CardStats
	Upcoming []DueWindow
	// Scheduled counts every reviewed card, i.e. everything that will
	// eventually come due.
	Scheduled int
}

// VocabRow is a vocabulary list row together with the word's first
// dictionary entry, when there is one.
type VocabRow struct {
	Level int
	Word  string
	Entry *lexicon.Entry
}

var dueHorizons = []struct {
	label  string
	within time.Duration
}{
	{"1 hr", time.Hour},
	{"12 hr", 12 * time.Hour},
	{"1 day", 24 * time.Hour},
	{"4 days", 4 * 24 * time.Hour},
	{"1 week", 7 * 24 * time.Hour},
	{"2 weeks", 14 * 24 * time.Hour},
}

// Prompt describes the current prompt.
func (s *Session) Prompt() PromptInfo {
	info := PromptInfo{
		Char:    s.current,
		Result:  s.lastResult,
		Unsaved: s.unsaved,
	}
	if s.deck == nil {
		return info
	}
	info.DueCount = len(s.deck.ExpiredCards(s.clock()))
	if rec, err := s.currentRecord(); err == nil {
		info.Expected = rec.Card.ExpectedCount(s.tables.Dictionary)
	}
	return info
}

// Stats reports deck progress as of now.
func (s *Session) Stats(now time.Time) Stats {
	if s.deck == nil {
		return Stats{}
	}

	st := Stats{
		Total:     s.deck.Len(),
		New:       len(s.deck.NewCards()),
		Expired:   len(s.deck.ExpiredCards(now)),
		Scheduled: len(s.deck.Seen()),
	}
	if st.Total > 0 {
		st.SeenPercent = 100 * float64(st.Total-st.New) / float64(st.Total)
	}
	if rec, err := s.currentRecord(); err == nil {
		cs := cardStats(rec, now)
		st.Current = &cs
	}
	for _, h := range dueHorizons {
		st.Upcoming = append(st.Upcoming, DueWindow{
			Label:  h.label,
			Within: h.within,
			Count:  len(s.deck.ExpiredCards(now.Add(h.within))),
		})
	}
	return st
}

// History returns the current card's review outcomes, oldest first.
func (s *Session) History() ([]domain.ReviewOutcome, error) {
	rec, err := s.currentRecord()
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReviewOutcome, 0, len(rec.History))
	for _, ev := range rec.History {
		out = append(out, ev.Outcome)
	}
	return out, nil
}

// Inspect lists every reviewed card, least overdue first.
func (s *Session) Inspect(now time.Time) []CardStats {
	if s.deck == nil {
		return nil
	}
	seen := s.deck.Seen()
	out := make([]CardStats, 0, len(seen))
	for _, rec := range seen {
		out = append(out, cardStats(rec, now))
	}
	slices.SortStableFunc(out, func(a, b CardStats) int {
		switch {
		case a.OverdueBy < b.OverdueBy:
			return -1
		case a.OverdueBy > b.OverdueBy:
			return 1
		}
		return 0
	})
	return out
}

// Words returns the dictionary entries whose headword contains the current
// character.
func (s *Session) Words() ([]lexicon.Entry, error) {
	if _, err := s.currentRecord(); err != nil {
		return nil, err
	}
	return s.tables.Dictionary.Containing(s.current), nil
}

// Vocabulary returns the vocabulary rows containing the current character.
func (s *Session) Vocabulary() ([]VocabRow, error) {
	if _, err := s.currentRecord(); err != nil {
		return nil, err
	}
	if s.tables.Vocabulary == nil {
		return nil, nil
	}

	var out []VocabRow
	for _, v := range s.tables.Vocabulary.Containing(s.current) {
		row := VocabRow{Level: v.Level, Word: v.Word}
		if entries := s.tables.Dictionary.Lookup(v.Word); len(entries) > 0 {
			e := entries[0]
			row.Entry = &e
		}
		out = append(out, row)
	}
	return out, nil
}

// Decompositions returns the composition rows of the current character.
func (s *Session) Decompositions() ([]lexicon.Decomposition, error) {
	if _, err := s.currentRecord(); err != nil {
		return nil, err
	}
	if s.tables.Decompositions == nil {
		return nil, nil
	}
	return s.tables.Decompositions.For(s.current), nil
}

func cardStats(rec *domain.Record, now time.Time) CardStats {
	return CardStats{
		Char:               rec.Card.Char,
		Index:              rec.Card.Index,
		ReviewCount:        rec.ReviewCount,
		ConsecutiveCorrect: rec.ConsecutiveCorrect,
		EaseFactor:         rec.EaseFactor,
		Interval:           rec.Interval,
		OverdueBy:          rec.OverdueBy(now),
	}
}
