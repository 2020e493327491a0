package domain

import (
	"errors"
	"slices"
	"strings"

	"github.com/phrazzld/scry-hanzi/internal/lexicon"
)

// Card-specific validation errors
var (
	// ErrCardCharEmpty is returned when a card has no character.
	ErrCardCharEmpty = errors.New("card character cannot be empty")

	// ErrCardIndexNegative is returned when a card's ordinal index is negative.
	ErrCardIndexNegative = errors.New("card index cannot be negative")

	// ErrEmptyNote is returned when an empty note is added to a card.
	ErrEmptyNote = errors.New("note cannot be empty")
)

// Card is one character under review together with the user's annotations.
// Its pronunciations are not stored; they are derived from the dictionary
// each time they are needed.
type Card struct {
	Char     string   `json:"char" yaml:"char"`
	Index    int      `json:"index" yaml:"index"`
	Notes    []string `json:"notes" yaml:"notes"`
	Optional []string `json:"optional" yaml:"optional"`
}

// NewCard creates a card with empty notes and optional sets.
// Returns an error if validation fails.
func NewCard(char string, index int) (*Card, error) {
	card := &Card{
		Char:     strings.TrimSpace(char),
		Index:    index,
		Notes:    []string{},
		Optional: []string{},
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.Char) == "" {
		return ErrCardCharEmpty
	}
	if c.Index < 0 {
		return ErrCardIndexNegative
	}
	return nil
}

// Pronunciations returns the canonical pronunciation set: the pronunciation
// of every dictionary entry headed by the card's character, case folded,
// deduplicated and sorted. It is empty when the character is not in the
// dictionary.
func (c *Card) Pronunciations(dict lexicon.Dictionary) []string {
	entries := dict.Lookup(c.Char)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, NormalizeToken(e.Pinyin))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// LexiconEntries returns the dictionary rows for the card's character in
// dictionary order.
func (c *Card) LexiconEntries(dict lexicon.Dictionary) []lexicon.Entry {
	return dict.Lookup(c.Char)
}

// ExpectedCount returns how many canonical pronunciations the user still has
// to type, i.e. those not marked optional.
func (c *Card) ExpectedCount(dict lexicon.Dictionary) int {
	optional := tokenSet(c.Optional)
	n := 0
	for _, p := range c.Pronunciations(dict) {
		if _, ok := optional[p]; !ok {
			n++
		}
	}
	return n
}

// AddNote appends a note. The caller is responsible for persisting the card.
func (c *Card) AddNote(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyNote
	}
	c.Notes = append(c.Notes, text)
	return nil
}

// MarkOptional adds pronunciations the user no longer needs to type. Tokens
// already marked, or blank, are skipped. It returns how many were added.
// The caller is responsible for persisting the card.
func (c *Card) MarkOptional(tokens ...string) int {
	have := tokenSet(c.Optional)
	added := 0
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		key := NormalizeToken(tok)
		if key == "" {
			continue
		}
		if _, ok := have[key]; ok {
			continue
		}
		have[key] = struct{}{}
		c.Optional = append(c.Optional, tok)
		added++
	}
	return added
}

// clone returns a deep copy of the card.
func (c Card) clone() Card {
	out := c
	out.Notes = append([]string{}, c.Notes...)
	out.Optional = append([]string{}, c.Optional...)
	return out
}
