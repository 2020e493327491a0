package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/phrazzld/scry-hanzi/internal/lexicon"
)

// Deck is the ordered collection of scheduling records under review.
// Each character appears at most once.
type Deck struct {
	records []*Record
	byChar  map[string]int
}

// NewDeck builds a deck from records, keeping their order. Nil collections
// on the records are replaced with empty ones.
// Returns an error if a record is invalid or a character repeats.
func NewDeck(records []*Record) (*Deck, error) {
	d := &Deck{
		records: make([]*Record, 0, len(records)),
		byChar:  make(map[string]int, len(records)),
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: card %q: %w", ErrValidation, r.Card.Char, err)
		}
		if r.Card.Notes == nil {
			r.Card.Notes = []string{}
		}
		if r.Card.Optional == nil {
			r.Card.Optional = []string{}
		}
		if r.History == nil {
			r.History = []ReviewEvent{}
		}
		if _, dup := d.byChar[r.Card.Char]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCard, r.Card.Char)
		}
		d.byChar[r.Card.Char] = len(d.records)
		d.records = append(d.records, r)
	}
	return d, nil
}

// NewDeckFromCharacters builds a fresh deck of unreviewed cards, one per
// character, indexed in order of appearance. Blank and repeated characters
// are skipped.
func NewDeckFromCharacters(chars []string, now time.Time) (*Deck, error) {
	seen := make(map[string]bool, len(chars))
	records := make([]*Record, 0, len(chars))
	for _, ch := range chars {
		ch = strings.TrimSpace(ch)
		if ch == "" || seen[ch] {
			continue
		}
		seen[ch] = true

		card, err := NewCard(ch, len(records))
		if err != nil {
			return nil, err
		}
		rec, err := NewRecord(*card, now)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return NewDeck(records)
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.records)
}

// Records returns the deck's records in order.
func (d *Deck) Records() []*Record {
	return slices.Clone(d.records)
}

// Find returns the record for char.
func (d *Deck) Find(char string) (*Record, bool) {
	i, ok := d.byChar[char]
	if !ok {
		return nil, false
	}
	return d.records[i], true
}

// Replace swaps in an updated record for the card with the same character.
func (d *Deck) Replace(rec *Record) error {
	i, ok := d.byChar[rec.Card.Char]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCardNotInDeck, rec.Card.Char)
	}
	d.records[i] = rec
	return nil
}

// NewCards returns the cards that have never been reviewed, in deck order.
func (d *Deck) NewCards() []*Record {
	var out []*Record
	for _, r := range d.records {
		if r.IsNew() {
			out = append(out, r)
		}
	}
	return out
}

// Seen returns the cards that have been reviewed at least once, in deck order.
func (d *Deck) Seen() []*Record {
	var out []*Record
	for _, r := range d.records {
		if !r.IsNew() {
			out = append(out, r)
		}
	}
	return out
}

// ExpiredCards returns the reviewed cards due at or before asOf, soonest
// due first. Cards due at the same instant keep index order.
func (d *Deck) ExpiredCards(asOf time.Time) []*Record {
	var out []*Record
	for _, r := range d.records {
		if r.IsDue(asOf) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b *Record) int {
		if c := a.NextReviewAt.Compare(b.NextReviewAt); c != 0 {
			return c
		}
		return a.Card.Index - b.Card.Index
	})
	return out
}

// Validate checks that every character has at least one dictionary entry.
func (d *Deck) Validate(dict lexicon.Dictionary) error {
	var missing []string
	for _, r := range d.records {
		if len(dict.Lookup(r.Card.Char)) == 0 {
			missing = append(missing, r.Card.Char)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCharacters, strings.Join(missing, " "))
	}
	return nil
}
