package testdb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-hanzi/internal/domain"
)

// SampleDeck returns a three card deck (一, 行, 們) in which 行 has been
// reviewed twice and carries a note, an optional pronunciation and history.
// Timestamps keep nanoseconds so stores must round-trip them exactly.
func SampleDeck(t *testing.T) *domain.Deck {
	t.Helper()
	base := time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.UTC)

	deck, err := domain.NewDeckFromCharacters([]string{"一", "行", "們"}, base)
	require.NoError(t, err)

	rec, ok := deck.Find("行")
	require.True(t, ok)
	reviewed := rec.Clone()
	require.NoError(t, reviewed.Card.AddNote("walk / row"))
	reviewed.Card.MarkOptional("hang2")
	reviewed.ReviewCount = 2
	reviewed.ConsecutiveCorrect = 1
	reviewed.Interval = 3
	reviewed.EaseFactor = 2.35
	reviewed.LastReviewedAt = base.Add(24 * time.Hour)
	reviewed.NextReviewAt = base.Add(96 * time.Hour)
	reviewed.UpdatedAt = reviewed.LastReviewedAt
	reviewed.History = []domain.ReviewEvent{
		{ID: uuid.New(), Outcome: domain.ReviewOutcomeAgain, ReviewedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Outcome: domain.ReviewOutcomeGood, ReviewedAt: base.Add(24 * time.Hour)},
	}
	require.NoError(t, deck.Replace(reviewed))
	return deck
}
