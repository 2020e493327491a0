package store

import (
	"context"

	"github.com/phrazzld/scry-hanzi/internal/domain"
)

// DeckStore loads and saves the whole deck as one snapshot.
//
// Save must be atomic: after a failed Save the previously stored deck is
// still loadable. Load returns ErrDeckNotFound when nothing has been saved.
// A deck read back by Load is equivalent to the one passed to Save: same
// records, same order, same notes, optional sets and history.
type DeckStore interface {
	Load(ctx context.Context) (*domain.Deck, error)
	Save(ctx context.Context, deck *domain.Deck) error
	Close() error
}
