package review_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-hanzi/internal/domain"
	"github.com/phrazzld/scry-hanzi/internal/domain/srs"
	"github.com/phrazzld/scry-hanzi/internal/lexicon"
	"github.com/phrazzld/scry-hanzi/internal/platform/logger"
	"github.com/phrazzld/scry-hanzi/internal/service/review"
	"github.com/phrazzld/scry-hanzi/internal/store"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// memoryStore is an in-memory DeckStore that can be told to fail saves.
type memoryStore struct {
	deck    *domain.Deck
	saves   int
	saveErr error
}

func (m *memoryStore) Load(context.Context) (*domain.Deck, error) {
	if m.deck == nil {
		return nil, store.ErrDeckNotFound
	}
	return m.deck, nil
}

func (m *memoryStore) Save(_ context.Context, deck *domain.Deck) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.deck = deck
	return nil
}

func (m *memoryStore) Close() error { return nil }

// recordingRenderer keeps every card it was asked to show.
type recordingRenderer struct {
	views []review.CardView
}

func (r *recordingRenderer) RenderCard(v review.CardView) {
	r.views = append(r.views, v)
}

func (r *recordingRenderer) chars() []string {
	out := make([]string, 0, len(r.views))
	for _, v := range r.views {
		out = append(out, v.Char)
	}
	return out
}

func testTables() *lexicon.Tables {
	return &lexicon.Tables{
		Dictionary: lexicon.NewCEDICT([]lexicon.Entry{
			{Traditional: "一", Simplified: "一", Pinyin: "yi1", Glosses: []string{"one"}},
			{Traditional: "二", Simplified: "二", Pinyin: "er4", Glosses: []string{"two"}},
			{Traditional: "三", Simplified: "三", Pinyin: "san1", Glosses: []string{"three"}},
			{Traditional: "四", Simplified: "四", Pinyin: "si4", Glosses: []string{"four"}},
			{Traditional: "行", Simplified: "行", Pinyin: "xing2", Glosses: []string{"to walk"}},
			{Traditional: "行", Simplified: "行", Pinyin: "hang2", Glosses: []string{"row"}},
			{Traditional: "一二", Simplified: "一二", Pinyin: "yi1 er4", Glosses: []string{"one or two"}},
			{Traditional: "統一", Simplified: "统一", Pinyin: "tong3 yi1", Glosses: []string{"to unify"}},
		}),
		Vocabulary: lexicon.NewHSK([]lexicon.VocabEntry{
			{Level: 1, Word: "一"},
			{Level: 3, Word: "統一"},
			{Level: 2, Word: "二"},
			{Level: 4, Word: "一致"},
		}),
		Decompositions: lexicon.NewIDS([]lexicon.Decomposition{
			{Codepoint: "U+884C", Char: "行", IDS: "⿰彳亍"},
			{Codepoint: "U+4E00", Char: "一", IDS: "一"},
		}),
	}
}

// newCard returns an unreviewed record.
func newCard(t *testing.T, char string, index int) *domain.Record {
	t.Helper()
	card, err := domain.NewCard(char, index)
	require.NoError(t, err)
	rec, err := domain.NewRecord(*card, testNow.AddDate(0, 0, -30))
	require.NoError(t, err)
	return rec
}

// dueCard returns a record reviewed once and due at due.
func dueCard(t *testing.T, char string, index int, due time.Time) *domain.Record {
	t.Helper()
	rec := newCard(t, char, index)
	rec.ReviewCount = 1
	rec.ConsecutiveCorrect = 1
	rec.Interval = 1
	rec.LastReviewedAt = due.AddDate(0, 0, -1)
	rec.NextReviewAt = due
	rec.History = []domain.ReviewEvent{{Outcome: domain.ReviewOutcomeGood, ReviewedAt: rec.LastReviewedAt}}
	return rec
}

type fixture struct {
	session  *review.Session
	store    *memoryStore
	renderer *recordingRenderer
	tables   *lexicon.Tables
	now      *time.Time
	logs     *logger.Buffer
}

func newFixture(t *testing.T, records ...*domain.Record) *fixture {
	t.Helper()
	deck, err := domain.NewDeck(records)
	require.NoError(t, err)

	now := testNow
	f := &fixture{
		store:    &memoryStore{deck: deck},
		renderer: &recordingRenderer{},
		tables:   testTables(),
		now:      &now,
	}
	log, logs := logger.NewCapture()
	f.logs = logs
	f.session = review.NewSession(f.store, srs.NewDefaultService(), f.tables, f.renderer, review.Options{
		Clock:  func() time.Time { return *f.now },
		Rand:   rand.New(rand.NewPCG(1, 2)),
		Logger: log,
	})
	return f
}

var errDiskFull = errors.New("disk full")
