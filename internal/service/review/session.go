package review

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-hanzi/internal/domain"
	"github.com/phrazzld/scry-hanzi/internal/domain/srs"
	"github.com/phrazzld/scry-hanzi/internal/lexicon"
	"github.com/phrazzld/scry-hanzi/internal/platform/logger"
	"github.com/phrazzld/scry-hanzi/internal/store"
)

// DefaultSampleSize is how many unseen cards are drawn when choosing a new card.
const DefaultSampleSize = 10

// Result is the outcome of the most recent answer, used for prompt styling.
type Result int

const (
	ResultUnknown Result = iota
	ResultCorrect
	ResultIncorrect
)

// String returns the lower-case name of r.
func (r Result) String() string {
	switch r {
	case ResultCorrect:
		return "correct"
	case ResultIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// CardView is what a renderer needs to show a card.
type CardView struct {
	Char    string
	Entries []lexicon.Entry
	Notes   []string
}

// Renderer displays cards to the user.
type Renderer interface {
	RenderCard(view CardView)
}

// Options tunes a Session. Zero values select the defaults.
type Options struct {
	SampleSize int
	Clock      func() time.Time
	Rand       *rand.Rand
	Logger     *slog.Logger
}

// Session is the review state machine.
type Session struct {
	store      store.DeckStore
	srs        srs.Service
	tables     *lexicon.Tables
	renderer   Renderer
	clock      func() time.Time
	rng        *rand.Rand
	sampleSize int
	logger     *slog.Logger

	deck       *domain.Deck
	current    string
	previous   string
	lastResult Result
	unsaved    bool
}

// NewSession creates a session. It panics if a required dependency is nil.
// The deck is not read until Load is called.
func NewSession(
	deckStore store.DeckStore,
	srsService srs.Service,
	tables *lexicon.Tables,
	renderer Renderer,
	opts Options,
) *Session {
	if deckStore == nil {
		panic("deckStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if tables == nil || tables.Dictionary == nil {
		panic("tables must include a dictionary")
	}
	if renderer == nil {
		panic("renderer cannot be nil")
	}

	if opts.SampleSize <= 0 {
		opts.SampleSize = DefaultSampleSize
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Session{
		store:      deckStore,
		srs:        srsService,
		tables:     tables,
		renderer:   renderer,
		clock:      opts.Clock,
		rng:        opts.Rand,
		sampleSize: opts.SampleSize,
		logger: opts.Logger.With(
			slog.String("component", "review_session"),
			slog.String("session_id", uuid.NewString()),
		),
	}
}

// Logger returns the session's logger, tagged with its session_id.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// Load reads the deck, checks every character against the dictionary and
// selects the first card. It returns ErrDeckExhausted, with the deck loaded,
// when nothing is due and no unseen card is left.
func (s *Session) Load(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.store.Load(ctx)
	if err != nil {
		return NewLoadError("failed to load deck", err)
	}
	if err := deck.Validate(s.tables.Dictionary); err != nil {
		log.Error("deck has characters missing from the dictionary", slog.String("error", err.Error()))
		return NewLoadError("deck does not match the dictionary", err)
	}

	s.deck = deck
	s.previous = ""
	s.current = ""
	s.lastResult = ResultUnknown
	s.unsaved = false

	next, err := s.selectNext(s.clock())
	if err != nil {
		return NewLoadError("no card to start with", err)
	}
	s.current = next

	log.Info("deck loaded",
		slog.Int("cards", deck.Len()),
		slog.String("current", s.current))
	return nil
}

// Deck returns the loaded deck, or nil before Load.
func (s *Session) Deck() *domain.Deck {
	return s.deck
}

// Current returns the character on screen, or "" when there is none.
func (s *Session) Current() string {
	return s.current
}

// Previous returns the character shown before the current one, or "".
func (s *Session) Previous() string {
	return s.previous
}

// LastResult returns the outcome of the most recent answer.
func (s *Session) LastResult() Result {
	return s.lastResult
}

// Unsaved reports whether the deck has changes the store did not accept.
func (s *Session) Unsaved() bool {
	return s.unsaved
}

// SubmitAnswer judges tokens against the current card, rates it Good when
// they match and Again otherwise, saves the deck, shows the answered card
// and moves on. A failed save does not stop the display or the advance; the
// returned error then wraps ErrPersist.
func (s *Session) SubmitAnswer(ctx context.Context, tokens []string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec, err := s.currentRecord()
	if err != nil {
		return false, NewSubmitAnswerError("no card to answer", err)
	}

	canonical := rec.Card.Pronunciations(s.tables.Dictionary)
	if len(canonical) == 0 {
		return false, NewSubmitAnswerError(rec.Card.Char, ErrNoPronunciations)
	}

	correct := domain.CheckAnswer(tokens, canonical, rec.Card.Optional)
	outcome := domain.ReviewOutcomeAgain
	if correct {
		outcome = domain.ReviewOutcomeGood
	}

	updated, err := s.srs.CalculateNextReview(rec, outcome, s.clock())
	if err != nil {
		return false, NewSubmitAnswerError("failed to schedule card", err)
	}
	if err := s.deck.Replace(updated); err != nil {
		return false, NewSubmitAnswerError("failed to update deck", err)
	}

	if correct {
		s.lastResult = ResultCorrect
	} else {
		s.lastResult = ResultIncorrect
	}

	log.Debug("answer rated",
		slog.String("char", updated.Card.Char),
		slog.String("outcome", string(outcome)),
		slog.Int("interval", updated.Interval),
		slog.Time("next_review_at", updated.NextReviewAt))

	persistErr := s.persist(ctx)
	s.renderer.RenderCard(s.view(updated))
	advanceErr := s.Advance(ctx)

	return correct, errors.Join(persistErr, advanceErr)
}

// Advance moves to the next card: the soonest-due card if any is due, else
// the lowest-indexed card among a random sample of unseen cards. With
// nothing to show it returns ErrDeckExhausted and leaves the state as is.
func (s *Session) Advance(ctx context.Context) error {
	if s.deck == nil {
		return NewAdvanceError("deck not loaded", ErrDeckExhausted)
	}

	next, err := s.selectNext(s.clock())
	if err != nil {
		return NewAdvanceError("no card to show", err)
	}

	s.previous = s.current
	s.current = next

	logger.FromContextOrDefault(ctx, s.logger).Debug("advanced",
		slog.String("previous", s.previous),
		slog.String("current", s.current))
	return nil
}

// GoBack swaps the current and previous cards. Calling it twice restores
// the original pair.
func (s *Session) GoBack() error {
	if s.previous == "" {
		return NewNavigationError("cannot go back", ErrNoPreviousCard)
	}
	s.current, s.previous = s.previous, s.current
	return nil
}

// JumpTo makes char the current card. The input is trimmed and must match
// a deck character exactly.
func (s *Session) JumpTo(char string) error {
	char = strings.TrimSpace(char)
	if s.deck == nil {
		return NewNavigationError(char, ErrCardNotFound)
	}
	if _, ok := s.deck.Find(char); !ok {
		return NewNavigationError(char, ErrCardNotFound)
	}
	s.previous = s.current
	s.current = char
	return nil
}

// AddNote appends a note to the current card and saves the deck.
func (s *Session) AddNote(ctx context.Context, text string) error {
	return s.editCurrent(ctx, func(card *domain.Card) error {
		return card.AddNote(text)
	})
}

// MarkOptional marks pronunciations of the current card as optional and
// saves the deck. It returns how many tokens were newly marked.
func (s *Session) MarkOptional(ctx context.Context, tokens []string) (int, error) {
	var added int
	err := s.editCurrent(ctx, func(card *domain.Card) error {
		added = card.MarkOptional(tokens...)
		return nil
	})
	return added, err
}

// Display shows the current card.
func (s *Session) Display() error {
	rec, err := s.currentRecord()
	if err != nil {
		return err
	}
	s.renderer.RenderCard(s.view(rec))
	return nil
}

func (s *Session) editCurrent(ctx context.Context, edit func(*domain.Card) error) error {
	rec, err := s.currentRecord()
	if err != nil {
		return NewEditCardError("no card to edit", err)
	}

	updated := rec.Clone()
	if err := edit(&updated.Card); err != nil {
		return NewEditCardError(rec.Card.Char, err)
	}
	updated.UpdatedAt = s.clock()

	if err := s.deck.Replace(updated); err != nil {
		return NewEditCardError("failed to update deck", err)
	}
	return s.persist(ctx)
}

// persist saves the whole deck, tracking whether unsaved changes remain.
func (s *Session) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.deck); err != nil {
		s.unsaved = true
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save deck",
			slog.String("error", err.Error()))
		return NewPersistError(err)
	}
	s.unsaved = false
	return nil
}

func (s *Session) currentRecord() (*domain.Record, error) {
	if s.deck == nil || s.current == "" {
		return nil, ErrDeckExhausted
	}
	rec, ok := s.deck.Find(s.current)
	if !ok {
		return nil, ErrCardNotFound
	}
	return rec, nil
}

// selectNext picks the next character without changing any state.
func (s *Session) selectNext(now time.Time) (string, error) {
	if due := s.deck.ExpiredCards(now); len(due) > 0 {
		return due[0].Card.Char, nil
	}

	unseen := s.deck.NewCards()
	if len(unseen) == 0 {
		return "", ErrDeckExhausted
	}

	n := min(s.sampleSize, len(unseen))
	var pick *domain.Record
	for _, i := range s.rng.Perm(len(unseen))[:n] {
		if pick == nil || unseen[i].Card.Index < pick.Card.Index {
			pick = unseen[i]
		}
	}
	return pick.Card.Char, nil
}

func (s *Session) view(rec *domain.Record) CardView {
	return CardView{
		Char:    rec.Card.Char,
		Entries: rec.Card.LexiconEntries(s.tables.Dictionary),
		Notes:   append([]string(nil), rec.Card.Notes...),
	}
}
