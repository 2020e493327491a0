package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-hanzi/internal/domain"
	"github.com/phrazzld/scry-hanzi/internal/platform/logger"
	"github.com/phrazzld/scry-hanzi/internal/store"
)

const entity = "deck"

const selectCardsSQL = `SELECT glyph, ordinal, notes, optional_readings, interval_days,
	ease_factor, consecutive_correct, review_count, last_reviewed_at, next_review_at,
	history, created_at, updated_at
FROM deck_cards
WHERE owner = ?
ORDER BY position`

// position is the record's place in the deck, which need not follow ordinal.
const insertCardSQL = `INSERT INTO deck_cards (
	owner, glyph, ordinal, position, notes, optional_readings, interval_days,
	ease_factor, consecutive_correct, review_count, last_reviewed_at, next_review_at,
	history, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const upsertDeckSQL = `INSERT INTO decks (owner, saved_at) VALUES (?, ?)
ON CONFLICT (owner) DO UPDATE SET saved_at = excluded.saved_at`

// DeckStore keeps one owner's deck as rows of deck_cards.
type DeckStore struct {
	db      *sql.DB
	dialect Dialect
	owner   string
	logger  *slog.Logger
	now     func() time.Time
}

var _ store.DeckStore = (*DeckStore)(nil)

// New wraps an open, migrated database. It panics if db is nil.
func New(db *sql.DB, dialect Dialect, owner string, logger *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckStore{
		db:      db,
		dialect: dialect,
		owner:   owner,
		logger: logger.With(
			slog.String("component", "deck_store"),
			slog.String("driver", dialect.Goose),
			slog.String("owner", owner),
		),
		now: time.Now,
	}
}

// DB returns the underlying handle.
func (s *DeckStore) DB() *sql.DB {
	return s.db
}

// Close closes the database handle.
func (s *DeckStore) Close() error {
	return s.db.Close()
}

// Load reads the owner's deck. It returns store.ErrDeckNotFound when the
// owner has never saved one.
func (s *DeckStore) Load(ctx context.Context) (*domain.Deck, error) {
	var savedAt int64
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT saved_at FROM decks WHERE owner = ?`), s.owner).
		Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrDeckNotFound
	}
	if err != nil {
		return nil, store.NewStoreError(entity, "load", "failed to query deck", s.dialect.mapError(err))
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(selectCardsSQL), s.owner)
	if err != nil {
		return nil, store.NewStoreError(entity, "load", "failed to query cards", s.dialect.mapError(err))
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, store.NewStoreError(entity, "load", "failed to read card", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(entity, "load", "failed to iterate cards", s.dialect.mapError(err))
	}

	deck, err := domain.NewDeck(records)
	if err != nil {
		return nil, store.NewStoreError(entity, "load", "stored deck is invalid",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "deck loaded",
		slog.Int("cards", deck.Len()),
		slog.Time("saved_at", fromNanos(savedAt)))
	return deck, nil
}

// Save replaces the owner's rows with the deck in a single transaction.
func (s *DeckStore) Save(ctx context.Context, deck *domain.Deck) error {
	records := deck.Records()
	rows := make([][]any, 0, len(records))
	for i, rec := range records {
		args, err := recordArgs(s.owner, i, rec)
		if err != nil {
			return store.NewStoreError(entity, "save", "failed to encode card",
				fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
		}
		rows = append(rows, args)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, q store.DBTX) error {
		return s.writeDeck(ctx, q, rows)
	})
	if err != nil {
		return store.NewStoreError(entity, "save", "failed to write deck", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "deck saved", slog.Int("cards", len(rows)))
	return nil
}

// writeDeck replaces the owner's deck row and cards using q, which is
// normally the transaction opened by Save.
func (s *DeckStore) writeDeck(ctx context.Context, q store.DBTX, rows [][]any) error {
	if _, err := q.ExecContext(ctx, s.dialect.rebind(upsertDeckSQL), s.owner, toNanos(s.now())); err != nil {
		return s.dialect.mapError(err)
	}
	if _, err := q.ExecContext(ctx, s.dialect.rebind(`DELETE FROM deck_cards WHERE owner = ?`), s.owner); err != nil {
		return s.dialect.mapError(err)
	}

	stmt, err := q.PrepareContext(ctx, s.dialect.rebind(insertCardSQL))
	if err != nil {
		return s.dialect.mapError(err)
	}
	defer func() { _ = stmt.Close() }()

	for _, args := range rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("card %q: %w", args[1], s.dialect.mapError(err))
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var (
		rec                      domain.Record
		notes, optional, history string
		lastReviewed, nextReview sql.NullInt64
		createdAt, updatedAt     sql.NullInt64
	)
	if err := row.Scan(
		&rec.Card.Char,
		&rec.Card.Index,
		&notes,
		&optional,
		&rec.Interval,
		&rec.EaseFactor,
		&rec.ConsecutiveCorrect,
		&rec.ReviewCount,
		&lastReviewed,
		&nextReview,
		&history,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(notes), &rec.Card.Notes); err != nil {
		return nil, fmt.Errorf("decode notes for %q: %w", rec.Card.Char, err)
	}
	if err := json.Unmarshal([]byte(optional), &rec.Card.Optional); err != nil {
		return nil, fmt.Errorf("decode optional readings for %q: %w", rec.Card.Char, err)
	}
	if err := json.Unmarshal([]byte(history), &rec.History); err != nil {
		return nil, fmt.Errorf("decode history for %q: %w", rec.Card.Char, err)
	}

	rec.LastReviewedAt = fromNullableNanos(lastReviewed)
	rec.NextReviewAt = fromNullableNanos(nextReview)
	rec.CreatedAt = fromNullableNanos(createdAt)
	rec.UpdatedAt = fromNullableNanos(updatedAt)
	return &rec, nil
}

func recordArgs(owner string, position int, rec *domain.Record) ([]any, error) {
	notes, err := marshalList(rec.Card.Notes)
	if err != nil {
		return nil, err
	}
	optional, err := marshalList(rec.Card.Optional)
	if err != nil {
		return nil, err
	}
	history, err := marshalList(rec.History)
	if err != nil {
		return nil, err
	}

	return []any{
		owner,
		rec.Card.Char,
		rec.Card.Index,
		position,
		notes,
		optional,
		rec.Interval,
		rec.EaseFactor,
		rec.ConsecutiveCorrect,
		rec.ReviewCount,
		nullableNanos(rec.LastReviewedAt),
		nullableNanos(rec.NextReviewAt),
		history,
		nullableNanos(rec.CreatedAt),
		nullableNanos(rec.UpdatedAt),
	}, nil
}

// marshalList encodes a slice as a JSON array, writing [] for nil.
func marshalList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// nullableNanos stores the zero time as NULL; UnixNano cannot represent it.
func nullableNanos(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toNanos(t), Valid: true}
}

func fromNullableNanos(n sql.NullInt64) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return fromNanos(n.Int64)
}
