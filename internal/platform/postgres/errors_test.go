package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/scry-hanzi/internal/platform/postgres"
	"github.com/phrazzld/scry-hanzi/internal/store"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "deck_cards",
		ColumnName:     "glyph",
		ConstraintName: "deck_cards_pkey",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "no rows", err: sql.ErrNoRows, target: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), target: store.ErrInvalidEntity},
		{name: "foreign key violation", err: newPgError("23503"), target: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError("23514"), target: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), target: store.ErrInvalidEntity},
		{name: "serialization failure", err: newPgError("40001"), target: store.ErrTransactionFailed},
		{
			name:   "wrapped unique violation",
			err:    fmt.Errorf("insert: %w", newPgError("23505")),
			target: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := postgres.MapError(tt.err)
			assert.ErrorIs(t, mapped, tt.target)
			assert.ErrorIs(t, mapped, tt.err, "original error is preserved")
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	t.Parallel()

	assert.Nil(t, postgres.MapError(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, postgres.MapError(plain))

	other := newPgError("22001")
	assert.Equal(t, other, postgres.MapError(other))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("wrapped: %w", newPgError("23505"))))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503")))
	assert.False(t, postgres.IsUniqueViolation(errors.New("plain")))
	assert.False(t, postgres.IsUniqueViolation(nil))
}

func TestMapErrorDescribesDeckConstraints(t *testing.T) {
	t.Parallel()

	dup := newPgError("23505")
	assert.Contains(t, postgres.MapError(dup).Error(), "character appears twice in deck")

	unknown := newPgError("23514")
	unknown.ConstraintName = "some_future_check"
	assert.Contains(t, postgres.MapError(unknown).Error(), "constraint some_future_check")

	missing := newPgError("23502")
	assert.Contains(t, postgres.MapError(missing).Error(), "deck_cards.glyph is required")
}
