package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/scry-hanzi/internal/store"
)

// SQLSTATE codes the deck schema can raise.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNotNullViolation     = "23502"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// violations names the deck schema's constraints in user terms.
var violations = map[string]string{
	"decks_pkey":                     "deck already exists for owner",
	"deck_cards_pkey":                "character appears twice in deck",
	"deck_cards_owner_fkey":          "card saved without its deck",
	"deck_cards_ordinal_check":       "negative card index",
	"deck_cards_position_check":      "negative deck position",
	"deck_cards_interval_days_check": "negative interval",
	"deck_cards_review_count_check":  "negative review count",
}

// MapError translates PostgreSQL errors into store errors. The driver error
// stays reachable through errors.Is/As.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation, codeForeignKeyViolation, codeCheckViolation:
		return fmt.Errorf("%w: %s: %w", store.ErrInvalidEntity, describe(pgErr), err)
	case codeNotNullViolation:
		return fmt.Errorf("%w: %s.%s is required: %w",
			store.ErrInvalidEntity, pgErr.TableName, pgErr.ColumnName, err)
	case codeSerializationFailure, codeDeadlockDetected:
		return fmt.Errorf("%w: %w", store.ErrTransactionFailed, err)
	}
	return err
}

func describe(pgErr *pgconn.PgError) string {
	if msg, ok := violations[pgErr.ConstraintName]; ok {
		return msg
	}
	return "constraint " + pgErr.ConstraintName
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
