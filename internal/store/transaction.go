package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-hanzi/internal/platform/logger"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx. Deck writers take
// a DBTX so the same code runs inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFn is the unit of work run by RunInTransaction.
type TxFn func(ctx context.Context, q DBTX) error

// RunInTransaction runs fn inside one transaction on db. The transaction
// commits when fn returns nil and rolls back otherwise. A panic in fn rolls
// back and is re-raised.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.ErrorContext(ctx, "failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		attrs := []any{slog.Any("panic", p)}
		if rbErr := tx.Rollback(); rbErr != nil {
			attrs = append(attrs, slog.String("rollback_error", rbErr.Error()))
		}
		log.ErrorContext(ctx, "transaction aborted by panic", attrs...)
		panic(p)
	}()

	if err := fn(ctx, tx); err != nil {
		return rollback(ctx, log, tx, err)
	}

	if err := tx.Commit(); err != nil {
		log.ErrorContext(ctx, "failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	return nil
}

// rollback undoes tx after cause. cause is returned unchanged unless the
// rollback itself fails.
func rollback(ctx context.Context, log *slog.Logger, tx *sql.Tx, cause error) error {
	if err := tx.Rollback(); err != nil {
		log.ErrorContext(ctx, "failed to roll back transaction",
			slog.String("rollback_error", err.Error()),
			slog.String("cause", cause.Error()))
		return fmt.Errorf("rollback failed: %v (after: %w)", err, cause)
	}
	log.DebugContext(ctx, "transaction rolled back", slog.String("cause", cause.Error()))
	return cause
}
