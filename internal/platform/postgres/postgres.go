package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// pgx registers the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/scry-hanzi/internal/platform/sqlstore"
	"github.com/phrazzld/scry-hanzi/internal/redact"
)

// Dialect is the sqlstore dialect for PostgreSQL.
var Dialect = sqlstore.Dialect{
	Goose:                "postgres",
	NumberedPlaceholders: true,
	MapError:             MapError,
}

// Open connects to url, applies the embedded migrations and returns a deck
// store for owner. Connection errors are redacted before being returned.
func Open(ctx context.Context, url, owner string, logger *slog.Logger) (*sqlstore.DeckStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %s", redact.Error(err))
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres db %s: %s", redact.URL(url), redact.Error(err))
	}

	if err := sqlstore.Migrate(ctx, db, Dialect, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("connected to postgres", slog.String("url", redact.URL(url)))
	return sqlstore.New(db, Dialect, owner, logger), nil
}
