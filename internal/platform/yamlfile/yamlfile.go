// Package yamlfile stores the deck as a single YAML snapshot on disk.
package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/scry-hanzi/internal/domain"
	"github.com/phrazzld/scry-hanzi/internal/platform/logger"
	"github.com/phrazzld/scry-hanzi/internal/store"
)

// SnapshotVersion is written into every snapshot and checked on load.
const SnapshotVersion = 1

const entity = "deck"

// snapshot is the on-disk document.
type snapshot struct {
	Version int              `yaml:"version"`
	Cards   []*domain.Record `yaml:"cards"`
}

// Store reads and writes the deck file at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

var _ store.DeckStore = (*Store)(nil)

// New returns a store for the snapshot at path. The file need not exist yet.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path: path,
		logger: logger.With(
			slog.String("component", "deck_store"),
			slog.String("driver", "file"),
		),
	}
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file yields store.ErrDeckNotFound.
func (s *Store) Load(ctx context.Context) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrDeckNotFound
	}
	if err != nil {
		return nil, store.NewStoreError(entity, "load", "failed to read snapshot", err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, store.NewStoreError(entity, "load", "failed to parse snapshot",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}
	if snap.Version != SnapshotVersion {
		return nil, store.NewStoreError(entity, "load",
			fmt.Sprintf("unsupported snapshot version %d", snap.Version), store.ErrInvalidEntity)
	}

	deck, err := domain.NewDeck(snap.Cards)
	if err != nil {
		return nil, store.NewStoreError(entity, "load", "stored deck is invalid",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "deck loaded",
		slog.String("path", s.path),
		slog.Int("cards", deck.Len()))
	return deck, nil
}

// Save writes the deck to a temporary file next to the snapshot, syncs it
// and renames it into place, so a crash leaves either the old or the new
// snapshot.
func (s *Store) Save(ctx context.Context, deck *domain.Deck) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(snapshot{Version: SnapshotVersion, Cards: deck.Records()})
	if err != nil {
		return store.NewStoreError(entity, "save", "failed to encode snapshot", err)
	}

	if err := writeAtomic(s.path, data); err != nil {
		return store.NewStoreError(entity, "save", "failed to write snapshot", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "deck saved",
		slog.String("path", s.path),
		slog.Int("cards", deck.Len()))
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error {
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o600); err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
