package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/phrazzld/scry-hanzi/internal/config"
	"github.com/phrazzld/scry-hanzi/internal/domain"
	"github.com/phrazzld/scry-hanzi/internal/platform/postgres"
	"github.com/phrazzld/scry-hanzi/internal/platform/sqlite"
	"github.com/phrazzld/scry-hanzi/internal/platform/yamlfile"
	"github.com/phrazzld/scry-hanzi/internal/store"
)

// openStore returns the deck store selected by cfg.Driver.
func openStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.DeckStore, error) {
	switch cfg.Driver {
	case "file":
		return yamlfile.New(cfg.Path, logger), nil
	case "sqlite":
		return sqlite.Open(ctx, cfg.Path, cfg.Owner, logger)
	case "postgres":
		return postgres.Open(ctx, cfg.URL, cfg.Owner, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// bootstrapDeck creates a deck from the character list at path unless the
// store already holds one.
func bootstrapDeck(
	ctx context.Context,
	deckStore store.DeckStore,
	path string,
	now time.Time,
	logger *slog.Logger,
) error {
	_, err := deckStore.Load(ctx)
	if err == nil {
		logger.Warn("deck already exists, ignoring --init", slog.String("file", path))
		return nil
	}
	if !errors.Is(err, store.ErrDeckNotFound) {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open character list: %w", err)
	}
	defer f.Close()

	chars, err := readCharacters(f)
	if err != nil {
		return fmt.Errorf("failed to read character list: %w", err)
	}

	deck, err := domain.NewDeckFromCharacters(chars, now)
	if err != nil {
		return err
	}
	if deck.Len() == 0 {
		return fmt.Errorf("character list %s is empty", path)
	}
	if err := deckStore.Save(ctx, deck); err != nil {
		return err
	}

	logger.Info("deck created", slog.String("file", path), slog.Int("cards", deck.Len()))
	return nil
}

// readCharacters returns one character per non-blank line, skipping lines
// that start with '#'.
func readCharacters(r io.Reader) ([]string, error) {
	var chars []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		chars = append(chars, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return chars, nil
}
