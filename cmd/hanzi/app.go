package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/phrazzld/scry-hanzi/internal/cli"
	"github.com/phrazzld/scry-hanzi/internal/config"
	"github.com/phrazzld/scry-hanzi/internal/domain/srs"
	"github.com/phrazzld/scry-hanzi/internal/lexicon"
	"github.com/phrazzld/scry-hanzi/internal/platform/logger"
	"github.com/phrazzld/scry-hanzi/internal/service/review"
	"github.com/phrazzld/scry-hanzi/internal/store"
)

// application holds the wired dependencies of one run and releases them
// on cleanup.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	store     store.DeckStore
	session   *review.Session
	cli       *cli.App
}

// newApplication loads configuration, logging, reference data and the deck
// store, and wires the review session to the command line front end.
func newApplication(
	ctx context.Context,
	flags *pflag.FlagSet,
	initFile string,
	out io.Writer,
) (*application, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, closer, err := logger.Setup(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	app := &application{config: cfg, logger: log, logCloser: closer}

	log.Info("configuration loaded",
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("log_level", cfg.Log.Level))

	tables, err := lexicon.Load(lexicon.Paths{
		CEDICT: cfg.Lexicon.CEDICTPath,
		HSK:    cfg.Lexicon.HSKPath,
		CHISE:  cfg.Lexicon.CHISEPath,
	})
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	params, err := srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:           cfg.SRS.MinEaseFactor,
		MaxEaseFactor:           cfg.SRS.MaxEaseFactor,
		FirstReviewGoodInterval: cfg.SRS.FirstReviewGoodInterval,
		AgainReviewMinutes:      cfg.SRS.AgainReviewMinutes,
	})
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create SRS service: %w", err)
	}

	app.store, err = openStore(ctx, cfg.Storage, log)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to open deck store: %w", err)
	}

	if initFile != "" {
		if err := bootstrapDeck(ctx, app.store, initFile, time.Now(), log); err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to create deck: %w", err)
		}
	}

	app.session = review.NewSession(
		app.store,
		srs.NewServiceWithParams(params),
		tables,
		cli.NewPrinter(out),
		review.Options{
			SampleSize: cfg.Session.SampleSize,
			Logger:     log,
		},
	)

	outFile, _ := out.(*os.File)
	app.cli = cli.NewApp(app.session, out, cli.Options{
		Color:  cli.ColorEnabled(cfg.UI.Color, outFile),
		Logger: log,
	})

	return app, nil
}

// Run loads the deck, prints the statistics and reads commands until end
// of input. Everything logged during the run carries the session_id.
func (app *application) Run(ctx context.Context, in io.Reader) error {
	ctx = logger.WithLogger(ctx, app.session.Logger())

	if err := app.session.Load(ctx); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	app.cli.PrintStats()

	if err := app.cli.Run(ctx, in); err != nil {
		return fmt.Errorf("session ended with error: %w", err)
	}
	logger.FromContext(ctx).Info("session finished", slog.Bool("unsaved", app.session.Unsaved()))
	return nil
}

// cleanup releases the store and the log file.
func (app *application) cleanup() {
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			app.logger.Error("error closing deck store", slog.String("error", err.Error()))
		}
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
}
