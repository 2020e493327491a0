package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/scry-hanzi/internal/domain"
	"github.com/phrazzld/scry-hanzi/internal/lexicon"
	"github.com/phrazzld/scry-hanzi/internal/service/review"
)

// Controller is the review session as seen by the command table.
type Controller interface {
	Advance(ctx context.Context) error
	GoBack() error
	JumpTo(char string) error
	SubmitAnswer(ctx context.Context, tokens []string) (bool, error)
	AddNote(ctx context.Context, text string) error
	MarkOptional(ctx context.Context, tokens []string) (int, error)
	Display() error

	Prompt() review.PromptInfo
	Stats(now time.Time) review.Stats
	History() ([]domain.ReviewOutcome, error)
	Inspect(now time.Time) []review.CardStats
	Words() ([]lexicon.Entry, error)
	Vocabulary() ([]review.VocabRow, error)
	Decompositions() ([]lexicon.Decomposition, error)
}

// Options configures an App.
type Options struct {
	// Color enables ANSI colouring of the prompt.
	Color  bool
	Clock  func() time.Time
	Logger *slog.Logger
}

// App binds the review commands to a Controller.
type App struct {
	ctrl       Controller
	out        io.Writer
	color      bool
	clock      func() time.Time
	logger     *slog.Logger
	dispatcher *Dispatcher
}

// NewApp creates an App writing to out. It panics if ctrl or out is nil.
func NewApp(ctrl Controller, out io.Writer, opts Options) *App {
	if ctrl == nil {
		panic("controller cannot be nil")
	}
	if out == nil {
		panic("out cannot be nil")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	a := &App{
		ctrl:   ctrl,
		out:    out,
		color:  opts.Color,
		clock:  opts.Clock,
		logger: opts.Logger.With(slog.String("component", "cli")),
	}
	a.dispatcher = NewDispatcher(out, DispatcherOptions{
		Prompt:      a.prompt,
		FormatError: formatError,
		Logger:      opts.Logger,
	})
	a.registerCommands()
	return a
}

// Dispatcher returns the command table.
func (a *App) Dispatcher() *Dispatcher {
	return a.dispatcher
}

// Run reads commands from in until end of input.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	return a.dispatcher.Run(ctx, in)
}

// PrintStats writes the deck statistics.
func (a *App) PrintStats() {
	writeStats(a.out, a.ctrl.Stats(a.clock()))
}

func (a *App) registerCommands() {
	d := a.dispatcher

	d.On(`^back`, "Go back to the previous card", func(context.Context) error {
		return a.ctrl.GoBack()
	})
	d.On(`^skip`, "Skip this card", a.ctrl.Advance)
	d.On(`^cedict`, "Show dictionary words containing the character", a.words)
	d.On(`^hsk`, "Show HSK vocabulary containing the character", a.vocabulary)
	d.On(`^chise`, "Show the character's composition", a.decompositions)
	d.On(`^his`, "Show the card's rating history", a.history)
	d.On(`^inspect`, "Show scheduling details of every seen card", a.inspect)
	d.OnInput(`^note `, "Add a note to the card", func(ctx context.Context, input string) error {
		return a.ctrl.AddNote(ctx, argument(input, "note "))
	})
	d.OnInput(`^goto `, "Jump to a specific character", func(_ context.Context, input string) error {
		return a.ctrl.JumpTo(argument(input, "goto "))
	})
	d.OnInput(`^optional `, "Mark comma-separated pinyin as optional", func(ctx context.Context, input string) error {
		_, err := a.ctrl.MarkOptional(ctx, SplitTokens(argument(input, "optional ")))
		return err
	})
	d.OnInput(`[0-9]`, "Answer with comma-separated pinyin", func(ctx context.Context, input string) error {
		_, err := a.ctrl.SubmitAnswer(ctx, SplitTokens(input))
		return err
	})
	d.On(`^h|help|\?`, "Show help", a.help)
	d.On(`^s|stats`, "Show deck statistics", func(context.Context) error {
		a.PrintStats()
		return nil
	})
	d.On(`^d|display`, "Show the card's dictionary entries and notes", func(context.Context) error {
		return a.ctrl.Display()
	})
}

func (a *App) words(context.Context) error {
	entries, err := a.ctrl.Words()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintln(a.out, strings.Join(e.Row(), "\t"))
	}
	return nil
}

func (a *App) vocabulary(context.Context) error {
	rows, err := a.ctrl.Vocabulary()
	if err != nil {
		return err
	}
	for _, r := range rows {
		fields := []string{fmt.Sprint(r.Level)}
		if r.Entry != nil {
			fields = append(fields, r.Entry.Row()...)
		} else {
			fields = append(fields, r.Word)
		}
		fmt.Fprintln(a.out, strings.Join(fields, "\t"))
	}
	return nil
}

func (a *App) decompositions(context.Context) error {
	rows, err := a.ctrl.Decompositions()
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Fprintln(a.out, strings.Join(r.Row(), ": "))
	}
	return nil
}

func (a *App) history(context.Context) error {
	outcomes, err := a.ctrl.History()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, outcomes)
	return nil
}

func (a *App) inspect(context.Context) error {
	for _, c := range a.ctrl.Inspect(a.clock()) {
		fmt.Fprintf(a.out, "%s\t%d\t%d\t%v\t%d\n",
			c.Char, c.ReviewCount, c.ConsecutiveCorrect, c.EaseFactor, c.Interval)
	}
	return nil
}

func (a *App) help(context.Context) error {
	for _, b := range a.dispatcher.Bindings() {
		fmt.Fprintf(a.out, "/%s/\t%s\n", b.Pattern, b.Description)
	}
	return nil
}

func (a *App) prompt() string {
	return FormatPrompt(a.ctrl.Prompt(), a.color)
}

// argument strips prefix from input and trims what is left.
func argument(input, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(input, prefix))
}

// SplitTokens splits comma-separated input into trimmed, non-empty tokens.
func SplitTokens(input string) []string {
	var tokens []string
	for _, tok := range strings.Split(input, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func formatError(err error) string {
	switch {
	case errors.Is(err, review.ErrPersist):
		return "warning: " + err.Error()
	case errors.Is(err, review.ErrDeckExhausted):
		return "deck complete: no due or new cards left"
	case errors.Is(err, review.ErrCardNotFound):
		return "no such card"
	case errors.Is(err, review.ErrNoPreviousCard):
		return "no previous card"
	case errors.Is(err, domain.ErrEmptyNote):
		return "note is empty"
	}
	return "error: " + err.Error()
}
