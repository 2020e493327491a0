package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// Handler runs a command that takes no input.
type Handler func(ctx context.Context) error

// InputHandler runs a command that receives the raw input line.
type InputHandler func(ctx context.Context, input string) error

// Binding is one registered command.
type Binding struct {
	Pattern     *regexp.Regexp
	Description string
	run         InputHandler
}

// DispatcherOptions configures a Dispatcher. Zero values select the defaults.
type DispatcherOptions struct {
	// Prompt returns the text written before each line is read.
	Prompt func() string
	// FormatError turns a handler error into the line shown to the user.
	FormatError func(error) string
	Logger      *slog.Logger
}

// Dispatcher matches input lines against its bindings in registration order.
type Dispatcher struct {
	bindings    []Binding
	out         io.Writer
	prompt      func() string
	formatError func(error) string
	logger      *slog.Logger
}

// NewDispatcher creates a dispatcher writing prompts and errors to out.
func NewDispatcher(out io.Writer, opts DispatcherOptions) *Dispatcher {
	if out == nil {
		panic("out cannot be nil")
	}
	if opts.Prompt == nil {
		opts.Prompt = func() string { return "> " }
	}
	if opts.FormatError == nil {
		opts.FormatError = func(err error) string { return "error: " + err.Error() }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Dispatcher{
		out:         out,
		prompt:      opts.Prompt,
		formatError: opts.FormatError,
		logger:      opts.Logger.With(slog.String("component", "dispatcher")),
	}
}

// On registers a command that ignores its input. It panics if pattern does
// not compile.
func (d *Dispatcher) On(pattern, description string, h Handler) {
	d.OnInput(pattern, description, func(ctx context.Context, _ string) error {
		return h(ctx)
	})
}

// OnInput registers a command that receives the raw input line. It panics
// if pattern does not compile.
func (d *Dispatcher) OnInput(pattern, description string, h InputHandler) {
	d.bindings = append(d.bindings, Binding{
		Pattern:     regexp.MustCompile(pattern),
		Description: description,
		run:         h,
	})
}

// Bindings returns the registered commands in matching order.
func (d *Dispatcher) Bindings() []Binding {
	return append([]Binding(nil), d.bindings...)
}

// Dispatch runs the first binding matching line. It reports whether any
// binding matched, and returns the handler's error.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) (bool, error) {
	for _, b := range d.bindings {
		if b.Pattern.MatchString(line) {
			return true, b.run(ctx, line)
		}
	}
	return false, nil
}

// Run reads lines from in until end of input, dispatching each one. Handler
// errors are written to the output and do not stop the loop. Run returns nil
// at end of input and ctx.Err() once ctx is done.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := io.WriteString(d.out, d.prompt()); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read input: %w", readErr)
		}
		if readErr != nil && line == "" {
			return nil
		}

		line = strings.TrimRight(line, "\r\n")
		matched, err := d.Dispatch(ctx, line)
		if err != nil {
			d.logger.Warn("command failed",
				slog.String("input", line),
				slog.String("error", err.Error()))
			fmt.Fprintln(d.out, d.formatError(err))
		} else if !matched {
			d.logger.Debug("input ignored", slog.String("input", line))
		}

		if readErr != nil {
			return nil
		}
	}
}
