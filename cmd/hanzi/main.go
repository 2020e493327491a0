// Package main implements hanzi, an interactive trainer that drills the
// pronunciation of Chinese characters on a spaced repetition schedule.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/phrazzld/scry-hanzi/internal/config"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole program minus process concerns. It returns the exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("hanzi", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	config.RegisterFlags(flags)
	initFile := flags.String("init", "", "create the deck from a character list when none exists yet")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	app, err := newApplication(ctx, flags, *initFile, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "hanzi: %v\n", err)
		return 1
	}
	defer app.cleanup()

	if err := app.Run(ctx, stdin); err != nil {
		fmt.Fprintf(stderr, "hanzi: %v\n", err)
		return 1
	}
	return 0
}
