package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/phrazzld/scry-hanzi/internal/service/review"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

// ColorEnabled resolves a colour mode of "always", "never" or "auto"
// against the file the prompt is written to.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatPrompt renders the prompt line: the due count, the current
// character and, when more than one pronunciation is expected, how many.
// A leading "!" flags unsaved changes.
func FormatPrompt(info review.PromptInfo, color bool) string {
	expected := ""
	if info.Expected > 1 {
		expected = fmt.Sprint(info.Expected)
	}
	p := fmt.Sprintf("%d %s %s> ", info.DueCount, info.Char, expected)
	if info.Unsaved {
		p = "!" + p
	}
	if !color {
		return p
	}

	code := ansiBlue
	switch info.Result {
	case review.ResultCorrect:
		code = ansiGreen
	case review.ResultIncorrect:
		code = ansiRed
	}
	return code + p + ansiReset
}

// Printer renders cards as text. It implements review.Renderer.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// RenderCard writes each dictionary entry of the card followed by its notes.
func (p *Printer) RenderCard(view review.CardView) {
	for _, e := range view.Entries {
		head := e.Traditional
		if e.Simplified != e.Traditional {
			head += " (" + e.Simplified + ")"
		}
		fmt.Fprintf(p.out, "%s %s\n", head, e.Pinyin)
		for _, g := range e.Glosses {
			if g != "" {
				fmt.Fprintf(p.out, "- %s\n", g)
			}
		}
	}
	for _, n := range view.Notes {
		fmt.Fprintln(p.out, n)
	}
}

func writeStats(out io.Writer, st review.Stats) {
	fmt.Fprintf(out, "(%.1f%%) %d new cards, %d expired. %d total.\n",
		st.SeenPercent, st.New, st.Expired, st.Total)
	if c := st.Current; c != nil {
		fmt.Fprintf(out, "%s (%d) : %v factor %d interval\n", c.Char, c.Index, c.EaseFactor, c.Interval)
	}
	for _, w := range st.Upcoming {
		amount, unit, _ := strings.Cut(w.Label, " ")
		fmt.Fprintf(out, "%3s %-6s%d\n", amount, unit, w.Count)
	}
	fmt.Fprintf(out, "  total   %d\n", st.Scheduled)
}
