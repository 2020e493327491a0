package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// HSK is an in-memory leveled vocabulary list.
type HSK struct {
	entries []VocabEntry
}

var _ Vocabulary = (*HSK)(nil)

// NewHSK builds a vocabulary list from already-parsed rows.
func NewHSK(entries []VocabEntry) *HSK {
	return &HSK{entries: entries}
}

// ParseHSK reads tab-separated "level<TAB>word" rows. Extra columns are
// ignored; '#' comments and blank lines are skipped.
func ParseHSK(r io.Reader) (*HSK, error) {
	var entries []VocabEntry
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedLine)
		}
		level, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: level %q", lineNo, ErrMalformedLine, fields[0])
		}
		entries = append(entries, VocabEntry{Level: level, Word: strings.TrimSpace(fields[1])})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewHSK(entries), nil
}

// Containing implements Vocabulary.
func (h *HSK) Containing(s string) []VocabEntry {
	var out []VocabEntry
	for _, e := range h.entries {
		if strings.Contains(e.Word, s) {
			out = append(out, e)
		}
	}
	return out
}
