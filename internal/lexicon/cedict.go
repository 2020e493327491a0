package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CEDICT is an in-memory CC-CEDICT dictionary indexed by traditional headword.
type CEDICT struct {
	entries    []Entry
	byHeadword map[string][]int
}

var _ Dictionary = (*CEDICT)(nil)

// NewCEDICT builds a dictionary from already-parsed entries, keeping their order.
func NewCEDICT(entries []Entry) *CEDICT {
	d := &CEDICT{
		entries:    entries,
		byHeadword: make(map[string][]int, len(entries)),
	}
	for i, e := range entries {
		d.byHeadword[e.Traditional] = append(d.byHeadword[e.Traditional], i)
	}
	return d
}

// ParseCEDICT reads CC-CEDICT formatted lines:
//
//	傳統 传统 [chuan2 tong3] /tradition/traditional/
//
// Lines starting with '#' and blank lines are skipped.
func ParseCEDICT(r io.Reader) (*CEDICT, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := parseCEDICTLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewCEDICT(entries), nil
}

func parseCEDICTLine(line string) (Entry, error) {
	trad, rest, ok := strings.Cut(line, " ")
	if !ok {
		return Entry{}, ErrMalformedLine
	}
	simp, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return Entry{}, ErrMalformedLine
	}

	open := strings.IndexByte(rest, '[')
	closing := strings.IndexByte(rest, ']')
	if open != 0 || closing < open {
		return Entry{}, ErrMalformedLine
	}
	pinyin := rest[open+1 : closing]

	var glosses []string
	for _, g := range strings.Split(rest[closing+1:], "/") {
		if g = strings.TrimSpace(g); g != "" {
			glosses = append(glosses, g)
		}
	}

	return Entry{
		Traditional: trad,
		Simplified:  simp,
		Pinyin:      pinyin,
		Glosses:     glosses,
	}, nil
}

// Lookup implements Dictionary.
func (d *CEDICT) Lookup(headword string) []Entry {
	idx := d.byHeadword[headword]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = d.entries[j]
	}
	return out
}

// Containing implements Dictionary.
func (d *CEDICT) Containing(s string) []Entry {
	var out []Entry
	for _, e := range d.entries {
		if strings.Contains(e.Traditional, s) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries.
func (d *CEDICT) Len() int {
	return len(d.entries)
}
