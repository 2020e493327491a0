package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// IDS is an in-memory CHISE IDS decomposition table.
type IDS struct {
	rows   []Decomposition
	byChar map[string][]int
}

var _ Decompositions = (*IDS)(nil)

// NewIDS builds a decomposition table from already-parsed rows.
func NewIDS(rows []Decomposition) *IDS {
	t := &IDS{rows: rows, byChar: make(map[string][]int, len(rows))}
	for i, r := range rows {
		t.byChar[r.Char] = append(t.byChar[r.Char], i)
	}
	return t
}

// ParseIDS reads CHISE IDS rows of the form "U+4E00<TAB>一<TAB>一".
// Lines starting with ';' are comments.
func ParseIDS(r io.Reader) (*IDS, error) {
	var rows []Decomposition
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ";") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedLine)
		}
		d := Decomposition{
			Codepoint: fields[0],
			Char:      fields[1],
			IDS:       fields[2],
		}
		for _, v := range fields[3:] {
			if v = strings.TrimSpace(v); v != "" {
				d.Variants = append(d.Variants, v)
			}
		}
		rows = append(rows, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewIDS(rows), nil
}

// For implements Decompositions.
func (t *IDS) For(char string) []Decomposition {
	idx := t.byChar[char]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Decomposition, len(idx))
	for i, j := range idx {
		out[i] = t.rows[j]
	}
	return out
}
