package lexicon

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformedLine is returned when a data file contains a line that cannot
// be parsed. The wrapping error names the file line.
var ErrMalformedLine = errors.New("malformed lexicon line")

// Entry is one dictionary row.
type Entry struct {
	Traditional string
	Simplified  string
	Pinyin      string
	Glosses     []string
}

// Row returns the entry's fields in file order, with glosses joined the way
// CC-CEDICT writes them.
func (e Entry) Row() []string {
	return []string{e.Traditional, e.Simplified, e.Pinyin, "/" + strings.Join(e.Glosses, "/") + "/"}
}

// VocabEntry is one row of a leveled vocabulary list.
type VocabEntry struct {
	Level int
	Word  string
}

// Decomposition is one IDS row describing how a character is composed.
// Variants holds any alternative sequences listed after the first.
type Decomposition struct {
	Codepoint string
	Char      string
	IDS       string
	Variants  []string
}

// Row returns the character followed by every decomposition sequence.
func (d Decomposition) Row() []string {
	return append([]string{d.Char, d.IDS}, d.Variants...)
}

// Dictionary looks up dictionary rows.
type Dictionary interface {
	// Lookup returns every entry whose traditional headword equals headword,
	// in dictionary order.
	Lookup(headword string) []Entry

	// Containing returns every entry whose traditional headword contains s,
	// in dictionary order.
	Containing(s string) []Entry
}

// Vocabulary looks up leveled vocabulary rows.
type Vocabulary interface {
	// Containing returns every row whose word contains s, in list order.
	Containing(s string) []VocabEntry
}

// Decompositions looks up character decomposition rows.
type Decompositions interface {
	// For returns the decomposition rows of exactly char.
	For(char string) []Decomposition
}

// Tables bundles the lookup tables a session needs.
type Tables struct {
	Dictionary     Dictionary
	Vocabulary     Vocabulary
	Decompositions Decompositions
}

// Paths names the data files Load reads. Empty optional paths produce empty
// tables.
type Paths struct {
	CEDICT string
	HSK    string
	CHISE  string
}

// Load parses the data files named by paths. The CEDICT path is required.
func Load(paths Paths) (*Tables, error) {
	if paths.CEDICT == "" {
		return nil, fmt.Errorf("cedict path is required")
	}

	dict, err := loadFile(paths.CEDICT, ParseCEDICT)
	if err != nil {
		return nil, err
	}

	vocab := &HSK{}
	if paths.HSK != "" {
		if vocab, err = loadFile(paths.HSK, ParseHSK); err != nil {
			return nil, err
		}
	}

	ids := &IDS{}
	if paths.CHISE != "" {
		if ids, err = loadFile(paths.CHISE, ParseIDS); err != nil {
			return nil, err
		}
	}

	return &Tables{Dictionary: dict, Vocabulary: vocab, Decompositions: ids}, nil
}

func loadFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := parse(f)
	if err != nil {
		return zero, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return table, nil
}
