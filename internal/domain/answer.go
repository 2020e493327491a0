package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CheckAnswer reports whether the submitted pronunciations answer a card.
//
// Every submitted token must be canonical, and every canonical token must be
// either submitted or optional. Optional tokens only excuse the user from
// typing a canonical pronunciation; they never admit an extra one.
// Comparison ignores case, surrounding whitespace and Unicode composition.
func CheckAnswer(submitted, canonical, optional []string) bool {
	canon := tokenSet(canonical)
	given := tokenSet(submitted)
	excused := tokenSet(optional)

	for tok := range given {
		if _, ok := canon[tok]; !ok {
			return false
		}
	}
	for tok := range canon {
		_, typed := given[tok]
		_, opt := excused[tok]
		if !typed && !opt {
			return false
		}
	}
	return true
}

// NormalizeToken folds a pronunciation token into the form CheckAnswer
// compares.
func NormalizeToken(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[NormalizeToken(t)] = struct{}{}
	}
	return set
}
