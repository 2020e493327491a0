package domain

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

func TestCheckAnswer(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		submitted []string
		canonical []string
		optional  []string
		expected  bool
	}{
		{
			name:      "exact match",
			submitted: []string{"xing2", "hang2"},
			canonical: []string{"hang2", "xing2"},
			expected:  true,
		},
		{
			name:      "missing canonical token",
			submitted: []string{"xing2"},
			canonical: []string{"hang2", "xing2"},
			expected:  false,
		},
		{
			name:      "missing token excused by optional",
			submitted: []string{"xing2"},
			canonical: []string{"hang2", "xing2"},
			optional:  []string{"hang2"},
			expected:  true,
		},
		{
			name:      "extra token is never excused",
			submitted: []string{"xing2", "hang2", "heng2"},
			canonical: []string{"hang2", "xing2"},
			optional:  []string{"heng2"},
			expected:  false,
		},
		{
			name:      "optional token may still be typed",
			submitted: []string{"xing2", "hang2"},
			canonical: []string{"hang2", "xing2"},
			optional:  []string{"hang2"},
			expected:  true,
		},
		{
			name:      "empty submission with everything optional",
			submitted: nil,
			canonical: []string{"yi1"},
			optional:  []string{"yi1"},
			expected:  true,
		},
		{
			name:      "whitespace is ignored",
			submitted: []string{" yi1 "},
			canonical: []string{"yi1"},
			expected:  true,
		},
		{
			name:      "duplicates in submission",
			submitted: []string{"yi1", "yi1"},
			canonical: []string{"yi1"},
			expected:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CheckAnswer(tc.submitted, tc.canonical, tc.optional))
		})
	}
}

func TestCheckAnswerIgnoresCase(t *testing.T) {
	t.Parallel()

	assert.True(t, CheckAnswer([]string{"a"}, []string{"A"}, nil))
	assert.True(t, CheckAnswer([]string{"A"}, []string{"a"}, nil))
	assert.True(t, CheckAnswer(nil, []string{"Xing2"}, []string{"xing2"}))
	assert.True(t, CheckAnswer([]string{"LÜ4"}, []string{"lü4"}, nil))
}

// tokenUniverse keeps generated sets small so they overlap often.
var tokenUniverse = []string{"yi1", "er4", "san1", "xing2", "hang2", "Hang2", "heng2"}

type tokenSample []string

func (tokenSample) Generate(r *rand.Rand, _ int) reflect.Value {
	n := r.Intn(len(tokenUniverse) + 1)
	out := make(tokenSample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, tokenUniverse[r.Intn(len(tokenUniverse))])
	}
	return reflect.ValueOf(out)
}

func subset(a, b []string) bool {
	set := tokenSet(b)
	for k := range tokenSet(a) {
		if _, ok := set[k]; !ok {
			return false
		}
	}
	return true
}

func TestCheckAnswerProperty(t *testing.T) {
	t.Parallel()

	property := func(submitted, canonical, optional tokenSample) bool {
		want := subset(submitted, canonical) &&
			subset(canonical, append(append([]string{}, submitted...), optional...))
		return CheckAnswer(submitted, canonical, optional) == want
	}
	if err := quick.Check(property, &quick.Config{MaxCount: 2000}); err != nil {
		t.Error(err)
	}
}

func TestCheckAnswerOptionalOnlyRelaxes(t *testing.T) {
	t.Parallel()

	property := func(submitted, canonical, optional tokenSample, extra uint8) bool {
		if !CheckAnswer(submitted, canonical, optional) {
			return true
		}
		x := tokenUniverse[int(extra)%len(tokenUniverse)]
		return CheckAnswer(submitted, canonical, append(append([]string{}, optional...), x))
	}
	if err := quick.Check(property, &quick.Config{MaxCount: 2000}); err != nil {
		t.Error(err)
	}
}
