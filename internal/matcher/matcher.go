// Package matcher provides precomputed multi-pattern keyword matching for
// the triage stages. An Aho-Corasick automaton gives O(text length)
// scanning regardless of how many keywords are loaded, replacing a naive
// per-keyword substring scan.
package matcher

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/unicode/norm"
)

// Matcher matches a fixed keyword set against normalized text. Built once
// at load time; safe for concurrent use.
type Matcher struct {
	automaton *ahocorasick.Matcher
	// toSource maps automaton pattern index back to the caller's original
	// keyword index (empty keywords are dropped during the build).
	toSource []int
}

// New builds a matcher over the given keywords. Keywords are normalized
// the same way as input text, so matching is case- and punctuation-
// insensitive. Empty or whitespace-only keywords are skipped.
func New(keywords []string) *Matcher {
	patterns := make([]string, 0, len(keywords))
	toSource := make([]int, 0, len(keywords))
	for i, kw := range keywords {
		normalized := Normalize(kw)
		if normalized == "" {
			continue
		}
		patterns = append(patterns, normalized)
		toSource = append(toSource, i)
	}

	m := &Matcher{toSource: toSource}
	if len(patterns) > 0 {
		m.automaton = ahocorasick.NewStringMatcher(patterns)
	}
	return m
}

// Match scans text once and returns the indices (into the original keyword
// slice) of every keyword found. Each keyword is reported at most once.
func (m *Matcher) Match(text string) []int {
	if m.automaton == nil {
		return nil
	}
	hits := m.automaton.MatchThreadSafe([]byte(Normalize(text)))
	out := make([]int, 0, len(hits))
	for _, hit := range hits {
		if hit < len(m.toSource) {
			out = append(out, m.toSource[hit])
		}
	}
	return out
}

// KeywordCount returns the number of keywords loaded into the automaton.
func (m *Matcher) KeywordCount() int {
	return len(m.toSource)
}

// Normalize lowercases text, applies NFC so composed and decomposed forms
// of the same Telugu character compare equal, and replaces punctuation
// with spaces to preserve word boundaries. Combining marks are kept since
// Telugu vowel signs are marks, not letters.
func Normalize(text string) string {
	text = strings.ToLower(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.M, r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
