// Package vectorize maps text into the term-frequency feature space shared
// by the duplicate check and the similar-case search, and compares vectors
// with cosine similarity.
package vectorize

import (
	"math"
	"strings"

	"github.com/dhruva-pgrs/triage/internal/matcher"
)

// Vector is a sparse term-frequency vector keyed by token.
type Vector map[string]float64

// Text builds a term-frequency vector from raw grievance text. Tokens come
// from the same normalization the keyword matcher uses, so both similarity
// and keyword matching observe the same view of the text.
func Text(text string) Vector {
	tokens := strings.Fields(matcher.Normalize(text))
	v := make(Vector, len(tokens))
	for _, tok := range tokens {
		v[tok]++
	}
	return v
}

// Cosine returns the cosine similarity of two vectors in [0,1]. Empty
// vectors have zero similarity to everything.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// Iterate the smaller vector for the dot product.
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for tok, wa := range a {
		if wb, ok := b[tok]; ok {
			dot += wa * wb
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (magnitude(a) * magnitude(b))
}

func magnitude(v Vector) float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}
