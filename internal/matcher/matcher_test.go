package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases",
			in:   "Ration CARD",
			want: "ration card",
		},
		{
			name: "punctuation becomes space",
			in:   "no-response, ignored!",
			want: "no response  ignored ",
		},
		{
			name: "telugu text preserved",
			in:   "పెన్షన్ రాలేదు",
			want: "పెన్షన్ రాలేదు",
		},
		{
			name: "digits kept",
			in:   "ward 12",
			want: "ward 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestMatcher_Match(t *testing.T) {
	m := New([]string{"pension", "ration card", "నీటి"})

	tests := []struct {
		name string
		text string
		want []int
	}{
		{
			name: "single english keyword",
			text: "My pension has stopped",
			want: []int{0},
		},
		{
			name: "multi-word keyword across punctuation",
			text: "Lost my ration-card last week",
			want: []int{1},
		},
		{
			name: "telugu keyword",
			text: "మా గ్రామంలో నీటి సమస్య",
			want: []int{2},
		},
		{
			name: "case insensitive",
			text: "PENSION delayed",
			want: []int{0},
		},
		{
			name: "no match",
			text: "nothing relevant here",
			want: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.text)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestMatcher_SkipsEmptyKeywords(t *testing.T) {
	m := New([]string{"", "  ", "water", "!!!"})

	assert.Equal(t, 1, m.KeywordCount())

	// Index maps back to the original slice position.
	got := m.Match("water supply broken")
	assert.Equal(t, []int{2}, got)
}

func TestMatcher_EmptyKeywordSet(t *testing.T) {
	m := New(nil)
	assert.Nil(t, m.Match("anything"))
	assert.Equal(t, 0, m.KeywordCount())
}
