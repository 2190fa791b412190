package vectorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	v := Text("Water water, no supply!")

	assert.Equal(t, 2.0, v["water"])
	assert.Equal(t, 1.0, v["no"])
	assert.Equal(t, 1.0, v["supply"])
	assert.Len(t, v, 3)
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical text",
			a:    "pension not received for months",
			b:    "pension not received for months",
			want: 1.0,
		},
		{
			name: "disjoint text",
			a:    "water supply broken",
			b:    "pension delayed",
			want: 0.0,
		},
		{
			name: "case and punctuation ignored",
			a:    "Ration card lost",
			b:    "ration-card lost",
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(Text(tt.a), Text(tt.b))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosine_EmptyVectors(t *testing.T) {
	assert.Equal(t, 0.0, Cosine(Text(""), Text("anything")))
	assert.Equal(t, 0.0, Cosine(nil, nil))
}

func TestCosine_PartialOverlap(t *testing.T) {
	a := Text("pension stopped months ago")
	b := Text("pension stopped yesterday")

	got := Cosine(a, b)
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
}
