package casestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndex_QuerySortsDescending(t *testing.T) {
	idx := NewMemoryIndex()
	idx.Insert("a", "pension stopped three months ago")
	idx.Insert("b", "pension stopped")
	idx.Insert("c", "road full of potholes")

	scores := idx.Query("pension stopped", []string{"a", "b", "c"}, 0)

	require.Len(t, scores, 3)
	assert.Equal(t, "b", scores[0].ID)
	assert.InDelta(t, 1.0, scores[0].Similarity, 1e-9)
	assert.Equal(t, "a", scores[1].ID)
	assert.Equal(t, "c", scores[2].ID)
	assert.Equal(t, 0.0, scores[2].Similarity)
}

func TestMemoryIndex_LimitAndUnknownIDs(t *testing.T) {
	idx := NewMemoryIndex()
	idx.Insert("a", "one")
	idx.Insert("b", "two")

	scores := idx.Query("one", []string{"a", "b", "missing"}, 1)
	require.Len(t, scores, 1)
	assert.Equal(t, "a", scores[0].ID)
}
