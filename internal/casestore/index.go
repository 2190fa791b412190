package casestore

import (
	"sort"
	"sync"

	"github.com/dhruva-pgrs/triage/internal/vectorize"
)

// Score is one candidate's similarity to a query.
type Score struct {
	ID         string
	Similarity float64
}

// Index abstracts similarity search so a production deployment can swap in
// an approximate nearest-neighbor backend without touching the store's
// contract.
type Index interface {
	// Insert registers a case's text under its id.
	Insert(id, text string)
	// Query scores the query text against the given candidate ids,
	// sorted by similarity descending. limit <= 0 returns all.
	Query(text string, ids []string, limit int) []Score
}

// memoryIndex caches one feature vector per case at insert time, so a
// query vectorizes only the incoming text instead of re-vectorizing the
// whole history.
type memoryIndex struct {
	mu      sync.RWMutex
	vectors map[string]vectorize.Vector
}

// NewMemoryIndex returns an in-memory cosine similarity index.
func NewMemoryIndex() Index {
	return &memoryIndex{vectors: make(map[string]vectorize.Vector)}
}

func (idx *memoryIndex) Insert(id, text string) {
	v := vectorize.Text(text)
	idx.mu.Lock()
	idx.vectors[id] = v
	idx.mu.Unlock()
}

func (idx *memoryIndex) Query(text string, ids []string, limit int) []Score {
	query := vectorize.Text(text)

	idx.mu.RLock()
	scores := make([]Score, 0, len(ids))
	for _, id := range ids {
		if v, ok := idx.vectors[id]; ok {
			scores = append(scores, Score{ID: id, Similarity: vectorize.Cosine(query, v)})
		}
	}
	idx.mu.RUnlock()

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Similarity > scores[j].Similarity })
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}
