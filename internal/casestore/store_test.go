package casestore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/logging"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(NewMemoryIndex(), nil, logging.Nop())
}

func appendCase(t *testing.T, s *Store, text, citizenID, department string) string {
	t.Helper()
	id, err := s.Append(context.Background(), &domain.Case{
		Text:       text,
		CitizenID:  citizenID,
		Department: department,
	})
	require.NoError(t, err)
	return id
}

func TestAppend_AssignsIDAndOpens(t *testing.T) {
	s := newStore(t)

	id := appendCase(t, s, "pension not received", "CIT-1", "Social Welfare")

	assert.Contains(t, id, "PGRS-")
	c, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, domain.StatusOpen, c.Status)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, 1, s.Len())
}

func TestCheckDuplicate(t *testing.T) {
	s := newStore(t)
	existing := appendCase(t, s, "water supply stopped in our street", "CIT-1", "")

	tests := []struct {
		name      string
		text      string
		citizenID string
		wantDup   bool
	}{
		{
			name:      "identical text same citizen",
			text:      "water supply stopped in our street",
			citizenID: "CIT-1",
			wantDup:   true,
		},
		{
			name:      "identical text different citizen",
			text:      "water supply stopped in our street",
			citizenID: "CIT-2",
			wantDup:   false,
		},
		{
			name:      "unrelated text same citizen",
			text:      "school has no teacher",
			citizenID: "CIT-1",
			wantDup:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.CheckDuplicate(context.Background(), tt.text, tt.citizenID)
			assert.Equal(t, tt.wantDup, result.IsDuplicate)
			if tt.wantDup {
				assert.Equal(t, existing, result.ExistingCaseID)
			}
		})
	}
}

func TestCheckDuplicate_ReportsBestSimilarityBelowThreshold(t *testing.T) {
	s := newStore(t)
	appendCase(t, s, "pension stopped three months ago", "CIT-1", "")

	result := s.CheckDuplicate(context.Background(), "pension stopped recently", "CIT-1")

	assert.False(t, result.IsDuplicate)
	assert.Greater(t, result.Similarity, 0.0)
}

func TestFindSimilar_ResolvedOnly(t *testing.T) {
	s := newStore(t)
	text := "drainage blocked on main road"

	open := appendCase(t, s, text, "CIT-1", "Municipal Administration")
	resolved := appendCase(t, s, text, "CIT-2", "Municipal Administration")
	require.NoError(t, s.Resolve(context.Background(), resolved, "Cleared", 3))

	similar := s.FindSimilar(context.Background(), text, "Municipal Administration", 0)

	require.Len(t, similar, 1)
	assert.Equal(t, resolved, similar[0].CaseID)
	assert.NotEqual(t, open, similar[0].CaseID)
	assert.Equal(t, "Cleared", similar[0].Resolution)
	assert.Equal(t, 3, similar[0].ResolutionDays)
}

func TestFindSimilar_DepartmentFilter(t *testing.T) {
	s := newStore(t)
	text := "no action on my complaint"

	id := appendCase(t, s, text, "CIT-1", "Revenue")
	require.NoError(t, s.Resolve(context.Background(), id, "Settled", 2))

	assert.Empty(t, s.FindSimilar(context.Background(), text, "Police", 0))
	assert.Len(t, s.FindSimilar(context.Background(), text, "Revenue", 0), 1)
	assert.Len(t, s.FindSimilar(context.Background(), text, "", 0), 1)
}

func TestFindSimilar_LimitHolds(t *testing.T) {
	s := newStore(t)
	text := "ration shop closed again"

	for i := 0; i < 5; i++ {
		id := appendCase(t, s, text, fmt.Sprintf("CIT-%d", i), "Civil Supplies")
		require.NoError(t, s.Resolve(context.Background(), id, "Reopened", 1))
	}

	similar := s.FindSimilar(context.Background(), text, "", 0)
	assert.Len(t, similar, DefaultSimilarLimit)
}

func TestResolve_UnknownID(t *testing.T) {
	s := newStore(t)

	err := s.Resolve(context.Background(), "PGRS-missing", "n/a", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_OneWayTransition(t *testing.T) {
	s := newStore(t)
	id := appendCase(t, s, "borewell failed", "CIT-1", "")

	require.NoError(t, s.Resolve(context.Background(), id, "Repaired", 5))
	// Resolving again only updates metadata, never reopens.
	require.NoError(t, s.Resolve(context.Background(), id, "Verified repair", 6))

	c, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, domain.StatusResolved, c.Status)
	assert.Equal(t, "Verified repair", c.Resolution)
	assert.Equal(t, 6, c.ResolutionDays)
}

func TestOpenQueue_Ordering(t *testing.T) {
	s := newStore(t)
	base := time.Now()

	mk := func(text string, level domain.DistressLevel, age time.Duration) string {
		id, err := s.Append(context.Background(), &domain.Case{
			Text:          text,
			DistressLevel: level,
			CreatedAt:     base.Add(-age),
		})
		require.NoError(t, err)
		return id
	}

	oldNormal := mk("normal old", domain.DistressNormal, 48*time.Hour)
	newCritical := mk("critical new", domain.DistressCritical, time.Hour)
	oldCritical := mk("critical old", domain.DistressCritical, 24*time.Hour)

	queue := s.OpenQueue("")
	require.Len(t, queue, 3)
	assert.Equal(t, oldCritical, queue[0].ID)
	assert.Equal(t, newCritical, queue[1].ID)
	assert.Equal(t, oldNormal, queue[2].ID)
}

func TestOpenQueue_ExcludesResolved(t *testing.T) {
	s := newStore(t)
	open := appendCase(t, s, "a", "", "")
	done := appendCase(t, s, "b", "", "")
	require.NoError(t, s.Resolve(context.Background(), done, "ok", 1))

	queue := s.OpenQueue("")
	require.Len(t, queue, 1)
	assert.Equal(t, open, queue[0].ID)
}

func TestAppend_Concurrent(t *testing.T) {
	s := newStore(t)

	const n = 50
	var wg sync.WaitGroup
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], _ = s.Append(context.Background(), &domain.Case{
				Text:      fmt.Sprintf("grievance %d", i),
				CitizenID: fmt.Sprintf("CIT-%d", i),
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, s.Len())
	seen := make(map[string]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
