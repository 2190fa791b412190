package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruva-pgrs/triage/internal/domain"
)

func newRepo(t *testing.T) *CaseRepository {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCaseRepository(db)
}

func TestCaseRepository_RoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	c := &domain.Case{
		ID:            "PGRS-test-1",
		Text:          "pension stopped for months",
		CitizenID:     "CIT-1",
		Department:    "Social Welfare",
		DistressLevel: domain.DistressHigh,
		Status:        domain.StatusOpen,
		CreatedAt:     created,
	}
	require.NoError(t, repo.Insert(ctx, c))

	cases, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	got := cases[0]
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.Text, got.Text)
	assert.Equal(t, c.CitizenID, got.CitizenID)
	assert.Equal(t, c.Department, got.Department)
	assert.Equal(t, domain.DistressHigh, got.DistressLevel)
	assert.Equal(t, domain.StatusOpen, got.Status)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestCaseRepository_MarkResolved(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.Case{
		ID:        "PGRS-test-2",
		Text:      "borewell failed",
		Status:    domain.StatusOpen,
		CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, repo.MarkResolved(ctx, "PGRS-test-2", "Repaired", 5))

	cases, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, domain.StatusResolved, cases[0].Status)
	assert.Equal(t, "Repaired", cases[0].Resolution)
	assert.Equal(t, 5, cases[0].ResolutionDays)
}

func TestCaseRepository_MarkResolvedUnknownID(t *testing.T) {
	repo := newRepo(t)

	err := repo.MarkResolved(context.Background(), "PGRS-missing", "n/a", 0)
	assert.Error(t, err)
}

func TestCaseRepository_LoadAllOrdering(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"PGRS-c", "PGRS-a", "PGRS-b"} {
		require.NoError(t, repo.Insert(ctx, &domain.Case{
			ID:        id,
			Text:      "t",
			Status:    domain.StatusOpen,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	cases, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 3)
	assert.Equal(t, "PGRS-c", cases[0].ID)
	assert.Equal(t, "PGRS-a", cases[1].ID)
	assert.Equal(t, "PGRS-b", cases[2].ID)
}
