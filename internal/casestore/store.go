// Package casestore holds the append-only log of processed cases and the
// similarity engine backing duplicate detection, similar-case search and
// the officer queue.
package casestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/logging"
)

// Similarity thresholds: above the duplicate threshold two cases from the
// same citizen are one case; above the similar threshold a resolved case
// is worth showing to an officer.
const (
	DuplicateThreshold = 0.85
	SimilarThreshold   = 0.70

	// DefaultSimilarLimit caps similar-case results per query.
	DefaultSimilarLimit = 3

	caseIDPrefix = "PGRS"
)

// ErrNotFound indicates the case id is unknown to the store.
var ErrNotFound = errors.New("case not found")

// Repository is the durable persistence collaborator the store writes
// through to. May be nil for purely in-memory operation.
type Repository interface {
	Insert(ctx context.Context, c *domain.Case) error
	MarkResolved(ctx context.Context, id, resolution string, resolutionDays int) error
	LoadAll(ctx context.Context) ([]domain.Case, error)
}

// Store is the mutable case log. A single lock serializes appends and
// resolution against concurrent reads; at platform volumes this is cheaper
// than per-citizen bucketing and gives reads a consistent snapshot.
type Store struct {
	mu        sync.RWMutex
	cases     map[string]*domain.Case
	order     []string
	byCitizen map[string][]string

	index  Index
	repo   Repository
	logger logging.Logger
}

// New creates a case store over the given similarity index. repo may be
// nil.
func New(index Index, repo Repository, logger logging.Logger) *Store {
	return &Store{
		cases:     make(map[string]*domain.Case),
		byCitizen: make(map[string][]string),
		index:     index,
		repo:      repo,
		logger:    logger,
	}
}

// Load hydrates the store from the repository at startup.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	cases, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load cases: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range cases {
		c := cases[i]
		s.cases[c.ID] = &c
		s.order = append(s.order, c.ID)
		if c.CitizenID != "" {
			s.byCitizen[c.CitizenID] = append(s.byCitizen[c.CitizenID], c.ID)
		}
		s.index.Insert(c.ID, c.Text)
	}
	s.logger.Info("case store hydrated", logging.Int("cases", len(cases)))
	return nil
}

// Append inserts a new OPEN case and returns its identifier. The id is
// assigned here (random UUID, collision-free under concurrent
// submissions). The case is visible to queries as soon as Append returns.
func (s *Store) Append(ctx context.Context, c *domain.Case) (string, error) {
	if c.ID == "" {
		c.ID = fmt.Sprintf("%s-%s", caseIDPrefix, uuid.NewString())
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.Status = domain.StatusOpen

	s.mu.Lock()
	s.cases[c.ID] = c
	s.order = append(s.order, c.ID)
	if c.CitizenID != "" {
		s.byCitizen[c.CitizenID] = append(s.byCitizen[c.CitizenID], c.ID)
	}
	s.index.Insert(c.ID, c.Text)
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Insert(ctx, c); err != nil {
			// The in-memory log stays authoritative for this process.
			s.logger.Error("persist case failed", logging.String("case_id", c.ID), logging.Err(err))
		}
	}
	return c.ID, nil
}

// CheckDuplicate compares text against the same citizen's prior cases
// (both OPEN and RESOLVED). The best observed similarity is reported even
// when below the duplicate threshold.
func (s *Store) CheckDuplicate(_ context.Context, text, citizenID string) domain.DuplicateResult {
	result := domain.DuplicateResult{}

	s.mu.RLock()
	ids := append([]string(nil), s.byCitizen[citizenID]...)
	s.mu.RUnlock()

	if len(ids) == 0 {
		return result
	}

	scores := s.index.Query(text, ids, 0)
	if len(scores) == 0 {
		return result
	}

	best := scores[0]
	result.Similarity = best.Similarity
	if best.Similarity > DuplicateThreshold {
		result.IsDuplicate = true
		result.ExistingCaseID = best.ID
	}
	return result
}

// FindSimilar returns up to limit RESOLVED cases above the similarity
// threshold, optionally filtered by department, sorted descending.
func (s *Store) FindSimilar(_ context.Context, text, department string, limit int) []domain.SimilarCase {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	s.mu.RLock()
	var ids []string
	for _, id := range s.order {
		c := s.cases[id]
		if c.Status != domain.StatusResolved {
			continue
		}
		if department != "" && c.Department != department {
			continue
		}
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	similar := make([]domain.SimilarCase, 0, limit)
	for _, score := range s.index.Query(text, ids, 0) {
		if score.Similarity <= SimilarThreshold {
			break
		}
		s.mu.RLock()
		c := s.cases[score.ID]
		s.mu.RUnlock()
		similar = append(similar, domain.SimilarCase{
			CaseID:         c.ID,
			Similarity:     score.Similarity,
			Resolution:     c.Resolution,
			ResolutionDays: c.ResolutionDays,
		})
		if len(similar) == limit {
			break
		}
	}
	return similar
}

// Resolve transitions a case OPEN -> RESOLVED, attaching resolution
// metadata. The transition is one-way: resolving an already-resolved case
// only updates the metadata, never reopens it. Unknown ids return
// ErrNotFound so the caller can log-and-ignore.
func (s *Store) Resolve(ctx context.Context, id, resolution string, resolutionDays int) error {
	s.mu.Lock()
	c, ok := s.cases[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.Status = domain.StatusResolved
	c.Resolution = resolution
	c.ResolutionDays = resolutionDays
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.MarkResolved(ctx, id, resolution, resolutionDays); err != nil {
			s.logger.Error("persist resolution failed", logging.String("case_id", id), logging.Err(err))
		}
	}
	return nil
}

// Get returns a copy of the case with the given id.
func (s *Store) Get(id string) (domain.Case, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return domain.Case{}, false
	}
	return *c, true
}

// OpenQueue returns OPEN cases sorted by distress level (most urgent
// first), then oldest first, optionally filtered by department.
func (s *Store) OpenQueue(department string) []domain.Case {
	s.mu.RLock()
	var queue []domain.Case
	for _, id := range s.order {
		c := s.cases[id]
		if c.Status != domain.StatusOpen {
			continue
		}
		if department != "" && c.Department != department {
			continue
		}
		queue = append(queue, *c)
	}
	s.mu.RUnlock()

	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].DistressLevel != queue[j].DistressLevel {
			return queue[i].DistressLevel > queue[j].DistressLevel
		}
		return queue[i].CreatedAt.Before(queue[j].CreatedAt)
	})
	return queue
}

// Len returns the number of cases in the log.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cases)
}
