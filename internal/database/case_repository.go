package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dhruva-pgrs/triage/internal/domain"
)

// CaseRepository handles database operations for cases.
type CaseRepository struct {
	db *sqlx.DB
}

// NewCaseRepository creates a new case repository.
func NewCaseRepository(db *sqlx.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

type caseRow struct {
	ID             string    `db:"id"`
	Text           string    `db:"text"`
	CitizenID      string    `db:"citizen_id"`
	Department     string    `db:"department"`
	DistressLevel  string    `db:"distress_level"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	Resolution     string    `db:"resolution"`
	ResolutionDays int       `db:"resolution_days"`
}

// Insert stores a new case.
func (r *CaseRepository) Insert(ctx context.Context, c *domain.Case) error {
	const query = `
		INSERT INTO cases (id, text, citizen_id, department, distress_level, status, created_at, resolution, resolution_days)
		VALUES (:id, :text, :citizen_id, :department, :distress_level, :status, :created_at, :resolution, :resolution_days)
	`
	row := caseRow{
		ID:             c.ID,
		Text:           c.Text,
		CitizenID:      c.CitizenID,
		Department:     c.Department,
		DistressLevel:  c.DistressLevel.String(),
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		Resolution:     c.Resolution,
		ResolutionDays: c.ResolutionDays,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("insert case %s: %w", c.ID, err)
	}
	return nil
}

// MarkResolved applies the one-way OPEN -> RESOLVED transition.
func (r *CaseRepository) MarkResolved(ctx context.Context, id, resolution string, resolutionDays int) error {
	const query = `
		UPDATE cases
		SET status = ?, resolution = ?, resolution_days = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, string(domain.StatusResolved), resolution, resolutionDays, id)
	if err != nil {
		return fmt.Errorf("mark case %s resolved: %w", id, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("mark case %s resolved: no such case", id)
	}
	return nil
}

// LoadAll returns every stored case in insertion order.
func (r *CaseRepository) LoadAll(ctx context.Context) ([]domain.Case, error) {
	const query = `
		SELECT id, text, citizen_id, department, distress_level, status, created_at, resolution, resolution_days
		FROM cases ORDER BY created_at, id
	`
	var rows []caseRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("load cases: %w", err)
	}

	cases := make([]domain.Case, 0, len(rows))
	for _, row := range rows {
		level, err := domain.ParseDistressLevel(row.DistressLevel)
		if err != nil {
			level = domain.DistressNormal
		}
		cases = append(cases, domain.Case{
			ID:             row.ID,
			Text:           row.Text,
			CitizenID:      row.CitizenID,
			Department:     row.Department,
			DistressLevel:  level,
			Status:         domain.Status(row.Status),
			CreatedAt:      row.CreatedAt,
			Resolution:     row.Resolution,
			ResolutionDays: row.ResolutionDays,
		})
	}
	return cases, nil
}
