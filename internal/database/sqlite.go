// Package database implements the durable persistence collaborator behind
// the case store.
package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS cases (
	id              TEXT PRIMARY KEY,
	text            TEXT NOT NULL,
	citizen_id      TEXT NOT NULL DEFAULT '',
	department      TEXT NOT NULL DEFAULT '',
	distress_level  TEXT NOT NULL DEFAULT 'NORMAL',
	status          TEXT NOT NULL DEFAULT 'OPEN',
	created_at      TIMESTAMP NOT NULL,
	resolution      TEXT NOT NULL DEFAULT '',
	resolution_days INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_cases_citizen ON cases(citizen_id);
CREATE INDEX IF NOT EXISTS idx_cases_status ON cases(status);
`

// Open connects to the sqlite database at path (":memory:" for tests) and
// ensures the schema exists.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}
