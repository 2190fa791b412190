// Package domain holds the core types shared across the triage pipeline.
package domain

import "time"

// Status is the lifecycle state of a case. The transition is one-way:
// OPEN -> RESOLVED, never back.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

// Case is a single grievance owned by the case store. Cases are never
// deleted; resolution attaches metadata instead.
type Case struct {
	ID             string        `db:"id"              json:"case_id"`
	Text           string        `db:"text"            json:"text"`
	CitizenID      string        `db:"citizen_id"      json:"citizen_id,omitempty"`
	Department     string        `db:"department"      json:"department,omitempty"`
	DistressLevel  DistressLevel `db:"distress_level"  json:"distress_level"`
	Status         Status        `db:"status"          json:"status"`
	CreatedAt      time.Time     `db:"created_at"      json:"created_at"`
	Resolution     string        `db:"resolution"      json:"resolution,omitempty"`
	ResolutionDays int           `db:"resolution_days" json:"resolution_time_days,omitempty"`
}
