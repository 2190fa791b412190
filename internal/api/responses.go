package api

import "github.com/dhruva-pgrs/triage/internal/domain"

// ProcessRequest is one grievance submission.
type ProcessRequest struct {
	Text      string `json:"text" binding:"required"`
	CitizenID string `json:"citizen_id"`
	Location  string `json:"location"`
}

// TextRequest carries text for the single-stage endpoints.
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// RiskRequest carries text with an optional department for risk scoring.
type RiskRequest struct {
	Text       string `json:"text" binding:"required"`
	Department string `json:"department"`
}

// ResolveRequest attaches resolution metadata to a case.
type ResolveRequest struct {
	Resolution     string `json:"resolution" binding:"required"`
	ResolutionDays int    `json:"resolution_time_days"`
}

// BatchRequest submits multiple grievances through the intake pool.
type BatchRequest struct {
	Grievances []ProcessRequest `json:"grievances" binding:"required,min=1,max=100"`
}

// BatchResponse reports how many submissions the intake pool accepted.
type BatchResponse struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// QueueResponse lists open cases ordered by urgency.
type QueueResponse struct {
	Cases []domain.Case `json:"cases"`
	Total int           `json:"total"`
}

// ResolveResponse acknowledges a resolution request.
type ResolveResponse struct {
	CaseID string `json:"case_id"`
}

// ErrorResponse is the common error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
