package domain

import "time"

// Classification method tags.
const (
	MethodKeywordBoost       = "keyword_boost"
	MethodPrimaryClassifier  = "primary_classifier"
	MethodFallbackClassifier = "fallback_classifier"
)

// Candidate is one ranked (department, confidence) pair.
type Candidate struct {
	Department string  `json:"department"`
	Confidence float64 `json:"confidence"`
}

// ClassificationResult is the output of the department routing stage.
// Department is empty when no method produced a usable label.
type ClassificationResult struct {
	Department        string      `json:"department,omitempty"`
	Confidence        float64     `json:"confidence"`
	Method            string      `json:"method,omitempty"`
	Candidates        []Candidate `json:"candidates"`
	NeedsManualReview bool        `json:"needs_manual_review"`
}

// RiskLevel is the discrete band derived from the risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Lapse is one predicted mishandling category with the keyword that
// triggered it. Every reported risk stays traceable to its trigger.
type Lapse struct {
	Lapse       string  `json:"lapse"`
	Probability float64 `json:"probability"`
	Trigger     string  `json:"trigger"`
}

// RiskResult is the output of the risk scoring stage.
type RiskResult struct {
	Score  float64   `json:"risk_score"`
	Level  RiskLevel `json:"risk_level"`
	Lapses []Lapse   `json:"likely_lapses"`
}

// DuplicateResult reports whether a grievance duplicates one of the same
// citizen's prior cases. Similarity carries the best observed value even
// when below the duplicate threshold.
type DuplicateResult struct {
	IsDuplicate    bool    `json:"is_duplicate"`
	ExistingCaseID string  `json:"existing_case_id,omitempty"`
	Similarity     float64 `json:"similarity"`
}

// SimilarCase is one resolved case surfaced for officer guidance.
type SimilarCase struct {
	CaseID         string  `json:"case_id"`
	Similarity     float64 `json:"similarity"`
	Resolution     string  `json:"resolution"`
	ResolutionDays int     `json:"resolution_time_days"`
}

// AlertTypeAreaPattern flags a recurring complaint pattern at a location.
const AlertTypeAreaPattern = "AREA_PATTERN"

// Alert is a proactive pattern detection result.
type Alert struct {
	Type           string `json:"type"`
	Location       string `json:"location"`
	Department     string `json:"department"`
	Count          int    `json:"count"`
	WindowDays     int    `json:"window_days"`
	Recommendation string `json:"recommendation"`
}

// Recommended action kinds.
const (
	ActionMergeWithExisting    = "MERGE_WITH_EXISTING"
	ActionImmediateAttention   = "IMMEDIATE_ATTENTION"
	ActionManualClassification = "MANUAL_CLASSIFICATION"
	ActionSupervisorReview     = "SUPERVISOR_REVIEW"
	ActionReviewSimilarCases   = "REVIEW_SIMILAR_CASES"
)

// Action priorities.
const (
	PriorityUrgent = "URGENT"
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// RecommendedAction is one follow-up the pipeline suggests to the handling
// officer.
type RecommendedAction struct {
	Action   string   `json:"action"`
	Priority string   `json:"priority"`
	Reason   string   `json:"reason"`
	CaseIDs  []string `json:"case_ids,omitempty"`
}

// SLA is the response deadline derived from the distress level.
type SLA struct {
	Hours    int           `json:"hours"`
	Deadline time.Time     `json:"deadline"`
	Priority DistressLevel `json:"priority"`
}

// Acknowledgment is the localized citizen-facing receipt message selected
// by the template collaborator.
type Acknowledgment struct {
	Category string `json:"category"`
	Telugu   string `json:"telugu"`
	English  string `json:"english"`
}

// Input echoes the raw submission back in the aggregate result.
type Input struct {
	Text      string `json:"text"`
	CitizenID string `json:"citizen_id,omitempty"`
	Location  string `json:"location,omitempty"`
}

// AggregateResult bundles every stage's sub-result for one processed
// grievance.
type AggregateResult struct {
	CaseID             string               `json:"case_id"`
	ProcessedAt        time.Time            `json:"timestamp"`
	Input              Input                `json:"input"`
	Duplicate          *DuplicateResult     `json:"duplicate_check,omitempty"`
	Classification     ClassificationResult `json:"classification"`
	Distress           DistressResult       `json:"distress"`
	SLA                SLA                  `json:"sla"`
	Risk               RiskResult           `json:"risk"`
	SimilarCases       []SimilarCase        `json:"similar_cases"`
	Alerts             []Alert              `json:"proactive_alerts"`
	Acknowledgment     *Acknowledgment      `json:"response_template,omitempty"`
	RecommendedActions []RecommendedAction  `json:"recommended_actions"`
}
