// Package triage implements the decision-fusion pipeline: department
// classification, distress analysis, risk scoring and the orchestrator
// that sequences them.
package triage

import (
	"context"

	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/knowledge"
	"github.com/dhruva-pgrs/triage/internal/logging"
	"github.com/dhruva-pgrs/triage/internal/matcher"
	"github.com/dhruva-pgrs/triage/internal/mlclient"
)

// Classification fusion thresholds. A keyword match at or above the high
// threshold short-circuits model inference entirely; a final confidence
// below the low threshold flags the case for manual review.
const (
	highConfidenceThreshold = 0.75
	lowConfidenceThreshold  = 0.40

	// Trained on a narrow synthetic distribution; raw probabilities
	// over-promise, so they are de-rated before fusion.
	classificationCalibration = 0.85

	maxCandidates = 3
)

// ModelClient is the contract with the model-serving collaborator. A nil
// client or a failing call degrades the stage to keyword-only operation.
type ModelClient interface {
	Predict(ctx context.Context, model, text string) (*mlclient.PredictResponse, error)
}

// DepartmentClassifier routes grievance text to a handling department by
// fusing a curated keyword table with the primary and fallback
// classifiers.
type DepartmentClassifier struct {
	keywords *matcher.Matcher
	entries  []knowledge.DepartmentKeyword
	ml       ModelClient
	logger   logging.Logger
}

// NewDepartmentClassifier builds the keyword automaton once from the
// knowledge base. ml may be nil for keyword-only operation.
func NewDepartmentClassifier(kb *knowledge.Base, ml ModelClient, logger logging.Logger) *DepartmentClassifier {
	patterns := make([]string, len(kb.DepartmentKeywords))
	for i, e := range kb.DepartmentKeywords {
		patterns[i] = e.Keyword
	}
	return &DepartmentClassifier{
		keywords: matcher.New(patterns),
		entries:  kb.DepartmentKeywords,
		ml:       ml,
		logger:   logger,
	}
}

// Classify routes text to a department. Pure function of text and loaded
// configuration; never returns an error — model failures degrade to
// keyword-only results and an empty department with the manual-review flag
// when nothing matched.
func (c *DepartmentClassifier) Classify(ctx context.Context, text string) domain.ClassificationResult {
	result := domain.ClassificationResult{Candidates: []domain.Candidate{}}

	keyword := c.bestKeyword(text)

	// A high-confidence keyword match skips model inference entirely.
	if keyword != nil && keyword.Confidence >= highConfidenceThreshold {
		result.Department = keyword.Department
		result.Confidence = keyword.Confidence
		result.Method = domain.MethodKeywordBoost
		result.Candidates = []domain.Candidate{{Department: keyword.Department, Confidence: keyword.Confidence}}
		c.logger.Debug("keyword boost short-circuit",
			logging.String("department", keyword.Department),
			logging.Float64("confidence", keyword.Confidence))
		return result
	}

	resp := c.predict(ctx, mlclient.ModelDepartment, text)
	if resp == nil {
		// Degraded mode: keyword-only.
		if keyword != nil {
			result.Department = keyword.Department
			result.Confidence = keyword.Confidence
			result.Method = domain.MethodKeywordBoost
			result.Candidates = []domain.Candidate{{Department: keyword.Department, Confidence: keyword.Confidence}}
		}
		result.NeedsManualReview = result.Confidence < lowConfidenceThreshold
		return result
	}

	label, raw, ok := resp.Best()
	if !ok {
		if keyword != nil {
			result.Department = keyword.Department
			result.Confidence = keyword.Confidence
			result.Method = domain.MethodKeywordBoost
			result.Candidates = []domain.Candidate{{Department: keyword.Department, Confidence: keyword.Confidence}}
		}
		result.NeedsManualReview = result.Confidence < lowConfidenceThreshold
		return result
	}

	result.Department = label
	result.Confidence = clamp01(raw * classificationCalibration)
	result.Method = domain.MethodPrimaryClassifier
	for _, pair := range resp.Top(maxCandidates) {
		result.Candidates = append(result.Candidates, domain.Candidate{
			Department: pair.Label,
			Confidence: clamp01(pair.Prob * classificationCalibration),
		})
	}

	switch {
	case result.Confidence < lowConfidenceThreshold:
		if keyword != nil && keyword.Confidence > result.Confidence {
			c.applyKeyword(&result, keyword)
		} else if fb := c.predict(ctx, mlclient.ModelDepartmentFallback, text); fb != nil {
			if fbLabel, fbProb, fbOK := fb.Best(); fbOK && fbProb > result.Confidence {
				result.Department = fbLabel
				result.Confidence = clamp01(fbProb)
				result.Method = domain.MethodFallbackClassifier
			}
		}
	case result.Confidence < highConfidenceThreshold:
		// Keyword wins ties in the medium band.
		if keyword != nil && keyword.Confidence >= result.Confidence {
			c.applyKeyword(&result, keyword)
		}
	}

	if result.Confidence < lowConfidenceThreshold {
		result.NeedsManualReview = true
	}
	return result
}

// bestKeyword returns the matched table entry with the highest stated
// confidence, ties broken toward the longer keyword. The returned
// confidence is always the table value.
func (c *DepartmentClassifier) bestKeyword(text string) *knowledge.DepartmentKeyword {
	var best *knowledge.DepartmentKeyword
	for _, idx := range c.keywords.Match(text) {
		entry := &c.entries[idx]
		if best == nil ||
			entry.Confidence > best.Confidence ||
			(entry.Confidence == best.Confidence && len(entry.Keyword) > len(best.Keyword)) {
			best = entry
		}
	}
	return best
}

func (c *DepartmentClassifier) applyKeyword(result *domain.ClassificationResult, kw *knowledge.DepartmentKeyword) {
	result.Department = kw.Department
	result.Confidence = kw.Confidence
	result.Method = domain.MethodKeywordBoost
	candidates := append([]domain.Candidate{{Department: kw.Department, Confidence: kw.Confidence}}, result.Candidates...)
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	result.Candidates = candidates
}

// predict calls the sidecar and converts any failure into nil so callers
// fall back to keywords.
func (c *DepartmentClassifier) predict(ctx context.Context, model, text string) *mlclient.PredictResponse {
	if c.ml == nil {
		return nil
	}
	resp, err := c.ml.Predict(ctx, model, text)
	if err != nil {
		c.logger.Warn("model inference failed, using keywords only",
			logging.String("model", model),
			logging.Err(err))
		return nil
	}
	return resp
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
