package triage

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/dhruva-pgrs/triage/internal/casestore"
	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/knowledge"
	"github.com/dhruva-pgrs/triage/internal/logging"
	"github.com/dhruva-pgrs/triage/internal/pattern"
	"github.com/dhruva-pgrs/triage/internal/telemetry"
)

// defaultCallTimeout bounds one full process call; a slow model fails open
// into keyword-only results instead of stalling the pipeline.
const defaultCallTimeout = 10 * time.Second

// Input is one grievance submission.
type Input struct {
	Text      string
	CitizenID string
	Location  string
}

// Pipeline sequences the triage stages over the shared case store. One
// Pipeline is constructed at service start and shared across requests; it
// has no global state of its own.
type Pipeline struct {
	classifier *DepartmentClassifier
	distress   *DistressAnalyzer
	risk       *RiskScorer
	store      *casestore.Store
	detector   *pattern.Detector
	kb         *knowledge.Base
	telemetry  *telemetry.Provider
	logger     logging.Logger

	callTimeout time.Duration
	now         func() time.Time
}

// NewPipeline wires the stages together. tp may be nil to disable metrics.
func NewPipeline(
	kb *knowledge.Base,
	ml ModelClient,
	store *casestore.Store,
	detector *pattern.Detector,
	tp *telemetry.Provider,
	logger logging.Logger,
) *Pipeline {
	return &Pipeline{
		classifier:  NewDepartmentClassifier(kb, ml, logger),
		distress:    NewDistressAnalyzer(kb, ml, logger),
		risk:        NewRiskScorer(kb, logger),
		store:       store,
		detector:    detector,
		kb:          kb,
		telemetry:   tp,
		logger:      logger,
		callTimeout: defaultCallTimeout,
		now:         time.Now,
	}
}

// Classify exposes the classification stage on its own.
func (p *Pipeline) Classify(ctx context.Context, text string) domain.ClassificationResult {
	return p.classifier.Classify(ctx, text)
}

// AnalyzeDistress exposes the distress stage on its own.
func (p *Pipeline) AnalyzeDistress(ctx context.Context, text string) domain.DistressResult {
	return p.distress.Analyze(ctx, text)
}

// PredictRisk exposes the risk stage on its own.
func (p *Pipeline) PredictRisk(text, department string) domain.RiskResult {
	return p.risk.Score(text, department)
}

// Process runs the full triage sequence for one grievance. It always
// returns a complete AggregateResult: stage failures degrade into safe
// defaults and flags, never into an error for the caller.
func (p *Pipeline) Process(ctx context.Context, in Input) *domain.AggregateResult {
	start := p.now()
	ctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	var span trace.Span
	if p.telemetry != nil {
		ctx, span = p.telemetry.Tracer().Start(ctx, "triage.Process")
		defer span.End()
	}

	result := &domain.AggregateResult{
		ProcessedAt:        start,
		Input:              domain.Input{Text: in.Text, CitizenID: in.CitizenID, Location: in.Location},
		SimilarCases:       []domain.SimilarCase{},
		Alerts:             []domain.Alert{},
		RecommendedActions: []domain.RecommendedAction{},
	}

	// 1. Duplicate check, scoped to the citizen's own history. A
	// duplicate is surfaced but does not short-circuit processing.
	if in.CitizenID != "" {
		dup := p.store.CheckDuplicate(ctx, in.Text, in.CitizenID)
		result.Duplicate = &dup
		if dup.IsDuplicate {
			result.RecommendedActions = append(result.RecommendedActions, domain.RecommendedAction{
				Action:   domain.ActionMergeWithExisting,
				Priority: domain.PriorityMedium,
				Reason:   "Similar grievance from same citizen",
				CaseIDs:  []string{dup.ExistingCaseID},
			})
			if p.telemetry != nil {
				p.telemetry.Metrics.DuplicatesTotal.Inc()
			}
		}
	}

	// 2. Department classification.
	result.Classification = p.timed("classify", func() domain.ClassificationResult {
		return p.classifier.Classify(ctx, in.Text)
	})

	// 3. Distress analysis.
	result.Distress = p.timedDistress(ctx, in.Text)

	// 4. SLA from distress level only.
	hours := domain.SLAHours(result.Distress.Level)
	result.SLA = domain.SLA{
		Hours:    hours,
		Deadline: start.Add(time.Duration(hours) * time.Hour),
		Priority: result.Distress.Level,
	}

	// 5. Risk scoring with the routed department.
	result.Risk = p.risk.Score(in.Text, result.Classification.Department)

	// 6. Similar resolved cases for officer guidance.
	result.SimilarCases = p.store.FindSimilar(ctx, in.Text, result.Classification.Department, casestore.DefaultSimilarLimit)

	// 7. Area pattern detection.
	if in.Location != "" {
		result.Alerts = p.detector.RecordAndCheck(in.Location, result.Classification.Department)
		if p.telemetry != nil && len(result.Alerts) > 0 {
			p.telemetry.Metrics.AlertsTotal.Add(float64(len(result.Alerts)))
		}
	}

	// 8. Citizen acknowledgment template.
	result.Acknowledgment = p.kb.Acknowledgment(result.Distress.Level)

	// 9. Recommended actions from the assembled sub-results.
	result.RecommendedActions = append(result.RecommendedActions, buildActions(result)...)

	// 10. Persist the new case.
	caseID, err := p.store.Append(ctx, &domain.Case{
		Text:          in.Text,
		CitizenID:     in.CitizenID,
		Department:    result.Classification.Department,
		DistressLevel: result.Distress.Level,
		CreatedAt:     start,
	})
	if err != nil {
		p.logger.Error("case append failed", logging.Err(err))
	}
	result.CaseID = caseID

	p.recordMetrics(result)
	p.logger.Info("grievance processed",
		logging.String("case_id", result.CaseID),
		logging.String("department", result.Classification.Department),
		logging.String("distress", result.Distress.Level.String()),
		logging.String("risk", string(result.Risk.Level)),
		logging.Int("actions", len(result.RecommendedActions)),
		logging.Duration("elapsed", time.Since(start)))
	return result
}

// ResolveCase transitions a case to RESOLVED. An unknown id is logged and
// ignored — it tolerates races with store rotation in a distributed
// deployment.
func (p *Pipeline) ResolveCase(ctx context.Context, caseID, resolution string, resolutionDays int) {
	if err := p.store.Resolve(ctx, caseID, resolution, resolutionDays); err != nil {
		if errors.Is(err, casestore.ErrNotFound) {
			p.logger.Warn("resolve for unknown case ignored", logging.String("case_id", caseID))
			return
		}
		p.logger.Error("case resolution failed", logging.String("case_id", caseID), logging.Err(err))
	}
}

// Queue returns the prioritized OPEN-case queue for officer dashboards.
func (p *Pipeline) Queue(department string) []domain.Case {
	return p.store.OpenQueue(department)
}

func (p *Pipeline) timed(stage string, fn func() domain.ClassificationResult) domain.ClassificationResult {
	start := time.Now()
	result := fn()
	if p.telemetry != nil {
		p.telemetry.ObserveStage(stage, time.Since(start))
	}
	return result
}

func (p *Pipeline) timedDistress(ctx context.Context, text string) domain.DistressResult {
	start := time.Now()
	result := p.distress.Analyze(ctx, text)
	if p.telemetry != nil {
		p.telemetry.ObserveStage("distress", time.Since(start))
	}
	return result
}

func (p *Pipeline) recordMetrics(result *domain.AggregateResult) {
	if p.telemetry == nil {
		return
	}
	dept := result.Classification.Department
	if dept == "" {
		dept = "unassigned"
	}
	p.telemetry.Metrics.CasesProcessed.WithLabelValues(dept).Inc()
	p.telemetry.Metrics.DistressTotal.WithLabelValues(result.Distress.Level.String()).Inc()
	if result.Classification.NeedsManualReview {
		p.telemetry.Metrics.ManualReviewTotal.Inc()
	}
}
