package triage

import (
	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/knowledge"
	"github.com/dhruva-pgrs/triage/internal/logging"
	"github.com/dhruva-pgrs/triage/internal/matcher"
)

// Risk score bands: LOW < 0.4 <= MEDIUM < 0.7 <= HIGH.
const (
	riskMediumThreshold = 0.40
	riskHighThreshold   = 0.70
	riskScoreCap        = 0.95
	riskMultiLapseBoost = 0.10
)

type riskTrigger struct {
	pattern *knowledge.RiskPattern
	keyword string
}

// RiskScorer predicts the likelihood of improper handling from the curated
// risk-pattern table. Fully rule-based: every score traces back to the
// keyword that triggered it.
type RiskScorer struct {
	triggers []riskTrigger
	keywords *matcher.Matcher
	logger   logging.Logger
}

// NewRiskScorer builds one automaton over every pattern's trigger set.
func NewRiskScorer(kb *knowledge.Base, logger logging.Logger) *RiskScorer {
	var triggers []riskTrigger
	for i := range kb.RiskPatterns {
		p := &kb.RiskPatterns[i]
		for _, kw := range p.Keywords {
			triggers = append(triggers, riskTrigger{pattern: p, keyword: kw})
		}
	}
	patterns := make([]string, len(triggers))
	for i, t := range triggers {
		patterns[i] = t.keyword
	}
	return &RiskScorer{
		triggers: triggers,
		keywords: matcher.New(patterns),
		logger:   logger,
	}
}

// Score evaluates text against the risk-pattern table. department may be
// empty; patterns with a department restriction are skipped only when a
// department is given and not in the restriction set.
func (r *RiskScorer) Score(text, department string) domain.RiskResult {
	result := domain.RiskResult{
		Level:  domain.RiskLow,
		Lapses: []domain.Lapse{},
	}

	seen := make(map[string]bool)
	for _, idx := range r.keywords.Match(text) {
		trigger := r.triggers[idx]
		if department != "" && !trigger.pattern.AppliesTo(department) {
			continue
		}
		if seen[trigger.pattern.Lapse] {
			continue
		}
		seen[trigger.pattern.Lapse] = true
		result.Lapses = append(result.Lapses, domain.Lapse{
			Lapse:       trigger.pattern.Lapse,
			Probability: trigger.pattern.BaseRisk,
			Trigger:     trigger.keyword,
		})
		if trigger.pattern.BaseRisk > result.Score {
			result.Score = trigger.pattern.BaseRisk
		}
	}

	// Multiple distinct lapses compound the risk.
	if len(result.Lapses) > 1 {
		result.Score += riskMultiLapseBoost * float64(len(result.Lapses)-1)
		if result.Score > riskScoreCap {
			result.Score = riskScoreCap
		}
	}

	switch {
	case result.Score >= riskHighThreshold:
		result.Level = domain.RiskHigh
	case result.Score >= riskMediumThreshold:
		result.Level = domain.RiskMedium
	}
	return result
}
