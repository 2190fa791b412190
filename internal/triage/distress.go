package triage

import (
	"context"

	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/knowledge"
	"github.com/dhruva-pgrs/triage/internal/logging"
	"github.com/dhruva-pgrs/triage/internal/matcher"
	"github.com/dhruva-pgrs/triage/internal/mlclient"
)

const (
	distressCalibration = 0.90

	keywordOverrideBase     = 0.70
	keywordOverridePerMatch = 0.05
	keywordOverrideCap      = 0.95
	keywordFallbackConf     = 0.65
	mlDefaultConf           = 0.50
	mlConfidentThreshold    = 0.50
)

type distressEntry struct {
	keyword string
	level   domain.DistressLevel
}

// DistressAnalyzer scores urgency by fusing per-severity keyword lists
// with the probabilistic distress classifier. The fusion order guarantees
// a keyword at a given tier can never be downgraded by a less-confident
// model output.
type DistressAnalyzer struct {
	keywords *matcher.Matcher
	entries  []distressEntry
	ml       ModelClient
	logger   logging.Logger
}

// NewDistressAnalyzer builds one automaton over all severity tiers.
func NewDistressAnalyzer(kb *knowledge.Base, ml ModelClient, logger logging.Logger) *DistressAnalyzer {
	var entries []distressEntry
	for _, kw := range kb.Distress.Critical {
		entries = append(entries, distressEntry{keyword: kw, level: domain.DistressCritical})
	}
	for _, kw := range kb.Distress.High {
		entries = append(entries, distressEntry{keyword: kw, level: domain.DistressHigh})
	}
	for _, kw := range kb.Distress.Medium {
		entries = append(entries, distressEntry{keyword: kw, level: domain.DistressMedium})
	}

	patterns := make([]string, len(entries))
	for i, e := range entries {
		patterns[i] = e.keyword
	}
	return &DistressAnalyzer{
		keywords: matcher.New(patterns),
		entries:  entries,
		ml:       ml,
		logger:   logger,
	}
}

// Analyze scores the distress level of text. Never returns an error: model
// failures leave keyword signals in charge.
func (a *DistressAnalyzer) Analyze(ctx context.Context, text string) domain.DistressResult {
	result := domain.DistressResult{
		Level:   domain.DistressNormal,
		Signals: []domain.DistressSignal{},
	}

	keywordLevel := domain.DistressNormal
	for _, idx := range a.keywords.Match(text) {
		entry := a.entries[idx]
		result.Signals = append(result.Signals, domain.DistressSignal{Keyword: entry.keyword, Level: entry.level})
		if entry.level > keywordLevel {
			keywordLevel = entry.level
		}
	}

	modelLevel := domain.DistressNormal
	modelConf := 0.0
	if a.ml != nil {
		if resp, err := a.ml.Predict(ctx, mlclient.ModelDistress, text); err != nil {
			a.logger.Warn("distress model inference failed, using keywords only", logging.Err(err))
		} else if label, raw, ok := resp.Best(); ok {
			if level, perr := domain.ParseDistressLevel(label); perr != nil {
				a.logger.Warn("distress model returned unknown label", logging.String("label", label))
			} else {
				modelLevel = level
				modelConf = clamp01(raw * distressCalibration)
			}
		}
	}

	switch {
	case keywordLevel > modelLevel:
		// Keywords found a strictly higher tier; the model cannot
		// downgrade it.
		matches := 0
		for _, s := range result.Signals {
			if s.Level == keywordLevel {
				matches++
			}
		}
		result.Level = keywordLevel
		result.Confidence = keywordOverrideBase + keywordOverridePerMatch*float64(matches)
		if result.Confidence > keywordOverrideCap {
			result.Confidence = keywordOverrideCap
		}
		result.Method = domain.DistressMethodKeywordOverride

	case modelConf > mlConfidentThreshold:
		result.Level = modelLevel
		result.Confidence = modelConf
		result.Method = domain.DistressMethodMLClassifier

	case len(result.Signals) > 0:
		result.Level = keywordLevel
		result.Confidence = keywordFallbackConf
		result.Method = domain.DistressMethodKeywordFallback

	default:
		result.Level = modelLevel
		result.Confidence = modelConf
		if result.Confidence == 0 {
			result.Level = domain.DistressNormal
			result.Confidence = mlDefaultConf
		}
		result.Method = domain.DistressMethodMLDefault
	}

	return result
}
