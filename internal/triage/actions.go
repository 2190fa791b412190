package triage

import (
	"fmt"

	"github.com/dhruva-pgrs/triage/internal/domain"
)

// buildActions derives recommended follow-ups from the assembled stage
// results. The duplicate-merge action is added earlier, as soon as the
// duplicate check runs.
func buildActions(result *domain.AggregateResult) []domain.RecommendedAction {
	var actions []domain.RecommendedAction

	if result.Distress.Level == domain.DistressCritical {
		actions = append(actions, domain.RecommendedAction{
			Action:   domain.ActionImmediateAttention,
			Priority: domain.PriorityUrgent,
			Reason:   "Critical distress level detected",
		})
	}

	if result.Classification.NeedsManualReview {
		actions = append(actions, domain.RecommendedAction{
			Action:   domain.ActionManualClassification,
			Priority: domain.PriorityMedium,
			Reason:   fmt.Sprintf("Low classification confidence (%.0f%%)", result.Classification.Confidence*100),
		})
	}

	if result.Risk.Level == domain.RiskHigh {
		actions = append(actions, domain.RecommendedAction{
			Action:   domain.ActionSupervisorReview,
			Priority: domain.PriorityHigh,
			Reason:   "High risk of improper redressal",
		})
	}

	if len(result.SimilarCases) > 0 {
		ids := make([]string, len(result.SimilarCases))
		for i, sc := range result.SimilarCases {
			ids[i] = sc.CaseID
		}
		actions = append(actions, domain.RecommendedAction{
			Action:   domain.ActionReviewSimilarCases,
			Priority: domain.PriorityLow,
			Reason:   fmt.Sprintf("%d similar resolved cases found", len(ids)),
			CaseIDs:  ids,
		})
	}

	return actions
}
