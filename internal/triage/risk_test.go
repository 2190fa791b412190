package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/knowledge"
	"github.com/dhruva-pgrs/triage/internal/logging"
)

func newScorer(t *testing.T) *RiskScorer {
	t.Helper()
	return NewRiskScorer(knowledge.Default(), logging.Nop())
}

func TestScore_SingleLapse(t *testing.T) {
	r := newScorer(t)

	result := r.Score("the officer demanded a bribe", "")

	require.Len(t, result.Lapses, 1)
	assert.Equal(t, "Corruption/Misconduct", result.Lapses[0].Lapse)
	assert.Equal(t, "bribe", result.Lapses[0].Trigger)
	assert.Equal(t, 0.90, result.Score)
	assert.Equal(t, domain.RiskHigh, result.Level)
}

func TestScore_MultipleLapsesCompound(t *testing.T) {
	r := newScorer(t)

	// no_response (0.85) + pending_months (0.75): max 0.85 plus one boost.
	result := r.Score("no response for months", "")

	require.Len(t, result.Lapses, 2)
	assert.InDelta(t, 0.95, result.Score, 1e-9)
	assert.Equal(t, domain.RiskHigh, result.Level)
}

func TestScore_CapHolds(t *testing.T) {
	r := newScorer(t)

	result := r.Score("no response for months, corruption everywhere, rejected again", "")

	assert.LessOrEqual(t, result.Score, 0.95)
	assert.Equal(t, domain.RiskHigh, result.Level)
}

func TestScore_DedupByLapse(t *testing.T) {
	r := newScorer(t)

	// Two triggers of the same pattern count once.
	result := r.Score("pending for months, maybe weeks more", "")

	require.Len(t, result.Lapses, 1)
	assert.Equal(t, "Undue Delay", result.Lapses[0].Lapse)
}

func TestScore_DepartmentRestriction(t *testing.T) {
	r := newScorer(t)

	tests := []struct {
		name       string
		department string
		wantLapses int
	}{
		{
			name:       "restricted pattern skipped for other department",
			department: knowledge.DeptPolice,
			wantLapses: 0,
		},
		{
			name:       "restricted pattern applies to listed department",
			department: knowledge.DeptSocialWelfare,
			wantLapses: 1,
		},
		{
			name:       "empty department applies everything",
			department: "",
			wantLapses: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Score("pension benefit issue", tt.department)
			assert.Len(t, result.Lapses, tt.wantLapses)
		})
	}
}

func TestScore_Bands(t *testing.T) {
	r := newScorer(t)

	tests := []struct {
		name string
		text string
		want domain.RiskLevel
	}{
		{
			name: "no triggers is low",
			text: "blah blah blah",
			want: domain.RiskLow,
		},
		{
			name: "single mid pattern is medium",
			text: "case was transferred elsewhere",
			want: domain.RiskMedium,
		},
		{
			name: "severe pattern is high",
			text: "still no reply from anyone",
			want: domain.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Score(tt.text, "")
			assert.Equal(t, tt.want, result.Level)
		})
	}
}
