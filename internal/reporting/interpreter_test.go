package reporting

import (
	"strings"
	"testing"

	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"excellent high", 0.95, "Excellent (>90%)"},
		{"excellent boundary", 0.91, "Excellent (>90%)"},
		{"good high", 0.90, "Good (70-90%)"},
		{"good mid", 0.80, "Good (70-90%)"},
		{"needs work high", 0.69, "Needs Work (50-70%)"},
		{"needs work low", 0.50, "Needs Work (50-70%)"},
		{"poor high", 0.49, "Poor (<50%)"},
		{"poor zero", 0.0, "Poor (<50%)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretScore(tt.score))
		})
	}
}

func TestInterpretCoverage(t *testing.T) {
	tests := []struct {
		name            string
		expected, found int
		want            string
	}{
		{"nothing expected", 0, 0, "No forces are expected"},
		{"all", 3, 3, "All 3 forces found"},
		{"none", 2, 0, "None of the 2 forces found"},
		{"some", 3, 2, "2 of 3 forces found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &models.ScoreSummary{ExpectedCount: tt.expected, FoundCount: tt.found}
			assert.Equal(t, tt.want, InterpretCoverage(s))
		})
	}
}

func TestPassed(t *testing.T) {
	ev := newTestEvaluation()
	assert.True(t, Passed(ev, 0.35))
	assert.False(t, Passed(ev, 0.36))
}

func TestFormatSummaryReport(t *testing.T) {
	t.Run("failing", func(t *testing.T) {
		report := FormatSummaryReport(newTestEvaluation(), 0.8, false)

		require.True(t, strings.HasPrefix(report, "=== incline: FAIL ===\n"))
		assert.Contains(t, report, "Final Score: 0.35 (Poor (<50%))")
		assert.Contains(t, report, "Coverage:    2 of 3 forces found")
		assert.Contains(t, report, "  ✓ G: 1.00\n")
		assert.Contains(t, report, "  ✗ N: 0.55\n")
		assert.Contains(t, report, "  ✗ F: 0.00\n")
		assert.Contains(t, report, "  - One force is missing its name\n")
		assert.Contains(t, report, "  - Move the point of application of N\n")
		assert.Contains(t, report, "  - F: missing\n")
		assert.NotContains(t, report, "Base:")
		assert.NotContains(t, report, "Extras:")
	})

	t.Run("debug", func(t *testing.T) {
		report := FormatSummaryReport(newTestEvaluation(), 0.8, true)

		assert.Contains(t, report, "Base:        0.520\n")
		assert.Contains(t, report, "Relations:   0.000\n")
		assert.Contains(t, report, "Move the point of application of N (35.0px)")
	})

	t.Run("passing", func(t *testing.T) {
		report := FormatSummaryReport(newPassingEvaluation(), 0.8, false)

		assert.True(t, strings.HasPrefix(report, "=== drop: PASS ===\n"))
		assert.Contains(t, report, "All 1 forces found")
		assert.NotContains(t, report, "Feedback:")
	})
}
