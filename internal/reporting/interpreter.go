package reporting

import (
	"fmt"
	"strings"

	"github.com/forcegrade/forcegrade/internal/feedback"
	"github.com/forcegrade/forcegrade/internal/models"
)

// InterpretScore returns a plain-language label for a numeric score (0–1).
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretCoverage explains how many of the expected forces were found.
func InterpretCoverage(s *models.ScoreSummary) string {
	switch {
	case s.ExpectedCount == 0:
		return "No forces are expected"
	case s.FoundCount == s.ExpectedCount:
		return fmt.Sprintf("All %d forces found", s.ExpectedCount)
	case s.FoundCount == 0:
		return fmt.Sprintf("None of the %d forces found", s.ExpectedCount)
	default:
		return fmt.Sprintf("%d of %d forces found", s.FoundCount, s.ExpectedCount)
	}
}

// Passed reports whether the final score reaches threshold.
func Passed(ev *models.Evaluation, threshold float64) bool {
	return ev.Summary.FinalScore >= threshold
}

// FormatSummaryReport produces a plain-text report of one evaluation.
func FormatSummaryReport(ev *models.Evaluation, threshold float64, debug bool) string {
	var b strings.Builder
	s := &ev.Summary

	status := "PASS"
	if !Passed(ev, threshold) {
		status = "FAIL"
	}

	fmt.Fprintf(&b, "=== %s: %s ===\n\n", ev.TaskID, status)
	fmt.Fprintf(&b, "Final Score: %.2f (%s)\n", s.FinalScore, InterpretScore(s.FinalScore))
	fmt.Fprintf(&b, "Coverage:    %s\n", InterpretCoverage(s))
	if s.ExtrasCount > 0 {
		fmt.Fprintf(&b, "Extras:      %d\n", s.ExtrasCount)
	}

	if debug {
		fmt.Fprintf(&b, "\nBase:        %.3f\n", s.BaseScore)
		if s.HasRelations {
			fmt.Fprintf(&b, "Relations:   %.3f\n", s.RelationsScore)
		}
		fmt.Fprintf(&b, "ΣF:          %.3f\n", s.SumFScore)
		fmt.Fprintf(&b, "Coverage ×:  %.3f\n", s.CoverageFactor)
		fmt.Fprintf(&b, "Neatness ×:  %.3f\n", s.Neatness)
	}

	if len(ev.ForceResults) > 0 {
		b.WriteString("\nForces:\n")
		for i := range ev.ForceResults {
			r := &ev.ForceResults[i]
			fmt.Fprintf(&b, "  %s %s: %.2f\n", forceIcon(r), r.Name, r.Score)
		}
	}

	if len(ev.Feedback) > 0 {
		b.WriteString("\nFeedback:\n")
		for _, line := range feedback.Render(ev.Feedback, debug) {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}

	return b.String()
}

func forceIcon(r *models.MatchResult) string {
	if forcePassed(r) {
		return "✓"
	}
	return "✗"
}

// forcePassed reports whether a force was found, named correctly and drawn
// within every tolerance that applies to it.
func forcePassed(r *models.MatchResult) bool {
	if !r.Found || !r.NameOK {
		return false
	}
	if r.HasDir && !r.DirOK {
		return false
	}
	if r.PosErr != nil && !r.PosOK {
		return false
	}
	return true
}
