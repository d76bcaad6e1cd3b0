package feedback

import (
	"fmt"
	"strings"

	"github.com/forcegrade/forcegrade/internal/models"
)

// Render phrases diagnostics as plain English, one line each. With debug
// set, the measured errors are appended.
func Render(lines []models.Diagnostic, debug bool) []string {
	out := make([]string, 0, len(lines))
	for _, d := range lines {
		out = append(out, Line(d, debug))
	}
	return out
}

// Line phrases a single diagnostic.
func Line(d models.Diagnostic, debug bool) string {
	switch d.Kind {
	case models.DiagNothingDrawn:
		return "No forces have been drawn yet"
	case models.DiagMissingName:
		switch {
		case d.Count == 1:
			return "One force is missing its name"
		case d.AllFound:
			return "The forces are missing their names"
		default:
			return fmt.Sprintf("%d forces are missing their names", d.Count)
		}
	case models.DiagWrongName:
		switch {
		case d.Count == 1:
			return "One force has the wrong name"
		case d.AllFound:
			return "The forces have the wrong names"
		default:
			return fmt.Sprintf("%d forces have the wrong names", d.Count)
		}
	case models.DiagForceMissing:
		return fmt.Sprintf("%s: missing", first(d.Forces))
	case models.DiagDirectionOff:
		msg := fmt.Sprintf("Adjust the direction of %s", label(d))
		if debug {
			msg += fmt.Sprintf(" (%.1f°)", d.Value)
		}
		return msg
	case models.DiagAnchorOff:
		msg := fmt.Sprintf("Move the point of application of %s", label(d))
		if debug {
			msg += fmt.Sprintf(" (%.1fpx)", d.Value)
		}
		return msg
	case models.DiagRelationOff:
		msg := fmt.Sprintf("The length ratio between %s is wrong", joinAnd(d.Forces))
		if debug {
			msg += fmt.Sprintf(" (measured %.2f, error %.1f%%)", d.Value, d.Extra*100)
		}
		return msg
	case models.DiagSumOff:
		return fmt.Sprintf("ΣF_%s = %.0f, should be %g", d.Axis, d.Value, d.Extra)
	case models.DiagExtraForces:
		if d.Count == 1 {
			return "1 force too many has been drawn"
		}
		return fmt.Sprintf("%d forces too many have been drawn", d.Count)
	}
	return string(d.Kind)
}

func first(names []string) string {
	if len(names) == 0 {
		return "?"
	}
	return names[0]
}

// label prefers the student's own name for the arrow.
func label(d models.Diagnostic) string {
	if n := strings.TrimSpace(d.DrawnName); n != "" {
		return n
	}
	return first(d.Forces)
}

func joinAnd(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
