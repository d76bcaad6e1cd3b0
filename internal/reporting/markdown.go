package reporting

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/forcegrade/forcegrade/internal/feedback"
	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// FormatMarkdown renders an evaluation as a Markdown report with a force
// table, relation and equilibrium tables, and the feedback list.
func FormatMarkdown(ev *models.Evaluation, threshold float64, debug bool) string {
	var b strings.Builder
	s := &ev.Summary

	status := "✅ Pass"
	if !Passed(ev, threshold) {
		status = "❌ Fail"
	}

	fmt.Fprintf(&b, "# %s\n\n", mdEscape(ev.TaskID))
	fmt.Fprintf(&b, "**%s**: score %.2f (%s), threshold %.2f\n\n", status, s.FinalScore, InterpretScore(s.FinalScore), threshold)
	fmt.Fprintf(&b, "%s. Extras: %d. Neatness: %.2f.\n\n", InterpretCoverage(s), s.ExtrasCount, s.Neatness)

	if len(ev.ForceResults) > 0 {
		b.WriteString("## Forces\n\n")
		b.WriteString("| Force | Drawn as | Direction | Position | Score |\n")
		b.WriteString("|-------|----------|-----------|----------|-------|\n")
		for i := range ev.ForceResults {
			r := &ev.ForceResults[i]
			fmt.Fprintf(&b, "| %s %s | %s | %s | %s | %.2f |\n",
				forceIcon(r), mdEscape(r.Name), drawnAs(r), dirCell(r, debug), posCell(r, debug), r.Score)
		}
		b.WriteString("\n")
	}

	if len(ev.RelationResults) > 0 {
		b.WriteString("## Relations\n\n")
		b.WriteString("| Relation | Expected | Measured | Result |\n")
		b.WriteString("|----------|----------|----------|--------|\n")
		for i := range ev.RelationResults {
			r := &ev.RelationResults[i]
			fmt.Fprintf(&b, "| %s : %s | %.2f | %.2f | %s |\n",
				mdEscape(r.LHS), mdEscape(r.RHS), r.ExpectedRatio, r.MeasuredRatio, relationCell(r))
		}
		b.WriteString("\n")
	}

	if checked := s.SumFResult.Checked; len(checked) > 0 {
		b.WriteString("## Equilibrium\n\n")
		b.WriteString("| Component | Target | Measured | Result |\n")
		b.WriteString("|-----------|--------|----------|--------|\n")
		for _, c := range checked {
			result := "✓"
			if !c.OK {
				result = "✗"
			}
			fmt.Fprintf(&b, "| ΣF_%s | %g | %.1f | %s |\n", c.Axis, c.Target, c.Measured, result)
		}
		b.WriteString("\n")
	}

	if len(ev.Feedback) > 0 {
		b.WriteString("## Feedback\n\n")
		for _, line := range feedback.Render(ev.Feedback, debug) {
			fmt.Fprintf(&b, "- %s\n", mdEscape(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func drawnAs(r *models.MatchResult) string {
	switch {
	case !r.Found:
		return "missing"
	case strings.TrimSpace(r.DrawnName) == "":
		return "_unnamed_"
	}
	return mdEscape(r.DrawnName)
}

func dirCell(r *models.MatchResult, debug bool) string {
	if !r.Found || !r.HasDir {
		return "-"
	}
	return okCell(r.DirOK, debug, fmt.Sprintf("%.1f°", r.DirErr))
}

func posCell(r *models.MatchResult, debug bool) string {
	if !r.Found || r.PosErr == nil {
		return "-"
	}
	return okCell(r.PosOK, debug, fmt.Sprintf("%.1fpx", *r.PosErr))
}

func okCell(ok, debug bool, measured string) string {
	mark := "✓"
	if !ok {
		mark = "✗"
	}
	if debug {
		return mark + " " + measured
	}
	return mark
}

func relationCell(r *models.RelationResult) string {
	switch {
	case r.MissingInvolved:
		return "skipped"
	case r.OK:
		return "✓"
	}
	return fmt.Sprintf("✗ (%.0f%% off)", r.RelError*100)
}

var mdReplacer = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`", "<", "&lt;", ">", "&gt;")

func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}

// RenderHTML converts a Markdown report into a standalone HTML page.
func RenderHTML(title, markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>body{font-family:sans-serif;max-width:50em;margin:2em auto}" +
		"table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:.25em .5em}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
