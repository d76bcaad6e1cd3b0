package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/forcegrade/forcegrade/internal/feedback"
	"github.com/forcegrade/forcegrade/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one evaluated drawing.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one graded check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a failed check.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a check as not applicable.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts an evaluation to JUnit XML. Every expected force,
// relation and equilibrium component becomes a test case, followed by the
// overall score against threshold.
func ConvertToJUnit(ev *models.Evaluation, threshold float64) *JUnitTestSuites {
	s := &ev.Summary
	suite := JUnitTestSuite{
		Name: ev.TaskID,
		Properties: []JUnitProperty{
			{Name: "score", Value: fmt.Sprintf("%.4f", s.FinalScore)},
			{Name: "threshold", Value: fmt.Sprintf("%.4f", threshold)},
			{Name: "coverage", Value: fmt.Sprintf("%.4f", s.Coverage)},
			{Name: "neatness", Value: fmt.Sprintf("%.4f", s.Neatness)},
			{Name: "extras", Value: fmt.Sprintf("%d", s.ExtrasCount)},
		},
	}

	for i := range ev.ForceResults {
		suite.TestCases = append(suite.TestCases, forceCase(ev, &ev.ForceResults[i]))
	}
	for i := range ev.RelationResults {
		suite.TestCases = append(suite.TestCases, relationCase(&ev.RelationResults[i]))
	}
	for _, c := range s.SumFResult.Checked {
		suite.TestCases = append(suite.TestCases, sumCase(c))
	}
	suite.TestCases = append(suite.TestCases, scoreCase(ev, threshold))

	for _, tc := range suite.TestCases {
		suite.Tests++
		switch {
		case tc.Failure != nil:
			suite.Failures++
		case tc.Skipped != nil:
			suite.Skipped++
		}
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func forceCase(ev *models.Evaluation, r *models.MatchResult) JUnitTestCase {
	tc := JUnitTestCase{Name: r.Name, Classname: ev.TaskID + ".forces"}
	if forcePassed(r) {
		return tc
	}
	tc.Failure = &JUnitFailure{
		Message: fmt.Sprintf("%s: score=%.2f", r.Name, r.Score),
		Type:    "ForceCheck",
		Body:    diagnosticsFor(ev.Feedback, r.Name),
	}
	return tc
}

func relationCase(r *models.RelationResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      fmt.Sprintf("%s : %s", r.LHS, r.RHS),
		Classname: "relations",
	}
	switch {
	case r.MissingInvolved:
		tc.Skipped = &JUnitSkipped{Message: "missing " + strings.Join(r.MissingNames, ", ")}
	case !r.OK:
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("measured %.2f, expected %.2f", r.MeasuredRatio, r.ExpectedRatio),
			Type:    "RelationCheck",
			Body:    fmt.Sprintf("relative error %.1f%% exceeds %.1f%%", r.RelError*100, r.TolRel*100),
		}
	}
	return tc
}

func sumCase(c models.SumFComponent) JUnitTestCase {
	tc := JUnitTestCase{Name: "ΣF_" + string(c.Axis), Classname: "equilibrium"}
	if !c.OK {
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("measured %.1f, expected %g", c.Measured, c.Target),
			Type:    "EquilibriumCheck",
		}
	}
	return tc
}

func scoreCase(ev *models.Evaluation, threshold float64) JUnitTestCase {
	tc := JUnitTestCase{Name: "final score", Classname: "score"}
	if Passed(ev, threshold) {
		return tc
	}
	tc.Failure = &JUnitFailure{
		Message: fmt.Sprintf("score=%.2f below threshold %.2f", ev.Summary.FinalScore, threshold),
		Type:    "ScoreThreshold",
		Body:    strings.Join(feedback.Render(ev.Feedback, false), "\n"),
	}
	return tc
}

// diagnosticsFor renders the feedback lines that mention name.
func diagnosticsFor(lines []models.Diagnostic, name string) string {
	var out []string
	for _, d := range lines {
		for _, f := range d.Forces {
			if f == name {
				out = append(out, feedback.Line(d, true))
				break
			}
		}
	}
	return strings.Join(out, "\n")
}

// EncodeJUnit writes the JUnit XML document for ev to w.
func EncodeJUnit(w io.Writer, ev *models.Evaluation, threshold float64) error {
	data, err := xml.MarshalIndent(ConvertToJUnit(ev, threshold), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(ev *models.Evaluation, threshold float64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := EncodeJUnit(f, ev, threshold); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
