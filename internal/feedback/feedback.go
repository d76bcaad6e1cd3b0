// Package feedback turns an evaluation into ordered diagnostics. Each
// diagnostic carries the data needed to phrase it and the drawn-force
// indices a presentation layer should highlight.
package feedback

import (
	"strings"

	"github.com/forcegrade/forcegrade/internal/models"
)

// Input is what the diagnostics are built from.
type Input struct {
	Forces    []models.DrawnForce
	Results   []models.MatchResult
	Relations []models.RelationResult
	SumF      models.SumFResult
	// Extras are the completed, unmatched, non-initial drawn indices.
	Extras []int
	// Initial flags pre-drawn forces.
	Initial []bool
	// MinForceLength decides which arrows count as completed.
	MinForceLength float64
}

// Build emits diagnostics in a fixed order: name problems, per-force
// problems in task order, failed relations, equilibrium, then extras. When
// the student has drawn nothing of their own, only the missing forces are
// reported.
func Build(in *Input) []models.Diagnostic {
	if !drewAnything(in) {
		out := []models.Diagnostic{{Kind: models.DiagNothingDrawn, Indices: []int{}}}
		for _, r := range in.Results {
			if !r.Found {
				out = append(out, forceMissing(r))
			}
		}
		return out
	}

	var out []models.Diagnostic
	out = append(out, nameDiagnostics(in.Results)...)

	for _, r := range in.Results {
		if !r.Found {
			out = append(out, forceMissing(r))
			continue
		}
		if wrongName(r) {
			continue
		}
		if r.HasDir && !r.DirOK {
			out = append(out, models.Diagnostic{
				Kind:      models.DiagDirectionOff,
				Forces:    []string{r.Name},
				DrawnName: r.DrawnName,
				Value:     r.DirErr,
				Extra:     r.DirTolDeg,
				Indices:   []int{r.Index},
			})
		}
		if r.PosErr != nil && !r.PosOK {
			out = append(out, models.Diagnostic{
				Kind:      models.DiagAnchorOff,
				Forces:    []string{r.Name},
				DrawnName: r.DrawnName,
				Value:     *r.PosErr,
				Extra:     r.PosTol,
				Indices:   []int{r.Index},
			})
		}
	}

	for _, rr := range in.Relations {
		if rr.OK || rr.MissingInvolved {
			continue
		}
		out = append(out, models.Diagnostic{
			Kind:    models.DiagRelationOff,
			Forces:  rr.ForceNames,
			Value:   rr.MeasuredRatio,
			Extra:   rr.RelError,
			Indices: append([]int{}, rr.Indices...),
		})
	}

	var completed []int
	for _, c := range in.SumF.Checked {
		if c.OK {
			continue
		}
		if completed == nil {
			completed = completedIndices(in)
		}
		out = append(out, models.Diagnostic{
			Kind:    models.DiagSumOff,
			Axis:    c.Axis,
			Value:   c.Measured,
			Extra:   c.Target,
			Indices: completed,
		})
	}

	if len(in.Extras) > 0 {
		out = append(out, models.Diagnostic{
			Kind:    models.DiagExtraForces,
			Count:   len(in.Extras),
			Indices: append([]int{}, in.Extras...),
		})
	}
	return out
}

func wrongName(r models.MatchResult) bool {
	return !r.NameOK && strings.TrimSpace(r.DrawnName) != ""
}

func forceMissing(r models.MatchResult) models.Diagnostic {
	return models.Diagnostic{Kind: models.DiagForceMissing, Forces: []string{r.Name}, Indices: []int{}}
}

func nameDiagnostics(results []models.MatchResult) []models.Diagnostic {
	var (
		found          int
		unnamed, wrong models.Diagnostic
	)
	unnamed = models.Diagnostic{Kind: models.DiagMissingName, Indices: []int{}}
	wrong = models.Diagnostic{Kind: models.DiagWrongName, Indices: []int{}}
	for _, r := range results {
		if !r.Found {
			continue
		}
		found++
		if r.NameOK {
			continue
		}
		d := &unnamed
		if wrongName(r) {
			d = &wrong
		}
		d.Forces = append(d.Forces, r.Name)
		d.Indices = append(d.Indices, r.Index)
		d.Count++
	}

	var out []models.Diagnostic
	for _, d := range []models.Diagnostic{unnamed, wrong} {
		if d.Count == 0 {
			continue
		}
		d.AllFound = d.Count == found
		out = append(out, d)
	}
	return out
}

func isInitial(in *Input, i int) bool {
	return in.Forces[i].Initial || (i < len(in.Initial) && in.Initial[i])
}

func drewAnything(in *Input) bool {
	for i := range in.Forces {
		if !isInitial(in, i) && in.Forces[i].IsCompleted(in.MinForceLength) {
			return true
		}
	}
	return false
}

func completedIndices(in *Input) []int {
	out := []int{}
	for i := range in.Forces {
		if in.Forces[i].IsCompleted(in.MinForceLength) {
			out = append(out, i)
		}
	}
	return out
}
