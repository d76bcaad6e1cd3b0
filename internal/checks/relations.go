package checks

import (
	"math"
	"strings"

	"github.com/forcegrade/forcegrade/internal/geometry"
	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/forcegrade/forcegrade/internal/names"
	"github.com/forcegrade/forcegrade/internal/scoring"
)

var vertical = geometry.V(0, -1)

// forceIndex maps relation term names to drawn indices: matched expected
// forces first, then pre-drawn forces found by label.
func (in *Input) forceIndex() map[string]int {
	idx := make(map[string]int, len(in.Results))
	for _, r := range in.Results {
		if r.Found && r.Index >= 0 && r.Index < len(in.Forces) {
			idx[r.Name] = r.Index
		}
	}
	if in.Task == nil {
		return idx
	}
	for _, spec := range in.Task.InitialForces {
		for i := range in.Forces {
			if names.SameLabel(in.Forces[i].Name, spec.Name) {
				idx[spec.Name] = i
				break
			}
		}
	}
	return idx
}

// componentDir returns the unit direction a term is projected on, or false
// for a plain magnitude. Plane components without a plane fall back to the
// magnitude.
func componentDir(c models.Component, plane *models.Plane) (geometry.Vec2, bool) {
	switch c {
	case models.ComponentVertical:
		return vertical, true
	case models.ComponentNormal, models.ComponentTangent:
		if plane == nil {
			return geometry.Vec2{}, false
		}
		n, t := plane.Basis()
		if c == models.ComponentNormal {
			return n, !n.IsZero()
		}
		return t, !t.IsZero()
	}
	return geometry.Vec2{}, false
}

func termValue(f *models.DrawnForce, c models.Component, plane *models.Plane) float64 {
	if dir, ok := componentDir(c, plane); ok {
		return math.Abs(f.Vec().Dot(dir))
	}
	return f.Length()
}

func termNames(terms []models.RelationTerm) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Name
	}
	return out
}

// Relations evaluates every declared relation in order. Missing forces
// contribute 0 to their side and are listed in MissingNames.
func Relations(in *Input) []models.RelationResult {
	if in.Task == nil || len(in.Task.Relations) == 0 {
		return nil
	}
	idx := in.forceIndex()
	plane := in.plane()

	side := func(terms []models.RelationTerm) float64 {
		var s float64
		for _, term := range terms {
			i, ok := idx[term.Name]
			if !ok {
				continue
			}
			s += termValue(&in.Forces[i], term.Component, plane)
		}
		return s
	}

	out := make([]models.RelationResult, 0, len(in.Task.Relations))
	for _, rel := range in.Task.Relations {
		lhsNames, rhsNames := termNames(rel.LHS), termNames(rel.RHS)
		all := append(append([]string{}, lhsNames...), rhsNames...)

		lhs, rhs := side(rel.LHS), side(rel.RHS)
		var measured float64
		if rhs != 0 {
			measured = lhs / rhs
		}
		expected := rel.ExpectedRatio()
		var relErr float64
		if expected != 0 {
			relErr = math.Abs(measured-expected) / expected
		}
		tol := rel.Tolerance()

		res := models.RelationResult{
			LHS:           strings.Join(lhsNames, "+"),
			RHS:           strings.Join(rhsNames, "+"),
			ForceNames:    all,
			MissingNames:  []string{},
			ExpectedRatio: expected,
			MeasuredRatio: measured,
			RelError:      relErr,
			TolRel:        tol,
			OK:            relErr <= tol,
			Score:         scoring.Relation(relErr, tol),
			Indices:       []int{},
		}
		for _, name := range all {
			if i, ok := idx[name]; ok {
				res.Indices = append(res.Indices, i)
			} else {
				res.MissingNames = append(res.MissingNames, name)
			}
		}
		res.MissingInvolved = len(res.MissingNames) > 0
		out = append(out, res)
	}
	return out
}
