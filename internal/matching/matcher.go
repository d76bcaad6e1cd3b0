// Package matching pairs drawn arrows with the forces a task expects.
package matching

import (
	"sort"

	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/forcegrade/forcegrade/internal/names"
	"github.com/forcegrade/forcegrade/internal/scoring"
)

// Pair is one accepted (expected, drawn) assignment.
type Pair struct {
	// Expected is the position of the spec in the task's expected forces.
	Expected int
	Name     string
	// Drawn is the position of the arrow in the drawing.
	Drawn    int
	NameOK   bool
	DirScore float64
	Score    float64
}

// Result holds the accepted pairs in acceptance order.
type Result struct {
	Pairs  []Pair
	ByName map[string]int
}

// Index returns the drawn index matched to name, or -1.
func (r *Result) Index(name string) int {
	if i, ok := r.ByName[name]; ok {
		return i
	}
	return -1
}

// Pair returns the accepted pair for name.
func (r *Result) Pair(name string) (Pair, bool) {
	for _, p := range r.Pairs {
		if p.Name == name {
			return p, true
		}
	}
	return Pair{}, false
}

// Matcher computes greedy assignments. It holds no per-call state and is
// safe for concurrent use.
type Matcher struct {
	tol      scoring.Tolerances
	resolver *names.Resolver
	plane    *models.Plane
}

// NewMatcher creates a matcher for one task's expected forces.
func NewMatcher(expected []models.ExpectedForceSpec, plane *models.Plane, tol scoring.Tolerances) *Matcher {
	return &Matcher{tol: tol, resolver: ResolverFor(expected), plane: plane}
}

// ResolverFor builds the alias table of a task's expected forces.
func ResolverFor(expected []models.ExpectedForceSpec) *names.Resolver {
	entries := make([]names.Entry, len(expected))
	for i, f := range expected {
		entries[i] = names.Entry{Name: f.Name, Aliases: f.Aliases}
	}
	return names.NewResolver(entries)
}

// Resolver returns the alias table the matcher uses.
func (m *Matcher) Resolver() *names.Resolver {
	return m.resolver
}

// PairScore is the similarity of a drawn force to an expected force:
// NameWeight plus the remaining share times the direction score when the
// names agree, otherwise the direction share alone.
func (m *Matcher) PairScore(spec *models.ExpectedForceSpec, f *models.DrawnForce) (score, dirScore float64, nameOK bool) {
	if dir, ok := spec.Dir.Resolve(m.plane); ok {
		_, _, dirScore = m.tol.Direction(f.Vec(), dir)
	}
	nameOK = m.resolver.Matches(f.Name, spec.Name)
	w := m.tol.NameWeight
	if nameOK {
		return w + (1-w)*dirScore, dirScore, true
	}
	return (1 - w) * dirScore, dirScore, false
}

// Match assigns drawn forces to expected forces. Forces without full
// geometry and forces flagged in exclude are never candidates. Pairs scoring
// at or below the match threshold are dropped; the rest are accepted
// greedily from the best down, with ties going to the pair enumerated first
// (expected forces outer, drawn forces inner).
func (m *Matcher) Match(expected []models.ExpectedForceSpec, forces []models.DrawnForce, exclude []bool) Result {
	var candidates []Pair
	for ei := range expected {
		spec := &expected[ei]
		for di := range forces {
			f := &forces[di]
			if !f.HasGeometry() || (di < len(exclude) && exclude[di]) {
				continue
			}
			score, dirScore, nameOK := m.PairScore(spec, f)
			if score <= m.tol.MatchThreshold {
				continue
			}
			candidates = append(candidates, Pair{
				Expected: ei,
				Name:     spec.Name,
				Drawn:    di,
				NameOK:   nameOK,
				DirScore: dirScore,
				Score:    score,
			})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})

	res := Result{ByName: make(map[string]int, len(expected))}
	used := make(map[int]bool, len(forces))
	for _, c := range candidates {
		if _, taken := res.ByName[c.Name]; taken || used[c.Drawn] {
			continue
		}
		res.ByName[c.Name] = c.Drawn
		used[c.Drawn] = true
		res.Pairs = append(res.Pairs, c)
	}
	return res
}

// Unmatched returns the drawn indices that are completed, not excluded and
// not part of any accepted pair.
func Unmatched(res *Result, forces []models.DrawnForce, exclude []bool, minLen float64) []int {
	used := make(map[int]bool, len(res.Pairs))
	for _, p := range res.Pairs {
		used[p.Drawn] = true
	}
	var out []int
	for i := range forces {
		if used[i] || (i < len(exclude) && exclude[i]) {
			continue
		}
		if forces[i].IsCompleted(minLen) {
			out = append(out, i)
		}
	}
	return out
}
