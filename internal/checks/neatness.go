package checks

import (
	"math"

	"github.com/forcegrade/forcegrade/internal/geometry"
	"github.com/forcegrade/forcegrade/internal/models"
)

// Neatness looks for matched arrows that cross or nearly touch without being
// parallel. The first such pair, in task order, costs the neatness penalty.
func Neatness(in *Input) models.NeatnessResult {
	var matched []int
	for _, r := range in.Results {
		if !r.Found || r.Index < 0 || r.Index >= len(in.Forces) {
			continue
		}
		f := &in.Forces[r.Index]
		if f.ArrowBase == nil || f.ArrowTip == nil {
			continue
		}
		matched = append(matched, r.Index)
	}

	tol := in.Tolerances
	for i := 0; i < len(matched); i++ {
		fi := &in.Forces[matched[i]]
		for j := i + 1; j < len(matched); j++ {
			fj := &in.Forces[matched[j]]
			ang := geometry.AngleBetweenDeg(fi.Vec(), fj.Vec())
			if ang < tol.ParallelDeg || math.Abs(ang-180) < tol.ParallelDeg {
				continue
			}
			a, b := *fi.ArrowBase, *fi.ArrowTip
			c, d := *fj.ArrowBase, *fj.ArrowTip
			if geometry.SegmentsIntersect(a, b, c, d) || geometry.MinSegmentDistance(a, b, c, d) <= tol.OverlapPx {
				return models.NeatnessResult{
					Factor:  tol.NeatnessPenalty,
					Overlap: []int{matched[i], matched[j]},
				}
			}
		}
	}
	return models.NeatnessResult{Factor: 1}
}
