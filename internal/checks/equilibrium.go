// Package checks holds the whole-drawing checks that run over the matched
// set: net-force equilibrium, magnitude relations and arrow neatness.
package checks

import (
	"math"

	"github.com/forcegrade/forcegrade/internal/geometry"
	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/forcegrade/forcegrade/internal/scoring"
)

// Input is a drawing together with the matcher's decisions about it. The
// checks only read it.
type Input struct {
	Task       *models.Task
	Forces     []models.DrawnForce
	Results    []models.MatchResult
	Tolerances scoring.Tolerances
}

func (in *Input) plane() *models.Plane {
	if in.Task == nil {
		return nil
	}
	return in.Task.Scene.Plane
}

// Equilibrium sums every completed drawn force, matched or not and
// including pre-drawn ones, and scores the components the task declares a
// target for. Without a plane the normal sum is 0.
func Equilibrium(in *Input) models.SumFResult {
	res := models.SumFResult{Score: 1}

	var n, t geometry.Vec2
	if plane := in.plane(); plane != nil {
		n, t = plane.Basis()
		res.HasPlane = true
	}

	for i := range in.Forces {
		f := &in.Forces[i]
		if !f.IsCompleted(in.Tolerances.MinForceLength) {
			continue
		}
		v := f.Vec()
		res.X += v.X
		res.Y += v.Y
		if res.HasPlane {
			res.N += v.Dot(n)
			res.T += v.Dot(t)
		}
	}

	if in.Task == nil || in.Task.SumF == nil {
		return res
	}
	target := in.Task.SumF
	for _, c := range []struct {
		axis     models.Axis
		measured float64
		want     *float64
	}{
		{models.AxisX, res.X, target.X},
		{models.AxisY, res.Y, target.Y},
		{models.AxisN, res.N, target.N},
	} {
		if c.want == nil {
			continue
		}
		err := math.Abs(c.measured - *c.want)
		res.Checked = append(res.Checked, models.SumFComponent{
			Axis:     c.axis,
			Measured: c.measured,
			Target:   *c.want,
			Err:      err,
			OK:       err <= in.Tolerances.SumTol,
			Score:    in.Tolerances.Sum(err),
		})
	}
	if len(res.Checked) > 0 {
		var sum float64
		for _, c := range res.Checked {
			sum += c.Score
		}
		res.Score = sum / float64(len(res.Checked))
	}
	return res
}
