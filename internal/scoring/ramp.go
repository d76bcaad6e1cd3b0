package scoring

import (
	"math"

	"github.com/forcegrade/forcegrade/internal/geometry"
)

// axisEpsilon decides when an expected direction counts as axis-aligned.
const axisEpsilon = 1e-3

// RampDownLinear returns 1 while |value| <= tol, then falls linearly to 0
// over span. A non-positive span makes the cut-off hard.
func RampDownLinear(value, tol, span float64) float64 {
	a := math.Abs(value)
	if a <= tol {
		return 1
	}
	if span <= 0 {
		return 0
	}
	return geometry.Clamp(1-(a-tol)/span, 0, 1)
}

// DirTolerance returns the angular tolerance for an expected unit direction.
// Axis-aligned directions (one component near zero) get the tighter
// AxisDirTolDeg.
func (t Tolerances) DirTolerance(dir geometry.Vec2) float64 {
	if math.Abs(dir.X) < axisEpsilon || math.Abs(dir.Y) < axisEpsilon {
		return t.AxisDirTolDeg
	}
	return t.DirTolDeg
}

// Direction measures a drawn vector against an expected unit direction and
// returns the angular error, the tolerance used, and the score.
func (t Tolerances) Direction(drawn, expected geometry.Vec2) (errDeg, tolDeg, score float64) {
	tolDeg = t.DirTolerance(expected)
	errDeg = geometry.AngleBetweenDeg(drawn, expected)
	return errDeg, tolDeg, RampDownLinear(errDeg, tolDeg, t.DirSpanDeg)
}

// Position scores an anchor distance.
func (t Tolerances) Position(dist float64) float64 {
	return RampDownLinear(dist, t.PosTol, t.PosSpan)
}

// Sum scores the error of one equilibrium component.
func (t Tolerances) Sum(err float64) float64 {
	return RampDownLinear(err, t.SumTol, t.SumSpan)
}

// Relation scores a relative error against a relation's tolerance, falling
// off over twice the tolerance.
func Relation(relErr, tolRel float64) float64 {
	return RampDownLinear(relErr, tolRel, 2*tolRel)
}
