package geometry

import "math"

// Segment is a closed line segment from A to B.
type Segment struct {
	A Vec2 `json:"a" yaml:"a"`
	B Vec2 `json:"b" yaml:"b"`
}

// Seg creates a Segment.
func Seg(a, b Vec2) Segment {
	return Segment{A: a, B: b}
}

// DistPointToSegment returns the shortest distance from p to the segment ab.
// A degenerate segment collapses to the distance to a.
func DistPointToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	ab2 := ab.Dot(ab)
	if ab2 == 0 {
		return Distance(p, a)
	}
	t := Clamp(p.Sub(a).Dot(ab)/ab2, 0, 1)
	return Distance(p, a.Add(ab.Scale(t)))
}

// Distance returns the shortest distance from p to s.
func (s Segment) Distance(p Vec2) float64 {
	return DistPointToSegment(p, s.A, s.B)
}

// orient is positive when c lies to the left of a->b.
func orient(a, b, c Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// onSegment reports whether p lies inside the bounding box of ab.
func onSegment(a, b, p Vec2) bool {
	return math.Min(a.X, b.X)-Epsilon <= p.X && p.X <= math.Max(a.X, b.X)+Epsilon &&
		math.Min(a.Y, b.Y)-Epsilon <= p.Y && p.Y <= math.Max(a.Y, b.Y)+Epsilon
}

// SegmentsIntersect reports whether ab and cd share at least one point,
// counting touching endpoints and collinear overlap.
func SegmentsIntersect(a, b, c, d Vec2) bool {
	o1, o2 := orient(a, b, c), orient(a, b, d)
	o3, o4 := orient(c, d, a), orient(c, d, b)

	if ((o1 > 0 && o2 < 0) || (o1 < 0 && o2 > 0)) && ((o3 > 0 && o4 < 0) || (o3 < 0 && o4 > 0)) {
		return true
	}
	switch {
	case math.Abs(o1) < Epsilon && onSegment(a, b, c):
		return true
	case math.Abs(o2) < Epsilon && onSegment(a, b, d):
		return true
	case math.Abs(o3) < Epsilon && onSegment(c, d, a):
		return true
	case math.Abs(o4) < Epsilon && onSegment(c, d, b):
		return true
	}
	return false
}

// MinSegmentDistance returns the smallest endpoint-to-segment distance
// between ab and cd. It is zero for touching segments but not for segments
// that cross in their interiors; combine it with SegmentsIntersect.
func MinSegmentDistance(a, b, c, d Vec2) float64 {
	return min(
		DistPointToSegment(a, c, d),
		DistPointToSegment(b, c, d),
		DistPointToSegment(c, a, b),
		DistPointToSegment(d, a, b),
	)
}
