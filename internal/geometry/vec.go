// Package geometry provides the small 2D vector kernel used by the grading
// engine: lengths, distances, angles, and segment predicates.
//
// Coordinates follow screen conventions: x grows to the right and y grows
// downward.
package geometry

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Epsilon is the tolerance used by the segment predicates.
const Epsilon = 1e-6

// Vec2 is a 2D point or displacement. It serializes as a two-element array.
type Vec2 struct {
	X, Y float64
}

// V creates a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z-component of the 3D cross product with z=0.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the magnitude of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Unit returns v scaled to length 1, or the zero vector when v is shorter
// than Epsilon.
func (v Vec2) Unit() Vec2 {
	n := v.Length()
	if n <= Epsilon {
		return Vec2{}
	}
	return Vec2{X: v.X / n, Y: v.Y / n}
}

// Perp returns (-y, x), the tangent that belongs to a plane normal.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// MarshalJSON encodes v as [x, y].
func (v Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{v.X, v.Y})
}

// UnmarshalJSON decodes [x, y].
func (v *Vec2) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("decoding vector: %w", err)
	}
	return v.setFrom(xy)
}

// MarshalYAML encodes v as a flow sequence [x, y].
func (v Vec2) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range []float64{v.X, v.Y} {
		var n yaml.Node
		if err := n.Encode(c); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &n)
	}
	return node, nil
}

// UnmarshalYAML decodes a two-element sequence.
func (v *Vec2) UnmarshalYAML(node *yaml.Node) error {
	var xy []float64
	if err := node.Decode(&xy); err != nil {
		return fmt.Errorf("line %d: decoding vector: %w", node.Line, err)
	}
	return v.setFrom(xy)
}

func (v *Vec2) setFrom(xy []float64) error {
	if len(xy) != 2 {
		return fmt.Errorf("vector must have exactly 2 components, got %d", len(xy))
	}
	v.X, v.Y = xy[0], xy[1]
	return nil
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Length()
}

// AngleBetweenDeg returns the unsigned angle between a and b in degrees, in
// [0, 180]. It returns NoAngle if either vector is shorter than Epsilon.
func AngleBetweenDeg(a, b Vec2) float64 {
	na, nb := a.Length(), b.Length()
	if na < Epsilon || nb < Epsilon {
		return NoAngle
	}
	c := Clamp(a.Dot(b)/(na*nb), -1, 1)
	return math.Abs(math.Acos(c) * 180 / math.Pi)
}

// NoAngle is the sentinel returned by AngleBetweenDeg for degenerate input.
const NoAngle = 999.0

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
