package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/forcegrade/forcegrade/internal/geometry"
	"gopkg.in/yaml.v3"
)

// Task is one graded exercise: the scene the student draws on, the forces
// they must draw, and the checks applied to the whole drawing.
type Task struct {
	ID             string              `yaml:"id" json:"id"`
	Title          string              `yaml:"title,omitempty" json:"title,omitempty"`
	Category       string              `yaml:"category,omitempty" json:"category,omitempty"`
	Origin         *geometry.Vec2      `yaml:"origin,omitempty" json:"origin,omitempty"`
	Scene          Scene               `yaml:"scene,omitempty" json:"scene,omitzero"`
	ExpectedForces []ExpectedForceSpec `yaml:"expectedForces" json:"expectedForces"`
	InitialForces  []InitialForceSpec  `yaml:"initialForces,omitempty" json:"initialForces,omitempty"`
	Relations      []RelationSpec      `yaml:"relations,omitempty" json:"relations,omitempty"`
	SumF           *SumFSpec           `yaml:"sumF,omitempty" json:"sumF,omitempty"`
	// Tolerances holds per-task overrides of the scoring tolerances, keyed
	// like the tolerances section of the project config.
	Tolerances map[string]any `yaml:"tolerances,omitempty" json:"tolerances,omitempty"`
}

// Scene describes the objects that anchors can refer to.
type Scene struct {
	Plane    *Plane             `yaml:"plane,omitempty" json:"plane,omitempty"`
	Rects    []Rect             `yaml:"rects,omitempty" json:"rects,omitempty"`
	Circles  []Round            `yaml:"circles,omitempty" json:"circles,omitempty"`
	Ellipses []Round            `yaml:"ellipses,omitempty" json:"ellipses,omitempty"`
	Segments []geometry.Segment `yaml:"segments,omitempty" json:"segments,omitempty"`
}

// Plane is the (usually inclined) surface a body rests on. Its orientation
// comes from n_vec/t_vec when given, otherwise from angleDeg.
type Plane struct {
	AngleDeg *float64      `yaml:"angleDeg,omitempty" json:"angleDeg,omitempty"`
	NVec     *geometry.Vec2 `yaml:"n_vec,omitempty" json:"n_vec,omitempty"`
	TVec     *geometry.Vec2 `yaml:"t_vec,omitempty" json:"t_vec,omitempty"`
	Through  *geometry.Vec2 `yaml:"through,omitempty" json:"through,omitempty"`
}

// Basis returns the plane's unit normal and unit tangent.
func (p *Plane) Basis() (n, t geometry.Vec2) {
	return basis(p.AngleDeg, p.NVec, p.TVec)
}

// Rect is a box standing on its bottom edge.
type Rect struct {
	Width        float64        `yaml:"width" json:"width"`
	Height       float64        `yaml:"height" json:"height"`
	BottomCenter geometry.Vec2  `yaml:"bottomCenter" json:"bottomCenter"`
	AngleDeg     *float64       `yaml:"angleDeg,omitempty" json:"angleDeg,omitempty"`
	NVec         *geometry.Vec2 `yaml:"n_vec,omitempty" json:"n_vec,omitempty"`
	TVec         *geometry.Vec2 `yaml:"t_vec,omitempty" json:"t_vec,omitempty"`
}

// Basis returns the rect's "up" unit vector and its "right" unit vector.
func (r *Rect) Basis() (n, t geometry.Vec2) {
	return basis(r.AngleDeg, r.NVec, r.TVec)
}

// Round is a circle or an ellipse. Only its center is addressable.
type Round struct {
	Center geometry.Vec2 `yaml:"center" json:"center"`
	Width  float64       `yaml:"width,omitempty" json:"width,omitempty"`
	Height float64       `yaml:"height,omitempty" json:"height,omitempty"`
	Radius float64       `yaml:"radius,omitempty" json:"radius,omitempty"`
}

// NormalFromAngle returns the outward normal of a surface inclined by
// angleDeg, in screen coordinates.
func NormalFromAngle(angleDeg float64) geometry.Vec2 {
	a := angleDeg * math.Pi / 180
	return geometry.V(-math.Sin(a), -math.Cos(a)).Unit()
}

// TangentFromAngle returns the downhill-to-the-right tangent of a surface
// inclined by angleDeg.
func TangentFromAngle(angleDeg float64) geometry.Vec2 {
	a := angleDeg * math.Pi / 180
	return geometry.V(math.Cos(a), -math.Sin(a)).Unit()
}

func basis(angleDeg *float64, nVec, tVec *geometry.Vec2) (n, t geometry.Vec2) {
	n = geometry.V(0, -1)
	switch {
	case nVec != nil && !nVec.Unit().IsZero():
		n = nVec.Unit()
	case angleDeg != nil:
		n = NormalFromAngle(*angleDeg)
	}

	t = n.Perp()
	if tVec != nil && !tVec.Unit().IsZero() {
		t = tVec.Unit()
	}
	return n, t
}

// DirectionKind says how an expected direction is expressed.
type DirectionKind string

const (
	DirectionNone         DirectionKind = ""
	DirectionVector       DirectionKind = "vector"
	DirectionPlaneNormal  DirectionKind = "planeNormal"
	DirectionPlaneTangent DirectionKind = "planeTangent"
)

// Direction is either a literal vector or a symbolic reference to the task
// plane. It decodes from [dx, dy] or from "planeNormal"/"planeTangent".
type Direction struct {
	Kind DirectionKind
	Vec  geometry.Vec2
}

// Dir is shorthand for a literal direction.
func Dir(dx, dy float64) Direction {
	return Direction{Kind: DirectionVector, Vec: geometry.V(dx, dy)}
}

// IsSet reports whether a direction was given.
func (d Direction) IsSet() bool {
	return d.Kind != DirectionNone
}

// IsZero lets yaml omitempty drop unset directions.
func (d Direction) IsZero() bool {
	return !d.IsSet()
}

// Resolve returns the unit direction. Symbolic directions need a plane; a
// missing plane or a zero vector resolves to false.
func (d Direction) Resolve(plane *Plane) (geometry.Vec2, bool) {
	var v geometry.Vec2
	switch d.Kind {
	case DirectionVector:
		v = d.Vec.Unit()
	case DirectionPlaneNormal, DirectionPlaneTangent:
		if plane == nil {
			return geometry.Vec2{}, false
		}
		n, t := plane.Basis()
		v = n
		if d.Kind == DirectionPlaneTangent {
			v = t
		}
	default:
		return geometry.Vec2{}, false
	}
	return v, !v.IsZero()
}

func (d *Direction) decodeSymbol(s string) error {
	switch DirectionKind(s) {
	case DirectionPlaneNormal, DirectionPlaneTangent:
		d.Kind = DirectionKind(s)
		return nil
	}
	return fmt.Errorf("unknown direction %q (want [dx, dy], %q or %q)", s, DirectionPlaneNormal, DirectionPlaneTangent)
}

// UnmarshalYAML accepts a vector or a symbolic direction.
func (d *Direction) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*d = Direction{}
		return nil
	}
	if node.Kind == yaml.ScalarNode {
		return d.decodeSymbol(node.Value)
	}
	var v geometry.Vec2
	if err := node.Decode(&v); err != nil {
		return err
	}
	*d = Direction{Kind: DirectionVector, Vec: v}
	return nil
}

// MarshalYAML mirrors UnmarshalYAML.
func (d Direction) MarshalYAML() (any, error) {
	if d.Kind == DirectionVector {
		return d.Vec.MarshalYAML()
	}
	return string(d.Kind), nil
}

// UnmarshalJSON accepts a vector or a symbolic direction.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	if len(node.Content) == 0 {
		*d = Direction{}
		return nil
	}
	return d.UnmarshalYAML(node.Content[0])
}

// MarshalJSON mirrors UnmarshalJSON.
func (d Direction) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DirectionVector:
		return d.Vec.MarshalJSON()
	case DirectionNone:
		return []byte("null"), nil
	}
	return []byte(`"` + string(d.Kind) + `"`), nil
}

// AnchorType distinguishes point anchors from segment anchors.
type AnchorType string

const (
	AnchorPoint   AnchorType = "point"
	AnchorSegment AnchorType = "segment"
)

// AnchorRef names a point or segment on a scene object, e.g.
// {type: segment, ref: rect0, segment: bottom}.
type AnchorRef struct {
	Type    AnchorType `yaml:"type" json:"type"`
	Ref     string     `yaml:"ref" json:"ref"`
	Point   string     `yaml:"point,omitempty" json:"point,omitempty"`
	Segment string     `yaml:"segment,omitempty" json:"segment,omitempty"`
}

// ExpectedForceSpec is a force the student must draw.
type ExpectedForceSpec struct {
	Name    string     `yaml:"name" json:"name"`
	Aliases []string   `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Dir     Direction  `yaml:"dir,omitempty" json:"dir,omitzero"`
	Anchor  *AnchorRef `yaml:"anchor,omitempty" json:"anchor,omitempty"`
}

// InitialForceSpec is a pre-drawn force. Geometry is either explicit or
// derived from a scene point plus a direction and length.
type InitialForceSpec struct {
	Name      string         `yaml:"name" json:"name"`
	Anchor    *geometry.Vec2 `yaml:"anchor,omitempty" json:"anchor,omitempty"`
	ArrowBase *geometry.Vec2 `yaml:"arrowBase,omitempty" json:"arrowBase,omitempty"`
	ArrowTip  *geometry.Vec2 `yaml:"arrowTip,omitempty" json:"arrowTip,omitempty"`

	AnchorFrom string    `yaml:"anchorFrom,omitempty" json:"anchorFrom,omitempty"`
	Point      string    `yaml:"point,omitempty" json:"point,omitempty"`
	Len        float64   `yaml:"len,omitempty" json:"len,omitempty"`
	Dir        Direction `yaml:"dir,omitempty" json:"dir,omitzero"`
}

// Component selects which part of a force a relation term measures.
type Component string

const (
	ComponentMagnitude Component = ""
	ComponentNormal    Component = "normal"
	ComponentTangent   Component = "tangent"
	ComponentVertical  Component = "vertical"
)

// RelationTerm is one named force on a side of a relation.
type RelationTerm struct {
	Name      string    `yaml:"name" json:"name"`
	Component Component `yaml:"component,omitempty" json:"component,omitempty"`
}

// DefaultRelationTolerance is the relative tolerance used when tol_rel is absent.
const DefaultRelationTolerance = 0.15

// RelationSpec states that sum(lhs) / sum(rhs) should equal Ratio.
type RelationSpec struct {
	LHS    []RelationTerm `yaml:"lhs" json:"lhs"`
	RHS    []RelationTerm `yaml:"rhs" json:"rhs"`
	Ratio  *float64       `yaml:"ratio,omitempty" json:"ratio,omitempty"`
	TolRel *float64       `yaml:"tol_rel,omitempty" json:"tol_rel,omitempty"`
}

// ExpectedRatio returns Ratio, or 1 when absent.
func (r *RelationSpec) ExpectedRatio() float64 {
	if r.Ratio == nil {
		return 1
	}
	return *r.Ratio
}

// Tolerance returns TolRel, or DefaultRelationTolerance when absent.
func (r *RelationSpec) Tolerance() float64 {
	if r.TolRel == nil {
		return DefaultRelationTolerance
	}
	return *r.TolRel
}

// SumFSpec holds the net-force targets. Nil components are not checked.
type SumFSpec struct {
	X *float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty" json:"y,omitempty"`
	N *float64 `yaml:"n,omitempty" json:"n,omitempty"`
}

// Validate checks the structural rules a task file must satisfy before it
// can be graded.
func (t *Task) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(t.ExpectedForces))
	for i, f := range t.ExpectedForces {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("expectedForces[%d]: name is required", i))
			continue
		}
		if seen[f.Name] {
			errs = append(errs, fmt.Errorf("expectedForces[%d]: duplicate name %q", i, f.Name))
		}
		seen[f.Name] = true
		if f.Anchor != nil {
			switch f.Anchor.Type {
			case AnchorPoint, AnchorSegment:
			default:
				errs = append(errs, fmt.Errorf("expectedForces[%d]: anchor type %q must be %q or %q",
					i, f.Anchor.Type, AnchorPoint, AnchorSegment))
			}
		}
	}
	for i, r := range t.Relations {
		if len(r.LHS) == 0 || len(r.RHS) == 0 {
			errs = append(errs, fmt.Errorf("relations[%d]: lhs and rhs must both be non-empty", i))
		}
		for _, term := range append(append([]RelationTerm{}, r.LHS...), r.RHS...) {
			switch term.Component {
			case ComponentMagnitude, ComponentNormal, ComponentTangent, ComponentVertical:
			default:
				errs = append(errs, fmt.Errorf("relations[%d]: unknown component %q", i, term.Component))
			}
		}
		if r.TolRel != nil && *r.TolRel < 0 {
			errs = append(errs, fmt.Errorf("relations[%d]: tol_rel must not be negative", i))
		}
		if r.Ratio != nil && *r.Ratio < 0 {
			errs = append(errs, fmt.Errorf("relations[%d]: ratio must not be negative", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("task %q: %w", t.ID, err)
	}
	return nil
}
