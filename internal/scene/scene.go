// Package scene resolves anchor references such as {ref: rect0, segment:
// bottom} into concrete geometry.
package scene

//go:generate go tool mockgen -destination=mock_lookup.go -package=scene github.com/forcegrade/forcegrade/internal/scene Lookup

import (
	"fmt"
	"strings"

	"github.com/forcegrade/forcegrade/internal/geometry"
	"github.com/forcegrade/forcegrade/internal/models"
)

// Lookup resolves named points and segments on scene objects.
type Lookup interface {
	Point(ref, name string) (geometry.Vec2, bool)
	Segment(ref, name string) (geometry.Segment, bool)
}

// Target is a resolved anchor: something a drawn anchor can be measured
// against.
type Target interface {
	// Distance returns how far p is from the target.
	Distance(p geometry.Vec2) float64
	isTarget()
}

// PointTarget is an anchor at a single point.
type PointTarget struct {
	Ref string
	P   geometry.Vec2
}

func (t PointTarget) Distance(p geometry.Vec2) float64 { return geometry.Distance(p, t.P) }
func (PointTarget) isTarget()                          {}

// SegmentTarget is an anchor anywhere along a segment.
type SegmentTarget struct {
	Ref string
	S   geometry.Segment
}

func (t SegmentTarget) Distance(p geometry.Vec2) float64 { return t.S.Distance(p) }
func (SegmentTarget) isTarget()                          {}

// Resolve turns an anchor reference into a Target. It reports false when the
// reference is nil, has an unknown type, or names geometry the lookup does
// not know.
func Resolve(l Lookup, a *models.AnchorRef) (Target, bool) {
	if l == nil || a == nil {
		return nil, false
	}
	switch a.Type {
	case models.AnchorPoint:
		if p, ok := l.Point(a.Ref, a.Point); ok {
			return PointTarget{Ref: a.Ref, P: p}, true
		}
	case models.AnchorSegment:
		if s, ok := l.Segment(a.Ref, a.Segment); ok {
			return SegmentTarget{Ref: a.Ref, S: s}, true
		}
	}
	return nil, false
}

// Object is the named geometry of one scene element.
type Object struct {
	Points   map[string]geometry.Vec2
	Segments map[string]geometry.Segment
}

// Table is a Lookup backed by a map of objects keyed by reference
// ("origin", "rect0", "circle1", ...).
type Table map[string]Object

func (t Table) Point(ref, name string) (geometry.Vec2, bool) {
	obj, ok := t[ref]
	if !ok {
		return geometry.Vec2{}, false
	}
	p, ok := obj.Points[normalizeKey(name)]
	return p, ok
}

func (t Table) Segment(ref, name string) (geometry.Segment, bool) {
	obj, ok := t[ref]
	if !ok {
		return geometry.Segment{}, false
	}
	s, ok := obj.Segments[normalizeKey(name)]
	return s, ok
}

// normalizeKey accepts both top_center and topCenter spellings.
func normalizeKey(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FromTask builds the default lookup from a task's origin and scene.
func FromTask(task *models.Task) Table {
	t := Table{}
	if task == nil {
		return t
	}
	if task.Origin != nil {
		t["origin"] = Object{Points: map[string]geometry.Vec2{"center": *task.Origin}}
	}
	for i := range task.Scene.Rects {
		t[fmt.Sprintf("rect%d", i)] = RectObject(&task.Scene.Rects[i])
	}
	for i, c := range task.Scene.Circles {
		t[fmt.Sprintf("circle%d", i)] = Object{Points: map[string]geometry.Vec2{"center": c.Center}}
	}
	for i, e := range task.Scene.Ellipses {
		t[fmt.Sprintf("ellipse%d", i)] = Object{Points: map[string]geometry.Vec2{"center": e.Center}}
	}
	for i, s := range task.Scene.Segments {
		t[fmt.Sprintf("segment%d", i)] = Object{
			Points:   map[string]geometry.Vec2{"a": s.A, "b": s.B},
			Segments: map[string]geometry.Segment{"self": s},
		}
	}
	return t
}

// RectObject computes the named points and edges of a rect standing on its
// bottom center, following its own normal ("up") and tangent ("right").
func RectObject(r *models.Rect) Object {
	n, t := r.Basis()
	bc := r.BottomCenter
	halfW := t.Scale(r.Width / 2)

	bl, br := bc.Sub(halfW), bc.Add(halfW)
	tc := bc.Add(n.Scale(r.Height))
	tl, tr := tc.Sub(halfW), tc.Add(halfW)
	c := bc.Add(n.Scale(r.Height / 2))

	return Object{
		Points: map[string]geometry.Vec2{
			"center":        c,
			"bottom_center": bc,
			"bottom_left":   bl,
			"bottom_right":  br,
			"top_center":    tc,
			"top_left":      tl,
			"top_right":     tr,
			"left_middle":   c.Sub(halfW),
			"right_middle":  c.Add(halfW),
		},
		Segments: map[string]geometry.Segment{
			"bottom": geometry.Seg(bl, br),
			"top":    geometry.Seg(tl, tr),
			"left":   geometry.Seg(bl, tl),
			"right":  geometry.Seg(br, tr),
		},
	}
}
