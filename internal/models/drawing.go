package models

import "github.com/forcegrade/forcegrade/internal/geometry"

// DefaultMinForceLength is the shortest arrow that counts as a completed force.
const DefaultMinForceLength = 15.0

// DrawnForce is one arrow on the student's drawing. Any of its points may be
// missing while the arrow is still being drawn.
type DrawnForce struct {
	Name      string         `yaml:"name,omitempty" json:"name"`
	Anchor    *geometry.Vec2 `yaml:"anchor,omitempty" json:"anchor,omitempty"`
	ArrowBase *geometry.Vec2 `yaml:"arrowBase,omitempty" json:"arrowBase,omitempty"`
	ArrowTip  *geometry.Vec2 `yaml:"arrowTip,omitempty" json:"arrowTip,omitempty"`
	// Initial marks a force that was pre-drawn by the task.
	Initial bool `yaml:"initial,omitempty" json:"initial,omitempty"`
}

// HasGeometry reports whether anchor, base and tip are all present.
func (f *DrawnForce) HasGeometry() bool {
	return f.Anchor != nil && f.ArrowBase != nil && f.ArrowTip != nil
}

// Vec returns tip - base, or the zero vector when either is missing.
func (f *DrawnForce) Vec() geometry.Vec2 {
	if f.ArrowBase == nil || f.ArrowTip == nil {
		return geometry.Vec2{}
	}
	return f.ArrowTip.Sub(*f.ArrowBase)
}

// Length is the arrow's magnitude.
func (f *DrawnForce) Length() float64 {
	return f.Vec().Length()
}

// IsCompleted reports whether the force has full geometry and is at least
// minLen long. A non-positive minLen selects DefaultMinForceLength.
func (f *DrawnForce) IsCompleted(minLen float64) bool {
	if minLen <= 0 {
		minLen = DefaultMinForceLength
	}
	return f.HasGeometry() && f.Length() >= minLen
}

// Segment returns the base-to-tip segment. Callers check HasGeometry first.
func (f *DrawnForce) Segment() geometry.Segment {
	return geometry.Seg(*f.ArrowBase, *f.ArrowTip)
}

// Drawing is a snapshot of the drawing surface at the moment of a check.
type Drawing struct {
	TaskID string       `yaml:"taskId,omitempty" json:"taskId,omitempty"`
	Forces []DrawnForce `yaml:"forces" json:"forces"`
}
