package engine

import (
	"github.com/forcegrade/forcegrade/internal/geometry"
	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/forcegrade/forcegrade/internal/names"
	"github.com/forcegrade/forcegrade/internal/scene"
	"github.com/forcegrade/forcegrade/internal/scoring"
)

// defaultSeedPoint is the scene point used when an initial force names an
// object but no point on it.
const defaultSeedPoint = "center"

// defaultSeedLength is used when an initial force gives no length.
const defaultSeedLength = 3 * scoring.GridStep

// SeedInitialForces materializes the task's pre-drawn forces. A spec with
// explicit base and tip is used as is; otherwise the anchor is looked up on
// the named scene object and the arrow is drawn len pixels along dir
// (rightwards by default).
// Specs that cannot be resolved are skipped.
func SeedInitialForces(task *models.Task, lookup scene.Lookup) []models.DrawnForce {
	if task == nil {
		return nil
	}
	if lookup == nil {
		lookup = scene.FromTask(task)
	}
	var out []models.DrawnForce
	for _, spec := range task.InitialForces {
		if f, ok := seedOne(&spec, task.Scene.Plane, lookup); ok {
			out = append(out, f)
		}
	}
	return out
}

func seedOne(spec *models.InitialForceSpec, plane *models.Plane, lookup scene.Lookup) (models.DrawnForce, bool) {
	f := models.DrawnForce{Name: spec.Name, Initial: true}

	if spec.ArrowBase != nil && spec.ArrowTip != nil {
		base, tip := *spec.ArrowBase, *spec.ArrowTip
		anchor := base
		if spec.Anchor != nil {
			anchor = *spec.Anchor
		}
		f.Anchor, f.ArrowBase, f.ArrowTip = &anchor, &base, &tip
		return f, true
	}

	var anchor geometry.Vec2
	switch {
	case spec.Anchor != nil:
		anchor = *spec.Anchor
	case spec.AnchorFrom != "":
		point := spec.Point
		if point == "" {
			point = defaultSeedPoint
		}
		p, ok := lookup.Point(spec.AnchorFrom, point)
		if !ok {
			return f, false
		}
		anchor = p
	default:
		return f, false
	}

	dir := geometry.V(1, 0)
	if spec.Dir.IsSet() {
		d, ok := spec.Dir.Resolve(plane)
		if !ok {
			return f, false
		}
		dir = d
	}
	length := spec.Len
	if length <= 0 {
		length = defaultSeedLength
	}
	base := anchor
	tip := anchor.Add(dir.Scale(length))
	f.Anchor, f.ArrowBase, f.ArrowTip = &anchor, &base, &tip
	return f, true
}

// withSeeded appends the seeded forces whose names are not already drawn.
// The caller's slice is never modified.
func withSeeded(forces, seeded []models.DrawnForce) []models.DrawnForce {
	out := append([]models.DrawnForce{}, forces...)
	for _, s := range seeded {
		present := false
		for i := range forces {
			if names.SameLabel(forces[i].Name, s.Name) {
				present = true
				break
			}
		}
		if !present {
			out = append(out, s)
		}
	}
	return out
}
