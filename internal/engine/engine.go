// Package engine grades a drawing against a task. Evaluation is a pure
// function of its inputs: nothing is cached between calls and neither the
// task nor the drawing is modified.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/forcegrade/forcegrade/internal/checks"
	"github.com/forcegrade/forcegrade/internal/feedback"
	"github.com/forcegrade/forcegrade/internal/geometry"
	"github.com/forcegrade/forcegrade/internal/matching"
	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/forcegrade/forcegrade/internal/names"
	"github.com/forcegrade/forcegrade/internal/scene"
	"github.com/forcegrade/forcegrade/internal/scoring"
	"github.com/forcegrade/forcegrade/internal/utils"
)

var (
	// ErrNilTask is returned when Evaluate is called without a task.
	ErrNilTask = errors.New("engine: nil task")
	// ErrNilDrawing is returned when Evaluate is called without a drawing.
	ErrNilDrawing = errors.New("engine: nil drawing")
)

// Engine evaluates drawings with a fixed configuration.
type Engine struct {
	tol    scoring.Tolerances
	logger *slog.Logger
	lookup scene.Lookup
	seed   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTolerances sets the base tolerances. Per-task overrides are applied
// on top of them.
func WithTolerances(tol scoring.Tolerances) Option {
	return func(e *Engine) {
		e.tol = tol
	}
}

// WithLogger sets the logger that receives the debug breakdown.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSceneLookup replaces the lookup built from the task's scene.
func WithSceneLookup(l scene.Lookup) Option {
	return func(e *Engine) {
		e.lookup = l
	}
}

// WithSeedInitialForces adds the task's pre-drawn forces to the drawing
// before grading, unless a force of the same name is already present.
func WithSeedInitialForces() Option {
	return func(e *Engine) {
		e.seed = true
	}
}

// New creates an engine with default tolerances.
func New(opts ...Option) *Engine {
	e := &Engine{tol: scoring.Defaults()}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Evaluate grades drawing against task with a one-off engine.
func Evaluate(task *models.Task, drawing *models.Drawing, opts ...Option) (*models.Evaluation, error) {
	return New(opts...).Evaluate(task, drawing)
}

// Evaluate grades drawing against task.
func (e *Engine) Evaluate(task *models.Task, drawing *models.Drawing) (*models.Evaluation, error) {
	if task == nil {
		return nil, ErrNilTask
	}
	if drawing == nil {
		return nil, ErrNilDrawing
	}

	tol, err := scoring.DecodeTolerances(e.tol, task.Tolerances)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", task.ID, err)
	}

	lookup := e.lookup
	if lookup == nil {
		lookup = scene.FromTask(task)
	}

	forces := drawing.Forces
	if e.seed {
		forces = withSeeded(forces, SeedInitialForces(task, lookup))
	}
	initial := InitialFlags(task, forces)

	plane := task.Scene.Plane
	m := matching.NewMatcher(task.ExpectedForces, plane, tol)
	match := m.Match(task.ExpectedForces, forces, initial)

	results := make([]models.MatchResult, len(task.ExpectedForces))
	for i := range task.ExpectedForces {
		results[i] = scoreForce(&task.ExpectedForces[i], forces, &match, plane, lookup, tol)
	}

	in := &checks.Input{
		Task:       task,
		Forces:     forces,
		Results:    results,
		Tolerances: tol,
	}
	relations := checks.Relations(in)
	sumF := checks.Equilibrium(in)
	neat := checks.Neatness(in)
	extras := matching.Unmatched(&match, forces, initial, tol.MinForceLength)

	summary := scoring.Aggregate(scoring.Inputs{
		ExpectedCount: len(task.ExpectedForces),
		Forces:        results,
		Relations:     relations,
		HasRelations:  len(task.Relations) > 0,
		SumF:          sumF,
		Neatness:      neat,
		Extras:        extras,
	}, tol)

	if relations == nil {
		relations = []models.RelationResult{}
	}
	ev := &models.Evaluation{
		TaskID:          task.ID,
		ForceResults:    results,
		RelationResults: relations,
		Summary:         summary,
	}
	ev.Feedback = feedback.Build(&feedback.Input{
		Forces:         forces,
		Results:        results,
		Relations:      relations,
		SumF:           sumF,
		Extras:         extras,
		Initial:        initial,
		MinForceLength: tol.MinForceLength,
	})
	if ev.Feedback == nil {
		ev.Feedback = []models.Diagnostic{}
	}

	utils.EvaluationToSlog(e.logger, ev)
	return ev, nil
}

func scoreForce(
	spec *models.ExpectedForceSpec,
	forces []models.DrawnForce,
	match *matching.Result,
	plane *models.Plane,
	lookup scene.Lookup,
	tol scoring.Tolerances,
) models.MatchResult {
	r := models.MatchResult{Name: spec.Name, Index: -1, PosTol: tol.PosTol}
	pair, ok := match.Pair(spec.Name)
	if !ok {
		return r
	}
	f := &forces[pair.Drawn]

	r.Found = true
	r.Index = pair.Drawn
	r.DrawnName = f.Name
	r.NameOK = pair.NameOK

	r.DirErr = geometry.NoAngle
	if dir, ok := spec.Dir.Resolve(plane); ok {
		r.HasDir = true
		r.DirErr, r.DirTolDeg, r.DirScore = tol.Direction(f.Vec(), dir)
		r.DirOK = r.DirErr <= r.DirTolDeg
	}

	if spec.Anchor != nil && f.Anchor != nil {
		if target, ok := scene.Resolve(lookup, spec.Anchor); ok {
			d := target.Distance(*f.Anchor)
			r.PosErr = &d
			r.PosOK = d <= tol.PosTol
			r.PosScore = tol.Position(d)
		}
	}

	r.Score = scoring.ForceScore(&r).Combined
	return r
}

// InitialFlags marks the drawn forces that are pre-drawn: flagged as
// initial, or carrying the name of one of the task's initial forces.
func InitialFlags(task *models.Task, forces []models.DrawnForce) []bool {
	flags := make([]bool, len(forces))
	for i := range forces {
		if forces[i].Initial {
			flags[i] = true
			continue
		}
		for _, spec := range task.InitialForces {
			if names.SameLabel(forces[i].Name, spec.Name) {
				flags[i] = true
				break
			}
		}
	}
	return flags
}
