package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeFailureError(t *testing.T) {
	err := &GradeFailureError{Message: "gravity: score 0.40 is below the threshold 0.80"}
	assert.Equal(t, "gravity: score 0.40 is below the threshold 0.80", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"GradeFailureError", &GradeFailureError{Message: "below threshold"}, true},
		{"regular error", errors.New("config error"), false},
		{"joined GradeFailureError", errors.Join(&GradeFailureError{Message: "below"}, errors.New("context")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gradeFailureErr *GradeFailureError
			assert.Equal(t, tt.want, errors.As(tt.err, &gradeFailureErr))
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"evaluate", "validate", "tasks"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

const gravityTaskYAML = `id: gravity
title: Falling ball
origin: [0, 0]
expectedForces:
  - name: G
    dir: [0, 1]
    anchor: {type: point, ref: origin, point: center}
`

const taskSetYAML = `tasks:
  - id: gravity
    title: Falling ball
    origin: [0, 0]
    expectedForces:
      - name: G
        dir: [0, 1]
        anchor: {type: point, ref: origin, point: center}
  - id: resting
    title: Box resting on a table
    origin: [0, 0]
    expectedForces:
      - {name: G, dir: [0, 1]}
      - {name: "N", dir: [0, -1]}
    relations:
      - lhs: [{name: G}]
        rhs: [{name: "N"}]
    sumF: {x: 0, y: 0}
`

const perfectDrawingYAML = `taskId: gravity
forces:
  - name: G
    anchor: [0, 0]
    arrowBase: [0, 0]
    arrowTip: [0, 100]
`

const unnamedDrawingJSON = `[{"name": "", "anchor": [0, 0], "arrowBase": [0, 0], "arrowTip": [0, 100]}]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
