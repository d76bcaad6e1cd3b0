package validation

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTaskYAML = `id: incline
title: Block on an incline
scene:
  plane:
    angleDeg: 30
  rects:
    - width: 80
      height: 60
      bottomCenter: [300, 250]
      angleDeg: 30
expectedForces:
  - name: G
    aliases: [Fg, mg]
    dir: [0, 1]
    anchor: {type: point, ref: rect0, point: center}
  - name: "N"
    dir: planeNormal
    anchor: {type: segment, ref: rect0, segment: bottom}
relations:
  - lhs: [{name: "N"}]
    rhs: [{name: G, component: normal}]
    tol_rel: 0.2
sumF:
  x: 0
  y: 0
tolerances:
  pos_tol: 30
`

const validTaskSetYAML = `tasks:
  - id: one
    expectedForces: [{name: G, dir: [0, 1]}]
  - id: two
    expectedForces: []
`

func TestValidateTaskBytes_Valid(t *testing.T) {
	require.Empty(t, ValidateTaskBytes([]byte(validTaskYAML)))
	require.Empty(t, ValidateTaskBytes([]byte(validTaskSetYAML)))
}

func TestValidateTaskBytes_JSON(t *testing.T) {
	doc := `{"id": "hanging", "expectedForces": [{"name": "S", "dir": [0, -1]}]}`
	require.Empty(t, ValidateTaskBytes([]byte(doc)))
}

func TestValidateTaskBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing id",
			doc:  "expectedForces: []\n",
			want: "/:",
		},
		{
			name: "bad direction symbol",
			doc:  "id: x\nexpectedForces: [{name: G, dir: sideways}]\n",
			want: "/expectedForces/0/dir",
		},
		{
			name: "vector with three components",
			doc:  "id: x\nexpectedForces: [{name: G, dir: [0, 1, 2]}]\n",
			want: "/expectedForces/0/dir",
		},
		{
			name: "unknown anchor type",
			doc:  "id: x\nexpectedForces: [{name: G, anchor: {type: area, ref: rect0}}]\n",
			want: "/expectedForces/0/anchor/type",
		},
		{
			name: "negative ratio",
			doc:  "id: x\nexpectedForces: []\nrelations: [{lhs: [{name: A}], rhs: [{name: B}], ratio: -1}]\n",
			want: "/relations/0/ratio",
		},
		{
			name: "empty relation side",
			doc:  "id: x\nexpectedForces: []\nrelations: [{lhs: [], rhs: [{name: B}]}]\n",
			want: "/relations/0/lhs",
		},
		{
			name: "unknown field",
			doc:  "id: x\nexpectedForces: []\nforces: []\n",
			want: "/:",
		},
		{
			name: "empty task set",
			doc:  "tasks: []\n",
			want: "/tasks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateTaskBytes([]byte(tt.doc))
			require.NotEmpty(t, errs)
			require.Contains(t, errs[0], tt.want)
		})
	}
}

func TestValidateTaskBytes_SemanticErrors(t *testing.T) {
	doc := "id: dup\nexpectedForces: [{name: G}, {name: G}]\n"
	errs := ValidateTaskBytes([]byte(doc))
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0], `duplicate name "G"`)
}

func TestValidateTaskBytes_MalformedYAML(t *testing.T) {
	errs := ValidateTaskBytes([]byte("id: [unterminated"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateTaskBytes_Empty(t *testing.T) {
	require.Equal(t, []string{"/: empty document"}, ValidateTaskBytes(nil))
}

func TestValidateTaskFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(validTaskYAML), 0o644))
	errs, err := ValidateTaskFile(good)
	require.NoError(t, err)
	require.Empty(t, errs)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("title: no id\n"), 0o644))
	errs, err = ValidateTaskFile(bad)
	require.NoError(t, err)
	require.NotEmpty(t, errs)

	_, err = ValidateTaskFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestValidateDrawingBytes(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		doc := `taskId: incline
forces:
  - name: G
    anchor: [300, 220]
    arrowBase: [300, 220]
    arrowTip: [300, 320]
  - name: ""
    anchor: [10, 10]
`
		require.Empty(t, ValidateDrawingBytes([]byte(doc)))
	})

	t.Run("bare list", func(t *testing.T) {
		doc := `[{"name": "N", "arrowBase": [0, 0], "arrowTip": [0, -50]}]`
		require.Empty(t, ValidateDrawingBytes([]byte(doc)))
	})

	t.Run("bad point", func(t *testing.T) {
		errs := ValidateDrawingBytes([]byte("forces: [{name: G, arrowTip: [1]}]\n"))
		require.NotEmpty(t, errs)
		require.Contains(t, errs[0], "/forces/0/arrowTip")
	})
}

func TestValidateDrawingFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("gzip snapshot", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write([]byte(`[{"name": "G", "arrowBase": [0, 0], "arrowTip": [0, 100]}]`))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		path := filepath.Join(dir, "drawing.json.gz")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

		errs, err := ValidateDrawingFile(path)
		require.NoError(t, err)
		assert.Empty(t, errs)
	})

	t.Run("schema error", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("forces: [{name: G, colour: red}]\n"), 0o644))

		errs, err := ValidateDrawingFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, errs)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ValidateDrawingFile(filepath.Join(dir, "nope.yaml"))
		require.ErrorContains(t, err, "reading drawing")
	})
}
