package models

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/forcegrade/forcegrade/internal/geometry"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func vp(x, y float64) *geometry.Vec2 {
	v := geometry.V(x, y)
	return &v
}

func TestDrawnForce_Geometry(t *testing.T) {
	f := DrawnForce{Name: "G", Anchor: vp(0, 0), ArrowBase: vp(0, 0), ArrowTip: vp(0, 100)}
	require.True(t, f.HasGeometry())
	require.Equal(t, geometry.V(0, 100), f.Vec())
	require.Equal(t, 100.0, f.Length())
	require.True(t, f.IsCompleted(0))
	require.False(t, f.IsCompleted(150))

	short := DrawnForce{Anchor: vp(0, 0), ArrowBase: vp(0, 0), ArrowTip: vp(10, 0)}
	require.False(t, short.IsCompleted(0), "shorter than the default minimum")

	partial := DrawnForce{Anchor: vp(0, 0), ArrowBase: vp(0, 0)}
	require.False(t, partial.HasGeometry())
	require.Equal(t, geometry.Vec2{}, partial.Vec())
	require.False(t, partial.IsCompleted(0))
}

const drawingYAML = `
taskId: incline-1
forces:
  - name: G
    anchor: [500, 340]
    arrowBase: [500, 340]
    arrowTip: [500, 440]
  - name: ""
    anchor: [10, 10]
`

func TestParseDrawing(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		d, err := ParseDrawing([]byte(drawingYAML))
		require.NoError(t, err)
		require.Equal(t, "incline-1", d.TaskID)
		require.Len(t, d.Forces, 2)
		require.True(t, d.Forces[0].IsCompleted(0))
		require.Nil(t, d.Forces[1].ArrowTip)
	})

	t.Run("bare list", func(t *testing.T) {
		d, err := ParseDrawing([]byte(`[{"name":"F","anchor":[0,0],"arrowBase":[0,0],"arrowTip":[40,0],"initial":true}]`))
		require.NoError(t, err)
		require.Len(t, d.Forces, 1)
		require.True(t, d.Forces[0].Initial)
	})

	t.Run("empty", func(t *testing.T) {
		d, err := ParseDrawing(nil)
		require.NoError(t, err)
		require.Empty(t, d.Forces)
	})
}

func TestLoadDrawing_Compressed(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(drawingYAML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zst := enc.EncodeAll([]byte(drawingYAML), nil)
	require.NoError(t, enc.Close())

	for name, content := range map[string][]byte{
		"plain.yaml":    []byte(drawingYAML),
		"drawing.gz":    gz.Bytes(),
		"drawing.zst":   zst,
		"misnamed.json": gz.Bytes(),
	} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(p, content, 0644))

			d, err := LoadDrawing(p)
			require.NoError(t, err)
			require.Equal(t, "incline-1", d.TaskID)
			require.Len(t, d.Forces, 2)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDrawing(filepath.Join(dir, "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		p := filepath.Join(dir, "corrupt.gz")
		require.NoError(t, os.WriteFile(p, []byte{0x1f, 0x8b, 0x00}, 0644))
		_, err := LoadDrawing(p)
		require.Error(t, err)
	})
}

func TestDecompress(t *testing.T) {
	gzipped := func(t *testing.T, data []byte) []byte {
		t.Helper()
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write(data)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		return buf.Bytes()
	}

	t.Run("plain passes through", func(t *testing.T) {
		out, err := Decompress([]byte(drawingYAML))
		require.NoError(t, err)
		require.Equal(t, drawingYAML, string(out))
	})

	t.Run("truncated gzip stream", func(t *testing.T) {
		gz := gzipped(t, []byte(drawingYAML))
		_, err := Decompress(gz[:len(gz)-4])
		require.ErrorContains(t, err, "decompressing gzip stream")
	})

	t.Run("gzip over the size cap", func(t *testing.T) {
		_, err := Decompress(gzipped(t, make([]byte, MaxSnapshotSize+1)))
		require.ErrorIs(t, err, ErrSnapshotTooLarge)
	})

	t.Run("gzip at the size cap", func(t *testing.T) {
		out, err := Decompress(gzipped(t, make([]byte, MaxSnapshotSize)))
		require.NoError(t, err)
		require.Len(t, out, MaxSnapshotSize)
	})
}
