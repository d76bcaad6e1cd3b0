package geometry

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Vec2
// ---------------------------------------------------------------------------

func TestVec2_Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	require.Equal(t, V(4, 2), a.Add(b))
	require.Equal(t, V(2, 6), a.Sub(b))
	require.Equal(t, V(6, 8), a.Scale(2))
	require.Equal(t, -5.0, a.Dot(b))
	require.Equal(t, -10.0, a.Cross(b))
	require.Equal(t, 5.0, a.Length())
	require.Equal(t, V(-4, 3), a.Perp())
}

func TestVec2_Unit(t *testing.T) {
	t.Run("scales to length one", func(t *testing.T) {
		u := V(0, 10).Unit()
		require.InDelta(t, 0.0, u.X, 1e-12)
		require.InDelta(t, 1.0, u.Y, 1e-12)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		require.True(t, V(0, 0).Unit().IsZero())
		require.True(t, V(1e-9, 0).Unit().IsZero())
	})
}

func TestVec2_Codecs(t *testing.T) {
	t.Run("json array", func(t *testing.T) {
		var v Vec2
		require.NoError(t, json.Unmarshal([]byte(`[12.5, -3]`), &v))
		require.Equal(t, V(12.5, -3), v)

		out, err := json.Marshal(v)
		require.NoError(t, err)
		require.JSONEq(t, `[12.5,-3]`, string(out))
	})

	t.Run("yaml flow sequence", func(t *testing.T) {
		var holder struct {
			P Vec2 `yaml:"p"`
		}
		require.NoError(t, yaml.Unmarshal([]byte("p: [500, 240]\n"), &holder))
		require.Equal(t, V(500, 240), holder.P)

		out, err := yaml.Marshal(holder)
		require.NoError(t, err)
		require.Equal(t, "p: [500, 240]\n", string(out))
	})

	t.Run("wrong arity is rejected", func(t *testing.T) {
		var v Vec2
		require.Error(t, json.Unmarshal([]byte(`[1, 2, 3]`), &v))
		require.Error(t, yaml.Unmarshal([]byte(`[1]`), &v))
	})
}

// ---------------------------------------------------------------------------
// Angles & distances
// ---------------------------------------------------------------------------

func TestAngleBetweenDeg(t *testing.T) {
	cases := []struct {
		name string
		a, b Vec2
		want float64
	}{
		{"same direction", V(0, 1), V(0, 100), 0},
		{"opposite", V(1, 0), V(-3, 0), 180},
		{"perpendicular", V(1, 0), V(0, -1), 90},
		{"forty five", V(1, 1), V(1, 0), 45},
		{"zero first", V(0, 0), V(1, 0), NoAngle},
		{"zero second", V(1, 0), V(0, 0), NoAngle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, AngleBetweenDeg(tc.a, tc.b), 1e-9)
		})
	}
}

func TestAngleBetweenDeg_ClampsRoundoff(t *testing.T) {
	a := V(0.1, 0.2)
	got := AngleBetweenDeg(a, a.Scale(3))
	require.False(t, math.IsNaN(got))
	require.InDelta(t, 0.0, got, 1e-4)
}

func TestDistPointToSegment(t *testing.T) {
	a, b := V(0, 0), V(10, 0)

	require.Equal(t, 5.0, DistPointToSegment(V(5, 5), a, b))
	require.Equal(t, 0.0, DistPointToSegment(V(3, 0), a, b))
	require.Equal(t, 5.0, DistPointToSegment(V(-3, 4), a, b), "projects onto the nearer endpoint")
	require.Equal(t, 5.0, DistPointToSegment(V(3, 4), a, a), "degenerate segment")
	require.Equal(t, 2.0, Seg(a, b).Distance(V(12, 0)))
}

// ---------------------------------------------------------------------------
// Segment predicates
// ---------------------------------------------------------------------------

func TestSegmentsIntersect(t *testing.T) {
	t.Run("proper crossing", func(t *testing.T) {
		require.True(t, SegmentsIntersect(V(0, 0), V(10, 10), V(0, 10), V(10, 0)))
	})

	t.Run("touching endpoint", func(t *testing.T) {
		require.True(t, SegmentsIntersect(V(0, 0), V(10, 0), V(10, 0), V(10, 10)))
	})

	t.Run("collinear overlap", func(t *testing.T) {
		require.True(t, SegmentsIntersect(V(0, 0), V(10, 0), V(5, 0), V(15, 0)))
	})

	t.Run("collinear disjoint", func(t *testing.T) {
		require.False(t, SegmentsIntersect(V(0, 0), V(10, 0), V(11, 0), V(15, 0)))
	})

	t.Run("parallel apart", func(t *testing.T) {
		require.False(t, SegmentsIntersect(V(0, 0), V(10, 0), V(0, 5), V(10, 5)))
	})

	t.Run("would cross if extended", func(t *testing.T) {
		require.False(t, SegmentsIntersect(V(0, 0), V(4, 4), V(0, 10), V(10, 0)))
	})
}

func TestMinSegmentDistance(t *testing.T) {
	require.Equal(t, 2.0, MinSegmentDistance(V(0, 0), V(10, 0), V(5, 2), V(5, 20)))
	require.Equal(t, 0.0, MinSegmentDistance(V(0, 0), V(10, 0), V(10, 0), V(20, 5)))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0.0, Clamp(-1, 0, 1))
	require.Equal(t, 1.0, Clamp(2, 0, 1))
	require.Equal(t, 0.5, Clamp(0.5, 0, 1))
}
