package engine

import (
	"testing"

	"github.com/forcegrade/forcegrade/internal/geometry"
	"github.com/forcegrade/forcegrade/internal/models"
	"github.com/forcegrade/forcegrade/internal/utils"
	"github.com/stretchr/testify/require"
)

// boxOnTable has a weight pre-drawn from the box centre; the student draws N.
func boxOnTable() *models.Task {
	return &models.Task{
		ID: "box",
		Scene: models.Scene{Rects: []models.Rect{{
			Width: 100, Height: 100, BottomCenter: geometry.V(200, 300),
		}}},
		ExpectedForces: []models.ExpectedForceSpec{{
			Name:   "N",
			Dir:    models.Dir(0, -1),
			Anchor: &models.AnchorRef{Type: models.AnchorSegment, Ref: "rect0", Segment: "bottom"},
		}},
		InitialForces: []models.InitialForceSpec{{
			Name: "G", AnchorFrom: "rect0", Point: "center", Len: 100, Dir: models.Dir(0, 1),
		}},
		SumF: &models.SumFSpec{Y: utils.Ptr(0.0)},
	}
}

func TestSeedInitialForces(t *testing.T) {
	t.Run("derived from a scene point", func(t *testing.T) {
		seeded := SeedInitialForces(boxOnTable(), nil)
		require.Len(t, seeded, 1)
		f := seeded[0]
		require.True(t, f.Initial)
		require.Equal(t, geometry.V(200, 250), *f.Anchor)
		require.Equal(t, geometry.V(200, 350), *f.ArrowTip)
	})

	t.Run("explicit geometry", func(t *testing.T) {
		task := &models.Task{InitialForces: []models.InitialForceSpec{{
			Name:      "F",
			ArrowBase: utils.Ptr(geometry.V(0, 0)),
			ArrowTip:  utils.Ptr(geometry.V(40, 0)),
		}}}
		seeded := SeedInitialForces(task, nil)
		require.Len(t, seeded, 1)
		require.Equal(t, geometry.V(0, 0), *seeded[0].Anchor)
		require.Equal(t, 40.0, seeded[0].Length())
	})

	t.Run("defaults to a rightward arrow", func(t *testing.T) {
		task := boxOnTable()
		task.InitialForces[0].Dir = models.Direction{}
		task.InitialForces[0].Len = 0
		seeded := SeedInitialForces(task, nil)
		require.Len(t, seeded, 1)
		require.Equal(t, geometry.V(260, 250), *seeded[0].ArrowTip)
	})

	t.Run("unresolvable specs are skipped", func(t *testing.T) {
		task := &models.Task{InitialForces: []models.InitialForceSpec{
			{Name: "A", AnchorFrom: "rect9", Point: "center"},
			{Name: "B"},
			{Name: "C", Anchor: utils.Ptr(geometry.V(0, 0)), Dir: models.Direction{Kind: models.DirectionPlaneNormal}},
		}}
		require.Empty(t, SeedInitialForces(task, nil))
		require.Nil(t, SeedInitialForces(nil, nil))
	})
}

func TestEvaluate_InitialForces(t *testing.T) {
	normal := arrow("N", geometry.V(200, 300), geometry.V(200, 200))

	t.Run("seeded forces count toward equilibrium only", func(t *testing.T) {
		ev, err := Evaluate(boxOnTable(), drawing(normal), quiet(), WithSeedInitialForces())
		require.NoError(t, err)

		require.Equal(t, 0, ev.Summary.ExtrasCount)
		require.Equal(t, 1, ev.Summary.FoundCount)
		require.Equal(t, 0.0, ev.Summary.SumFResult.Y)
		require.Equal(t, 1.0, ev.Summary.SumFScore)
		require.Equal(t, 1.0, ev.Summary.FinalScore)
	})

	t.Run("without seeding the sum is off", func(t *testing.T) {
		ev, err := Evaluate(boxOnTable(), drawing(normal), quiet())
		require.NoError(t, err)
		require.Equal(t, -100.0, ev.Summary.SumFResult.Y)
		require.Equal(t, 0.0, ev.Summary.SumFScore)
		require.Equal(t, models.DiagSumOff, ev.Feedback[len(ev.Feedback)-1].Kind)
	})

	t.Run("a drawn force named like an initial force is not an extra", func(t *testing.T) {
		weight := arrow(" g ", geometry.V(200, 250), geometry.V(200, 350))
		ev, err := Evaluate(boxOnTable(), drawing(normal, weight), quiet(), WithSeedInitialForces())
		require.NoError(t, err)
		require.Equal(t, 0, ev.Summary.ExtrasCount)
		require.Equal(t, 1.0, ev.Summary.SumFScore)
	})

	t.Run("initial forces only means nothing drawn", func(t *testing.T) {
		ev, err := Evaluate(boxOnTable(), drawing(), quiet(), WithSeedInitialForces())
		require.NoError(t, err)
		require.Equal(t, models.DiagNothingDrawn, ev.Feedback[0].Kind)
	})
}

func TestInitialFlags(t *testing.T) {
	flagged := arrow("", geometry.V(0, 0), geometry.V(0, 50))
	flagged.Initial = true
	forces := []models.DrawnForce{
		arrow("g", geometry.V(0, 0), geometry.V(0, 50)),
		arrow("N", geometry.V(0, 0), geometry.V(0, -50)),
		flagged,
	}
	require.Equal(t, []bool{true, false, true}, InitialFlags(boxOnTable(), forces))
}
