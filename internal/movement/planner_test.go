package movement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/testutil"
	"github.com/udisondev/skirmish/internal/world"
)

var groundUnit = Profile{Radius: 1, Areas: model.AreaGround}

// PlannerSuite runs generation scenarios on a fresh (0,0)-(100,100) grid.
type PlannerSuite struct {
	suite.Suite
	grid    *world.Grid
	planner *Planner
	ids     *world.ObjectIDGenerator
}

func (s *PlannerSuite) SetupTest() {
	s.grid = testutil.NewOpenGrid(s.T())
	s.planner = NewPlanner(s.grid, nil)
	s.ids = world.NewObjectIDGenerator()
}

func TestPlannerSuite(t *testing.T) {
	suite.Run(t, new(PlannerSuite))
}

func positions(dests []Destination) []model.Location {
	out := make([]model.Location, len(dests))
	for i, d := range dests {
		out[i] = d.Position
	}
	return out
}

func (s *PlannerSuite) TestSingleUnitTakesExactTarget() {
	dests, err := s.planner.Generate(Request{
		Profile:   groundUnit,
		Count:     1,
		Target:    model.NewLocation(50, 50, 0),
		Formation: Circle(3), // spacing is ignored for a single unit
	})
	s.Require().NoError(err)
	s.Require().Len(dests, 1)
	s.Equal(model.NewLocation(50, 50, 0), dests[0].Position)
	s.Equal(FormationCircle, dests[0].Placement)
}

func (s *PlannerSuite) TestSingleUnitSkipsReservedTarget() {
	_, err := s.grid.AddMarker(model.NewLocation(50.5, 50, 0), model.LayerGround)
	s.Require().NoError(err)

	dests, err := s.planner.Generate(Request{
		Profile:   groundUnit,
		Count:     1,
		Target:    model.NewLocation(50, 50, 0),
		Formation: Circle(0),
	})
	s.Require().NoError(err)
	s.Require().Len(dests, 1)

	// Target and the 0° candidate of ring 1 are within the marker radius,
	// the 120° candidate is the first clear one.
	want := model.NewLocation(50+math.Cos(2*math.Pi/3), 50+math.Sin(2*math.Pi/3), 0)
	s.InDelta(want.X, dests[0].Position.X, 1e-9)
	s.InDelta(want.Y, dests[0].Position.Y, 1e-9)
}

func (s *PlannerSuite) TestCircleFormationIsNonOverlapping() {
	target := model.NewLocation(50, 50, 0)
	dests, err := s.planner.Generate(Request{
		Profile:   groundUnit,
		Count:     7,
		Target:    target,
		Formation: Circle(0),
	})
	s.Require().NoError(err)
	s.Require().Len(dests, 7)

	got := positions(dests)
	s.Equal(target, got[0], "the first ring of radius 0 is the target itself")
	for _, p := range got[1:] {
		// Ring 1 overlaps the center unit, so the remaining six sit on ring 2.
		s.InDelta(2.0, p.Distance(target), 1e-9)
	}
	testutil.AssertSeparated(s.T(), got, 2*groundUnit.Radius)
}

func (s *PlannerSuite) TestCircleFormationWithSpacing() {
	dests, err := s.planner.Generate(Request{
		Profile:   groundUnit,
		Count:     12,
		Target:    model.NewLocation(50, 50, 0),
		Formation: Circle(1.5),
		Offset:    3,
	})
	s.Require().NoError(err)
	s.Len(dests, 12)
	testutil.AssertSeparated(s.T(), positions(dests), 2*groundUnit.Radius)
	for _, d := range dests {
		s.GreaterOrEqual(d.Position.Distance(model.NewLocation(50, 50, 0)), 3.0-1e-9, "offset keeps units off the target radius")
	}
}

func (s *PlannerSuite) TestRowFormationFromSouth() {
	grid := testutil.NewTestGrid(s.T(), -50, -50, 50, 50, 10)
	planner := NewPlanner(grid, nil)

	dests, err := planner.Generate(Request{
		Profile:   groundUnit,
		Count:     5,
		Target:    model.NewLocation(0, 0, 0),
		Formation: Row(1, 2, 3),
		Direction: model.NewLocation(0, 1, 0),
	})
	s.Require().NoError(err)
	s.Require().Len(dests, 5)

	want := []model.Location{
		model.NewLocation(-2, 0, 0), model.NewLocation(2, 0, 0),
		model.NewLocation(-2, -2, 0), model.NewLocation(2, -2, 0),
		model.NewLocation(-2, -4, 0),
	}
	rows := make(map[float64][]float64)
	for i, d := range dests {
		s.Equal(FormationRow, d.Placement)
		s.InDelta(want[i].X, d.Position.X, 1e-9)
		s.InDelta(want[i].Y, d.Position.Y, 1e-9)
		y := math.Round(d.Position.Y)
		rows[y] = append(rows[y], d.Position.X)
	}

	s.GreaterOrEqual(len(rows), 3)
	for y, xs := range rows {
		if len(xs) == 2 {
			s.InDelta(0, xs[0]+xs[1], 1e-9, "row %v is symmetric around the approach axis", y)
		}
	}
	testutil.AssertSeparated(s.T(), positions(dests), 2*groundUnit.Radius)
}

func (s *PlannerSuite) TestRowFallsBackToCircle() {
	// Everything below y=49 is blocked: only the first row fits.
	nav := testutil.NewTerrain(s.T(), 100, 100, 0, func(_, y int32) bool { return y < 49 })
	planner := NewPlanner(s.grid, nav)

	dests, err := planner.Generate(Request{
		Profile:   groundUnit,
		Count:     5,
		Target:    model.NewLocation(50, 50, 0),
		Formation: Row(1, 2, 3),
		Direction: model.NewLocation(0, 1, 0),
	})
	s.Require().NoError(err)
	s.Require().Len(dests, 5)

	placements := make([]FormationKind, len(dests))
	for i, d := range dests {
		placements[i] = d.Placement
	}
	s.Equal([]FormationKind{FormationRow, FormationRow, FormationCircle, FormationCircle, FormationCircle}, placements)

	// Three empty rows moved the offset to 8 before the first ring.
	s.InDelta(58, dests[2].Position.X, 1e-9)
	s.InDelta(50, dests[2].Position.Y, 1e-9)
	for _, d := range dests {
		s.GreaterOrEqual(d.Position.Y, 49.0)
	}
	testutil.AssertSeparated(s.T(), positions(dests), 2*groundUnit.Radius)
}

func (s *PlannerSuite) TestRowFullyBlockedUsesCircleOnly() {
	nav := testutil.NewTerrain(s.T(), 100, 100, 0, func(_, y int32) bool { return y < 51 })
	planner := NewPlanner(s.grid, nav)

	dests, err := planner.Generate(Request{
		Profile:   groundUnit,
		Count:     4,
		Target:    model.NewLocation(50, 50, 0),
		Formation: Row(1, 3, 2),
		Direction: model.NewLocation(0, 1, 0),
	})
	s.Require().NoError(err)
	s.Require().Len(dests, 4)
	for _, d := range dests {
		s.Equal(FormationCircle, d.Placement)
		s.GreaterOrEqual(d.Position.Y, 51.0)
	}
}

func (s *PlannerSuite) TestTerrainHeightAndSnapping() {
	nav := testutil.NewTerrain(s.T(), 100, 100, 12, func(x, y int32) bool { return x == 50 && y == 50 })
	planner := NewPlanner(s.grid, nav)

	dests, err := planner.Generate(Request{
		Profile:   groundUnit,
		Count:     1,
		Target:    model.NewLocation(50.5, 50.5, 0),
		Formation: Circle(0),
	})
	s.Require().NoError(err)
	s.Require().Len(dests, 1)

	// Blocked target cell: the sampler snaps to the nearest walkable cell center.
	p := dests[0].Position
	s.InDelta(1.0, p.Distance(model.NewLocation(50.5, 50.5, 0)), 1e-9)
	s.Equal(12.0, p.Z)
}

func (s *PlannerSuite) TestGridErrorAbortsGeneration() {
	nav := testutil.NewTerrain(s.T(), 100, 100, 0, func(_, _ int32) bool { return true })
	planner := NewPlanner(s.grid, nav)

	dests, err := planner.Generate(Request{
		Profile:   groundUnit,
		Count:     2,
		Target:    model.NewLocation(50, 50, 0),
		Formation: Circle(0),
	})
	s.ErrorIs(err, world.ErrCellNotFound)
	s.Nil(dests, "no partial result")

	_, err = s.planner.Generate(Request{
		Profile:   groundUnit,
		Count:     1,
		Target:    model.NewLocation(150, 50, 0),
		Formation: Row(0, 2, 2),
	})
	s.ErrorIs(err, world.ErrCellNotFound)
}

func (s *PlannerSuite) TestFlyingUnitsIgnoreTerrainAndGroundMarkers() {
	nav := testutil.NewTerrain(s.T(), 100, 100, 0, func(_, _ int32) bool { return true })
	planner := NewPlanner(s.grid, nav)
	_, err := s.grid.AddMarker(model.NewLocation(50, 50, 0), model.LayerGround)
	s.Require().NoError(err)

	dests, err := planner.Generate(Request{
		Profile:   Profile{Radius: 1, Flying: true},
		Count:     1,
		Target:    model.NewLocation(50, 50, 0),
		Formation: Circle(0),
	})
	s.Require().NoError(err)
	s.Equal(model.NewLocation(50, 50, 0), dests[0].Position)
}

func (s *PlannerSuite) TestRequestValidation() {
	target := model.NewLocation(50, 50, 0)

	_, err := s.planner.Generate(Request{Profile: groundUnit, Count: 0, Target: target, Formation: Circle(0)})
	s.ErrorIs(err, ErrNoUnits)

	_, err = s.planner.Generate(Request{Profile: Profile{Radius: 0}, Count: 1, Target: target, Formation: Circle(0)})
	s.ErrorIs(err, ErrInvalidProfile)

	_, err = s.planner.Generate(Request{Profile: groundUnit, Count: 2, Target: target, Formation: Row(1, 0, 1)})
	s.ErrorIs(err, ErrInvalidFormation)
}

func (s *PlannerSuite) TestOffsetValidation() {
	tests := []struct {
		name   string
		offset float64
	}{
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
		{"negative", -1},
		{"step lost in rounding", 1e300},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			dests, err := s.planner.Generate(Request{
				Profile:   groundUnit,
				Count:     2,
				Target:    model.NewLocation(50, 50, 0),
				Formation: Circle(0),
				Offset:    tt.offset,
			})
			s.ErrorIs(err, ErrInvalidOffset)
			s.Nil(dests)
		})
	}
}

func (s *PlannerSuite) TestRowOnOpenGroundNeverFallsBack() {
	// Spacing below the radius: consecutive rows are radius+spacing apart,
	// which must not count as occupied.
	dests, err := s.planner.Generate(Request{
		Profile:   groundUnit,
		Count:     6,
		Target:    model.NewLocation(50, 50, 0),
		Formation: Row(0.5, 3, 1),
		Direction: model.NewLocation(0, 1, 0),
	})
	s.Require().NoError(err)
	s.Require().Len(dests, 6)

	want := []model.Location{
		model.NewLocation(50, 50, 0), model.NewLocation(47, 50, 0), model.NewLocation(53, 50, 0),
		model.NewLocation(50, 48.5, 0), model.NewLocation(47, 48.5, 0), model.NewLocation(53, 48.5, 0),
	}
	for i, d := range dests {
		s.Equal(FormationRow, d.Placement, "destination %d", i)
		s.InDelta(want[i].X, d.Position.X, 1e-9)
		s.InDelta(want[i].Y, d.Position.Y, 1e-9)
		s.LessOrEqual(d.Position.Y, 50.0, "rows stay behind the target")
	}
}

func (s *PlannerSuite) TestBatchClaimsUseAgentRadius() {
	dests, err := s.planner.Generate(Request{
		Profile:   groundUnit,
		Count:     3,
		Target:    model.NewLocation(50, 50, 0),
		Formation: Circle(0.5),
	})
	s.Require().NoError(err)
	s.Require().Len(dests, 3)

	// Step 1.5: the first ring after the target lies 1.5 away, outside the
	// target unit's claim, and holds three candidates 120° apart.
	s.Equal(model.NewLocation(50, 50, 0), dests[0].Position)
	for _, d := range dests[1:] {
		s.InDelta(1.5, d.Position.Distance(model.NewLocation(50, 50, 0)), 1e-9)
	}
	testutil.AssertSeparated(s.T(), positions(dests), groundUnit.Radius)
}

func (s *PlannerSuite) TestIsPositionClear() {
	nav := testutil.NewTerrain(s.T(), 100, 100, 5, func(x, y int32) bool { return x < 10 })
	planner := NewPlanner(s.grid, nav)
	_, err := s.grid.AddMarker(model.NewLocation(30, 30, 0), model.LayerGround)
	s.Require().NoError(err)

	pos, clear, err := planner.IsPositionClear(model.NewLocation(40, 40, 0), groundUnit)
	s.Require().NoError(err)
	s.True(clear)
	s.Equal(model.NewLocation(40, 40, 5), pos)

	_, clear, err = planner.IsPositionClear(model.NewLocation(30.5, 30, 0), groundUnit)
	s.Require().NoError(err)
	s.False(clear, "reserved")

	_, clear, err = planner.IsPositionClear(model.NewLocation(30.5, 30, 0), Profile{Radius: 1, Flying: true})
	s.Require().NoError(err)
	s.True(clear, "ground marker does not reserve the air layer")

	_, clear, err = planner.IsPositionClear(model.NewLocation(5, 40, 0), groundUnit)
	s.Require().NoError(err)
	s.False(clear, "no walkable terrain within radius")

	_, _, err = planner.IsPositionClear(model.NewLocation(-1, 40, 0), groundUnit)
	s.ErrorIs(err, world.ErrCellNotFound)
}
