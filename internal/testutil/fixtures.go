package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/world"
)

// NewTerrain builds a height field of 1-unit cells with origin (0,0) covering at
// least width × height world units. Cells for which blocked returns true get
// AreaNone, all others AreaGround at the given height.
func NewTerrain(t testing.TB, width, height int32, z int16, blocked func(x, y int32) bool) *geo.Engine {
	t.Helper()
	e := geo.NewEngine(geo.Config{CellSize: 1})
	bx := (width + geo.BlockCellsX - 1) / geo.BlockCellsX
	by := (height + geo.BlockCellsY - 1) / geo.BlockCellsY
	e.Resize(bx, by)

	for x := range bx {
		for y := range by {
			b := geo.NewComplexBlock(z, model.AreaGround)
			if blocked != nil {
				for cx := range int32(geo.BlockCellsX) {
					for cy := range int32(geo.BlockCellsY) {
						if blocked(x*geo.BlockCellsX+cx, y*geo.BlockCellsY+cy) {
							b.SetCell(cx, cy, z, model.AreaNone)
						}
					}
				}
			}
			require.NoError(t, e.SetBlock(x, y, b))
		}
	}
	return e
}

// NewUnits creates n ground units of the given radius at loc.
func NewUnits(gen *world.ObjectIDGenerator, n int, loc model.Location, radius float64) []*model.Unit {
	units := make([]*model.Unit, n)
	for i := range units {
		units[i] = model.NewUnit(gen.NextObjectID(), "unit", 0, loc, radius, false, model.AreaGround)
	}
	return units
}
