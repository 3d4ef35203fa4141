package world

import (
	"fmt"
	"math"

	"github.com/udisondev/skirmish/internal/model"
)

// Config describes the static extent of a search grid in integer world units.
// Cells start at Min and are laid out in steps of CellSize while below Max, so
// when the extent is not a multiple of CellSize the last cells reach past Max.
type Config struct {
	MinX, MinY int32 // lower-left corner
	MaxX, MaxY int32 // upper-right corner (exclusive)
	CellSize   int32
}

// Validate checks that the grid can be built.
func (c Config) Validate() error {
	if c.CellSize < 1 {
		return fmt.Errorf("%w: cell size %d < 1", ErrInvalidConfig, c.CellSize)
	}
	if c.MaxX <= c.MinX || c.MaxY <= c.MinY {
		return fmt.Errorf("%w: empty extent (%d,%d)-(%d,%d)", ErrInvalidConfig, c.MinX, c.MinY, c.MaxX, c.MaxY)
	}
	return nil
}

// CoveredMax returns the upper-right corner of the area covered by cells.
// Equals (MaxX, MaxY) when the extent is a multiple of CellSize.
func (c Config) CoveredMax() (x, y int32) {
	return coveredEdge(c.MinX, c.MaxX, c.CellSize), coveredEdge(c.MinY, c.MaxY, c.CellSize)
}

// coveredEdge rounds max up to the next cell line above min.
func coveredEdge(lo, hi, size int32) int32 {
	if size < 1 || hi <= lo {
		return hi
	}
	n := (hi - lo + size - 1) / size
	return lo + n*size
}

// Contains reports whether pos lies inside a cell: [Min, CoveredMax) on the
// ground plane. NaN coordinates are never contained.
func (c Config) Contains(pos model.Location) bool {
	maxX, maxY := c.CoveredMax()
	return pos.X >= float64(c.MinX) && pos.X < float64(maxX) &&
		pos.Y >= float64(c.MinY) && pos.Y < float64(maxY)
}

// GridCoord identifies a cell by its lower-left corner in world units.
// Compared by value: it is the key of the grid's cell map.
type GridCoord struct {
	X, Y int32
}

func (g GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", g.X, g.Y)
}

// CoordFor converts a world position to the coordinate of the cell containing it.
// Formula: floor((pos - min) / size) * size + min.
// ok is false when the position lies outside every cell.
func (c Config) CoordFor(pos model.Location) (coord GridCoord, ok bool) {
	if !c.Contains(pos) {
		return GridCoord{}, false
	}
	return GridCoord{
		X: alignDown(pos.X, c.MinX, c.CellSize),
		Y: alignDown(pos.Y, c.MinY, c.CellSize),
	}, true
}

// alignDown snaps v to the grid line at or below it, relative to origin.
func alignDown(v float64, origin, size int32) int32 {
	steps := math.Floor((v - float64(origin)) / float64(size))
	return int32(steps)*size + origin
}

// neighborOffsets lists the 8 probes around a cell in a fixed order (column by column).
var neighborOffsets = [8][2]int32{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}
