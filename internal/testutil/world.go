package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/world"
)

// NewTestGrid builds a search grid and fails the test on configuration errors.
func NewTestGrid(t testing.TB, minX, minY, maxX, maxY, cellSize int32) *world.Grid {
	t.Helper()
	g, err := world.NewGrid(world.Config{
		MinX:     minX,
		MinY:     minY,
		MaxX:     maxX,
		MaxY:     maxY,
		CellSize: cellSize,
	})
	require.NoError(t, err)
	return g
}

// NewOpenGrid builds the default (0,0)-(100,100) grid with 10-unit cells.
func NewOpenGrid(t testing.TB) *world.Grid {
	t.Helper()
	return NewTestGrid(t, 0, 0, 100, 100, 10)
}
