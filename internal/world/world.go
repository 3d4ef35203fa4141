package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/skirmish/internal/model"
)

var (
	// ErrInvalidConfig is returned by NewGrid for a grid that cannot be built.
	ErrInvalidConfig = errors.New("invalid search grid configuration")
	// ErrCellNotFound is returned when a position lies outside the grid extent.
	ErrCellNotFound = errors.New("search cell not found")
)

// Grid is a uniform partition of the playable area into cells.
//
// Cells are created once in NewGrid and never added or removed afterwards.
// Grid is not safe for concurrent use: a simulation session owns its grid and
// mutates and queries it from its update loop only.
type Grid struct {
	cfg   Config
	cells map[GridCoord]*Cell
	order []*Cell // cells in generation order (x-major)

	placed  map[uint32]*Cell // objectID → cell currently holding the object
	markers int
	ids     *ObjectIDGenerator
}

// NewGrid builds every cell of the configured extent and links neighbors.
func NewGrid(cfg Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		cfg:    cfg,
		cells:  make(map[GridCoord]*Cell),
		placed: make(map[uint32]*Cell),
		ids:    NewObjectIDGenerator(),
	}
	g.initialize()

	slog.Debug("search grid initialized",
		"lower_left", GridCoord{cfg.MinX, cfg.MinY},
		"upper_right", GridCoord{cfg.MaxX, cfg.MaxY},
		"cell_size", cfg.CellSize,
		"cells", len(g.order))
	return g, nil
}

// initialize generates all cells, then links neighbors (two passes: a neighbor
// can only be probed once every cell exists).
func (g *Grid) initialize() {
	s := g.cfg.CellSize
	for x := g.cfg.MinX; x < g.cfg.MaxX; x += s {
		for y := g.cfg.MinY; y < g.cfg.MaxY; y += s {
			c := newCell(GridCoord{x, y}, s)
			g.cells[c.coord] = c
			g.order = append(g.order, c)
		}
	}

	for _, c := range g.order {
		neighbors := make([]*Cell, 0, 8)
		for _, off := range neighborOffsets {
			probe := GridCoord{X: c.coord.X + off[0]*s, Y: c.coord.Y + off[1]*s}
			if n, ok := g.cells[probe]; ok {
				neighbors = append(neighbors, n)
			}
		}
		c.neighbors = neighbors
	}
}

// Config returns the grid configuration.
func (g *Grid) Config() Config {
	return g.cfg
}

// CellSize returns the edge length of every cell.
func (g *Grid) CellSize() int32 {
	return g.cfg.CellSize
}

// CellFor returns the cell containing pos.
// Returns ErrCellNotFound if pos lies outside every cell of the grid.
func (g *Grid) CellFor(pos model.Location) (*Cell, error) {
	coord, ok := g.cfg.CoordFor(pos)
	if !ok {
		return nil, fmt.Errorf("%w: position (%.2f, %.2f)", ErrCellNotFound, pos.X, pos.Y)
	}
	c, ok := g.cells[coord]
	if !ok {
		return nil, fmt.Errorf("%w: coordinate %s", ErrCellNotFound, coord)
	}
	return c, nil
}

// Cell returns the cell with the given lower-left corner.
func (g *Grid) Cell(coord GridCoord) (*Cell, bool) {
	c, ok := g.cells[coord]
	return c, ok
}

// Cells returns all cells in generation order (immutable, DO NOT modify).
func (g *Grid) Cells() []*Cell {
	return g.order
}

// CellCount returns the total number of cells.
func (g *Grid) CellCount() int {
	return len(g.order)
}

// ObjectCount returns the number of registered occupants.
func (g *Grid) ObjectCount() int {
	return len(g.placed)
}

// MarkerCount returns the number of live reservation markers.
func (g *Grid) MarkerCount() int {
	return g.markers
}

// Register adds obj to the cell containing its current position.
// An object already registered elsewhere is moved, so it is held by at most one cell.
// Out-of-bounds objects are not tracked; Register then returns false and drops
// any previous registration of the object.
func (g *Grid) Register(obj Object) bool {
	cell, err := g.CellFor(obj.Location())
	if err != nil {
		g.UnregisterID(obj.ObjectID())
		slog.Debug("register skipped", "objectID", obj.ObjectID(), "err", err)
		return false
	}

	if prev, ok := g.placed[obj.ObjectID()]; ok {
		if prev == cell {
			return true
		}
		prev.removeObject(obj.ObjectID())
	}

	cell.addObject(obj)
	g.placed[obj.ObjectID()] = cell
	return true
}

// Unregister removes obj from the cell holding it. Unknown objects are a no-op.
func (g *Grid) Unregister(obj Object) bool {
	return g.UnregisterID(obj.ObjectID())
}

// UnregisterID removes the object with the given ID from the grid.
func (g *Grid) UnregisterID(objectID uint32) bool {
	cell, ok := g.placed[objectID]
	if !ok {
		return false
	}
	cell.removeObject(objectID)
	delete(g.placed, objectID)
	return true
}

// Relocate re-buckets obj after its position changed.
// Reports whether the object changed cell. An object that left the grid extent
// is unregistered.
func (g *Grid) Relocate(obj Object) bool {
	prev, tracked := g.placed[obj.ObjectID()]
	cell, err := g.CellFor(obj.Location())
	if err != nil {
		if tracked {
			g.UnregisterID(obj.ObjectID())
			return true
		}
		return false
	}
	if tracked && prev == cell {
		return false
	}
	return g.Register(obj)
}

// CellOf returns the cell currently holding the object.
func (g *Grid) CellOf(objectID uint32) (*Cell, bool) {
	c, ok := g.placed[objectID]
	return c, ok
}

// AddMarker creates an enabled reservation marker at pos.
func (g *Grid) AddMarker(pos model.Location, layer model.MovementLayer) (*Marker, error) {
	cell, err := g.CellFor(pos)
	if err != nil {
		return nil, fmt.Errorf("adding marker: %w", err)
	}
	m := &Marker{
		id:      g.ids.NextMarkerID(),
		pos:     pos,
		layer:   layer,
		enabled: true,
	}
	cell.addMarker(m)
	g.markers++
	return m, nil
}

// MoveMarker places m at pos, re-bucketing it when it crosses a cell boundary.
// On error the marker keeps its previous position.
func (g *Grid) MoveMarker(m *Marker, pos model.Location) error {
	cell, err := g.CellFor(pos)
	if err != nil {
		return fmt.Errorf("moving marker %d: %w", m.id, err)
	}
	if m.cell == nil {
		g.markers++
		cell.addMarker(m)
	} else if m.cell != cell {
		m.cell.removeMarker(m)
		cell.addMarker(m)
	}
	m.pos = pos
	return nil
}

// RemoveMarker deletes m from the grid. Removing twice is a no-op.
func (g *Grid) RemoveMarker(m *Marker) {
	if m == nil || m.cell == nil {
		return
	}
	m.cell.removeMarker(m)
	m.enabled = false
	g.markers--
}
