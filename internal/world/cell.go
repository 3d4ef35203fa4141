package world

import (
	"slices"

	"github.com/udisondev/skirmish/internal/model"
)

// Object is an entity tracked by the grid.
// *model.WorldObject and *model.Unit satisfy it.
type Object interface {
	ObjectID() uint32
	Location() model.Location
	IsResource() bool
}

// Cell is a fixed-size bucket of the grid.
//
// Occupant and marker slices are copy-on-write: every Add/Remove installs a new
// slice, so a slice returned by Objects/Resources/Markers is an immutable snapshot
// that stays valid while the cell keeps changing. DO NOT modify returned slices.
type Cell struct {
	coord GridCoord
	size  int32

	objects   []Object  // faction-owned units and buildings
	resources []Object  // resource entities
	markers   []*Marker // reservation markers located in this cell

	neighbors []*Cell // up to 8, set once during grid initialization

	version uint64 // incremented on every content change
}

func newCell(coord GridCoord, size int32) *Cell {
	return &Cell{coord: coord, size: size}
}

// Coord returns the cell's lower-left corner.
func (c *Cell) Coord() GridCoord {
	return c.coord
}

// Size returns the edge length of the cell in world units.
func (c *Cell) Size() int32 {
	return c.size
}

// Contains reports whether pos lies inside the cell bounds.
func (c *Cell) Contains(pos model.Location) bool {
	minX, minY := float64(c.coord.X), float64(c.coord.Y)
	s := float64(c.size)
	return pos.X >= minX && pos.X < minX+s && pos.Y >= minY && pos.Y < minY+s
}

// Version returns the content version (bumped on Add/Remove of occupants or markers).
func (c *Cell) Version() uint64 {
	return c.version
}

// Neighbors returns the adjacent cells (immutable after grid initialization).
func (c *Cell) Neighbors() []*Cell {
	return c.neighbors
}

// IsNeighbor reports whether other is adjacent to c.
func (c *Cell) IsNeighbor(other *Cell) bool {
	return slices.Contains(c.neighbors, other)
}

// Objects returns a snapshot of the faction occupants.
func (c *Cell) Objects() []Object {
	return c.objects
}

// Resources returns a snapshot of the resource occupants.
func (c *Cell) Resources() []Object {
	return c.resources
}

// Occupants returns the faction or resource snapshot.
func (c *Cell) Occupants(wantResources bool) []Object {
	if wantResources {
		return c.resources
	}
	return c.objects
}

// Markers returns a snapshot of the reservation markers in this cell.
func (c *Cell) Markers() []*Marker {
	return c.markers
}

// Len returns the number of occupants of both kinds.
func (c *Cell) Len() int {
	return len(c.objects) + len(c.resources)
}

func (c *Cell) addObject(obj Object) {
	if obj.IsResource() {
		c.resources = appendCopy(c.resources, obj)
	} else {
		c.objects = appendCopy(c.objects, obj)
	}
	c.version++
}

func (c *Cell) removeObject(objectID uint32) bool {
	var removed bool
	c.objects, removed = removeCopy(c.objects, objectID)
	if !removed {
		c.resources, removed = removeCopy(c.resources, objectID)
	}
	if removed {
		c.version++
	}
	return removed
}

func (c *Cell) addMarker(m *Marker) {
	c.markers = appendCopy(c.markers, m)
	m.cell = c
	c.version++
}

func (c *Cell) removeMarker(m *Marker) {
	idx := slices.Index(c.markers, m)
	if idx < 0 {
		return
	}
	c.markers = slices.Concat(c.markers[:idx], c.markers[idx+1:])
	m.cell = nil
	c.version++
}

// appendCopy appends v to a fresh backing array, leaving snapshots of s intact.
func appendCopy[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

// removeCopy removes the object with the given ID preserving order of the rest.
func removeCopy(s []Object, objectID uint32) ([]Object, bool) {
	idx := slices.IndexFunc(s, func(o Object) bool { return o.ObjectID() == objectID })
	if idx < 0 {
		return s, false
	}
	return slices.Concat(s[:idx], s[idx+1:]), true
}
