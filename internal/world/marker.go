package world

import "github.com/udisondev/skirmish/internal/model"

// Marker is a reservation claim on a world position for an in-flight move order.
// Disabled markers are ignored by IsPositionReserved; a unit disables its own
// marker before searching for a new destination so it does not block itself.
type Marker struct {
	id      uint32
	pos     model.Location
	layer   model.MovementLayer
	enabled bool
	cell    *Cell
}

// ID returns the marker ID.
func (m *Marker) ID() uint32 {
	return m.id
}

// Location returns the reserved position.
func (m *Marker) Location() model.Location {
	return m.pos
}

// Layer returns the movement layer the reservation applies to.
func (m *Marker) Layer() model.MovementLayer {
	return m.layer
}

// Enabled reports whether the marker currently claims its position.
func (m *Marker) Enabled() bool {
	return m.enabled
}

// SetEnabled toggles the claim.
func (m *Marker) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Cell returns the cell holding the marker (nil once removed).
func (m *Marker) Cell() *Cell {
	return m.cell
}

// blocks reports whether the marker claims pos on layer within radius (inclusive).
func (m *Marker) blocks(pos model.Location, radiusSq float64, layer model.MovementLayer) bool {
	return m.enabled && m.layer == layer && m.pos.DistanceSquared(pos) <= radiusSq
}
