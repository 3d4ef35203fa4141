package movement

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/world"
)

// Assignment is a committed move order for one unit.
type Assignment struct {
	Unit        *model.Unit
	Destination Destination
	Marker      *world.Marker
}

// Move generates destinations for units around target and commits them.
//
// The units' own reservations are disabled while the destinations are searched
// so a unit never blocks itself. Rows face the direction from the units'
// centroid to the target. Units receive destinations in the order given; on
// success every unit's marker is placed at its destination and enabled. On
// failure no reservation changes: previous markers keep their position and state.
func (p *Planner) Move(units []*model.Unit, target model.Location, formation Formation, offset float64) ([]Assignment, error) {
	if len(units) == 0 {
		return nil, ErrNoUnits
	}

	restore := p.suspendMarkers(units)

	dests, err := p.Generate(Request{
		Profile:   ProfileOf(units[0]),
		Count:     len(units),
		Target:    target,
		Formation: formation,
		Offset:    offset,
		Direction: target.Sub(centroid(units)),
	})
	if err == nil {
		err = p.checkCommit(dests)
	}
	if err != nil {
		restore()
		slog.Debug("move order dropped",
			"units", len(units),
			"target_x", target.X,
			"target_y", target.Y,
			"formation", formation.Kind,
			"err", err)
		return nil, fmt.Errorf("moving %d units: %w", len(units), err)
	}

	assignments := make([]Assignment, len(units))
	for i, u := range units {
		m, err := p.reserve(u, dests[i].Position)
		if err != nil {
			// Unreachable after checkCommit: every destination maps to a cell.
			return nil, fmt.Errorf("reserving destination of unit %d: %w", u.ObjectID(), err)
		}
		assignments[i] = Assignment{Unit: u, Destination: dests[i], Marker: m}
	}
	return assignments, nil
}

// Marker returns the reservation of the unit's current order.
func (p *Planner) Marker(unitID uint32) (*world.Marker, bool) {
	m, ok := p.markers[unitID]
	return m, ok
}

// Release drops the unit's reservation (order finished, unit destroyed).
func (p *Planner) Release(unitID uint32) {
	m, ok := p.markers[unitID]
	if !ok {
		return
	}
	p.grid.RemoveMarker(m)
	delete(p.markers, unitID)
}

// suspendMarkers disables the enabled markers of units and returns a func that
// re-enables them.
func (p *Planner) suspendMarkers(units []*model.Unit) func() {
	var suspended []*world.Marker
	for _, u := range units {
		if m, ok := p.markers[u.ObjectID()]; ok && m.Enabled() {
			m.SetEnabled(false)
			suspended = append(suspended, m)
		}
	}
	return func() {
		for _, m := range suspended {
			m.SetEnabled(true)
		}
	}
}

// checkCommit verifies every destination can hold a marker before any is moved.
func (p *Planner) checkCommit(dests []Destination) error {
	for _, d := range dests {
		if _, err := p.grid.CellFor(d.Position); err != nil {
			return err
		}
	}
	return nil
}

// reserve moves (or creates) the unit's marker to pos and enables it.
func (p *Planner) reserve(u *model.Unit, pos model.Location) (*world.Marker, error) {
	m, ok := p.markers[u.ObjectID()]
	if !ok || m.Layer() != u.Layer() {
		if ok {
			p.grid.RemoveMarker(m)
		}
		created, err := p.grid.AddMarker(pos, u.Layer())
		if err != nil {
			return nil, err
		}
		p.markers[u.ObjectID()] = created
		return created, nil
	}
	if err := p.grid.MoveMarker(m, pos); err != nil {
		return nil, err
	}
	m.SetEnabled(true)
	return m, nil
}

func centroid(units []*model.Unit) model.Location {
	var sum model.Location
	for _, u := range units {
		sum = sum.Add(u.Location())
	}
	return sum.Scale(1 / float64(len(units)))
}
