package model

// Unit is a movable faction object with a navigation profile.
type Unit struct {
	*WorldObject

	radius float64
	flying bool
	areas  AreaMask
}

// NewUnit creates a unit. A zero area mask defaults to AreaGround.
func NewUnit(objectID uint32, name string, factionID int, loc Location, radius float64, flying bool, areas AreaMask) *Unit {
	if areas == AreaNone {
		areas = AreaGround
	}
	u := &Unit{
		WorldObject: NewWorldObject(objectID, name, factionID, loc),
		radius:      radius,
		flying:      flying,
		areas:       areas,
	}
	u.WorldObject.Data = u
	return u
}

// Radius returns the agent radius used for clearance checks.
func (u *Unit) Radius() float64 {
	return u.radius
}

// IsFlying reports whether the unit moves on the air layer.
func (u *Unit) IsFlying() bool {
	return u.flying
}

// Areas returns the navigation areas the unit may stand on.
func (u *Unit) Areas() AreaMask {
	return u.areas
}

// Layer returns the reservation layer of the unit.
func (u *Unit) Layer() MovementLayer {
	if u.flying {
		return LayerAir
	}
	return LayerGround
}
