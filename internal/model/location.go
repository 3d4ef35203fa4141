package model

import "math"

// Location is a point in world space. X/Y is the ground plane, Z is height.
// Value type, passed by value (immutable).
type Location struct {
	X float64
	Y float64
	Z float64
}

// NewLocation creates a Location with the given coordinates.
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// WithZ returns a copy of the location with a new height.
func (l Location) WithZ(z float64) Location {
	l.Z = z
	return l
}

// Add returns l + o.
func (l Location) Add(o Location) Location {
	return Location{X: l.X + o.X, Y: l.Y + o.Y, Z: l.Z + o.Z}
}

// Sub returns l - o.
func (l Location) Sub(o Location) Location {
	return Location{X: l.X - o.X, Y: l.Y - o.Y, Z: l.Z - o.Z}
}

// Scale returns l multiplied by k.
func (l Location) Scale(k float64) Location {
	return Location{X: l.X * k, Y: l.Y * k, Z: l.Z * k}
}

// DistanceSquared returns the squared ground-plane distance to other (no sqrt for hot paths).
// Height is ignored: occupancy and search radii are measured on the ground.
func (l Location) DistanceSquared(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	return dx*dx + dy*dy
}

// Distance returns the ground-plane distance to other.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(l.DistanceSquared(other))
}

// Flat returns the ground-plane unit vector of l, or ok=false for a zero vector.
func (l Location) Flat() (dir Location, ok bool) {
	n := math.Hypot(l.X, l.Y)
	if n == 0 {
		return Location{}, false
	}
	return Location{X: l.X / n, Y: l.Y / n}, true
}

// Perpendicular returns l rotated 90° counter-clockwise in the ground plane.
func (l Location) Perpendicular() Location {
	return Location{X: -l.Y, Y: l.X}
}
