package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for grid entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid)
//	0x10000000 - 0x1FFFFFFF: Faction objects (units, buildings)
//	0x20000000 - 0x2FFFFFFF: Resources
//	0x30000000 - 0x3FFFFFFF: Reservation markers
type ObjectIDGenerator struct {
	nextObjectID   atomic.Uint32
	nextResourceID atomic.Uint32
	nextMarkerID   atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextObjectID.Store(0x10000000)
	gen.nextResourceID.Store(0x20000000)
	gen.nextMarkerID.Store(0x30000000)
	return gen
}

// NextObjectID generates the next faction object ID.
func (g *ObjectIDGenerator) NextObjectID() uint32 {
	return g.nextObjectID.Add(1)
}

// NextResourceID generates the next resource ID.
func (g *ObjectIDGenerator) NextResourceID() uint32 {
	return g.nextResourceID.Add(1)
}

// NextMarkerID generates the next reservation marker ID.
func (g *ObjectIDGenerator) NextMarkerID() uint32 {
	return g.nextMarkerID.Add(1)
}

// IsMarkerID reports whether id belongs to the marker range.
func IsMarkerID(id uint32) bool {
	return id >= 0x30000000 && id < 0x40000000
}
