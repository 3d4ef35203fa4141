package model

// MovementLayer separates ground and air occupancy for reservations.
type MovementLayer uint8

const (
	LayerGround MovementLayer = iota
	LayerAir
)

func (l MovementLayer) String() string {
	if l == LayerAir {
		return "air"
	}
	return "ground"
}

// AreaMask is a set of navigation area bits a unit may stand on.
// Terrain cells carry the same 4-bit mask; a cell with mask 0 is blocked.
type AreaMask uint8

const (
	AreaGround  AreaMask = 1 << 0 // 0x01
	AreaShallow AreaMask = 1 << 1 // 0x02
	AreaWater   AreaMask = 1 << 2 // 0x04
	AreaRough   AreaMask = 1 << 3 // 0x08
	AreaNone    AreaMask = 0
	AreaAll     AreaMask = 0x0F
)

// Allows reports whether any bit of cell is permitted by m.
func (m AreaMask) Allows(cell AreaMask) bool {
	return m&cell != 0
}
