package model

import "sync"

// ObjectKind splits tracked entities into the two occupant sets of a grid cell.
type ObjectKind uint8

const (
	KindFaction  ObjectKind = iota // units and buildings owned by a faction
	KindResource                   // harvestable resources (no owner)
)

func (k ObjectKind) String() string {
	switch k {
	case KindFaction:
		return "faction"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// NoFaction marks objects without an owner (resources, neutral props).
const NoFaction = -1

// WorldObject is the base of every tracked entity in the world.
// All objects have an ObjectID, a name, a kind and a location.
type WorldObject struct {
	objectID  uint32
	name      string
	kind      ObjectKind
	factionID int
	location  Location
	Data      any // owning Unit or game-side payload

	mu sync.RWMutex
}

// NewWorldObject creates a faction-owned object.
func NewWorldObject(objectID uint32, name string, factionID int, loc Location) *WorldObject {
	return &WorldObject{
		objectID:  objectID,
		name:      name,
		kind:      KindFaction,
		factionID: factionID,
		location:  loc,
	}
}

// NewResource creates a resource object (no owning faction).
func NewResource(objectID uint32, name string, loc Location) *WorldObject {
	return &WorldObject{
		objectID:  objectID,
		name:      name,
		kind:      KindResource,
		factionID: NoFaction,
		location:  loc,
	}
}

// ObjectID returns the unique object ID (immutable after creation).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name returns the object name.
func (w *WorldObject) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// Kind returns the occupant kind.
func (w *WorldObject) Kind() ObjectKind {
	return w.kind
}

// IsResource reports whether the object lives in the resource occupant set.
func (w *WorldObject) IsResource() bool {
	return w.kind == KindResource
}

// FactionID returns the owning faction or NoFaction.
func (w *WorldObject) FactionID() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.factionID
}

// SetFactionID changes the owner (conversion, capture).
func (w *WorldObject) SetFactionID(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.factionID = id
}

// Location returns a copy of the object position.
func (w *WorldObject) Location() Location {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.location
}

// SetLocation sets a new position. The caller re-buckets the object in the grid.
func (w *WorldObject) SetLocation(loc Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.location = loc
}
