package movement

import (
	"fmt"
	"math"

	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/world"
)

// Navigator is the terrain collaborator consumed by the planner.
// *geo.Engine satisfies it.
type Navigator interface {
	// Height returns the terrain height at (x, y), or z where no terrain exists.
	Height(worldX, worldY, worldZ float64) float64
	// SampleFreePosition returns the walkable position nearest to p within radius.
	SampleFreePosition(p model.Location, radius float64, mask model.AreaMask) (model.Location, bool)
}

// openGround is the Navigator used when none is supplied: flat, fully walkable.
type openGround struct{}

func (openGround) Height(_, _, z float64) float64 { return z }

func (openGround) SampleFreePosition(p model.Location, _ float64, _ model.AreaMask) (model.Location, bool) {
	return p, true
}

// Profile is the navigation profile shared by the units of one request.
type Profile struct {
	Radius float64
	Flying bool
	Areas  model.AreaMask
}

// ProfileOf returns the profile of u.
func ProfileOf(u *model.Unit) Profile {
	return Profile{Radius: u.Radius(), Flying: u.IsFlying(), Areas: u.Areas()}
}

// Layer returns the reservation layer of the profile.
func (p Profile) Layer() model.MovementLayer {
	if p.Flying {
		return model.LayerAir
	}
	return model.LayerGround
}

// Validate checks that the profile has a usable radius.
func (p Profile) Validate() error {
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		return fmt.Errorf("%w: radius %v", ErrInvalidProfile, p.Radius)
	}
	return nil
}

// Planner computes collision-free destinations for groups of units and keeps
// the reservation markers of the orders it committed.
//
// Like the grid it works on, a Planner belongs to one simulation session and is
// not safe for concurrent use.
type Planner struct {
	grid    *world.Grid
	nav     Navigator
	markers map[uint32]*world.Marker // unit objectID → reservation of its current order
}

// NewPlanner creates a planner over grid. A nil nav treats the world as open ground.
func NewPlanner(grid *world.Grid, nav Navigator) *Planner {
	if nav == nil {
		nav = openGround{}
	}
	return &Planner{
		grid:    grid,
		nav:     nav,
		markers: make(map[uint32]*world.Marker),
	}
}

// Grid returns the search grid the planner reserves positions in.
func (p *Planner) Grid() *world.Grid {
	return p.grid
}

// IsPositionClear checks candidate for a unit with the given profile.
//
// The position is occupied when an enabled marker on the profile's layer lies
// within the agent radius, or when no free terrain matching the area mask exists
// within the agent radius. A clear candidate is snapped to the sampled terrain
// position. Flying units skip the terrain check. The error is non-nil only when
// candidate lies outside the search grid (world.ErrCellNotFound).
func (p *Planner) IsPositionClear(candidate model.Location, profile Profile) (model.Location, bool, error) {
	reserved, err := p.grid.IsPositionReserved(candidate, profile.Radius, profile.Layer())
	if err != nil {
		return model.Location{}, false, err
	}
	if reserved {
		return model.Location{}, false, nil
	}
	if profile.Flying {
		return candidate, true, nil
	}
	pos, ok := p.nav.SampleFreePosition(candidate, profile.Radius, profile.Areas)
	if !ok {
		return model.Location{}, false, nil
	}
	return pos, true, nil
}
