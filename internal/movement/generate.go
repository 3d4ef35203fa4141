package movement

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/skirmish/internal/model"
)

// claimSlack absorbs float error on the claim boundary, so candidates that sit
// exactly one radius from a pending claim are reliably blocked.
const claimSlack = 1e-6

// Destination is one generated position and the strategy that produced it.
type Destination struct {
	Position  model.Location
	Placement FormationKind
}

// Request describes one destination generation call.
type Request struct {
	Profile   Profile
	Count     int
	Target    model.Location
	Formation Formation
	Offset    float64        // initial radial offset, e.g. the target's own radius
	Direction model.Location // approach direction for rows; zero means +Y
}

// Batch accumulates the destinations of one generation call.
// Accepted destinations are pending claims checked like reservation markers:
// a later candidate within the agent radius (inclusive) of any of them is occupied.
type Batch struct {
	planner   *Planner
	profile   Profile
	target    model.Location
	spacing   float64
	remaining int
	accepted  []Destination
}

// NewBatch starts a batch of count destinations around target.
func (p *Planner) NewBatch(profile Profile, count int, target model.Location, spacing float64) *Batch {
	return &Batch{
		planner:   p,
		profile:   profile,
		target:    target,
		spacing:   spacing,
		remaining: count,
		accepted:  make([]Destination, 0, count),
	}
}

// Remaining returns how many destinations are still missing.
func (b *Batch) Remaining() int {
	return b.remaining
}

// Destinations returns the accepted destinations in acceptance order.
func (b *Batch) Destinations() []Destination {
	return b.accepted
}

// step is the occupied half-footprint of one unit: radius plus spacing.
func (b *Batch) step() float64 {
	return b.profile.Radius + b.spacing
}

// try tests one candidate and accepts it when clear.
func (b *Batch) try(candidate model.Location, placement FormationKind) (bool, error) {
	candidate = candidate.WithZ(b.planner.nav.Height(candidate.X, candidate.Y, candidate.Z))

	pos, clear, err := b.planner.IsPositionClear(candidate, b.profile)
	if err != nil {
		return false, err
	}
	if !clear || b.claimed(pos) {
		return false, nil
	}

	b.accepted = append(b.accepted, Destination{Position: pos, Placement: placement})
	b.remaining--
	return true, nil
}

// claimed reports whether pos lies within the agent radius of an accepted
// destination. All destinations of a batch share one layer.
func (b *Batch) claimed(pos model.Location) bool {
	r := b.profile.Radius + claimSlack
	radiusSq := r * r
	for _, d := range b.accepted {
		if d.Position.DistanceSquared(pos) <= radiusSq {
			return true
		}
	}
	return false
}

// GenerateCircle tests one ring of radius *offset around the target and then
// advances *offset by radius+spacing. The ring holds as many candidates as fit
// its circumference at (radius+spacing)*2 per unit, starting at angle 0 (+X)
// and walking counter-clockwise. A ring of radius 0 tests the target itself.
// Returns the number of accepted destinations; an error aborts the batch.
func (b *Batch) GenerateCircle(offset *float64) (int, error) {
	step := b.step()
	expected := int(2 * math.Pi * *offset / (step * 2))
	if expected == 0 && *offset == 0 {
		expected = 1
	}

	generated := 0
	angleStep := 2 * math.Pi / float64(max(expected, 1))
	for i := 0; i < expected && b.remaining > 0; i++ {
		angle := float64(i) * angleStep
		candidate := model.NewLocation(
			b.target.X+*offset*math.Cos(angle),
			b.target.Y+*offset*math.Sin(angle),
			b.target.Z,
		)
		ok, err := b.try(candidate, FormationCircle)
		if err != nil {
			return generated, err
		}
		if ok {
			generated++
		}
	}

	*offset += step
	return generated, nil
}

// GenerateRow tests one row of up to unitsPerRow candidates placed *offset behind
// the target along direction, alternating right and left of the approach axis,
// then moves *offset one row further back (also after an empty row).
// Returns the number of accepted destinations; an error aborts the batch.
func (b *Batch) GenerateRow(unitsPerRow int, offset *float64, direction model.Location) (int, error) {
	forward, ok := direction.Flat()
	if !ok {
		forward = model.NewLocation(0, 1, 0)
	}
	lateral := forward.Perpendicular()
	anchor := b.target.Sub(forward.Scale(*offset))

	step := b.step()
	generated := 0
	for i := 0; i < unitsPerRow && b.remaining > 0; i++ {
		candidate := anchor.Add(lateral.Scale(rowSlot(i, unitsPerRow) * step))
		ok, err := b.try(candidate, FormationRow)
		if err != nil {
			return generated, err
		}
		if ok {
			generated++
		}
	}

	*offset += step
	return generated, nil
}

// Generate computes req.Count destinations around req.Target.
//
// Circle formations add rings until every unit is placed. Row formations add
// rows; after Formation.MaxEmptyRows consecutive empty rows the remaining units
// are placed with circles for the rest of the call (never back to rows). A
// single unit uses zero spacing. The offset must be finite and non-negative
// (ErrInvalidOffset). Any grid error (world.ErrCellNotFound) aborts
// the whole call and no destination is returned.
func (p *Planner) Generate(req Request) ([]Destination, error) {
	if req.Count < 1 {
		return nil, ErrNoUnits
	}
	if err := req.Profile.Validate(); err != nil {
		return nil, err
	}
	if err := req.Formation.Validate(); err != nil {
		return nil, err
	}
	if !(req.Offset >= 0) || math.IsInf(req.Offset, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOffset, req.Offset)
	}

	spacing := req.Formation.Spacing
	if req.Count == 1 {
		spacing = 0
	}
	b := p.NewBatch(req.Profile, req.Count, req.Target, spacing)
	offset := req.Offset
	if offset+b.step() == offset {
		return nil, fmt.Errorf("%w: %v does not advance by %v", ErrInvalidOffset, offset, b.step())
	}

	if req.Formation.Kind == FormationRow {
		empty := 0
		for b.remaining > 0 && empty < req.Formation.MaxEmptyRows {
			n, err := b.GenerateRow(req.Formation.UnitsPerRow, &offset, req.Direction)
			if err != nil {
				return nil, fmt.Errorf("generating row at offset %.2f: %w", offset, err)
			}
			if n == 0 {
				empty++
			} else {
				empty = 0
			}
		}
		if b.remaining > 0 {
			slog.Debug("row formation exhausted, falling back to circle",
				"empty_rows", empty,
				"remaining", b.remaining,
				"offset", offset)
		}
	}

	for b.remaining > 0 {
		if _, err := b.GenerateCircle(&offset); err != nil {
			return nil, fmt.Errorf("generating circle at offset %.2f: %w", offset, err)
		}
	}
	return b.accepted, nil
}
