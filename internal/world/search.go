package world

import (
	"fmt"
	"math"

	"github.com/udisondev/skirmish/internal/model"
)

// expandRings walks the grid ring by ring around origin.
//
// The first ring is the origin cell plus its neighbors; every following ring is
// the set of unvisited neighbors of the previous one. visit is called for every
// cell of a ring and stops the walk at once by returning true. ringDone is called
// after each complete ring and stops the walk by returning true. The walk also
// ends when the covered surface (one cell size per ring) reaches radius.
func (g *Grid) expandRings(origin model.Location, radius float64, visit func(*Cell) bool, ringDone func() bool) error {
	src, err := g.CellFor(origin)
	if err != nil {
		return err
	}

	visited := make(map[GridCoord]struct{}, 32)
	frontier := make([]*Cell, 0, 9)
	frontier = append(frontier, src)
	visited[src.coord] = struct{}{}
	for _, n := range src.neighbors {
		visited[n.coord] = struct{}{}
		frontier = append(frontier, n)
	}

	covered := 0.0
	for len(frontier) > 0 {
		next := make([]*Cell, 0, len(frontier)+8)
		for _, c := range frontier {
			if visit(c) {
				return nil
			}
			for _, n := range c.neighbors {
				if _, seen := visited[n.coord]; seen {
					continue
				}
				visited[n.coord] = struct{}{}
				next = append(next, n)
			}
		}

		if ringDone != nil && ringDone() {
			return nil
		}

		covered += float64(g.cfg.CellSize)
		if covered >= radius {
			return nil
		}
		frontier = next
	}
	return nil
}

// Search finds a target near source using ring expansion.
//
// Occupants of the requested kind within radius (inclusive) that satisfy valid
// are candidates; within a ring the strictly closest one wins and ties keep the
// first encountered in scan order. The walk stops at the first ring holding any
// candidate, so the result is the closest target of the nearest non-empty ring,
// which is not always the global nearest within radius.
//
// found is false when no candidate exists. Returns ErrCellNotFound if source lies
// outside the grid.
func (g *Grid) Search(source model.Location, radius float64, wantResources bool, valid func(Object) bool) (target Object, found bool, err error) {
	radiusSq := radius * radius
	bestDist := math.Inf(1)

	err = g.expandRings(source, radius,
		func(c *Cell) bool {
			for _, obj := range c.Occupants(wantResources) {
				d := obj.Location().DistanceSquared(source)
				if d > radiusSq || d >= bestDist {
					continue
				}
				if valid != nil && !valid(obj) {
					continue
				}
				target, bestDist = obj, d
			}
			return false
		},
		func() bool { return target != nil },
	)
	if err != nil {
		return nil, false, fmt.Errorf("searching from (%.2f, %.2f): %w", source.X, source.Y, err)
	}
	return target, target != nil, nil
}

// SearchAs is Search restricted to occupants of type T.
func SearchAs[T Object](g *Grid, source model.Location, radius float64, wantResources bool, valid func(T) bool) (T, bool, error) {
	var zero T
	obj, found, err := g.Search(source, radius, wantResources, func(o Object) bool {
		t, ok := o.(T)
		return ok && (valid == nil || valid(t))
	})
	if err != nil || !found {
		return zero, false, err
	}
	return obj.(T), true, nil
}

// IsPositionReserved reports whether an enabled marker on layer lies within
// radius (inclusive) of pos. Uses the same ring expansion as Search and returns
// as soon as one marker matches. Returns ErrCellNotFound if pos lies outside the grid.
func (g *Grid) IsPositionReserved(pos model.Location, radius float64, layer model.MovementLayer) (bool, error) {
	radiusSq := radius * radius
	reserved := false

	err := g.expandRings(pos, radius,
		func(c *Cell) bool {
			for _, m := range c.markers {
				if m.blocks(pos, radiusSq, layer) {
					reserved = true
					return true
				}
			}
			return false
		},
		nil,
	)
	if err != nil {
		return false, fmt.Errorf("checking reservation at (%.2f, %.2f): %w", pos.X, pos.Y, err)
	}
	return reserved, nil
}

// SearchRect collects every occupant of the requested kind inside the rectangle
// spanned by the two corners (inclusive) that satisfies filter (nil accepts all).
// The scan is exhaustive: cells are visited in x-major order stepping by the cell
// size. Returns ErrCellNotFound if the rectangle does not intersect the grid.
func (g *Grid) SearchRect(cornerA, cornerB model.Location, wantResources bool, filter func(Object) bool) ([]Object, error) {
	minX, maxX := math.Min(cornerA.X, cornerB.X), math.Max(cornerA.X, cornerB.X)
	minY, maxY := math.Min(cornerA.Y, cornerB.Y), math.Max(cornerA.Y, cornerB.Y)

	// Clip to the grid extent; the upper bound stays inside the last cell.
	coveredX, coveredY := g.cfg.CoveredMax()
	gridMaxX := math.Nextafter(float64(coveredX), math.Inf(-1))
	gridMaxY := math.Nextafter(float64(coveredY), math.Inf(-1))
	clipMinX, clipMaxX := math.Max(minX, float64(g.cfg.MinX)), math.Min(maxX, gridMaxX)
	clipMinY, clipMaxY := math.Max(minY, float64(g.cfg.MinY)), math.Min(maxY, gridMaxY)
	if clipMinX > clipMaxX || clipMinY > clipMaxY {
		return nil, fmt.Errorf("searching rect (%.2f, %.2f)-(%.2f, %.2f): %w", minX, minY, maxX, maxY, ErrCellNotFound)
	}

	s := g.cfg.CellSize
	startX := alignDown(clipMinX, g.cfg.MinX, s)
	startY := alignDown(clipMinY, g.cfg.MinY, s)
	endX := alignDown(clipMaxX, g.cfg.MinX, s)
	endY := alignDown(clipMaxY, g.cfg.MinY, s)

	var result []Object
	for x := startX; x <= endX; x += s {
		for y := startY; y <= endY; y += s {
			cell, ok := g.cells[GridCoord{x, y}]
			if !ok {
				continue
			}
			for _, obj := range cell.Occupants(wantResources) {
				p := obj.Location()
				if p.X < minX || p.X > maxX || p.Y < minY || p.Y > maxY {
					continue
				}
				if filter != nil && !filter(obj) {
					continue
				}
				result = append(result, obj)
			}
		}
	}
	return result, nil
}
