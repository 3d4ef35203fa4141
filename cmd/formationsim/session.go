package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/movement"
	"github.com/udisondev/skirmish/internal/world"
)

// scenarioResult is the outcome of one simulated move order.
type scenarioResult struct {
	name        string
	assignments []movement.Assignment
	dropped     int // units whose group order could not be placed
	nearest     *model.Unit
	resource    world.Object // resource nearest the target, if any
}

func (r scenarioResult) log() {
	for _, a := range r.assignments {
		slog.Info("destination",
			"scenario", r.name,
			"unit", a.Unit.ObjectID(),
			"x", a.Destination.Position.X,
			"y", a.Destination.Position.Y,
			"z", a.Destination.Position.Z,
			"placement", a.Destination.Placement)
	}
	attrs := []any{
		"scenario", r.name,
		"placed", len(r.assignments),
		"dropped", r.dropped,
	}
	if r.nearest != nil {
		attrs = append(attrs, "nearest_to_target", r.nearest.ObjectID())
	}
	if r.resource != nil {
		attrs = append(attrs, "nearest_resource", r.resource.ObjectID())
	}
	slog.Info("scenario done", attrs...)
}

// groupKey partitions scenario units by navigation profile: one move order per group.
type groupKey struct {
	radius float64
	flying bool
}

// runScenario builds a private grid, registers the scenario units, issues one
// move order per profile group, moves the units onto their destinations and
// reports the unit and the resource that ended up nearest the target.
func runScenario(ctx context.Context, cfg config.Sim, nav *geo.Engine, sc config.Scenario) (scenarioResult, error) {
	res := scenarioResult{name: sc.Name}

	grid, err := world.NewGrid(world.Config{
		MinX:     cfg.Grid.MinX,
		MinY:     cfg.Grid.MinY,
		MaxX:     cfg.Grid.MaxX,
		MaxY:     cfg.Grid.MaxY,
		CellSize: cfg.Grid.CellSize,
	})
	if err != nil {
		return res, err
	}

	kind, err := movement.ParseFormationKind(sc.Formation)
	if err != nil {
		return res, err
	}
	formation := movement.Formation{
		Kind:         kind,
		Spacing:      cfg.SpacingOf(sc),
		UnitsPerRow:  cfg.Formation.UnitsPerRow,
		MaxEmptyRows: cfg.Formation.MaxEmptyRows,
	}

	var planner *movement.Planner
	if nav != nil {
		planner = movement.NewPlanner(grid, nav)
	} else {
		planner = movement.NewPlanner(grid, nil)
	}

	for _, o := range sc.Obstacles {
		if _, err := grid.AddMarker(pointLocation(o), model.LayerGround); err != nil {
			return res, fmt.Errorf("obstacle: %w", err)
		}
	}

	ids := world.NewObjectIDGenerator()
	for _, p := range sc.Resources {
		if !grid.Register(model.NewResource(ids.NextResourceID(), "resource", pointLocation(p))) {
			slog.Warn("resource outside grid", "scenario", sc.Name, "x", p.X, "y", p.Y)
		}
	}

	groups := make(map[groupKey][]*model.Unit)
	var order []groupKey
	for _, su := range sc.Units {
		key := groupKey{radius: su.Radius, flying: su.Flying}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		for range max(su.Count, 1) {
			u := model.NewUnit(ids.NextObjectID(), sc.Name, 0, pointLocation(su.Position), su.Radius, su.Flying, model.AreaGround)
			grid.Register(u)
			groups[key] = append(groups[key], u)
		}
	}

	target := pointLocation(sc.Target)
	for _, key := range order {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		units := groups[key]
		assignments, err := planner.Move(units, target, formation, sc.Offset)
		if err != nil {
			if errors.Is(err, world.ErrCellNotFound) {
				slog.Warn("move order dropped",
					"scenario", sc.Name,
					"units", len(units),
					"err", err)
				res.dropped += len(units)
				continue
			}
			return res, err
		}
		for _, a := range assignments {
			a.Unit.SetLocation(a.Destination.Position)
			grid.Relocate(a.Unit)
		}
		res.assignments = append(res.assignments, assignments...)
	}

	radius := float64(cfg.Grid.CellSize) * 4
	nearest, found, err := world.SearchAs[*model.Unit](grid, target, radius, false, nil)
	if err != nil {
		if errors.Is(err, world.ErrCellNotFound) {
			return res, nil
		}
		return res, err
	}
	if found {
		res.nearest = nearest
	}

	resource, found, err := grid.Search(target, radius, true, nil)
	if err != nil {
		return res, err
	}
	if found {
		res.resource = resource
	}
	return res, nil
}

func pointLocation(p config.Point) model.Location {
	return model.NewLocation(p.X, p.Y, p.Z)
}
