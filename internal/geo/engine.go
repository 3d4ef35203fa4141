package geo

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/udisondev/skirmish/internal/model"
)

// Engine answers height and walkability queries over a block-based height field.
//
// An engine without terrain (or a position outside the loaded terrain) is treated
// as open ground: every area is allowed and heights are returned unchanged.
// Terrain is loaded once before the simulation starts and never modified afterwards.
type Engine struct {
	cfg     Config
	blocksX int32
	blocksY int32
	blocks  []Block // [bx*blocksY+by], nil entries are open ground
}

// NewEngine creates an empty engine (no terrain loaded).
// A non-positive cell size defaults to 1 world unit.
func NewEngine(cfg Config) *Engine {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine placement.
func (e *Engine) Config() Config {
	return e.cfg
}

// Resize allocates an empty blocksX × blocksY terrain (all open ground).
func (e *Engine) Resize(blocksX, blocksY int32) {
	e.blocksX = blocksX
	e.blocksY = blocksY
	e.blocks = make([]Block, int(blocksX)*int(blocksY))
}

// SetBlock installs a block at block indices (bx, by).
func (e *Engine) SetBlock(bx, by int32, b Block) error {
	if bx < 0 || bx >= e.blocksX || by < 0 || by >= e.blocksY {
		return fmt.Errorf("set block (%d,%d): outside terrain %dx%d", bx, by, e.blocksX, e.blocksY)
	}
	e.blocks[bx*e.blocksY+by] = b
	return nil
}

// LoadTerrain parses a binary terrain image and replaces the current terrain.
func (e *Engine) LoadTerrain(data []byte) error {
	bx, by, blocks, err := ParseTerrain(data)
	if err != nil {
		return err
	}
	e.blocksX, e.blocksY, e.blocks = bx, by, blocks
	return nil
}

// LoadTerrainFile reads a binary terrain file.
func (e *Engine) LoadTerrainFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading terrain %s: %w", path, err)
	}
	if err := e.LoadTerrain(data); err != nil {
		return fmt.Errorf("parsing terrain %s: %w", path, err)
	}
	slog.Info("terrain loaded", "path", path, "blocks_x", e.blocksX, "blocks_y", e.blocksY)
	return nil
}

// IsLoaded returns true if any terrain blocks are allocated.
func (e *Engine) IsLoaded() bool {
	return len(e.blocks) > 0
}

// block returns the block for geo coordinates (nil if outside or not loaded).
func (e *Engine) block(geoX, geoY int32) Block {
	if geoX < 0 || geoY < 0 {
		return nil
	}
	bx, by := BlockXY(geoX, geoY)
	if bx >= e.blocksX || by >= e.blocksY {
		return nil
	}
	return e.blocks[bx*e.blocksY+by]
}

// Height returns the terrain height at world (x, y).
// Returns worldZ unchanged if no terrain covers this position.
func (e *Engine) Height(worldX, worldY, worldZ float64) float64 {
	gx, gy := e.cfg.GeoX(worldX), e.cfg.GeoY(worldY)
	b := e.block(gx, gy)
	if b == nil {
		return worldZ
	}
	cx, cy := CellXY(gx, gy)
	return float64(b.Height(cx, cy))
}

// areaAt returns the area mask for geo coordinates.
func (e *Engine) areaAt(geoX, geoY int32) model.AreaMask {
	b := e.block(geoX, geoY)
	if b == nil {
		return model.AreaAll
	}
	cx, cy := CellXY(geoX, geoY)
	return b.Area(cx, cy)
}

// Area returns the navigation area mask at world (x, y).
func (e *Engine) Area(worldX, worldY float64) model.AreaMask {
	return e.areaAt(e.cfg.GeoX(worldX), e.cfg.GeoY(worldY))
}

// IsWalkable reports whether a unit restricted to mask may stand at world (x, y).
func (e *Engine) IsWalkable(worldX, worldY float64, mask model.AreaMask) bool {
	return mask.Allows(e.Area(worldX, worldY))
}

// SampleFreePosition finds the walkable position nearest to p within radius.
//
// If the cell containing p is walkable for mask, p itself is returned (with the
// terrain height). Otherwise the closest walkable cell center within radius is
// returned; ties keep the first cell in x-major scan order. ok is false when no
// walkable cell exists within radius.
func (e *Engine) SampleFreePosition(p model.Location, radius float64, mask model.AreaMask) (model.Location, bool) {
	if !e.IsLoaded() || e.IsWalkable(p.X, p.Y, mask) {
		return p.WithZ(e.Height(p.X, p.Y, p.Z)), true
	}
	if radius <= 0 {
		return model.Location{}, false
	}

	span := min(int32(math.Ceil(radius/e.cfg.CellSize)), MaxSampleCells)
	gx, gy := e.cfg.GeoX(p.X), e.cfg.GeoY(p.Y)
	radiusSq := radius * radius

	best := model.Location{}
	bestDist := math.Inf(1)
	for x := gx - span; x <= gx+span; x++ {
		for y := gy - span; y <= gy+span; y++ {
			if !mask.Allows(e.areaAt(x, y)) {
				continue
			}
			c := model.NewLocation(e.cfg.WorldX(x), e.cfg.WorldY(y), p.Z)
			d := c.DistanceSquared(p)
			if d > radiusSq || d >= bestDist {
				continue
			}
			best, bestDist = c, d
		}
	}
	if math.IsInf(bestDist, 1) {
		return model.Location{}, false
	}
	return best.WithZ(e.Height(best.X, best.Y, p.Z)), true
}
