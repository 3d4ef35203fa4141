package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sim holds all configuration for the formation simulator.
type Sim struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	Grid      GridConfig      `yaml:"grid"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Formation FormationConfig `yaml:"formation"`

	Scenarios []Scenario `yaml:"scenarios"`
}

// GridConfig describes the search grid extent in world units.
type GridConfig struct {
	MinX     int32 `yaml:"min_x"`
	MinY     int32 `yaml:"min_y"`
	MaxX     int32 `yaml:"max_x"`
	MaxY     int32 `yaml:"max_y"`
	CellSize int32 `yaml:"cell_size"`
}

// TerrainConfig points to an optional binary terrain file.
// An empty path runs every scenario on open ground.
type TerrainConfig struct {
	Path     string  `yaml:"path"`
	OriginX  float64 `yaml:"origin_x"`
	OriginY  float64 `yaml:"origin_y"`
	CellSize float64 `yaml:"cell_size"`
}

// FormationConfig holds formation defaults used when a scenario omits them.
type FormationConfig struct {
	Spacing      float64 `yaml:"spacing"`
	UnitsPerRow  int     `yaml:"units_per_row"`
	MaxEmptyRows int     `yaml:"max_empty_rows"`
}

// Point is a position on the ground plane.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Scenario is one independent move order simulated in its own session.
type Scenario struct {
	Name      string         `yaml:"name"`
	Formation string         `yaml:"formation"` // circle or row
	Spacing   *float64       `yaml:"spacing"`   // nil uses Formation.Spacing
	Offset    float64        `yaml:"offset"`
	Target    Point          `yaml:"target"`
	Obstacles []Point        `yaml:"obstacles"` // pre-reserved ground positions
	Resources []Point        `yaml:"resources"` // resource occupants near the target
	Units     []ScenarioUnit `yaml:"units"`
}

// ScenarioUnit describes one or more identical units of a scenario.
type ScenarioUnit struct {
	Position Point   `yaml:"position"`
	Radius   float64 `yaml:"radius"`
	Flying   bool    `yaml:"flying"`
	Count    int     `yaml:"count"` // 0 means 1
}

// DefaultSim returns Sim config with sensible defaults.
func DefaultSim() Sim {
	return Sim{
		LogLevel: "info",
		Grid: GridConfig{
			MinX:     0,
			MinY:     0,
			MaxX:     1024,
			MaxY:     1024,
			CellSize: 32,
		},
		Terrain: TerrainConfig{
			CellSize: 1,
		},
		Formation: FormationConfig{
			Spacing:      0.5,
			UnitsPerRow:  5,
			MaxEmptyRows: 3,
		},
		Scenarios: []Scenario{
			{
				Name:      "squad",
				Formation: "circle",
				Target:    Point{X: 512, Y: 512},
				Units: []ScenarioUnit{
					{Position: Point{X: 480, Y: 420}, Radius: 1, Count: 8},
				},
			},
		},
	}
}

// LoadSim loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSim(path string) (Sim, error) {
	cfg := DefaultSim()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SpacingOf returns the scenario spacing or the formation default.
func (c Sim) SpacingOf(s Scenario) float64 {
	if s.Spacing != nil {
		return *s.Spacing
	}
	return c.Formation.Spacing
}
