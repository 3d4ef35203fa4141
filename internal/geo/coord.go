package geo

import "math"

// Config places the terrain in world space.
type Config struct {
	OriginX  float64 // world X of geo cell (0,0) lower-left corner
	OriginY  float64 // world Y of geo cell (0,0) lower-left corner
	CellSize float64 // world units per geo cell
}

// GeoX converts world X coordinate to geo cell X.
func (c Config) GeoX(worldX float64) int32 {
	return int32(math.Floor((worldX - c.OriginX) / c.CellSize))
}

// GeoY converts world Y coordinate to geo cell Y.
func (c Config) GeoY(worldY float64) int32 {
	return int32(math.Floor((worldY - c.OriginY) / c.CellSize))
}

// WorldX converts geo cell X to world X (centered in cell).
func (c Config) WorldX(geoX int32) float64 {
	return (float64(geoX)+0.5)*c.CellSize + c.OriginX
}

// WorldY converts geo cell Y to world Y (centered in cell).
func (c Config) WorldY(geoY int32) float64 {
	return (float64(geoY)+0.5)*c.CellSize + c.OriginY
}

// BlockXY returns block indices from geo coordinates.
func BlockXY(geoX, geoY int32) (int32, int32) {
	return geoX / BlockCellsX, geoY / BlockCellsY
}

// CellXY returns cell indices within a block from geo coordinates.
func CellXY(geoX, geoY int32) (int32, int32) {
	return geoX % BlockCellsX, geoY % BlockCellsY
}
