package geo

// Block grid dimensions: every block covers 8×8 geo cells.
const (
	BlockCellsX = 8
	BlockCellsY = 8
	BlockCells  = BlockCellsX * BlockCellsY // 64
)

// Block type identifiers in the binary terrain format.
const (
	BlockTypeFlat    byte = 0x00
	BlockTypeComplex byte = 0x01
)

// Terrain file header.
const (
	TerrainMagic      = "TRN1"
	TerrainHeaderSize = 8 // magic + uint16 blocksX + uint16 blocksY
)

// Cell packing: bits[15:4] = signed 12-bit height, bits[3:0] = area mask.
const (
	cellAreaBits  = 0x000F
	cellHeightMin = -2048
	cellHeightMax = 2047
)

// MaxSampleCells bounds the scan of SampleFreePosition (cells per axis).
const MaxSampleCells = 256
