package geo

import (
	"encoding/binary"
	"fmt"

	"github.com/udisondev/skirmish/internal/model"
)

// Block provides height and area data for 8×8 cells.
type Block interface {
	// Height returns the ground height at local cell (cellX, cellY).
	Height(cellX, cellY int32) int32
	// Area returns the navigation area mask at local cell; AreaNone is blocked.
	Area(cellX, cellY int32) model.AreaMask
}

// FlatBlock is a block whose 64 cells share one height and one area mask.
// Binary format: 1 byte type (0x00) + 2 bytes int16 height (LE) + 1 byte area.
type FlatBlock struct {
	height int16
	area   model.AreaMask
}

// NewFlatBlock creates a flat block.
func NewFlatBlock(height int16, area model.AreaMask) *FlatBlock {
	return &FlatBlock{height: height, area: area}
}

func (b *FlatBlock) Height(_, _ int32) int32 {
	return int32(b.height)
}

func (b *FlatBlock) Area(_, _ int32) model.AreaMask {
	return b.area
}

// ComplexBlock is a block where each of 64 cells has its own height+area packed into uint16.
// Binary format: 1 byte type (0x01) + 64×2 bytes (128 bytes).
// Bit packing: [15:4] = height (signed 12 bit), [3:0] = area mask.
type ComplexBlock struct {
	data [BlockCells]uint16
}

// NewComplexBlock creates a complex block with every cell at height and area.
func NewComplexBlock(height int16, area model.AreaMask) *ComplexBlock {
	b := &ComplexBlock{}
	for i := range b.data {
		b.data[i] = PackCell(height, area)
	}
	return b
}

// SetCell overwrites one cell.
func (b *ComplexBlock) SetCell(cellX, cellY int32, height int16, area model.AreaMask) {
	b.data[cellX*BlockCellsY+cellY] = PackCell(height, area)
}

func (b *ComplexBlock) cellData(cellX, cellY int32) uint16 {
	return b.data[cellX*BlockCellsY+cellY]
}

func (b *ComplexBlock) Height(cellX, cellY int32) int32 {
	return int32(int16(b.cellData(cellX, cellY)) >> 4)
}

func (b *ComplexBlock) Area(cellX, cellY int32) model.AreaMask {
	return model.AreaMask(b.cellData(cellX, cellY) & cellAreaBits)
}

// PackCell packs height and area into the complex cell format.
// Height is clamped to the signed 12-bit range.
func PackCell(height int16, area model.AreaMask) uint16 {
	h := max(min(height, cellHeightMax), cellHeightMin)
	return uint16(h<<4) | uint16(area)&cellAreaBits
}

// ParseBlock reads one block from data at the given offset.
// Returns the parsed Block and the number of bytes consumed.
func ParseBlock(data []byte, offset int) (Block, int, error) {
	if offset >= len(data) {
		return nil, 0, fmt.Errorf("parse block: offset %d beyond data length %d", offset, len(data))
	}

	blockType := data[offset]
	offset++

	switch blockType {
	case BlockTypeFlat:
		if offset+3 > len(data) {
			return nil, 0, fmt.Errorf("parse flat block: insufficient data at offset %d", offset)
		}
		height := int16(binary.LittleEndian.Uint16(data[offset:]))
		area := model.AreaMask(data[offset+2] & cellAreaBits)
		return &FlatBlock{height: height, area: area}, 4, nil // 1 type + 2 height + 1 area

	case BlockTypeComplex:
		need := BlockCells * 2
		if offset+need > len(data) {
			return nil, 0, fmt.Errorf("parse complex block: insufficient data at offset %d", offset)
		}
		b := &ComplexBlock{}
		for i := range BlockCells {
			b.data[i] = binary.LittleEndian.Uint16(data[offset:])
			offset += 2
		}
		return b, 1 + need, nil

	default:
		return nil, 0, fmt.Errorf("parse block: unknown block type 0x%02X at offset %d", blockType, offset-1)
	}
}

// AppendBlock encodes b in the binary terrain format.
func AppendBlock(dst []byte, b Block) []byte {
	switch blk := b.(type) {
	case *FlatBlock:
		dst = append(dst, BlockTypeFlat)
		dst = binary.LittleEndian.AppendUint16(dst, uint16(blk.height))
		return append(dst, byte(blk.area))
	case *ComplexBlock:
		dst = append(dst, BlockTypeComplex)
		for _, d := range blk.data {
			dst = binary.LittleEndian.AppendUint16(dst, d)
		}
		return dst
	default:
		// Unknown implementations are flattened through the interface.
		c := &ComplexBlock{}
		for cx := range int32(BlockCellsX) {
			for cy := range int32(BlockCellsY) {
				c.SetCell(cx, cy, int16(b.Height(cx, cy)), b.Area(cx, cy))
			}
		}
		return AppendBlock(dst, c)
	}
}
