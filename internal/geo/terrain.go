package geo

import (
	"encoding/binary"
	"fmt"

	"github.com/udisondev/skirmish/internal/model"
)

// ParseTerrain decodes a binary terrain image.
//
// Layout: "TRN1" magic, uint16 blocksX (LE), uint16 blocksY (LE), then
// blocksX*blocksY blocks in x-major order (index bx*blocksY+by).
func ParseTerrain(data []byte) (blocksX, blocksY int32, blocks []Block, err error) {
	if len(data) < TerrainHeaderSize {
		return 0, 0, nil, fmt.Errorf("parse terrain: header too short (%d bytes)", len(data))
	}
	if string(data[:4]) != TerrainMagic {
		return 0, 0, nil, fmt.Errorf("parse terrain: bad magic %q", data[:4])
	}
	blocksX = int32(binary.LittleEndian.Uint16(data[4:]))
	blocksY = int32(binary.LittleEndian.Uint16(data[6:]))
	if blocksX == 0 || blocksY == 0 {
		return 0, 0, nil, fmt.Errorf("parse terrain: empty dimensions %dx%d", blocksX, blocksY)
	}

	blocks = make([]Block, int(blocksX)*int(blocksY))
	offset := TerrainHeaderSize
	for i := range blocks {
		block, consumed, err := ParseBlock(data, offset)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("parse terrain block %d: %w", i, err)
		}
		blocks[i] = block
		offset += consumed
	}
	if offset != len(data) {
		return 0, 0, nil, fmt.Errorf("parse terrain: %d trailing bytes", len(data)-offset)
	}
	return blocksX, blocksY, blocks, nil
}

// EncodeTerrain encodes blocks (x-major, nil = open flat ground) into the binary format.
func EncodeTerrain(blocksX, blocksY int32, blocks []Block) ([]byte, error) {
	if int(blocksX)*int(blocksY) != len(blocks) {
		return nil, fmt.Errorf("encode terrain: %d blocks for %dx%d", len(blocks), blocksX, blocksY)
	}
	if blocksX <= 0 || blocksY <= 0 || blocksX > 0xFFFF || blocksY > 0xFFFF {
		return nil, fmt.Errorf("encode terrain: invalid dimensions %dx%d", blocksX, blocksY)
	}

	out := make([]byte, 0, TerrainHeaderSize+len(blocks)*4)
	out = append(out, TerrainMagic...)
	out = binary.LittleEndian.AppendUint16(out, uint16(blocksX))
	out = binary.LittleEndian.AppendUint16(out, uint16(blocksY))
	for _, b := range blocks {
		if b == nil {
			b = NewFlatBlock(0, model.AreaAll)
		}
		out = AppendBlock(out, b)
	}
	return out, nil
}
