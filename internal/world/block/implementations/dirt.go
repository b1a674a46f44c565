package implementations

import (
	"github.com/annel0/voxel-core/internal/world/block"
)

// Dirt реализует блок земли
type Dirt struct {
	block.Base
}

// NewDirt создаёт блок земли
func NewDirt() *Dirt {
	return &Dirt{Base: block.NewBase(block.DirtBlockID, "Dirt", block.Properties{
		Hardness:        0.5,
		BlastResistance: 2.5,
	})}
}

// Drops всегда возвращает обычную землю, независимо от метаданных
func (b *Dirt) Drops() []block.Item {
	return []block.Item{{ID: block.ItemID(block.DirtBlockID), Count: 1}}
}
