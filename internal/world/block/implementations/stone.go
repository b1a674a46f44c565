package implementations

import (
	"github.com/annel0/voxel-core/internal/world/block"
)

// Stone реализует блок камня
type Stone struct {
	block.Base
}

// NewStone создаёт блок камня
func NewStone() *Stone {
	return &Stone{Base: block.NewBase(block.StoneBlockID, "Stone", block.Properties{
		Hardness:        1.5,
		BlastResistance: 30,
	})}
}
