package implementations

import (
	"github.com/annel0/voxel-core/internal/world/block"
)

// Air реализует пустой блок (воздух)
type Air struct {
	block.Base
}

// NewAir создаёт блок воздуха
func NewAir() *Air {
	return &Air{Base: block.NewBase(block.AirBlockID, "Air", block.Properties{Transparent: true})}
}

// Drops ничего не возвращает: воздух нельзя добыть
func (b *Air) Drops() []block.Item {
	return nil
}
