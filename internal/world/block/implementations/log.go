package implementations

import (
	"github.com/annel0/voxel-core/internal/world/block"
)

// Log — ствол дерева. Служит опорой, удерживающей листву от распада.
type Log struct {
	block.Base
}

// NewLog создаёт блок ствола
func NewLog() *Log {
	return &Log{Base: block.NewBase(block.LogBlockID, "Log", block.Properties{
		Hardness:        2,
		BlastResistance: 10,
		Flammable:       true,
	})}
}

// Drops возвращает бревно той же породы без бит ориентации
func (b *Log) Drops() []block.Item {
	return []block.Item{{ID: block.ItemID(block.LogBlockID), Damage: int16(b.Metadata() & block.MetaVariantMask), Count: 1}}
}
