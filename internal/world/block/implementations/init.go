package implementations

import "github.com/annel0/voxel-core/internal/world/block"

// RegisterDefaults регистрирует все типы блоков пакета в регистре мира
func RegisterDefaults(r *block.Registry) {
	// Базовые блоки
	r.Register(block.AirBlockID, func(block.Rand) block.Block { return NewAir() })
	r.Register(block.StoneBlockID, func(block.Rand) block.Block { return NewStone() })
	r.Register(block.DirtBlockID, func(block.Rand) block.Block { return NewDirt() })

	// Деревья
	r.Register(block.LogBlockID, func(block.Rand) block.Block { return NewLog() })
	r.Register(block.LeavesBlockID, func(rnd block.Rand) block.Block { return NewLeaves(rnd) })
}
