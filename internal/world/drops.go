package world

import (
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/google/uuid"
)

// ItemEntity предмет, выброшенный в мир и ожидающий подбора
type ItemEntity struct {
	ID   uuid.UUID
	Pos  vec.Vec3
	Item block.Item
	Tick uint64 // Тик, на котором предмет появился
}

// DropItem выбрасывает предмет в позиции
func (w *World) DropItem(pos vec.Vec3, item block.Item) {
	w.mu.Lock()
	w.drops = append(w.drops, ItemEntity{
		ID:   uuid.New(),
		Pos:  pos,
		Item: item,
		Tick: w.currentTick,
	})
	w.mu.Unlock()

	itemsDropped.Inc()
}

// TakeDrops забирает все накопленные предметы
func (w *World) TakeDrops() []ItemEntity {
	w.mu.Lock()
	defer w.mu.Unlock()

	drops := w.drops
	w.drops = nil
	return drops
}
