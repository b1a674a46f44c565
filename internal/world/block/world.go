package block

import (
	"github.com/annel0/voxel-core/internal/vec"
)

// World определяет интерфейс, через который блоки читают и меняют мир.
type World interface {
	// GetBlock возвращает блок в позиции (воздух, если сегмент не загружен)
	GetBlock(pos vec.Vec3) Block

	// SetBlock записывает ID и метаданные блока в его позицию.
	// propagate — уведомить соседей, relight — обновить свет вокселя,
	// persist — пометить сегмент для сохранения.
	SetBlock(b Block, propagate, relight, persist bool)

	// SetAir заменяет блок воздухом без уведомления соседей
	SetAir(pos vec.Vec3)

	// DropItem выбрасывает предмет в позиции
	DropItem(pos vec.Vec3, item Item)
}
