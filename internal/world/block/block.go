package block

import (
	"github.com/annel0/voxel-core/internal/vec"
)

// Properties физические свойства типа блока
type Properties struct {
	Hardness        float32
	BlastResistance float32
	Flammable       bool
	Transparent     bool
}

// Block определяет блок, размещённый в мире.
//
// Метаданные — один байт, хранимый в сегменте (значимы младшие 4 бита).
// Их смысл зависит от типа блока.
type Block interface {
	ID() BlockID
	Name() string
	Properties() Properties

	Pos() vec.Vec3
	SetPos(pos vec.Vec3)
	Metadata() uint8
	SetMetadata(meta uint8)

	// NeedsTick сообщает миру, что блоку нужен плановый тик
	NeedsTick() bool

	// OnStructuralUpdate вызывается, когда изменился соседний воксель changed.
	// Обработчик только помечает состояние и не должен запускать тяжёлых проверок.
	OnStructuralUpdate(w World, changed vec.Vec3)

	// OnTick вызывается драйвером тиков; isRandom — случайный тик
	OnTick(w World, isRandom bool)

	// Drops возвращает предметы, выпадающие при разрушении блока
	Drops() []Item
}

// Base реализует общую часть Block. Типы блоков встраивают её и
// переопределяют нужные хуки.
type Base struct {
	id    BlockID
	name  string
	props Properties
	pos   vec.Vec3
	meta  uint8
}

// NewBase создаёт базовый блок
func NewBase(id BlockID, name string, props Properties) Base {
	return Base{id: id, name: name, props: props}
}

func (b *Base) ID() BlockID            { return b.id }
func (b *Base) Name() string           { return b.name }
func (b *Base) Properties() Properties { return b.props }
func (b *Base) Pos() vec.Vec3          { return b.pos }
func (b *Base) SetPos(pos vec.Vec3)    { b.pos = pos }
func (b *Base) Metadata() uint8        { return b.meta }
func (b *Base) SetMetadata(meta uint8) { b.meta = meta }
func (b *Base) NeedsTick() bool        { return false }

func (b *Base) OnStructuralUpdate(w World, changed vec.Vec3) {}
func (b *Base) OnTick(w World, isRandom bool)                {}

// Drops по умолчанию возвращает сам блок
func (b *Base) Drops() []Item {
	if b.id == AirBlockID {
		return nil
	}
	return []Item{{ID: ItemID(b.id), Damage: int16(b.meta), Count: 1}}
}
