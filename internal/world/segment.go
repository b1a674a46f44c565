package world

import (
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/chunk"
)

// Segment загруженный сегмент мира. Все поля защищены мьютексом World.
type Segment struct {
	Coords vec.Vec3 // Координаты сегмента (позиция блока >> 4)
	Source string   // Откуда получено содержимое: storage, generator или empty

	buf           *chunk.Buffer
	persist       bool   // Изменения нужно сохранить
	savedRevision uint64 // Ревизия буфера на момент последней загрузки или сохранения
}

// Buffer возвращает буфер сегмента. Буфер принадлежит пулу мира и
// становится недействительным после выгрузки сегмента.
func (s *Segment) Buffer() *chunk.Buffer {
	return s.buf
}

// NeedsSave сообщает, есть ли несохранённые изменения, помеченные для записи
func (s *Segment) NeedsSave() bool {
	return s.persist && s.buf.Revision() != s.savedRevision
}

// local переводит мировую позицию в локальные координаты сегмента
func local(pos vec.Vec3) (x, y, z int) {
	l := pos.LocalInSegment()
	return l.X, l.Y, l.Z
}
