package chunk

import (
	"fmt"
	"sync"
)

// Геометрия сегмента и формат сериализации
const (
	Size   = 16                 // Длина ребра сегмента в блоках
	Volume = Size * Size * Size // 4096 вокселей

	// EncodedSize размер результата Bytes: ID блоков и упакованные метаданные.
	// Освещение в снимок не входит.
	EncodedSize = Volume + Volume/2

	// FullSkyLight значение байта небесного света для свежего сегмента (открытое небо)
	FullSkyLight byte = 0xFF
)

type bufferState uint8

const (
	stateOwned bufferState = iota // создан вне пула
	stateInUse                    // выдан пулом
	stateFree                     // лежит в пуле
)

// Buffer хранит сегмент мира 16x16x16: ID блоков, метаданные, блочный и
// небесный свет. Сериализованное представление кешируется до первой записи
// ID или метаданных. Запись света кеш не сбрасывает.
type Buffer struct {
	mu sync.RWMutex

	blocks     [Volume]byte
	metadata   NibbleArray
	blockLight NibbleArray
	skyLight   NibbleArray

	cache    []byte
	dirty    bool // общий флаг для cache и мемоизации allAir
	allAir   bool
	revision uint64

	pool  *Pool
	state bufferState
}

// NewBuffer создаёт буфер в сброшенном состоянии, не принадлежащий пулу
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.reset()
	return b
}

// Index переводит локальные координаты в линейный индекс: x*256 + z*16 + y
func Index(x, y, z int) int {
	if x < 0 || x >= Size || y < 0 || y >= Size || z < 0 || z >= Size {
		panic(fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, x, y, z))
	}
	return x<<8 | z<<4 | y
}

// Pos обратна Index
func Pos(i int) (x, y, z int) {
	checkIndex(i)
	return i >> 8, i & 0xF, (i >> 4) & 0xF
}

// Block возвращает ID блока
func (b *Buffer) Block(x, y, z int) byte {
	i := Index(x, y, z)
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.blocks[i]
}

// SetBlock устанавливает ID блока и сбрасывает кеш сериализации
func (b *Buffer) SetBlock(x, y, z int, id byte) {
	i := Index(x, y, z)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeWritable()
	b.blocks[i] = id
	b.invalidate()
}

// Metadata возвращает метаданные блока (0..15)
func (b *Buffer) Metadata(x, y, z int) uint8 {
	i := Index(x, y, z)
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metadata.Get(i)
}

// SetMetadata устанавливает метаданные и сбрасывает кеш сериализации
func (b *Buffer) SetMetadata(x, y, z int, v uint8) {
	i := Index(x, y, z)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeWritable()
	b.metadata.Set(i, v)
	b.invalidate()
}

// BlockLight возвращает уровень блочного света
func (b *Buffer) BlockLight(x, y, z int) uint8 {
	i := Index(x, y, z)
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.blockLight.Get(i)
}

// SetBlockLight устанавливает блочный свет. Кеш и флаг dirty не меняются.
func (b *Buffer) SetBlockLight(x, y, z int, v uint8) {
	i := Index(x, y, z)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeWritable()
	b.blockLight.Set(i, v)
}

// SkyLight возвращает уровень небесного света
func (b *Buffer) SkyLight(x, y, z int) uint8 {
	i := Index(x, y, z)
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.skyLight.Get(i)
}

// SetSkyLight устанавливает небесный свет. Кеш и флаг dirty не меняются.
func (b *Buffer) SetSkyLight(x, y, z int, v uint8) {
	i := Index(x, y, z)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeWritable()
	b.skyLight.Set(i, v)
}

// IsAllAir сообщает, состоит ли сегмент только из воздуха (ID 0).
// Пересчёт выполняется только при установленном dirty и снимает этот флаг.
func (b *Buffer) IsAllAir() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dirty {
		b.allAir = true
		for _, id := range b.blocks {
			if id != 0 {
				b.allAir = false
				break
			}
		}
		b.dirty = false
	}
	return b.allAir
}

// Dirty сообщает, были ли изменения ID или метаданных после последнего IsAllAir/Reset
func (b *Buffer) Dirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// Revision возвращает счётчик записей ID и метаданных.
// В отличие от Dirty, не сбрасывается при IsAllAir. Reset и возврат в пул обнуляют счётчик.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Bytes возвращает сериализованный сегмент: 4096 байт ID, затем 2048 байт
// упакованных метаданных. Результат кешируется и не должен изменяться вызывающим.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	if cache := b.cache; cache != nil {
		b.mu.RUnlock()
		return cache
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	// Другой поток мог уже пересчитать кеш
	if b.cache == nil {
		enc := make([]byte, EncodedSize)
		copy(enc, b.blocks[:])
		copy(enc[Volume:], b.metadata.Bytes())
		b.cache = enc
	}
	return b.cache
}

// Load заполняет ID и метаданные из результата Bytes. Освещение не меняется.
func (b *Buffer) Load(data []byte) error {
	if len(data) != EncodedSize {
		return fmt.Errorf("%w: got %d, want %d", ErrEncodedSize, len(data), EncodedSize)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeWritable()

	copy(b.blocks[:], data[:Volume])
	copy(b.metadata.Bytes(), data[Volume:])
	b.invalidate()
	return nil
}

// Clone создаёт независимую глубокую копию, не связанную с пулом
func (b *Buffer) Clone() *Buffer {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c := &Buffer{
		blocks:     b.blocks,
		metadata:   b.metadata,
		blockLight: b.blockLight,
		skyLight:   b.skyLight,
		dirty:      b.dirty,
		allAir:     b.allAir,
		revision:   b.revision,
		state:      stateOwned,
	}
	if b.cache != nil {
		c.cache = append([]byte(nil), b.cache...)
	}
	return c
}

// Reset возвращает буфер в исходное состояние: всё нули, небесный свет полный
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *Buffer) reset() {
	b.blocks = [Volume]byte{}
	b.metadata = NibbleArray{}
	b.blockLight = NibbleArray{}
	b.skyLight.Fill(FullSkyLight)

	b.cache = nil
	b.dirty = false
	b.allAir = true
	b.revision = 0
}

func (b *Buffer) invalidate() {
	b.cache = nil
	b.dirty = true
	b.revision++
}

func (b *Buffer) mustBeWritable() {
	if b.state == stateFree {
		panic(ErrReleased)
	}
}
