package block

import (
	"fmt"
	"sync"

	"github.com/annel0/voxel-core/internal/vec"
)

// Factory создаёт экземпляр блока. r — общий генератор случайных чисел мира.
type Factory func(r Rand) Block

// Registry сопоставляет ID блоков и их фабрики.
// Создаётся миром и живёт вместе с ним.
type Registry struct {
	mu        sync.RWMutex
	factories map[BlockID]Factory
	rand      Rand
}

// NewRegistry создаёт пустой регистр с генератором r
func NewRegistry(r Rand) *Registry {
	return &Registry{
		factories: make(map[BlockID]Factory),
		rand:      r,
	}
}

// Register добавляет фабрику для указанного ID
func (r *Registry) Register(id BlockID, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = f
}

// IsRegistered проверяет, известен ли ID
func (r *Registry) IsRegistered(id BlockID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

// Rand возвращает общий генератор
func (r *Registry) Rand() Rand {
	return r.rand
}

// New создаёт блок по ID с метаданными и позицией.
// Для незарегистрированных ID возвращается блок без поведения.
func (r *Registry) New(id BlockID, meta uint8, pos vec.Vec3) Block {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	var b Block
	if ok {
		b = f(r.rand)
	} else {
		base := NewBase(id, fmt.Sprintf("unknown_%d", id), Properties{})
		b = &base
	}
	b.SetMetadata(meta)
	b.SetPos(pos)
	return b
}
