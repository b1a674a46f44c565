package block

import (
	"math/rand"
	"sync"
)

// Rand источник случайных чисел для поведения блоков
type Rand interface {
	// Intn возвращает число из [0, n)
	Intn(n int) int
}

// LockedRand потокобезопасная обёртка над math/rand с явным сидом.
// Один экземпляр разделяется всеми воркерами тиков мира.
type LockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLockedRand создаёт генератор с указанным сидом
func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rnd: rand.New(rand.NewSource(seed))}
}

// Intn возвращает число из [0, n)
func (r *LockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// Int63 возвращает неотрицательное 63-битное число
func (r *LockedRand) Int63() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Int63()
}
