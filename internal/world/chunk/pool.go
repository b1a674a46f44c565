package chunk

import (
	"sync"
	"sync/atomic"
)

// Pool переиспользует буферы сегментов, чтобы не нагружать GC при высокой
// частоте загрузки и выгрузки. Порядок выдачи не гарантируется.
type Pool struct {
	mu      sync.Mutex
	free    []*Buffer
	maxIdle int // 0 — без ограничения

	outstanding atomic.Int64
}

// NewPool создаёт пул. maxIdle ограничивает число простаивающих буферов, 0 — без ограничения.
func NewPool(maxIdle int) *Pool {
	if maxIdle < 0 {
		maxIdle = 0
	}
	return &Pool{maxIdle: maxIdle}
}

// Prefill заранее создаёт n буферов
func (p *Pool) Prefill(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	added := 0
	for ; added < n; added++ {
		if p.maxIdle > 0 && len(p.free) >= p.maxIdle {
			break
		}
		b := NewBuffer()
		b.pool = p
		b.state = stateFree
		p.free = append(p.free, b)
	}
	poolIdle.Add(float64(added))
}

// Acquire выдаёт буфер из пула или создаёт новый. Никогда не блокируется надолго и не падает.
func (p *Pool) Acquire() *Buffer {
	p.mu.Lock()
	var b *Buffer
	if n := len(p.free); n > 0 {
		b = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	}
	p.mu.Unlock()

	if b == nil {
		b = NewBuffer()
		b.pool = p
		poolAcquired.WithLabelValues("fresh").Inc()
	} else {
		poolIdle.Dec()
		poolAcquired.WithLabelValues("recycled").Inc()
	}

	b.mu.Lock()
	b.state = stateInUse
	b.mu.Unlock()

	p.outstanding.Add(1)
	poolOutstanding.Inc()
	return b
}

// Release сбрасывает буфер и возвращает его в пул.
// После вызова буфер нельзя изменять до следующего Acquire.
func (p *Pool) Release(b *Buffer) error {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	switch {
	case b.pool != p:
		b.mu.Unlock()
		poolMisuse.WithLabelValues("foreign").Inc()
		return ErrForeignBuffer
	case b.state == stateFree:
		b.mu.Unlock()
		poolMisuse.WithLabelValues("double_release").Inc()
		return ErrDoubleRelease
	}
	b.reset()
	b.state = stateFree
	b.mu.Unlock()

	p.outstanding.Add(-1)
	poolOutstanding.Dec()
	poolReleased.Inc()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxIdle > 0 && len(p.free) >= p.maxIdle {
		// Лишний буфер отдаём GC. Владелец сохраняется: повторный Release
		// вернёт ErrDoubleRelease.
		return nil
	}
	p.free = append(p.free, b)
	poolIdle.Inc()
	return nil
}

// Idle возвращает число буферов в пуле
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Outstanding возвращает число выданных и ещё не возвращённых буферов.
// Ненулевое значение при остановке мира означает утечку.
func (p *Pool) Outstanding() int64 {
	return p.outstanding.Load()
}

// Lease выдаёт буфер под охраной: Release можно откладывать через defer на
// всех путях выхода.
func (p *Pool) Lease() *Lease {
	return &Lease{pool: p, buf: p.Acquire()}
}

// Lease владеет одним буфером пула до вызова Release
type Lease struct {
	pool *Pool
	buf  *Buffer
	once sync.Once
	err  error
}

// Buffer возвращает арендованный буфер или nil после Release
func (l *Lease) Buffer() *Buffer {
	return l.buf
}

// Detach забирает буфер из аренды: дальше за его возврат отвечает вызывающий
func (l *Lease) Detach() *Buffer {
	var b *Buffer
	l.once.Do(func() {
		b = l.buf
		l.buf = nil
	})
	return b
}

// Release возвращает буфер в пул. Повторные вызовы ничего не делают.
func (l *Lease) Release() error {
	l.once.Do(func() {
		l.err = l.pool.Release(l.buf)
		l.buf = nil
	})
	return l.err
}
