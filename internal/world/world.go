package world

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/annel0/voxel-core/internal/world/block/implementations"
	"github.com/annel0/voxel-core/internal/world/chunk"
	"github.com/google/uuid"
)

// SegmentStore постоянное хранилище сегментов
type SegmentStore interface {
	Save(coords vec.Vec3, buf *chunk.Buffer) error
	Load(coords vec.Vec3, dst *chunk.Buffer) (bool, error)
}

// Generator заполняет новый сегмент, которого нет в хранилище
type Generator interface {
	Generate(coords vec.Vec3, dst *chunk.Buffer)
}

// Options параметры мира. Pool и Registry создаются по умолчанию, если не заданы.
type Options struct {
	Pool      *chunk.Pool
	Registry  *block.Registry
	Store     SegmentStore // Может быть nil: мир без сохранения
	Generator Generator    // Может быть nil: новые сегменты пустые

	RandomTickSpeed int           // Случайных тиков на непустой сегмент за тик
	TickRate        int           // Тиков в секунду для Run
	SaveInterval    time.Duration // Период автосохранения в Run (0 — выключено)

	Logger *logging.Logger // По умолчанию логгер компонента world
}

// World хранит загруженные сегменты и реализует block.World.
//
// Блоки не хранятся как объекты: GetBlock создаёт экземпляр из ID и
// метаданных сегмента, SetBlock записывает их обратно.
type World struct {
	id       uuid.UUID
	pool     *chunk.Pool
	registry *block.Registry
	store    SegmentStore
	gen      Generator
	log      *logging.Logger

	randomTickSpeed int
	tickRate        int
	saveInterval    time.Duration

	mu          sync.RWMutex
	segments    map[vec.Vec3]*Segment
	scheduled   map[vec.Vec3]struct{} // Блоки, ждущие планового тика
	drops       []ItemEntity
	currentTick uint64
	closed      bool
}

var _ block.World = (*World)(nil)

// New создаёт мир
func New(opts Options) *World {
	if opts.Pool == nil {
		opts.Pool = chunk.NewPool(0)
	}
	if opts.Registry == nil {
		opts.Registry = block.NewRegistry(block.NewLockedRand(time.Now().UnixNano()))
		implementations.RegisterDefaults(opts.Registry)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 20
	}
	if opts.RandomTickSpeed < 0 {
		opts.RandomTickSpeed = 0
	}
	if opts.Logger == nil {
		opts.Logger = logging.WorldLogger()
	}

	w := &World{
		id:              uuid.New(),
		pool:            opts.Pool,
		registry:        opts.Registry,
		store:           opts.Store,
		gen:             opts.Generator,
		log:             opts.Logger,
		randomTickSpeed: opts.RandomTickSpeed,
		tickRate:        opts.TickRate,
		saveInterval:    opts.SaveInterval,
		segments:        make(map[vec.Vec3]*Segment),
		scheduled:       make(map[vec.Vec3]struct{}),
	}

	w.log.Info("Мир %s создан (tickRate=%d, randomTickSpeed=%d)", w.id, w.tickRate, w.randomTickSpeed)
	return w
}

// ID возвращает идентификатор сессии мира
func (w *World) ID() uuid.UUID { return w.id }

// Registry возвращает регистр блоков мира
func (w *World) Registry() *block.Registry { return w.registry }

// CurrentTick возвращает номер последнего обработанного тика
func (w *World) CurrentTick() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentTick
}

// LoadedSegments возвращает количество сегментов в памяти
func (w *World) LoadedSegments() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.segments)
}

// ScheduledTicks возвращает количество блоков, ждущих планового тика
func (w *World) ScheduledTicks() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.scheduled)
}

// Segment возвращает загруженный сегмент или nil
func (w *World) Segment(coords vec.Vec3) *Segment {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.segments[coords]
}

// LoadSegment загружает сегмент, если он ещё не в памяти.
// Возвращает nil, если мир закрыт или хранилище не смогло прочитать сегмент.
func (w *World) LoadSegment(coords vec.Vec3) *Segment {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	return w.segmentLocked(coords)
}

// LoadArea загружает куб сегментов с центром center и радиусом radius
func (w *World) LoadArea(center vec.Vec3, radius int) {
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			for z := -radius; z <= radius; z++ {
				w.LoadSegment(center.Add(vec.Vec3{X: x, Y: y, Z: z}))
			}
		}
	}
}

// segmentLocked возвращает сегмент, создавая его при необходимости:
// сначала хранилище, затем генератор, иначе пустой буфер.
// При ошибке чтения хранилища возвращает nil и генератор не вызывает:
// сохранённая запись не должна затираться. Следующее обращение повторит
// загрузку. Вызывается под w.mu.Lock.
func (w *World) segmentLocked(coords vec.Vec3) *Segment {
	if seg, ok := w.segments[coords]; ok {
		return seg
	}

	buf := w.pool.Acquire()
	source := "empty"

	if w.store != nil {
		found, err := w.store.Load(coords, buf)
		if err != nil {
			if rerr := w.pool.Release(buf); rerr != nil {
				w.log.Error("Ошибка возврата буфера сегмента %v: %v", coords, rerr)
			}
			segmentLoadFailures.Inc()
			w.log.Error("Сегмент %v не загружен: %v", coords, err)
			return nil
		}
		if found {
			source = "storage"
		}
	}
	if source == "empty" && w.gen != nil {
		w.gen.Generate(coords, buf)
		source = "generator"
	}

	seg := &Segment{
		Coords:        coords,
		Source:        source,
		buf:           buf,
		savedRevision: buf.Revision(),
	}
	w.segments[coords] = seg
	w.scheduleSegmentLocked(seg)

	segmentsLoaded.WithLabelValues(source).Inc()
	segmentsActive.Inc()
	w.log.Debug("Сегмент %v загружен (%s)", coords, source)
	return seg
}

// scheduleSegmentLocked ставит в очередь блоки сегмента, которым нужен тик
func (w *World) scheduleSegmentLocked(seg *Segment) {
	if seg.buf.IsAllAir() {
		return
	}

	origin := seg.Coords.SegmentOrigin()
	for i := 0; i < chunk.Volume; i++ {
		x, y, z := chunk.Pos(i)
		id := seg.buf.Block(x, y, z)
		if id == byte(block.AirBlockID) {
			continue
		}

		pos := origin.Add(vec.Vec3{X: x, Y: y, Z: z})
		if w.registry.New(block.BlockID(id), seg.buf.Metadata(x, y, z), pos).NeedsTick() {
			w.scheduled[pos] = struct{}{}
		}
	}
	scheduledTicks.Set(float64(len(w.scheduled)))
}

// GetBlock возвращает блок в позиции. Для незагруженного сегмента — воздух.
func (w *World) GetBlock(pos vec.Vec3) block.Block {
	w.mu.RLock()
	seg, ok := w.segments[pos.ToSegmentCoords()]
	if !ok {
		w.mu.RUnlock()
		return w.registry.New(block.AirBlockID, 0, pos)
	}

	x, y, z := local(pos)
	id := seg.buf.Block(x, y, z)
	meta := seg.buf.Metadata(x, y, z)
	w.mu.RUnlock()

	return w.registry.New(block.BlockID(id), meta, pos)
}

// SetBlock записывает блок в его позицию.
// propagate — соседи получают OnStructuralUpdate, relight — небесный свет
// вокселя выставляется по прозрачности блока, persist — сегмент помечается
// для сохранения.
func (w *World) SetBlock(b block.Block, propagate, relight, persist bool) {
	pos := b.Pos()

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Warn("Запись блока в закрытый мир: %v", pos)
		return
	}

	seg := w.segmentLocked(pos.ToSegmentCoords())
	if seg == nil {
		w.mu.Unlock()
		w.log.Warn("Запись блока %v отброшена: сегмент недоступен", pos)
		return
	}
	x, y, z := local(pos)
	seg.buf.SetBlock(x, y, z, byte(b.ID()))
	seg.buf.SetMetadata(x, y, z, b.Metadata()&0x0F)

	if relight {
		var sky uint8
		if b.Properties().Transparent {
			sky = 15
		}
		seg.buf.SetSkyLight(x, y, z, sky)
	}
	if persist {
		seg.persist = true
	}

	if b.NeedsTick() {
		w.scheduled[pos] = struct{}{}
	} else {
		delete(w.scheduled, pos)
	}
	scheduledTicks.Set(float64(len(w.scheduled)))
	w.mu.Unlock()

	if propagate {
		w.notifyNeighbors(pos)
	}
}

// SetAir заменяет блок воздухом без уведомления соседей
func (w *World) SetAir(pos vec.Vec3) {
	w.SetBlock(w.registry.New(block.AirBlockID, 0, pos), false, true, true)
}

// PlaceBlock создаёт блок по ID и ставит его с уведомлением соседей
func (w *World) PlaceBlock(id block.BlockID, meta uint8, pos vec.Vec3) block.Block {
	b := w.registry.New(id, meta, pos)
	w.SetBlock(b, true, true, true)
	return b
}

// BreakBlock разрушает блок игроком: воздух, уведомление соседей и выпадение предметов.
// Возвращает выпавшие предметы.
func (w *World) BreakBlock(pos vec.Vec3) []block.Item {
	old := w.GetBlock(pos)
	if old.ID() == block.AirBlockID {
		return nil
	}

	drops := old.Drops()
	w.SetBlock(w.registry.New(block.AirBlockID, 0, pos), true, true, true)
	for _, item := range drops {
		w.DropItem(pos, item)
	}
	return drops
}

func (w *World) notifyNeighbors(pos vec.Vec3) {
	for _, n := range pos.Neighbors() {
		w.GetBlock(n).OnStructuralUpdate(w, pos)
	}
}

// Tick выполняет один тик: плановые тики в порядке координат, затем
// случайные тики непустых сегментов. Блоки, запланированные во время
// тика, обрабатываются на следующем.
func (w *World) Tick() {
	start := time.Now()

	w.mu.Lock()
	w.currentTick++
	tick := w.currentTick

	due := make([]vec.Vec3, 0, len(w.scheduled))
	for pos := range w.scheduled {
		due = append(due, pos)
	}
	w.scheduled = make(map[vec.Vec3]struct{})

	var active []vec.Vec3
	if w.randomTickSpeed > 0 {
		for coords, seg := range w.segments {
			if !seg.buf.IsAllAir() {
				active = append(active, coords)
			}
		}
	}
	w.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].Less(due[j]) })
	for _, pos := range due {
		if b := w.GetBlock(pos); b.NeedsTick() {
			b.OnTick(w, false)
		}
	}

	if len(active) > 0 {
		sort.Slice(active, func(i, j int) bool { return active[i].Less(active[j]) })
		w.randomTicks(active)
	}

	ticksTotal.Inc()
	tickDuration.Observe(time.Since(start).Seconds())
	if len(due) > 0 {
		w.log.Trace("Тик %d: плановых %d, сегментов со случайными тиками %d", tick, len(due), len(active))
	}
}

func (w *World) randomTicks(segments []vec.Vec3) {
	rnd := w.registry.Rand()
	for _, coords := range segments {
		origin := coords.SegmentOrigin()
		for i := 0; i < w.randomTickSpeed; i++ {
			x, y, z := chunk.Pos(rnd.Intn(chunk.Volume))
			b := w.GetBlock(origin.Add(vec.Vec3{X: x, Y: y, Z: z}))
			if b.ID() != block.AirBlockID {
				b.OnTick(w, true)
			}
		}
	}
}

// Run крутит тики с частотой tickRate и периодически сохраняет мир, пока ctx не отменён
func (w *World) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(w.tickRate))
	defer ticker.Stop()

	var saveC <-chan time.Time
	if w.saveInterval > 0 {
		saveTicker := time.NewTicker(w.saveInterval)
		defer saveTicker.Stop()
		saveC = saveTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Tick()
		case <-saveC:
			if err := w.Save(); err != nil {
				w.log.Error("Ошибка автосохранения: %v", err)
			}
		}
	}
}

// saveLocked сохраняет сегмент, если он помечен и изменился
func (w *World) saveLocked(seg *Segment) error {
	if w.store == nil || !seg.persist {
		return nil
	}

	rev := seg.buf.Revision()
	if rev != seg.savedRevision {
		if err := w.store.Save(seg.Coords, seg.buf); err != nil {
			segmentSaves.WithLabelValues("error").Inc()
			return fmt.Errorf("ошибка сохранения сегмента %v: %w", seg.Coords, err)
		}
		segmentSaves.WithLabelValues("ok").Inc()
		seg.savedRevision = rev
	}
	seg.persist = false
	return nil
}

// Save сохраняет все помеченные сегменты
func (w *World) Save() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	saved := 0
	for _, seg := range w.segments {
		if !seg.NeedsSave() {
			continue
		}
		if err := w.saveLocked(seg); err != nil {
			errs = append(errs, err)
			continue
		}
		saved++
	}

	if saved > 0 {
		w.log.Debug("Сохранено сегментов: %d", saved)
	}
	return errors.Join(errs...)
}

// UnloadSegment сохраняет сегмент и возвращает его буфер в пул.
// При ошибке сохранения сегмент остаётся в памяти.
func (w *World) UnloadSegment(coords vec.Vec3) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.unloadLocked(coords)
}

func (w *World) unloadLocked(coords vec.Vec3) error {
	seg, ok := w.segments[coords]
	if !ok {
		return nil
	}
	if err := w.saveLocked(seg); err != nil {
		return err
	}

	for pos := range w.scheduled {
		if pos.ToSegmentCoords() == coords {
			delete(w.scheduled, pos)
		}
	}
	delete(w.segments, coords)

	if err := w.pool.Release(seg.buf); err != nil {
		return fmt.Errorf("ошибка возврата буфера сегмента %v: %w", coords, err)
	}
	seg.buf = nil

	segmentsActive.Dec()
	scheduledTicks.Set(float64(len(w.scheduled)))
	return nil
}

// Close сохраняет и выгружает все сегменты. После Close запись в мир игнорируется.
func (w *World) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for coords := range w.segments {
		if err := w.unloadLocked(coords); err != nil {
			errs = append(errs, err)
		}
	}

	if n := w.pool.Outstanding(); n > 0 {
		w.log.Warn("После закрытия мира %s не возвращено буферов: %d", w.id, n)
	}
	w.log.Info("Мир %s закрыт на тике %d", w.id, w.currentTick)
	return errors.Join(errs...)
}
