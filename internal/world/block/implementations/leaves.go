package implementations

import (
	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
)

// Породы листвы (биты 0–1 метаданных)
const (
	VariantOak uint8 = iota
	VariantSpruce
	VariantBirch
	VariantJungle
)

// maxDecayDistance — сколько шагов по листве той же породы можно пройти до ствола
const maxDecayDistance = 4

// Шансы выпадения предметов при распаде: 1/appleChance и 1/saplingChance
const (
	appleChance   = 200
	saplingChance = 20
)

// Leaves — листва, распадающаяся без ствола поблизости.
//
// Изменение соседа только помечает листву как ожидающую проверки.
// Сама проверка выполняется на тике, поэтому обработка обновления
// одного блока не запускает рекурсивных поисков и изменений мира.
type Leaves struct {
	block.Base

	variant uint8
	state   block.DecayState
	rand    block.Rand
}

// NewLeaves создаёт листву; r используется для выбора выпадающих предметов
func NewLeaves(r block.Rand) *Leaves {
	return &Leaves{
		Base: block.NewBase(block.LeavesBlockID, "Leaves", block.Properties{
			Hardness:        0.2,
			BlastResistance: 1,
			Flammable:       true,
			Transparent:     true,
		}),
		rand: r,
	}
}

// Metadata кодирует породу и состояние распада в байт сегмента
func (l *Leaves) Metadata() uint8 {
	return block.EncodeDecay(l.variant, l.state)
}

// SetMetadata разбирает байт сегмента
func (l *Leaves) SetMetadata(meta uint8) {
	l.variant = meta & block.MetaVariantMask
	l.state = block.DecayStateOf(meta)
}

// Variant возвращает породу листвы
func (l *Leaves) Variant() uint8 { return l.variant }

// DecayState возвращает текущее состояние распада
func (l *Leaves) DecayState() block.DecayState { return l.state }

// NeedsTick: тик нужен только листве, ожидающей проверки
func (l *Leaves) NeedsTick() bool {
	return l.state == block.DecayPending
}

// OnStructuralUpdate помечает листву для проверки на следующем тике
func (l *Leaves) OnStructuralUpdate(w block.World, changed vec.Vec3) {
	if l.state != block.DecayStable {
		return
	}

	l.state = block.DecayPending
	w.SetBlock(l, false, false, false)
}

// OnTick проверяет связь со стволом и либо снимает пометку, либо разрушает листву
func (l *Leaves) OnTick(w block.World, isRandom bool) {
	if l.state != block.DecayPending {
		return
	}

	pos := l.Pos()
	logging.Trace("Проверка распада листвы в %v", pos)

	if FindAnchor(w, pos, l.Metadata()&block.MetaSpeciesMask) {
		l.state = block.DecayStable
		w.SetBlock(l, false, false, false)
		decayChecks.WithLabelValues("kept").Inc()
		return
	}

	logging.Debug("Листва в %v распалась", pos)
	decayChecks.WithLabelValues("decayed").Inc()

	w.SetAir(pos)
	for _, item := range l.Drops() {
		w.DropItem(pos, item)
	}

	// Соседи проверят себя сами на своих тиках
	for _, n := range pos.Neighbors() {
		w.GetBlock(n).OnStructuralUpdate(w, pos)
	}
}

// Drops: дуб изредка роняет яблоко, любая листва иногда роняет саженец своей породы
func (l *Leaves) Drops() []block.Item {
	if l.rand == nil {
		return nil
	}
	if l.variant == VariantOak && l.rand.Intn(appleChance) == 0 {
		return []block.Item{{ID: block.AppleItemID, Count: 1}}
	}
	if l.rand.Intn(saplingChance) == 0 {
		return []block.Item{{ID: block.SaplingItemID, Damage: int16(l.variant), Count: 1}}
	}
	return nil
}

// FindAnchor ищет ствол, достижимый из start не более чем за maxDecayDistance
// шагов по листве с ключом породы species.
func FindAnchor(w block.World, start vec.Vec3, species uint8) bool {
	visited := make(map[vec.Vec3]struct{}, 64)
	return findAnchor(w, start, species, visited, 0)
}

func findAnchor(w block.World, pos vec.Vec3, species uint8, visited map[vec.Vec3]struct{}, distance int) bool {
	if _, seen := visited[pos]; seen {
		return false
	}

	b := w.GetBlock(pos)
	if _, ok := b.(*Log); ok {
		return true
	}

	visited[pos] = struct{}{}

	if distance >= maxDecayDistance {
		return false
	}

	leaves, ok := b.(*Leaves)
	if !ok || leaves.Metadata()&block.MetaSpeciesMask != species {
		return false
	}

	// Порядок обхода: вниз, запад, восток, юг, север, вверх
	for _, n := range pos.Neighbors() {
		if findAnchor(w, n, species, visited, distance+1) {
			return true
		}
	}
	return false
}
