package block

import (
	"testing"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestDecayStateOf(t *testing.T) {
	assert.Equal(t, DecayStable, DecayStateOf(0x00))
	assert.Equal(t, DecayStable, DecayStateOf(0x03), "Порода не влияет на состояние")
	assert.Equal(t, DecayPending, DecayStateOf(0x08|0x02))
	assert.Equal(t, DecayDisabled, DecayStateOf(0x04))
	assert.Equal(t, DecayDisabled, DecayStateOf(0x0C), "Отключение распада важнее ожидания")
}

func TestEncodeDecay(t *testing.T) {
	assert.Equal(t, uint8(0x01), EncodeDecay(1, DecayStable))
	assert.Equal(t, uint8(0x0A), EncodeDecay(2, DecayPending))
	assert.Equal(t, uint8(0x07), EncodeDecay(3, DecayDisabled))

	for meta := uint8(0); meta < 16; meta++ {
		if meta&0x0C == 0x0C {
			continue
		}
		assert.Equal(t, meta, EncodeDecay(meta&MetaVariantMask, DecayStateOf(meta)),
			"Раскладка байта должна сохраняться для метаданных %#x", meta)
	}
}

func TestRegistry_New(t *testing.T) {
	r := NewRegistry(NewLockedRand(1))
	r.Register(StoneBlockID, func(Rand) Block {
		b := NewBase(StoneBlockID, "stone", Properties{Hardness: 1.5})
		return &b
	})

	pos := vec.Vec3{X: 1, Y: 2, Z: 3}
	stone := r.New(StoneBlockID, 0, pos)
	assert.Equal(t, StoneBlockID, stone.ID())
	assert.Equal(t, "stone", stone.Name())
	assert.Equal(t, pos, stone.Pos())
	assert.True(t, r.IsRegistered(StoneBlockID))

	unknown := r.New(200, 5, pos)
	assert.Equal(t, BlockID(200), unknown.ID())
	assert.Equal(t, uint8(5), unknown.Metadata())
	assert.False(t, unknown.NeedsTick())
	assert.Equal(t, []Item{{ID: 200, Damage: 5, Count: 1}}, unknown.Drops())
}

func TestLockedRand_Deterministic(t *testing.T) {
	a, b := NewLockedRand(42), NewLockedRand(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000), "Одинаковый сид должен давать одинаковую последовательность")
	}
}
