package world

import (
	"github.com/annel0/voxel-core/internal/util"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/annel0/voxel-core/internal/world/chunk"
)

// Размеры деревьев
const (
	minTrunkHeight = 4
	canopyRadius   = 2
	dirtDepth      = 3 // Слой земли над камнем
)

// ForestGenerator генерирует рельеф из шума Перлина и лес на поверхности.
//
// Решение о дереве принимается по колонке, а не по сегменту, поэтому
// кроны, пересекающие границу, одинаково достраиваются в обоих сегментах.
type ForestGenerator struct {
	Seed          int64
	NoiseScale    float64 // Масштаб шума высоты
	VariantScale  float64 // Масштаб шума пород деревьев
	BaseHeight    int     // Минимальная высота поверхности
	HeightRange   int     // Разброс высоты над BaseHeight
	ForestDensity float64 // Доля колонок с деревом (от 0 до 1)

	height   *util.Noise2D
	variants *util.Noise2D
}

// NewForestGenerator создаёт генератор с настройками по умолчанию
func NewForestGenerator(seed int64) *ForestGenerator {
	return &ForestGenerator{
		Seed:          seed,
		NoiseScale:    0.01,
		VariantScale:  0.004,
		BaseHeight:    48,
		HeightRange:   24,
		ForestDensity: 0.02,
		height:        util.NewNoise2D(seed),
		variants:      util.NewNoise2D(seed + 42),
	}
}

// Height возвращает высоту поверхности: блоки ниже неё заполнены
func (g *ForestGenerator) Height(x, z int) int {
	n := g.height.At(float64(x)*g.NoiseScale, float64(z)*g.NoiseScale)
	return g.BaseHeight + int(n*float64(g.HeightRange))
}

type tree struct {
	x, z    int
	ground  int // Первый блок ствола
	trunk   int // Высота ствола
	variant uint8
}

// treeAt решает, растёт ли дерево в колонке
func (g *ForestGenerator) treeAt(x, z int) (tree, bool) {
	if g.ForestDensity <= 0 {
		return tree{}, false
	}

	h := columnHash(g.Seed, x, z)
	if float64(h&0xFFFFFF)/float64(1<<24) >= g.ForestDensity {
		return tree{}, false
	}

	variant := uint8(g.variants.At(float64(x)*g.VariantScale, float64(z)*g.VariantScale) * 4)
	if variant > block.MetaVariantMask {
		variant = block.MetaVariantMask
	}

	return tree{
		x:       x,
		z:       z,
		ground:  g.Height(x, z),
		trunk:   minTrunkHeight + int((h>>24)%3),
		variant: variant,
	}, true
}

// Generate заполняет сегмент coords
func (g *ForestGenerator) Generate(coords vec.Vec3, dst *chunk.Buffer) {
	origin := coords.SegmentOrigin()

	// Рельеф: камень, сверху dirtDepth блоков земли
	for x := 0; x < chunk.Size; x++ {
		for z := 0; z < chunk.Size; z++ {
			h := g.Height(origin.X+x, origin.Z+z)
			for y := 0; y < chunk.Size; y++ {
				wy := origin.Y + y
				if wy >= h {
					break
				}
				id := block.StoneBlockID
				if wy >= h-dirtDepth {
					id = block.DirtBlockID
				}
				dst.SetBlock(x, y, z, byte(id))
			}
		}
	}

	if g.ForestDensity <= 0 {
		return
	}

	// Деревья из соседних колонок тоже: их кроны заходят в сегмент
	for wx := origin.X - canopyRadius; wx < origin.X+chunk.Size+canopyRadius; wx++ {
		for wz := origin.Z - canopyRadius; wz < origin.Z+chunk.Size+canopyRadius; wz++ {
			t, ok := g.treeAt(wx, wz)
			if !ok {
				continue
			}
			top := t.ground + t.trunk
			if top < origin.Y || t.ground >= origin.Y+chunk.Size {
				continue
			}
			g.placeTree(origin, t, dst)
		}
	}
}

// placeTree ставит крону (только в воздух) и ствол
func (g *ForestGenerator) placeTree(origin vec.Vec3, t tree, dst *chunk.Buffer) {
	top := t.ground + t.trunk - 1

	for dy := -2; dy <= 1; dy++ {
		r := canopyRadius
		if dy >= 0 {
			r = 1
		}
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				ax, az := abs(dx), abs(dz)
				if ax == canopyRadius && az == canopyRadius {
					continue // срезаем углы
				}
				if dy == 1 && ax+az > 1 {
					continue // верхушка крестом
				}
				put(origin, dst, vec.Vec3{X: t.x + dx, Y: top + dy, Z: t.z + dz}, block.LeavesBlockID, t.variant, true)
			}
		}
	}

	for y := t.ground; y <= top; y++ {
		put(origin, dst, vec.Vec3{X: t.x, Y: y, Z: t.z}, block.LogBlockID, t.variant, false)
	}
}

// put записывает блок, если позиция попадает в сегмент
func put(origin vec.Vec3, dst *chunk.Buffer, pos vec.Vec3, id block.BlockID, meta uint8, onlyAir bool) {
	x, y, z := pos.X-origin.X, pos.Y-origin.Y, pos.Z-origin.Z
	if x < 0 || x >= chunk.Size || y < 0 || y >= chunk.Size || z < 0 || z >= chunk.Size {
		return
	}
	if onlyAir && dst.Block(x, y, z) != byte(block.AirBlockID) {
		return
	}
	dst.SetBlock(x, y, z, byte(id))
	dst.SetMetadata(x, y, z, meta)
}

// columnHash перемешивает сид и координаты колонки (финализатор murmur3)
func columnHash(seed int64, x, z int) uint64 {
	h := uint64(seed) ^ uint64(int64(x))*0x9E3779B97F4A7C15 ^ uint64(int64(z))*0xC2B2AE3D27D4EB4F
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return h
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
