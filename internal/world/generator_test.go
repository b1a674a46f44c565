package world

import (
	"testing"

	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/annel0/voxel-core/internal/world/chunk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(g *ForestGenerator, coords vec.Vec3) *chunk.Buffer {
	buf := chunk.NewBuffer()
	g.Generate(coords, buf)
	return buf
}

func TestForestGenerator_Deterministic(t *testing.T) {
	a, b := NewForestGenerator(1234), NewForestGenerator(1234)
	a.ForestDensity, b.ForestDensity = 0.2, 0.2

	for _, c := range []vec.Vec3{{X: 0, Y: 3, Z: 0}, {X: -3, Y: 4, Z: 5}} {
		assert.Equal(t, generate(a, c).Bytes(), generate(b, c).Bytes(), "Один сид должен давать один сегмент %v", c)
	}
}

func TestForestGenerator_Layers(t *testing.T) {
	g := NewForestGenerator(5)
	g.ForestDensity = 0

	deep := generate(g, vec.Vec3{X: 2, Y: 1, Z: -1})
	for i := 0; i < chunk.Volume; i++ {
		x, y, z := chunk.Pos(i)
		require.Equal(t, byte(block.StoneBlockID), deep.Block(x, y, z), "Глубокий сегмент целиком из камня")
	}

	sky := generate(g, vec.Vec3{Y: 10})
	assert.True(t, sky.IsAllAir(), "Сегмент выше рельефа пустой")

	for _, col := range [][2]int{{0, 0}, {7, -3}, {-20, 40}} {
		h := g.Height(col[0], col[1])
		assert.GreaterOrEqual(t, h, g.BaseHeight)
		assert.LessOrEqual(t, h, g.BaseHeight+g.HeightRange)

		top := vec.Vec3{X: col[0], Y: h - 1, Z: col[1]}
		buf := generate(g, top.ToSegmentCoords())
		l := top.LocalInSegment()
		assert.Equal(t, byte(block.DirtBlockID), buf.Block(l.X, l.Y, l.Z), "Поверхность колонки %v из земли", col)
	}
}

func TestForestGenerator_Trees(t *testing.T) {
	g := NewForestGenerator(77)
	g.ForestDensity = 1

	h := g.Height(8, 8)
	base := vec.Vec3{X: 8, Y: h, Z: 8}
	buf := generate(g, base.ToSegmentCoords())
	l := base.LocalInSegment()

	assert.Equal(t, byte(block.LogBlockID), buf.Block(l.X, l.Y, l.Z), "При плотности 1 в каждой колонке ствол")
	assert.Less(t, buf.Metadata(l.X, l.Y, l.Z), uint8(4), "Метаданные ствола это порода")

	leaves := 0
	for i := 0; i < chunk.Volume; i++ {
		x, y, z := chunk.Pos(i)
		if buf.Block(x, y, z) == byte(block.LeavesBlockID) {
			leaves++
			assert.Equal(t, block.DecayStable, block.DecayStateOf(buf.Metadata(x, y, z)),
				"Сгенерированная листва устойчива")
		}
	}
	// Кроны могут уйти в соседний сегмент, поэтому проверяем сегмент с вершинами
	if leaves == 0 {
		top := base.Add(vec.Vec3{Y: minTrunkHeight})
		buf = generate(g, top.ToSegmentCoords())
		for i := 0; i < chunk.Volume; i++ {
			x, y, z := chunk.Pos(i)
			if buf.Block(x, y, z) == byte(block.LeavesBlockID) {
				leaves++
			}
		}
	}
	assert.Positive(t, leaves, "У деревьев должна быть крона")
}

func TestForestGenerator_CanopyCrossesSegments(t *testing.T) {
	g := NewForestGenerator(3)
	g.ForestDensity = 0.05

	// Ищем дерево у восточной границы сегмента
	var found *tree
	for z := -200; z < 200 && found == nil; z++ {
		if tr, ok := g.treeAt(15, z); ok {
			found = &tr
		}
	}
	require.NotNil(t, found, "При плотности 0.05 дерево на границе должно найтись")

	top := found.ground + found.trunk - 1
	pos := vec.Vec3{X: 16, Y: top - 1, Z: found.z}
	require.NotEqual(t, vec.Vec3{}.X, pos.ToSegmentCoords().X, "Позиция кроны лежит в соседнем сегменте")

	buf := generate(g, pos.ToSegmentCoords())
	l := pos.LocalInSegment()
	assert.NotEqual(t, byte(block.AirBlockID), buf.Block(l.X, l.Y, l.Z),
		"Крона дерева из соседнего сегмента должна достраиваться")
}
