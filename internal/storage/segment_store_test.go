package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/chunk"
	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SegmentStore {
	s, err := Open(Options{InMemory: true})
	require.NoError(t, err, "Не удалось открыть хранилище")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadSegment(t *testing.T) {
	s := setupTestStore(t)

	src := chunk.NewBuffer()
	src.SetBlock(1, 2, 3, 18)
	src.SetMetadata(1, 2, 3, 0x0A)
	src.SetBlock(15, 15, 15, 17)
	src.SetSkyLight(0, 0, 0, 3)

	coords := vec.Vec3{X: -2, Y: 4, Z: 7}
	require.NoError(t, s.Save(coords, src))

	dst := chunk.NewBuffer()
	found, err := s.Load(coords, dst)
	require.NoError(t, err)
	require.True(t, found, "Сохранённый сегмент должен находиться")

	assert.Equal(t, src.Bytes(), dst.Bytes(), "Снимок должен совпадать")
	assert.Equal(t, uint8(0x0A), dst.Metadata(1, 2, 3))
	assert.Equal(t, uint8(15), dst.SkyLight(0, 0, 0), "Освещение не сохраняется")
}

func TestLoadMissingSegment(t *testing.T) {
	s := setupTestStore(t)
	before := testutil.ToFloat64(storeOps.WithLabelValues("miss"))

	dst := chunk.NewBuffer()
	found, err := s.Load(vec.Vec3{X: 100}, dst)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, dst.IsAllAir(), "Буфер не должен меняться")
	assert.Equal(t, before+1, testutil.ToFloat64(storeOps.WithLabelValues("miss")))
}

func TestDeleteAndList(t *testing.T) {
	s := setupTestStore(t)
	buf := chunk.NewBuffer()

	a, b := vec.Vec3{X: 1}, vec.Vec3{X: -1, Y: -1, Z: -1}
	require.NoError(t, s.Save(a, buf))
	require.NoError(t, s.Save(b, buf))

	list, err := s.Segments()
	require.NoError(t, err)
	assert.ElementsMatch(t, []vec.Vec3{a, b}, list)

	require.NoError(t, s.Delete(a))
	require.NoError(t, s.Delete(vec.Vec3{Z: 9}), "Удаление отсутствующего сегмента не ошибка")

	found, err := s.Load(a, chunk.NewBuffer())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClosedStore(t *testing.T) {
	s, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Повторное закрытие допустимо")

	assert.ErrorIs(t, s.Save(vec.Vec3{}, chunk.NewBuffer()), ErrNotReady)
	_, err = s.Load(vec.Vec3{}, chunk.NewBuffer())
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestPersistentStoreReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Path: dir})
	require.NoError(t, err)
	buf := chunk.NewBuffer()
	buf.SetBlock(0, 0, 0, 1)
	require.NoError(t, s.Save(vec.Vec3{}, buf))
	require.NoError(t, s.Close())

	s, err = Open(Options{Path: dir})
	require.NoError(t, err)
	defer s.Close()

	dst := chunk.NewBuffer()
	found, err := s.Load(vec.Vec3{}, dst)
	require.NoError(t, err)
	assert.True(t, found, "Данные должны пережить переоткрытие")
	assert.Equal(t, byte(1), dst.Block(0, 0, 0))
}

func TestLoadCorruptSegment(t *testing.T) {
	dir := t.TempDir()
	logging.SetLogDir(dir)
	defer logging.SetLogDir("logs")
	logger, err := logging.NewLogger("storage")
	require.NoError(t, err)
	logger.SetLevels(logging.ERROR, logging.TRACE)
	defer logger.Close()

	s, err := Open(Options{InMemory: true, Logger: logger})
	require.NoError(t, err)
	defer s.Close()

	coords := vec.Vec3{X: 3, Y: -1, Z: 2}
	require.NoError(t, s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(segmentKey(coords), []byte("не zstd"))
	}))

	found, err := s.Load(coords, chunk.NewBuffer())
	assert.Error(t, err, "Повреждённая запись должна давать ошибку, а не промах")
	assert.False(t, found)

	files, err := filepath.Glob(filepath.Join(dir, "storage_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ERROR] [storage] Ошибка чтения сегмента")
}
