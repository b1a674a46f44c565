package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world/chunk"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

// ErrNotReady возвращается при обращении к закрытому хранилищу
var ErrNotReady = errors.New("хранилище не готово")

const keyPrefix = "segment:"

// Options параметры открытия хранилища
type Options struct {
	Path     string // Директория BadgerDB
	InMemory bool   // Держать данные только в памяти (тесты)

	Logger *logging.Logger // По умолчанию логгер компонента storage
}

// SegmentStore хранит сериализованные сегменты в BadgerDB.
// Значение — сжатый zstd результат Buffer.Bytes; освещение не сохраняется.
type SegmentStore struct {
	db      *badger.DB
	mutex   sync.RWMutex
	isReady bool

	encoder *zstd.Encoder
	decoder *zstd.Decoder

	log *logging.Logger
}

// Open открывает хранилище сегментов
func Open(o Options) (*SegmentStore, error) {
	logger := o.Logger
	if logger == nil {
		logger = logging.StorageLogger()
	}

	opts := badger.DefaultOptions(o.Path)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка создания zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, fmt.Errorf("ошибка создания zstd decoder: %w", err)
	}

	if o.InMemory {
		logger.Info("Хранилище сегментов открыто в памяти")
	} else {
		logger.Info("Хранилище сегментов открыто: %s", o.Path)
	}

	return &SegmentStore{
		db:      db,
		isReady: true,
		encoder: encoder,
		decoder: decoder,
		log:     logger,
	}, nil
}

func segmentKey(coords vec.Vec3) []byte {
	return []byte(fmt.Sprintf("%s%d:%d:%d", keyPrefix, coords.X, coords.Y, coords.Z))
}

// Save записывает снимок буфера под координатами сегмента
func (s *SegmentStore) Save(coords vec.Vec3, buf *chunk.Buffer) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isReady {
		return ErrNotReady
	}

	data := s.encoder.EncodeAll(buf.Bytes(), make([]byte, 0, chunk.EncodedSize/4))

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(segmentKey(coords), data)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения сегмента %v в BadgerDB: %w", coords, err)
	}

	storeBytes.Add(float64(len(data)))
	storeOps.WithLabelValues("save").Inc()
	s.log.Trace("Сегмент %v сохранён (%d байт)", coords, len(data))
	return nil
}

// Load заполняет dst сохранённым сегментом. Возвращает false, если сегмента нет.
func (s *SegmentStore) Load(coords vec.Vec3, dst *chunk.Buffer) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isReady {
		return false, ErrNotReady
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(segmentKey(coords))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data, err = s.decoder.DecodeAll(val, make([]byte, 0, chunk.EncodedSize))
			return err
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		storeOps.WithLabelValues("miss").Inc()
		return false, nil
	}
	if err != nil {
		s.log.Error("Ошибка чтения сегмента %v: %v", coords, err)
		return false, fmt.Errorf("ошибка чтения сегмента %v: %w", coords, err)
	}

	if err := dst.Load(data); err != nil {
		s.log.Error("Сегмент %v повреждён: %v", coords, err)
		return false, fmt.Errorf("повреждённый сегмент %v: %w", coords, err)
	}

	storeOps.WithLabelValues("load").Inc()
	return true, nil
}

// Delete удаляет сегмент. Отсутствие сегмента ошибкой не считается.
func (s *SegmentStore) Delete(coords vec.Vec3) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isReady {
		return ErrNotReady
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(segmentKey(coords))
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления сегмента %v: %w", coords, err)
	}

	storeOps.WithLabelValues("delete").Inc()
	return nil
}

// Segments возвращает координаты всех сохранённых сегментов
func (s *SegmentStore) Segments() ([]vec.Vec3, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.isReady {
		return nil, ErrNotReady
	}

	var result []vec.Vec3
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var c vec.Vec3
			key := string(it.Item().Key())
			if _, err := fmt.Sscanf(key[len(keyPrefix):], "%d:%d:%d", &c.X, &c.Y, &c.Z); err != nil {
				return fmt.Errorf("некорректный ключ %q: %w", key, err)
			}
			result = append(result, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close закрывает хранилище данных
func (s *SegmentStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isReady {
		return nil
	}

	s.isReady = false
	s.encoder.Close()
	s.decoder.Close()
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия BadgerDB: %w", err)
	}
	s.log.Info("Хранилище сегментов закрыто")
	return nil
}
