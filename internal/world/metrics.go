package world

import "github.com/prometheus/client_golang/prometheus"

var (
	segmentsLoaded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "segments_loaded_total",
		Help:      "Загруженные сегменты по источнику (storage/generator/empty).",
	}, []string{"source"})

	segmentLoadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "segment_load_failures_total",
		Help:      "Сегменты, которые не удалось прочитать из хранилища.",
	})

	segmentsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "segments_active",
		Help:      "Количество сегментов в памяти.",
	})

	segmentSaves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "segment_saves_total",
		Help:      "Сохранения сегментов по результату (ok/error).",
	}, []string{"result"})

	ticksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "ticks_total",
		Help:      "Количество обработанных тиков мира.",
	})

	scheduledTicks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "scheduled_ticks",
		Help:      "Блоки, ожидающие планового тика.",
	})

	tickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "tick_duration_seconds",
		Help:      "Длительность обработки одного тика.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	})

	itemsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "world",
		Name:      "items_dropped_total",
		Help:      "Предметы, выброшенные в мир.",
	})
)

func init() {
	prometheus.MustRegister(
		segmentsLoaded,
		segmentLoadFailures,
		segmentsActive,
		segmentSaves,
		ticksTotal,
		scheduledTicks,
		tickDuration,
		itemsDropped,
	)
}
