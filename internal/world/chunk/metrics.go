package chunk

import "github.com/prometheus/client_golang/prometheus"

// Метрики пула общие для всех экземпляров Pool в процессе
var (
	poolAcquired = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "chunk_pool",
		Name:      "acquired_total",
		Help:      "Выданные буферы сегментов по источнику (fresh/recycled).",
	}, []string{"source"})
	poolReleased = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "chunk_pool",
		Name:      "released_total",
		Help:      "Буферы, возвращённые в пул.",
	})
	poolMisuse = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "chunk_pool",
		Name:      "misuse_total",
		Help:      "Ошибочные возвраты: повторный возврат или чужой буфер.",
	}, []string{"kind"})
	poolOutstanding = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxel",
		Subsystem: "chunk_pool",
		Name:      "outstanding",
		Help:      "Буферы, выданные и ещё не возвращённые.",
	})
	poolIdle = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxel",
		Subsystem: "chunk_pool",
		Name:      "idle",
		Help:      "Буферы, ожидающие в пулах.",
	})
)

func init() {
	prometheus.MustRegister(poolAcquired, poolReleased, poolMisuse, poolOutstanding, poolIdle)
}
