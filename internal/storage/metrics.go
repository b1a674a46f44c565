package storage

import "github.com/prometheus/client_golang/prometheus"

var (
	storeOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "segment_store",
		Name:      "operations_total",
		Help:      "Операции хранилища сегментов по типу (save/load/miss/delete).",
	}, []string{"op"})

	storeBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxel",
		Subsystem: "segment_store",
		Name:      "written_bytes_total",
		Help:      "Суммарный объём записанных сжатых сегментов.",
	})
)

func init() {
	prometheus.MustRegister(storeOps, storeBytes)
}
