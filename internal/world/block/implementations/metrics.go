package implementations

import "github.com/prometheus/client_golang/prometheus"

var decayChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "voxel",
	Subsystem: "leaves",
	Name:      "decay_checks_total",
	Help:      "Проверки распада листвы по исходу (kept/decayed).",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(decayChecks)
}
