package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	resourcesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "libctl",
			Subsystem: "reconcile",
			Name:      "resources_created_total",
			Help:      "Remote resources created, by kind.",
		},
		[]string{"kind"},
	)
	datasetOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "libctl",
			Subsystem: "reconcile",
			Name:      "datasets_total",
			Help:      "Manifest entries processed, by outcome.",
		},
		[]string{"outcome"},
	)
	waitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "libctl",
			Subsystem: "reconcile",
			Name:      "wait_duration_seconds",
			Help:      "Time spent waiting for server-side dataset processing.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(resourcesCreated, datasetOutcomes, waitDuration)
	})
}

func RecordResourceCreated(kind string) {
	RegisterMetrics()
	resourcesCreated.WithLabelValues(kind).Inc()
}

func RecordDatasetOutcome(outcome string) {
	RegisterMetrics()
	datasetOutcomes.WithLabelValues(outcome).Inc()
}

func RecordWaitDuration(duration time.Duration) {
	RegisterMetrics()
	waitDuration.Observe(duration.Seconds())
}
