// Package metrics holds the Prometheus collectors for the random pool and the ID encoders.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// ReasonAllocate labels a refill that grew the pool buffer.
	ReasonAllocate = "allocate"
	// ReasonRerandomize labels a refill that re-randomized the existing buffer in place.
	ReasonRerandomize = "rerandomize"

	// PathFast labels IDs generated from the fixed 64 character alphabet.
	PathFast = "fast"
	// PathCustom labels IDs generated by a custom alphabet generator.
	PathCustom = "custom"
	// PathComplex labels composite prefix/public/secure IDs.
	PathComplex = "complex"
)

var (
	once sync.Once //nolint:gochecknoglobals

	poolRefills   *prometheus.CounterVec //nolint:gochecknoglobals
	poolBytes     prometheus.Counter     //nolint:gochecknoglobals
	idsGenerated  *prometheus.CounterVec //nolint:gochecknoglobals
	customBatches prometheus.Counter     //nolint:gochecknoglobals
)

// register creates the collectors on first use, so importing the library
// does not touch the default registry until something is generated.
func register() {
	once.Do(func() {
		poolRefills = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "amsid",
				Subsystem: "pool",
				Name:      "refills_total",
				Help:      "Number of random pool refills, differentiated by reason.",
			},
			[]string{"reason"},
		)

		poolBytes = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "amsid",
			Subsystem: "pool",
			Name:      "bytes_served_total",
			Help:      "Number of random bytes handed out by the pool.",
		})

		idsGenerated = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "amsid",
				Name:      "ids_generated_total",
				Help:      "Number of generated identifiers, differentiated by encoding path.",
			},
			[]string{"path"},
		)

		customBatches = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "amsid",
			Subsystem: "custom",
			Name:      "batches_total",
			Help:      "Number of random byte batches drawn by custom alphabet generators.",
		})
	})
}

// PoolRefill counts one pool refill.
func PoolRefill(reason string) {
	register()
	poolRefills.WithLabelValues(reason).Inc()
}

// PoolBytesServed counts n bytes handed out by the pool.
func PoolBytesServed(n int) {
	register()
	poolBytes.Add(float64(n))
}

// IDGenerated counts one identifier produced on the given path.
func IDGenerated(path string) {
	register()
	idsGenerated.WithLabelValues(path).Inc()
}

// CustomBatch counts one batch drawn by a custom alphabet generator.
func CustomBatch() {
	register()
	customBatches.Inc()
}
