package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	settlementOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "settlement",
		Name:      "operations_total",
		Help:      "Count of settlement driver operations.",
	}, []string{"operation", "status"})
	settlementOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "settlement",
		Name:      "operation_duration_seconds",
		Help:      "Duration of settlement driver operations.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"operation", "status"})

	sweeperIterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sweeper",
		Name:      "iterations_total",
		Help:      "Count of sweeper passes.",
	}, []string{"kind", "status"})
	sweeperIterationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sweeper",
		Name:      "iteration_duration_seconds",
		Help:      "Duration of sweeper passes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind", "status"})
	sweeperRaces = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sweeper",
		Name:      "races_per_iteration",
		Help:      "Number of races handled per sweeper pass.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"kind"})
)

// Settlement tracks driver operations.
type Settlement struct{}

// NewSettlement constructs a Settlement collector.
func NewSettlement() *Settlement {
	return &Settlement{}
}

// Observe records a driver operation outcome and duration.
func (m Settlement) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)
	settlementOperationsTotal.WithLabelValues(operation, status).Inc()
	settlementOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// Sweeper tracks durable settlement sweeps.
type Sweeper struct{}

// NewSweeper constructs a Sweeper collector.
func NewSweeper() *Sweeper {
	return &Sweeper{}
}

// ObserveSweep records one pass of kind over races.
func (m Sweeper) ObserveSweep(kind string, races int, err error, started time.Time) {
	status := statusLabel(err)
	sweeperIterationsTotal.WithLabelValues(kind, status).Inc()
	sweeperIterationDuration.WithLabelValues(kind, status).Observe(time.Since(started).Seconds())
	if races > 0 {
		sweeperRaces.WithLabelValues(kind).Observe(float64(races))
	}
}
