package metrics

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postgresRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "postgres_repository",
		Name:      "operations_total",
		Help:      "Count of race store operations.",
	}, []string{"operation", "status"})
	postgresRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "postgres_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of race store operations.",
		Buckets:   repositoryBuckets,
	}, []string{"operation", "status"})
)

// PostgresRepository tracks metrics for the race store.
type PostgresRepository struct{}

// NewPostgresRepository creates a PostgresRepository metrics collector.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

// Observe records duration and status of a store operation. Domain rejections
// such as a missing race or a busy rat count as "rejected", not "error".
func (m PostgresRepository) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)
	if isRejection(err) {
		status = "rejected"
	}
	postgresRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	postgresRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

func isRejection(err error) bool {
	return errors.Is(err, storage.ErrNotFound) ||
		errors.Is(err, storage.ErrRatBusy) ||
		errors.Is(err, storage.ErrRaceClosed) ||
		errors.Is(err, storage.ErrDuplicateEntry) ||
		errors.Is(err, storage.ErrInvalidInput)
}
