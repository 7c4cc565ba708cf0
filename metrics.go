package mig

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/root-talis/mig/migration"
)

// Metrics counts and times executed migrations. A nil *Metrics records nothing.
type Metrics struct {
	migrations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		migrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mig",
			Name:      "migrations_total",
			Help:      "Number of executed migrations by direction and result.",
		}, []string{"direction", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mig",
			Name:      "migration_duration_seconds",
			Help:      "Time spent executing a single migration script.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 4, 8),
		}, []string{"direction"}),
	}

	for _, collector := range []prometheus.Collector{m.migrations, m.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) observe(direction migration.Direction, took time.Duration, err error) {
	if m == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "failure"
	}

	m.migrations.WithLabelValues(direction.String(), result).Inc()
	m.duration.WithLabelValues(direction.String()).Observe(took.Seconds())
}
