package mig_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/root-talis/mig"
)

func TestMetrics(t *testing.T) {
	t.Parallel()
	t.Logf("Should count executed migrations by direction and result.")

	registry := prometheus.NewRegistry()
	metrics, err := mig.NewMetrics(registry)
	require.NoError(t, err)

	src := sourceMock{migrations: migrations}
	drv := driverMock{failOn: map[string]error{up(migrations[2]): ErrAny}}
	migrator := mig.New(&src, &drv, mig.WithMetrics(metrics))

	assert.ErrorIs(t, migrator.Apply(context.Background()), ErrAny)
	assert.NoError(t, migrator.RollBack(context.Background()))

	expected := `
# HELP mig_migrations_total Number of executed migrations by direction and result.
# TYPE mig_migrations_total counter
mig_migrations_total{direction="down",result="success"} 2
mig_migrations_total{direction="up",result="failure"} 1
mig_migrations_total{direction="up",result="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "mig_migrations_total"))

	families, err := registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() == "mig_migration_duration_seconds" {
			assert.Len(t, family.GetMetric(), 2, "one histogram per direction")
		}
	}
}

func TestMetricsRegistersOnce(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	_, err := mig.NewMetrics(registry)
	require.NoError(t, err)

	_, err = mig.NewMetrics(registry)
	assert.Error(t, err)
}
