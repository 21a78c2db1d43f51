package metrics_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-kv/pkg/metrics"
)

// counterSum suma los valores de la familia name en el registry.
func counterSum(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry.Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetrics_Contadores(t *testing.T) {
	m := metrics.New("test")

	m.RecordInventory("create", nil)
	m.RecordInventory("create", errors.New("x"))
	m.RecordAuth("")
	m.RecordAuth("rejected")
	m.TrackKV("get")(nil)

	assert.Equal(t, 2.0, counterSum(t, m, "test_inventory_operations_total"))
	assert.Equal(t, 2.0, counterSum(t, m, "test_auth_attempts_total"))
	assert.Equal(t, 1.0, counterSum(t, m, "test_auth_failures_total"))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["test_kv_operation_duration_seconds"])
	assert.True(t, names["go_goroutines"])
}

func TestMetrics_InstanciasIndependientes(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New("test")
		metrics.New("test")
	}, "cada instancia tiene su propio registry")
}

func TestMetrics_NilSeguro(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordInventory("list", nil)
		m.RecordAuth("missing_token")
		m.TrackKV("get")(nil)
	})
}
