// Package metrics registra las métricas Prometheus del servicio.
// Cada instancia usa su propio registry para poder construir varios routers en tests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics colectores del servicio.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AuthAttempts        prometheus.Counter
	AuthFailures        *prometheus.CounterVec
	KVOperationDuration *prometheus.HistogramVec
	InventoryOperations *prometheus.CounterVec
}

// New crea e inicializa los colectores con el prefijo indicado.
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		AuthAttempts: f.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of bearer token verifications",
		}),
		AuthFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_auth_failures_total",
			Help: "Total number of rejected bearer tokens",
		}, []string{"reason"}),
		KVOperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_kv_operation_duration_seconds",
			Help:    "Duration of key-value store operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		InventoryOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_inventory_operations_total",
			Help: "Total number of inventory operations",
		}, []string{"operation", "outcome"}),
	}
}

// TrackKV devuelve una función que registra la duración de una operación del store.
func (m *Metrics) TrackKV(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		if m == nil {
			return
		}
		m.KVOperationDuration.WithLabelValues(operation, outcome(err)).Observe(time.Since(start).Seconds())
	}
}

// RecordInventory incrementa el contador de operaciones de inventario.
func (m *Metrics) RecordInventory(operation string, err error) {
	if m == nil {
		return
	}
	m.InventoryOperations.WithLabelValues(operation, outcome(err)).Inc()
}

// RecordAuth registra un intento de verificación; reason vacío es éxito.
func (m *Metrics) RecordAuth(reason string) {
	if m == nil {
		return
	}
	m.AuthAttempts.Inc()
	if reason != "" {
		m.AuthFailures.WithLabelValues(reason).Inc()
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
