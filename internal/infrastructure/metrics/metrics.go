// Package metrics expone contadores Prometheus de las llamadas a backends y del flujo de salida.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Nombres de métricas.
const (
	MetricBackendRequestsTotal  = "warehouse_backend_requests_total"
	MetricBackendDurationSecond = "warehouse_backend_request_duration_seconds"
	MetricExportCommitsTotal    = "warehouse_export_commits_total"
	MetricOrderIDAttempts       = "warehouse_order_id_attempts"
	MetricDraftsTotal           = "warehouse_export_drafts_total"
)

// Metrics colectores registrados en un registry propio. Un *Metrics nil no hace nada (tests).
type Metrics struct {
	registry        *prometheus.Registry
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	exportCommits   *prometheus.CounterVec
	orderIDAttempts prometheus.Histogram
	drafts          *prometheus.CounterVec
}

// New crea y registra los colectores en un registry nuevo (incluye métricas de proceso y Go).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricBackendRequestsTotal,
			Help: "Llamadas a las APIs de bodega y ERP por servicio, método y código.",
		}, []string{"service", "method", "code"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricBackendDurationSecond,
			Help:    "Duración de las llamadas a backends.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method"}),
		exportCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricExportCommitsTotal,
			Help: "Corridas del commit por tipo y resultado.",
		}, []string{"kind", "outcome"}),
		orderIDAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricOrderIDAttempts,
			Help:    "Intentos necesarios para obtener un order id único.",
			Buckets: []float64{1, 2, 3, 5, 10, 20},
		}),
		drafts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricDraftsTotal,
			Help: "Transiciones de borradores de salida por estado.",
		}, []string{"state"}),
	}
	reg.MustRegister(
		m.backendRequests,
		m.backendDuration,
		m.exportCommits,
		m.orderIDAttempts,
		m.drafts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry para el handler /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveBackend registra una llamada; code 0 = error de red.
func (m *Metrics) ObserveBackend(service, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(service, method, strconv.Itoa(code)).Inc()
	m.backendDuration.WithLabelValues(service, method).Observe(elapsed.Seconds())
}

// CommitFinished registra el resultado de una corrida (export | undo).
func (m *Metrics) CommitFinished(kind, outcome string) {
	if m == nil {
		return
	}
	m.exportCommits.WithLabelValues(kind, outcome).Inc()
}

// OrderIDGenerated intentos usados por el generador.
func (m *Metrics) OrderIDGenerated(attempts int) {
	if m == nil {
		return
	}
	m.orderIDAttempts.Observe(float64(attempts))
}

// DraftTransition cuenta la entrada de un borrador a un estado.
func (m *Metrics) DraftTransition(state string) {
	if m == nil {
		return
	}
	m.drafts.WithLabelValues(state).Inc()
}
