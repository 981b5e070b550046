package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds Prometheus counters for backend activity. All methods are
// nil-safe so backends can run without metrics wired.
type Metrics struct {
	operationsTotal *prometheus.CounterVec
	recordsDropped  prometheus.Counter
}

// NewMetrics creates and registers the backend metrics on the given
// registerer, or on the default registerer when nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldvault_store_operations_total",
				Help: "Total number of backend save/load operations",
			},
			[]string{"backend", "operation", "status"},
		),
		recordsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fieldvault_records_dropped_total",
				Help: "Total number of stored mappings dropped during decode",
			},
		),
	}
}

// RecordOperation records one backend save or load
func (m *Metrics) RecordOperation(backend, operation string, success bool) {
	if m == nil {
		return
	}
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.operationsTotal.WithLabelValues(backend, operation, status).Inc()
}

// RecordDropped records mappings dropped by best-effort decoding
func (m *Metrics) RecordDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordsDropped.Add(float64(n))
}
