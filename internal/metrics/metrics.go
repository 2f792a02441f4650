// Package metrics exposes prometheus metrics for the operation engine.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
)

// Namespace prefixes every metric name.
const Namespace = "preauthd"

// Service records engine activity. It implements tx.Observer.
type Service struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	entriesChanged    *prometheus.CounterVec
	ledgerSequence    prometheus.Gauge
}

var _ tx.Observer = (*Service)(nil)

// NewService creates a metrics service with all metrics registered on a
// private registry.
func NewService() *Service {
	m := &Service{registry: prometheus.NewRegistry()}

	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Operations processed by type and result code",
		},
		[]string{"type", "result"},
	)
	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent applying an operation, including the commit",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"type"},
	)
	m.entriesChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "entries_changed_total",
			Help:      "Ledger entries written by applied operations",
		},
		[]string{"entry_type", "node_type"},
	)
	m.ledgerSequence = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ledger_sequence",
			Help:      "Ledger sequence of the last processed operation",
		},
	)

	m.registry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.entriesChanged,
		m.ledgerSequence,
	)
	return m
}

// GetRegistry returns the registry holding every metric of the service.
func (m *Service) GetRegistry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Service) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OperationApplied records one engine result.
func (m *Service) OperationApplied(_ context.Context, res *tx.ApplyResult) {
	opType := res.Type.String()
	m.operationsTotal.WithLabelValues(opType, res.Result.String()).Inc()
	m.operationDuration.WithLabelValues(opType).Observe(res.Duration.Seconds())
	m.ledgerSequence.Set(float64(res.LedgerSequence))

	for _, node := range res.Metadata.AffectedNodes {
		m.entriesChanged.WithLabelValues(node.LedgerEntryType, node.NodeType).Inc()
	}
}

// RegisterCacheStats exposes entry store cache counters read through stats.
func (m *Service) RegisterCacheStats(stats func() (hits, misses uint64)) {
	m.registry.MustRegister(
		prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "store_cache_hits_total",
				Help:      "Entry store reads served from the cache",
			},
			func() float64 {
				hits, _ := stats()
				return float64(hits)
			},
		),
		prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "store_cache_misses_total",
				Help:      "Entry store reads that went to the database",
			},
			func() float64 {
				_, misses := stats()
				return float64(misses)
			},
		),
	)
}
