package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records catalog store activity.
type StoreMetrics struct {
	mutations *prometheus.CounterVec
	failures  *prometheus.CounterVec
	items     prometheus.Gauge
	requests  prometheus.Gauge
}

// NewStoreMetrics registers the catalog metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_mutations_total",
		Help: "Committed catalog store mutations.",
	}, []string{"op"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_mutation_failures_total",
		Help: "Rejected catalog store mutations.",
	}, []string{"op"})
	items := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_items",
		Help: "Items currently held by the catalog store.",
	})
	requests := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_swap_requests",
		Help: "Swap requests currently held by the catalog store.",
	})
	reg.MustRegister(mutations, failures, items, requests)
	return &StoreMetrics{
		mutations: mutations,
		failures:  failures,
		items:     items,
		requests:  requests,
	}
}

// IncMutation increments the committed-mutation counter for the named operation.
func (m *StoreMetrics) IncMutation(op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncFailure increments the rejected-mutation counter for the named operation.
func (m *StoreMetrics) IncFailure(op string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(op)).Inc()
}

// SetCollectionSizes publishes the current collection sizes.
func (m *StoreMetrics) SetCollectionSizes(items, requests int) {
	if m == nil || m.items == nil {
		return
	}
	m.items.Set(float64(items))
	m.requests.Set(float64(requests))
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
