package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OperationSubmit = "submit"
	OperationCreate = "create"
	OperationFetch  = "fetch"

	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// OrderMetrics tracks order traffic on both sides of the checkout hop.
type OrderMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	value    prometheus.Counter
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bakery_order_requests_total",
		Help: "Order operations by outcome.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bakery_order_request_duration_seconds",
		Help:    "Latency of order operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	value := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bakery_order_value_total",
		Help: "Sum of accepted order totals.",
	})
	reg.MustRegister(requests, duration, value)
	return &OrderMetrics{requests: requests, duration: duration, value: value}
}

// Observe records one finished operation.
func (m *OrderMetrics) Observe(operation, outcome string, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(elapsed.Seconds())
}

// AddValue adds an accepted order total to the running value counter.
func (m *OrderMetrics) AddValue(total float64) {
	if m == nil || m.value == nil || total <= 0 {
		return
	}
	m.value.Add(total)
}
