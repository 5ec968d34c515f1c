package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BusMetrics counts event deliveries. It satisfies events.Observer.
type BusMetrics struct {
	published *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

// NewBusMetrics registers the bus metrics on the provided registerer.
func NewBusMetrics(reg prometheus.Registerer) *BusMetrics {
	if reg == nil {
		return &BusMetrics{}
	}
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Events delivered on the storefront bus.",
	}, []string{"topic"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_handler_failures_total",
		Help: "Event deliveries aborted by a handler error.",
	}, []string{"topic"})
	reg.MustRegister(published, failures)
	return &BusMetrics{published: published, failures: failures}
}

// Delivered counts one delivery of topic.
func (m *BusMetrics) Delivered(topic string, _ int) {
	if m == nil || m.published == nil {
		return
	}
	m.published.WithLabelValues(normalizeLabel(topic)).Inc()
}

// HandlerFailed counts one aborted delivery of topic.
func (m *BusMetrics) HandlerFailed(topic string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(topic)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
