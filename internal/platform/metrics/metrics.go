package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	DownstreamCalls    *prometheus.CounterVec
	DownstreamDuration *prometheus.HistogramVec
	PresenceEvents     prometheus.Counter
	ConnectedClients   prometheus.Gauge
}

// New creates and registers all gateway metrics against the given registerer.
// Pass prometheus.DefaultRegisterer in main; tests use a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DownstreamCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_downstream_calls_total",
			Help: "Total downstream calls, labelled by service and outcome",
		}, []string{"service", "outcome"}),
		DownstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_downstream_call_duration_seconds",
			Help:    "Latency of downstream calls in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service"}),
		PresenceEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "gateway_presence_events_total",
			Help: "Total presence mutations broadcast to connected clients",
		}),
		ConnectedClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gateway_realtime_connected_clients",
			Help: "Currently connected realtime clients",
		}),
	}
}

// ObserveDownstreamCall records one completed downstream call.
func (m *Metrics) ObserveDownstreamCall(service, outcome string, elapsed time.Duration) {
	m.DownstreamCalls.WithLabelValues(service, outcome).Inc()
	m.DownstreamDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}
