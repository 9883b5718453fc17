package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	// Dispatch metrics
	ToolInvocationsTotal   *prometheus.CounterVec
	ToolInvocationDuration *prometheus.HistogramVec
	ToolsRegistered        prometheus.Gauge

	// Gateway metrics
	GatewayRequestsTotal     *prometheus.CounterVec
	GatewayConnectionsActive prometheus.Gauge

	// Schedule metrics
	ScheduleRunsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		// Dispatch metrics
		ToolInvocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_invocations_total",
				Help: "Total number of tool invocations",
			},
			[]string{"tool", "status"},
		),
		ToolInvocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tool_invocation_duration_seconds",
				Help:    "Duration of tool invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		ToolsRegistered: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tools_registered",
				Help: "Number of tools currently registered",
			},
		),

		// Gateway metrics
		GatewayRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_requests_total",
				Help: "Total number of gateway requests",
			},
			[]string{"endpoint", "status"},
		),
		GatewayConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gateway_connections_active",
				Help: "Number of active gateway WebSocket connections",
			},
		),

		// Schedule metrics
		ScheduleRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedule_runs_total",
				Help: "Total number of scheduled invocation runs",
			},
			[]string{"job", "status"},
		),
	}

	// Register all metrics
	m.registerMetrics()

	return m
}

// registerMetrics registers all metrics with the registry
func (m *Metrics) registerMetrics() {
	// Dispatch metrics
	m.registry.MustRegister(m.ToolInvocationsTotal)
	m.registry.MustRegister(m.ToolInvocationDuration)
	m.registry.MustRegister(m.ToolsRegistered)

	// Gateway metrics
	m.registry.MustRegister(m.GatewayRequestsTotal)
	m.registry.MustRegister(m.GatewayConnectionsActive)

	// Schedule metrics
	m.registry.MustRegister(m.ScheduleRunsTotal)
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
