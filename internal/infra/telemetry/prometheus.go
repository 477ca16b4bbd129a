// Package telemetry exposes prometheus instrumentation for the adapter.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the adapter's prometheus collectors.
type Metrics struct {
	remoteCallDuration *prometheus.HistogramVec
	enrichmentFailures *prometheus.CounterVec
	resourcesPublished prometheus.Gauge
	toolInvocations    *prometheus.CounterVec
}

// NewMetrics registers the collectors on registerer (default registerer when
// nil).
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		remoteCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "odx_remote_call_duration_seconds",
				Help:    "Duration of Odoo execute_kw calls in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "status"},
		),
		enrichmentFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odx_enrichment_failures_total",
				Help: "Total number of glossary entries whose fields_get enrichment failed",
			},
			[]string{"model"},
		),
		resourcesPublished: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "odx_glossary_resources",
				Help: "Number of glossary resources registered on the MCP server",
			},
		),
		toolInvocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odx_tool_invocations_total",
				Help: "Total number of tool calls handled",
			},
			[]string{"tool", "status"},
		),
	}
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveRemoteCall records one execute_kw round trip.
func (m *Metrics) ObserveRemoteCall(method string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.remoteCallDuration.WithLabelValues(method, statusLabel(err)).Observe(duration.Seconds())
}

// RecordEnrichmentFailure counts one degraded enrichment for model.
func (m *Metrics) RecordEnrichmentFailure(model string) {
	if m == nil {
		return
	}
	m.enrichmentFailures.WithLabelValues(model).Inc()
}

// SetResourcesPublished records how many glossary resources are registered.
func (m *Metrics) SetResourcesPublished(n int) {
	if m == nil {
		return
	}
	m.resourcesPublished.Set(float64(n))
}

// RecordToolInvocation counts one handled tool call.
func (m *Metrics) RecordToolInvocation(tool string, err error) {
	if m == nil {
		return
	}
	m.toolInvocations.WithLabelValues(tool, statusLabel(err)).Inc()
}
