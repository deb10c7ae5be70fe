package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Global metric definitions. 'promauto' registers them on the default
// registry at init time, so importing packages can update them directly.

var (
	// HTTP request counter, labeled by method, path pattern, and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arqdb_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP response time histogram. Everything here is in-memory, so the
	// buckets stay in the sub-second range.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arqdb_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	// Number of graphs currently registered in the engine.
	GraphsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "arqdb_graphs_total",
			Help: "Number of registered graphs",
		},
	)

	// Per-graph node count.
	GraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "arqdb_graph_nodes",
			Help: "Number of nodes per graph",
		},
		[]string{"graph"},
	)

	// Per-graph edge count.
	GraphEdges = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "arqdb_graph_edges",
			Help: "Number of edges per graph",
		},
		[]string{"graph"},
	)
)
