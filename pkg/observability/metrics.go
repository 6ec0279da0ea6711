package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the analysis engine
type Metrics struct {
	registry *prometheus.Registry

	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	networkNodes     prometheus.Histogram
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

// GetMetrics returns the process-wide metrics instance. Collectors register
// once; repeated calls share the same registry.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = newMetrics()
	})
	return metricsInstance
}

func newMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "herbnet_analyses_total",
			Help: "Analysis operations by operation and outcome",
		}, []string{"operation", "status"}),
		analysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "herbnet_analysis_duration_seconds",
			Help:    "Analysis operation latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		networkNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "herbnet_network_nodes",
			Help:    "Node counts of built networks",
			Buckets: []float64{10, 25, 50, 100, 250, 500},
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "herbnet_http_requests_total",
			Help: "HTTP requests by route, method, and status code",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "herbnet_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.analysesTotal,
		m.analysisDuration,
		m.networkNodes,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// RecordAnalysis records one analysis operation's outcome and duration
func (m *Metrics) RecordAnalysis(operation, status string, elapsed time.Duration) {
	m.analysesTotal.WithLabelValues(operation, status).Inc()
	m.analysisDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveNetworkSize records the node count of a built network
func (m *Metrics) ObserveNetworkSize(nodes int) {
	m.networkNodes.Observe(float64(nodes))
}

// RecordHTTPRequest records one served HTTP request
func (m *Metrics) RecordHTTPRequest(route, method, code string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler exposes the registry in Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
