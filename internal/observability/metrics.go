package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics collects request counts, durations and in-flight gauges for the
// HTTP server.
type HTTPMetrics struct {
	registry    *prometheus.Registry
	inFlight    prometheus.Gauge
	reqTotal    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates the HTTP collectors on a fresh registry that also
// carries the Go runtime and process collectors.
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	constLabels := prometheus.Labels{}
	if serviceName != "" {
		constLabels["service"] = serviceName
	}

	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "http",
		Subsystem:   "server",
		Name:        "in_flight_requests",
		Help:        "Number of in-flight HTTP requests.",
		ConstLabels: constLabels,
	})
	reqTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "http",
		Subsystem:   "server",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests.",
		ConstLabels: constLabels,
	}, []string{"method", "path", "status"})
	reqDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   "http",
		Subsystem:   "server",
		Name:        "request_duration_seconds",
		Help:        "HTTP request duration in seconds.",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: constLabels,
	}, []string{"method", "path", "status"})

	registry.MustRegister(inFlight, reqTotal, reqDuration)

	return &HTTPMetrics{
		registry:    registry,
		inFlight:    inFlight,
		reqTotal:    reqTotal,
		reqDuration: reqDuration,
	}
}

// Handler returns the Prometheus exposition handler.
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware returns a gin middleware that records request statistics.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.inFlight.Inc()
		start := time.Now()
		c.Next()
		m.inFlight.Dec()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			// Fall back to the raw path for unmatched routes.
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		statusLabel := strconv.Itoa(status)
		m.reqTotal.WithLabelValues(method, path, statusLabel).Inc()
		m.reqDuration.WithLabelValues(method, path, statusLabel).Observe(time.Since(start).Seconds())
	}
}
