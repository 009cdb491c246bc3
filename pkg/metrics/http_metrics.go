package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

// HTTPMetrics holds configuration and state for HTTP metrics collection
type HTTPMetrics struct {
	ServiceName string
	registered  bool
}

// NewHTTPMetrics creates a new HTTP metrics collector for a service
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	m := &HTTPMetrics{ServiceName: serviceName}
	m.register()
	return m
}

func (m *HTTPMetrics) register() {
	if !m.registered {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDurationHistogram)
		m.registered = true
	}
}

// Middleware creates a Gin middleware that records HTTP request metrics
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		// FullPath keeps route templates (e.g. /api/vendors/:id) instead of
		// raw URLs, bounding label cardinality
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		RequestCounter.WithLabelValues(m.ServiceName, method, path, status).Inc()
		RequestDurationHistogram.WithLabelValues(m.ServiceName, method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

// Handler returns an HTTP handler exposing Prometheus metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
