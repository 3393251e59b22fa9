// Package metrics exposes Prometheus metrics for the HTTP layer and the
// notification pipeline.
package metrics

import (
	"net/http"
	_ "net/http/pprof" // registers the pprof endpoints

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grupovilla/gestprocesos/pkg/configs"
)

var (
	// RequestCounter counts HTTP requests by method and route.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration tracks HTTP request latency.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// ActiveConnections counts in-flight HTTP requests.
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_connections",
			Help: "Number of active connections",
		},
	)

	// NotificationCounter counts WhatsApp notification attempts by result.
	NotificationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatsapp_notifications_total",
			Help: "Total number of WhatsApp notification attempts",
		},
		[]string{"result"},
	)

	registry = prometheus.NewRegistry()
)

// InitMetrics registers the collectors on the shared registry.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	registry.MustRegister(RequestCounter, RequestDuration, ActiveConnections, NotificationCounter)

	return nil
}

// StartMetricsServer mounts /metrics (and optionally pprof) on the debug
// engine.
func StartMetricsServer(config configs.MetricsConfig, debugEngine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	debugEngine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if config.Pprof {
		debugEngine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	return nil
}

// GetRegistry returns the Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return registry
}
