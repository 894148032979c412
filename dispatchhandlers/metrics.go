package dispatchhandlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hashmux/hashmux/dispatch"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "hashmux").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "hashmux",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// MetricsMiddleware returns a middleware that records Prometheus metrics
// per dispatched request.
//
// Metrics collected:
//   - hashmux_requests_total: Counter of requests by path, method, status
//   - hashmux_request_duration_seconds: Histogram of handling duration by path and method
//   - hashmux_request_errors_total: Counter of handler errors by path and method
//
// The collectors are created and registered once per call, so construct
// the middleware once and share it; registering twice on the same registry
// panics. Expose the metrics endpoint with promhttp.Handler().
func MetricsMiddleware(opts ...MetricsOption) dispatch.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	requestsTotal := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "requests_total",
		Help:        "Total number of dispatched requests",
		ConstLabels: config.ConstLabels,
	}, []string{"path", "method", "status"})

	requestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "request_duration_seconds",
		Help:        "Request handling duration in seconds",
		ConstLabels: config.ConstLabels,
		Buckets:     config.Buckets,
	}, []string{"path", "method"})

	requestErrors := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "request_errors_total",
		Help:        "Total number of handler errors",
		ConstLabels: config.ConstLabels,
	}, []string{"path", "method"})

	return func(next dispatch.Handler) dispatch.Handler {
		return func(ctx *dispatch.Context) (*dispatch.Response, error) {
			path := ctx.URL.Path
			if path == "" {
				path = "/"
			}
			method := ctx.Request.Method

			start := time.Now()

			resp, err := next(ctx)

			requestDuration.WithLabelValues(path, method).Observe(time.Since(start).Seconds())

			status := "error"
			if err == nil && resp != nil {
				code := resp.StatusCode
				if code == 0 {
					code = http.StatusOK
				}
				status = strconv.Itoa(code)
			}

			if err != nil {
				requestErrors.WithLabelValues(path, method).Inc()
			}

			requestsTotal.WithLabelValues(path, method, status).Inc()

			return resp, err
		}
	}
}
