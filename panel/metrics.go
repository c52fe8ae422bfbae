package panel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the panel metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "routingpanel").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for view build duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the panel metrics.
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
		Namespace: "routingpanel",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics counts built views. A nil *Metrics records nothing.
type Metrics struct {
	viewsTotal   *prometheus.CounterVec
	viewDuration prometheus.Histogram
	routes       prometheus.Gauge
}

// NewMetrics registers the panel metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		viewsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "views_total",
			Help:        "Total number of routing panel views built",
			ConstLabels: config.ConstLabels,
		}, []string{"matched"}),

		viewDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "view_duration_seconds",
			Help:        "Time spent building a routing panel view in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "routes",
			Help:        "Number of routes listed by the last view",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observe(v *View, start time.Time) {
	if m == nil {
		return
	}

	matched := "false"
	if v.Matched() {
		matched = "true"
	}

	m.viewsTotal.WithLabelValues(matched).Inc()
	m.viewDuration.Observe(time.Since(start).Seconds())
	m.routes.Set(float64(len(v.Rows)))
}
