// Package metrics exposes Prometheus instrumentation for the fern runtime.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the metrics recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "fern").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render-pass duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures the metrics recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithBuckets sets the render-duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = registry }
}

func defaultConfig() Config {
	return Config{
		Namespace: "fern",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Recorder holds the runtime's Prometheus metrics. Wire one into a Runtime
// with fern.WithMetrics. Use a dedicated registry (WithRegistry) when
// multiple runtimes need separate recorders, since metric names collide on
// the default registerer.
type Recorder struct {
	RenderPasses   prometheus.Counter
	RenderDuration prometheus.Histogram
	Mounts         prometheus.Counter
	Updates        prometheus.Counter
	Unmounts       prometheus.Counter
	EffectsRun     prometheus.Counter
	CleanupsRun    prometheus.Counter
	SlotsReclaimed prometheus.Counter
}

// New creates a Recorder and registers its metrics.
func New(opts ...Option) *Recorder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			ConstLabels: cfg.ConstLabels,
			Name:        name,
			Help:        help,
		})
	}

	return &Recorder{
		RenderPasses: counter("render_passes_total", "Completed render passes."),
		RenderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			ConstLabels: cfg.ConstLabels,
			Name:        "render_duration_seconds",
			Help:        "Wall time of one render pass.",
			Buckets:     cfg.Buckets,
		}),
		Mounts:         counter("instance_mounts_total", "Instances mounted."),
		Updates:        counter("instance_updates_total", "Instances updated in place."),
		Unmounts:       counter("instance_unmounts_total", "Instances unmounted."),
		EffectsRun:     counter("effects_run_total", "Effect bodies executed."),
		CleanupsRun:    counter("effect_cleanups_run_total", "Effect cleanups executed."),
		SlotsReclaimed: counter("hook_slots_reclaimed_total", "Hook slot lists discarded by GC."),
	}
}
