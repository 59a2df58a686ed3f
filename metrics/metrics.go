// Package metrics exports runtime activity as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	rt := reactive.New(reactive.WithObserver(metrics.New(metrics.WithRegistry(reg))))
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AnatoleLucet/reactive"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "reactive").
	Namespace string

	Subsystem string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for effect durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is where the metrics are registered.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "reactive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector is a reactive.Observer recording:
//   - reactive_signals_created_total
//   - reactive_signal_writes_total
//   - reactive_signal_notifications_total: effects notified by writes
//   - reactive_effect_runs_total: by status (ok, panic)
//   - reactive_effect_duration_seconds
//   - reactive_effect_rejections_total: by reason (cycle, max_depth, other)
//   - reactive_effect_depth: running stack depth when an effect starts
type Collector struct {
	signalsCreated prometheus.Counter
	signalWrites   prometheus.Counter
	notifications  prometheus.Counter
	effectRuns     *prometheus.CounterVec
	effectDuration prometheus.Histogram
	rejections     *prometheus.CounterVec
	effectDepth    prometheus.Gauge
}

var _ reactive.Observer = (*Collector)(nil)

// New registers the collector's metrics. It panics if they are already registered
// on the registry, like promauto does.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		signalsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signals_created_total",
			Help:        "Total number of signals created",
			ConstLabels: config.ConstLabels,
		}),

		signalWrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_writes_total",
			Help:        "Total number of signal writes",
			ConstLabels: config.ConstLabels,
		}),

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_notifications_total",
			Help:        "Total number of effects notified by signal writes",
			ConstLabels: config.ConstLabels,
		}),

		effectRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect runs by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		effectDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_duration_seconds",
			Help:        "Effect run duration in seconds, nested runs included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_rejections_total",
			Help:        "Total number of refused effect runs by reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		effectDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_depth",
			Help:        "Running stack depth of the latest started effect",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (c *Collector) SignalCreated(reactive.SignalID) {
	c.signalsCreated.Inc()
}

func (c *Collector) SignalWritten(_ reactive.SignalID, notified int) {
	c.signalWrites.Inc()
	c.notifications.Add(float64(notified))
}

func (c *Collector) EffectStarted(_ reactive.EffectID, depth int) {
	c.effectDepth.Set(float64(depth))
}

func (c *Collector) EffectFinished(_ reactive.EffectID, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "panic"
	}

	c.effectRuns.WithLabelValues(status).Inc()
	c.effectDuration.Observe(elapsed.Seconds())
}

func (c *Collector) EffectRejected(_ reactive.EffectID, err error) {
	c.rejections.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, reactive.ErrCycle):
		return "cycle"
	case errors.Is(err, reactive.ErrMaxDepth):
		return "max_depth"
	default:
		return "other"
	}
}
