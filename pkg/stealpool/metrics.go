package stealpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mvasek/gosteal/pkg/metrics"
)

// poolMetrics publishes a pool's counters and gauges to Prometheus. The
// pool calls its methods from the submit path and the worker loop, so all
// methods must be cheap and safe for concurrent use (prometheus collectors
// are).
type poolMetrics struct {
	registry *metrics.Registry
	name     string
}

// NewWithMetrics creates a pool with Prometheus metrics enabled, published
// under its own registry to avoid collector conflicts between pools.
func NewWithMetrics(workers int, name string) (*Pool, error) {
	registry := prometheus.NewRegistry()
	return NewWithConfigAndMetrics(Config{Workers: workers, Name: name}, name, metrics.Config{
		Enabled:  true,
		Registry: registry,
	})
}

// NewWithConfigAndMetrics creates a pool with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (*Pool, error) {
	if name != "" {
		config.Name = name
	}

	p, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	if metricsConfig.Enabled {
		if err := p.EnableMetrics(metricsConfig); err != nil {
			p.Stop()
			return nil, err
		}
	}

	return p, nil
}

// EnableMetrics enables metrics collection for this pool. Implements
// metrics.Instrumentable.
func (p *Pool) EnableMetrics(config metrics.Config) error {
	registry := metrics.DefaultRegistry
	if config.Registry != nil || config.Namespace != "" {
		reg := config.Registry
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		registry = metrics.NewRegistryWithNamespace(reg, config.Namespace)
	}

	m := &poolMetrics{
		registry: registry,
		name:     p.cfg.Name,
	}
	m.registry.PoolSize.WithLabelValues(m.name).Set(float64(p.Size()))
	m.publishState(p)

	p.metrics.Store(m)
	return nil
}

// DisableMetrics disables metrics collection for this pool.
func (p *Pool) DisableMetrics() {
	p.metrics.Store(nil)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (p *Pool) MetricsEnabled() bool {
	return p.metrics.Load() != nil
}

func (m *poolMetrics) publishState(p *Pool) {
	m.registry.PoolActiveWorkers.WithLabelValues(m.name).Set(float64(p.ActiveWorkers()))
	m.registry.PoolQueuedTasks.WithLabelValues(m.name).Set(float64(p.QueueSize()))
}

func (m *poolMetrics) taskSubmitted(queued int) {
	m.registry.TasksSubmitted.WithLabelValues(m.name).Inc()
	m.registry.PoolQueuedTasks.WithLabelValues(m.name).Set(float64(queued))
}

func (m *poolMetrics) taskFinished(err error, duration time.Duration, active, queued int) {
	m.registry.TaskExecutionDuration.WithLabelValues(m.name).Observe(duration.Seconds())
	if err != nil {
		m.registry.TasksFailed.WithLabelValues(m.name).Inc()
	} else {
		m.registry.TasksCompleted.WithLabelValues(m.name).Inc()
	}
	m.registry.PoolActiveWorkers.WithLabelValues(m.name).Set(float64(active))
	m.registry.PoolQueuedTasks.WithLabelValues(m.name).Set(float64(queued))
}

func (m *poolMetrics) taskStolen() {
	m.registry.TasksStolen.WithLabelValues(m.name).Inc()
}

func (m *poolMetrics) tasksCancelled(n int) {
	m.registry.TasksCancelled.WithLabelValues(m.name).Add(float64(n))
	m.registry.PoolQueuedTasks.WithLabelValues(m.name).Set(0)
}
