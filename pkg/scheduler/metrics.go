package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mvasek/gosteal/pkg/metrics"
)

// schedulerMetrics publishes scheduler counters to Prometheus. It is set
// at construction time only, so plain field access is safe.
type schedulerMetrics struct {
	registry *metrics.Registry
	name     string
}

// NewWithMetrics creates a scheduler with Prometheus metrics enabled,
// published under its own registry.
func NewWithMetrics(name string) Scheduler {
	s, _ := NewWithConfigAndMetrics(Config{}, name, metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})
	return s
}

// NewWithConfigAndMetrics creates a scheduler with custom config and metrics.
func NewWithConfigAndMetrics(cfg Config, name string, metricsConfig metrics.Config) (Scheduler, error) {
	sched, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return sched, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil || metricsConfig.Namespace != "" {
		reg := metricsConfig.Registry
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		registry = metrics.NewRegistryWithNamespace(reg, metricsConfig.Namespace)
	}

	s := sched.(*scheduler)
	if name != "" {
		s.name = name
	}
	s.metrics = &schedulerMetrics{
		registry: registry,
		name:     s.name,
	}
	return s, nil
}

func (m *schedulerMetrics) taskScheduled() {
	m.registry.TasksScheduled.WithLabelValues(m.name).Inc()
}

func (m *schedulerMetrics) run() {
	m.registry.ScheduledRuns.WithLabelValues(m.name).Inc()
}

func (m *schedulerMetrics) runFailed() {
	m.registry.ScheduledRunsFailed.WithLabelValues(m.name).Inc()
}
