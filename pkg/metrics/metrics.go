// Package metrics provides Prometheus instrumentation for gosteal components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gosteal components.
type Registry struct {
	// Worker Pool Metrics
	PoolSize              *prometheus.GaugeVec
	PoolActiveWorkers     *prometheus.GaugeVec
	PoolQueuedTasks       *prometheus.GaugeVec
	TasksSubmitted        *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TasksCancelled        *prometheus.CounterVec
	TasksStolen           *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec

	// Scheduler Metrics
	TasksScheduled      *prometheus.CounterVec
	ScheduledRuns       *prometheus.CounterVec
	ScheduledRunsFailed *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by gosteal components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a metrics registry under the default namespace,
// registered with reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithNamespace(reg, DefaultNamespace)
}

// NewRegistryWithNamespace creates a metrics registry whose metric names
// start with the given namespace.
func NewRegistryWithNamespace(reg prometheus.Registerer, namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Registry{
		// Worker Pool Metrics
		PoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "size",
				Help:      "Number of workers in the pool",
			},
			[]string{"pool_name"},
		),

		PoolActiveWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "active_workers",
				Help:      "Number of workers currently executing a task",
			},
			[]string{"pool_name"},
		),

		PoolQueuedTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "queued_tasks",
				Help:      "Number of tasks waiting in the shared queue",
			},
			[]string{"pool_name"},
		),

		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks submitted",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed successfully",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that returned an error or panicked",
			},
			[]string{"pool_name"},
		),

		TasksCancelled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "tasks_cancelled_total",
				Help:      "Total number of tasks discarded unexecuted at shutdown",
			},
			[]string{"pool_name"},
		),

		TasksStolen: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "tasks_stolen_total",
				Help:      "Total number of tasks taken from a peer worker's queue",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		// Scheduler Metrics
		TasksScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "tasks_scheduled_total",
				Help:      "Total number of tasks registered with the scheduler",
			},
			[]string{"scheduler_name"},
		),

		ScheduledRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "runs_total",
				Help:      "Total number of scheduled task submissions",
			},
			[]string{"scheduler_name"},
		),

		ScheduledRunsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "runs_failed_total",
				Help:      "Total number of scheduled runs that failed",
			},
			[]string{"scheduler_name"},
		),
	}
}
