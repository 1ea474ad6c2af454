/*
Package metrics provides Prometheus instrumentation for gosteal components.

The metrics package provides automatic instrumentation for:
  - Worker pools (pool size, active workers, queued tasks, steals,
    submitted/completed/failed/cancelled tasks, execution duration)
  - Schedulers (registered tasks, scheduled runs, failed runs)

# Quick Start

Enable metrics by using the metrics-enabled constructors:

	// Worker pool with metrics
	pool, err := stealpool.NewWithMetrics(8, "compute_pool")

	// Scheduler with metrics
	sched := scheduler.NewWithMetrics("job_scheduler")

Then expose metrics via HTTP:

	http.Handle("/metrics", promhttp.Handler())
	log.Fatal(http.ListenAndServe(":8080", nil))

# Custom Registry

Use a custom Prometheus registry for isolation:

	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	pool, err := stealpool.NewWithConfigAndMetrics(
		stealpool.Config{Workers: 8},
		"compute_pool",
		config,
	)

# Available Metrics

Worker Pool:

  - gosteal_pool_size: Number of workers in the pool
  - gosteal_pool_active_workers: Number of workers currently executing a task
  - gosteal_pool_queued_tasks: Number of tasks waiting in the shared queue
  - gosteal_pool_tasks_submitted_total: Total number of tasks submitted
  - gosteal_pool_tasks_completed_total: Total tasks completed successfully
  - gosteal_pool_tasks_failed_total: Total tasks that returned an error or panicked
  - gosteal_pool_tasks_cancelled_total: Total tasks discarded unexecuted at shutdown
  - gosteal_pool_tasks_stolen_total: Total tasks taken from a peer worker's queue
  - gosteal_pool_task_duration_seconds: Time spent executing tasks

Scheduler:

  - gosteal_scheduler_tasks_scheduled_total: Total tasks registered
  - gosteal_scheduler_runs_total: Total scheduled task submissions
  - gosteal_scheduler_runs_failed_total: Total scheduled runs that failed

Metrics include a pool_name or scheduler_name label for filtering and
aggregation across instances.
*/
package metrics
