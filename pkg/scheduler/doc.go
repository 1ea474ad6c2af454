/*
Package scheduler provides time-based job submission onto a work-stealing
pool: one-time, delayed, fixed-interval and cron-expression schedules.

The scheduler keeps a table of registered tasks and, on a fixed tick,
submits every due job to its pool. Execution happens on the pool's
workers; the scheduler itself never runs a job.

Basic usage:

	sched := scheduler.New() // owns a pool with one worker per CPU
	if err := sched.Start(); err != nil {
		log.Fatal(err)
	}
	defer func() { <-sched.Stop() }()

	err := sched.ScheduleRepeating("heartbeat", func(ctx context.Context) error {
		return sendHeartbeat(ctx)
	}, 30*time.Second)

Cron expressions use the six-field form with seconds:

	// Every day at 02:30:00
	err := sched.ScheduleCron("nightly", "0 30 2 * * *", runBackup)

To share workers with other submitters, pass an existing pool:

	pool, _ := stealpool.New(8)
	sched, err := scheduler.NewWithConfig(scheduler.Config{Pool: pool})

A scheduler only shuts down a pool it created itself. Stop drains
in-flight scheduled jobs before the returned channel closes.
*/
package scheduler
