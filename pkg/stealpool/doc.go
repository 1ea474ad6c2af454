/*
Package stealpool provides a work-stealing worker pool with future-style
result retrieval.

A pool runs a fixed number of workers. Each worker owns a double-ended
queue: the worker pushes and pops at one end, so its own pending work is
processed newest-first and stays cache-warm, while idle peers steal the
oldest task from the other end. Work submitted from outside the pool
enters through a shared FIFO queue that every worker falls back to before
attempting a steal.

Basic usage:

	pool, err := stealpool.New(4) // 4 workers; 0 means one per CPU
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Stop()

	fut, err := stealpool.Submit(context.Background(), pool,
		func(ctx context.Context) (string, error) {
			return expensiveComputation(ctx)
		})
	if err != nil {
		log.Printf("submit failed: %v", err)
	}

	value, err := fut.Get() // blocks until the task ran

Futures:

Submit returns a Future for the task's result. Get blocks, GetContext
respects a deadline on the wait, TryGet polls, and Done exposes a channel
for select loops. A future resolves exactly once: with the task's value,
with the task's error, with a captured panic, or with ErrTaskCancelled
when the pool shuts down before the task runs. Get never hangs across a
shutdown.

Scheduling:

Each worker loops over four steps: pop its own queue, pop the shared
queue, steal the oldest task from a peer (scanning round-robin from its
right-hand neighbor so steals do not converge on one victim), then yield.
All queue operations are non-blocking; absence of work is handled by a
cooperative spin that decays into short bounded sleeps.

A task submitted with the context of a currently executing task lands on
that worker's own queue. Most workloads that spawn sub-tasks benefit from
this producer/consumer locality:

	outer := func(ctx context.Context) (int, error) {
		// ctx identifies the executing worker; this lands on its
		// local queue and is typically executed by the same worker.
		inner, err := stealpool.Submit(ctx, pool, step2)
		if err != nil {
			return 0, err
		}
		return inner.Get()
	}

Ordering:

Tasks submitted from outside the pool are started in submission order
(shared queue FIFO). A worker processes its local queue LIFO, and a thief
takes the oldest local task first. No order holds across the two queue
kinds.

Error handling:

A task that returns an error or panics resolves its future with that
failure; workers recover panics and never die from a task. Submitting to
a pool after Shutdown fails with ErrPoolClosed. The pool never aborts the
process on a task failure.

Constraints:

Tasks should be CPU-bound and short. A task that blocks indefinitely
occupies one worker for the duration; the pool does not preempt it.
Cancellation of a task that a worker has already picked up is not
supported, although tasks observe pool shutdown through their context.
*/
package stealpool
