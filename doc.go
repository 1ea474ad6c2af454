/*
Package gosteal provides a work-stealing worker pool for Go applications,
with future-style result retrieval and time-based task scheduling.

Core (pkg/stealpool):
  - stealpool: fixed-size pool of workers, each with its own stealing deque;
    idle workers steal from peers to balance load
  - Future: one-shot handle carrying a task's value or error back to the
    submitter

Containers (pkg/queue):
  - Queue: blocking, context-aware FIFO used as the shared entry path
  - Deque: per-worker double-ended queue (LIFO for its owner, FIFO for
    thieves)

Scheduling (pkg/scheduler):
  - scheduler: delayed, repeating and cron-based submission onto a pool

Example usage:

	import (
		"context"

		"github.com/mvasek/gosteal/pkg/stealpool"
	)

	pool, _ := stealpool.New(0) // 0 = one worker per CPU
	defer pool.Stop()

	fut, _ := stealpool.Submit(context.Background(), pool,
		func(ctx context.Context) (int, error) {
			return 6 * 7, nil
		})

	answer, err := fut.Get()
*/
package gosteal
