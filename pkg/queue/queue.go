package queue

import (
	"context"
	"sync"
)

// Queue is a concurrency-safe FIFO queue shared by many producers and
// consumers. It is the entry path for work submitted from outside a pool:
// Push never blocks, TryPop never blocks, and Pop blocks until an item
// arrives or the context is cancelled.
//
// Ordering is preserved among the queue's own items: first pushed, first
// popped.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	notify chan struct{}
}

// NewQueue creates an empty Queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		notify: make(chan struct{}, 1),
	}
}

// Push appends an item to the back of the queue and wakes a single waiter,
// if any. It never blocks.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	// Wake at most one blocked Pop. The channel has capacity 1, so a
	// pending wakeup is never duplicated.
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// TryPop removes and returns the front item. ok is false if the queue is
// empty.
func (q *Queue[T]) TryPop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return item, false
	}
	item = q.items[0]
	var zero T
	q.items[0] = zero // release the reference
	q.items = q.items[1:]
	return item, true
}

// Pop removes and returns the front item, blocking until one is available
// or ctx is cancelled. It is intended for consumers outside a worker's
// polling loop; workers use TryPop.
func (q *Queue[T]) Pop(ctx context.Context) (T, error) {
	for {
		if item, ok := q.TryPop(); ok {
			// Another item may remain; pass the wakeup along so a
			// concurrent waiter is not stranded.
			if q.Len() > 0 {
				select {
				case q.notify <- struct{}{}:
				default:
				}
			}
			return item, nil
		}

		select {
		case <-q.notify:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Len returns the current number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain removes and returns all queued items in FIFO order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}
