package queue

import "sync"

// Deque is a double-ended queue owned by a single worker. The owner pushes
// and pops at the tail, so its own pending work behaves as a LIFO stack and
// stays cache-warm. Peers steal from the head, so a thief always takes the
// oldest item. Owner and thief only collide on the mutex when the deque
// holds a single item.
//
// All operations are try-style and hold the deque's mutex only for the
// duration of the mutation.
type Deque[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewDeque creates an empty Deque.
func NewDeque[T any]() *Deque[T] {
	return &Deque[T]{}
}

// Push adds an item at the owner end.
func (d *Deque[T]) Push(item T) {
	d.mu.Lock()
	d.items = append(d.items, item)
	d.mu.Unlock()
}

// TryPop removes and returns the most recently pushed item (owner end).
// ok is false if the deque is empty.
func (d *Deque[T]) TryPop() (item T, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.items)
	if n == 0 {
		return item, false
	}
	item = d.items[n-1]
	var zero T
	d.items[n-1] = zero
	d.items = d.items[:n-1]
	return item, true
}

// TrySteal removes and returns the oldest item (thief end). ok is false if
// the deque is empty.
func (d *Deque[T]) TrySteal() (item T, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return item, false
	}
	item = d.items[0]
	var zero T
	d.items[0] = zero
	d.items = d.items[1:]
	return item, true
}

// Len returns the current number of items.
func (d *Deque[T]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Drain removes and returns all items, oldest first.
func (d *Deque[T]) Drain() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := d.items
	d.items = nil
	return items
}
