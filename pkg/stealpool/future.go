package stealpool

import (
	"context"
	"sync"
)

// Future is a one-shot handle to the outcome of a submitted task. It is
// resolved exactly once, either by the worker that executed the task (with
// the task's value or error) or by pool shutdown (with ErrTaskCancelled if
// the task never ran).
type Future[R any] struct {
	done  chan struct{}
	once  sync.Once
	value R
	err   error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// complete resolves the future. Only the first call has any effect.
func (f *Future[R]) complete(value R, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Get blocks until the task's outcome is available and returns it. If the
// task failed or was discarded at shutdown, the error carries the failure.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetContext is like Get but gives up when ctx is cancelled, returning
// ctx.Err(). The task itself is unaffected; its outcome remains
// retrievable.
func (f *Future[R]) GetContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// TryGet returns the outcome without blocking. ok reports whether the
// future has been resolved; when ok is false, value and err are zero.
func (f *Future[R]) TryGet() (value R, ok bool, err error) {
	select {
	case <-f.done:
		return f.value, true, f.err
	default:
		return value, false, nil
	}
}

// Done returns a channel that is closed once the future is resolved. It can
// be used to select across several futures.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}
