package stealpool

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mvasek/gosteal/pkg/common/errors"
	"github.com/mvasek/gosteal/pkg/queue"
)

// Task is a unit of work submitted to a pool. The context passed to the
// callable is derived from the pool's base context (cancelled at shutdown)
// and identifies the executing worker, so submissions made with it from
// inside the task land on that worker's local queue.
type Task[R any] func(ctx context.Context) (R, error)

// task is the type-erased unit held by the queues. run executes the
// callable and resolves its future; discard resolves the future without
// running when the pool drops the task at shutdown. A task record moves
// between exactly one queue and one worker and is consumed once.
type task struct {
	run     func(ctx context.Context) error
	discard func(err error)
}

// Config holds configuration options for creating a pool.
type Config struct {
	// Workers is the number of worker goroutines. Zero means one worker
	// per CPU; negative values are rejected.
	Workers int

	// Name labels this pool in metrics. Defaults to "pool".
	Name string

	// PanicHandler is called with the recovered value when a task panics.
	// The panic is always captured and delivered through the task's
	// future; the handler is purely observational.
	PanicHandler func(recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnTaskComplete is called after a task finishes (success or failure).
	OnTaskComplete func(workerID int, err error, duration time.Duration)
}

// Pool is a fixed-size set of workers executing submitted tasks. Each
// worker owns a stealing deque; work submitted from inside a task goes to
// the submitting worker's deque, everything else goes through a shared
// FIFO queue. Idle workers steal from peers.
type Pool struct {
	cfg Config

	global *queue.Queue[*task]
	locals []*queue.Deque[*task]

	// closed is written once by Shutdown and read by every worker each
	// iteration. No lock needed.
	closed  atomic.Bool
	baseCtx context.Context
	cancel  context.CancelFunc

	workerWg     sync.WaitGroup
	shutdownOnce sync.Once
	doneCh       chan struct{}

	active    atomic.Int32
	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	stolen    atomic.Int64
	cancelled atomic.Int64

	metrics atomic.Pointer[poolMetrics]
}

// workerCtxKey carries the executing worker's identity in the context a
// task runs under. The association exists only while the worker loop is
// executing the task and is validated against the owning pool on every
// use.
type workerCtxKey struct{}

type workerRef struct {
	pool  *Pool
	index int
}

// New creates a pool with the given number of workers. workers == 0 means
// one worker per CPU.
func New(workers int) (*Pool, error) {
	return NewWithConfig(Config{Workers: workers})
}

// NewWithConfig creates a pool with the specified configuration. The
// configuration is validated before any worker starts, so a failed
// construction leaves nothing behind.
func NewWithConfig(cfg Config) (*Pool, error) {
	if cfg.Workers < 0 {
		return nil, errors.NewValidationError("stealpool", "workers", cfg.Workers, "must not be negative").
			WithHint("use 0 for one worker per CPU")
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Name == "" {
		cfg.Name = "pool"
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		cfg:     cfg,
		global:  queue.NewQueue[*task](),
		locals:  make([]*queue.Deque[*task], cfg.Workers),
		baseCtx: ctx,
		cancel:  cancel,
		doneCh:  make(chan struct{}),
	}
	for i := range p.locals {
		p.locals[i] = queue.NewDeque[*task]()
	}

	for i := 0; i < cfg.Workers; i++ {
		w := &worker{pool: p, index: i, local: p.locals[i]}
		p.workerWg.Add(1)
		go w.run()
	}

	return p, nil
}

// Submit enqueues fn for asynchronous execution and returns a future for
// its result. It never blocks. When ctx is the context of a task currently
// running on this pool, fn goes to that worker's local queue; otherwise it
// goes to the shared queue.
func Submit[R any](ctx context.Context, p *Pool, fn Task[R]) (*Future[R], error) {
	if fn == nil {
		return nil, fmt.Errorf("stealpool: %w", errors.ErrNilTask)
	}
	if p.closed.Load() {
		return nil, fmt.Errorf("stealpool: %w", errors.ErrPoolClosed)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fut := newFuture[R]()
	t := &task{
		run: func(runCtx context.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					if p.cfg.PanicHandler != nil {
						p.cfg.PanicHandler(r)
					}
					err = fmt.Errorf("task panicked: %v\n%s", r, debug.Stack())
					var zero R
					fut.complete(zero, err)
				}
			}()
			var value R
			value, err = fn(runCtx)
			fut.complete(value, err)
			return err
		},
		discard: func(err error) {
			var zero R
			fut.complete(zero, err)
		},
	}

	p.route(ctx, t)
	return fut, nil
}

// SubmitFunc enqueues a result-less callable. It is a convenience wrapper
// around Submit for callers that only care about completion and errors.
func (p *Pool) SubmitFunc(ctx context.Context, fn func(ctx context.Context) error) (*Future[struct{}], error) {
	if fn == nil {
		return nil, fmt.Errorf("stealpool: %w", errors.ErrNilTask)
	}
	return Submit(ctx, p, func(runCtx context.Context) (struct{}, error) {
		return struct{}{}, fn(runCtx)
	})
}

// route places a task on the submitting worker's deque when the context
// carries a live association with this pool, else on the shared queue.
func (p *Pool) route(ctx context.Context, t *task) {
	p.submitted.Add(1)

	if ref, ok := ctx.Value(workerCtxKey{}).(*workerRef); ok && ref.pool == p && !p.closed.Load() {
		p.locals[ref.index].Push(t)
	} else {
		p.global.Push(t)
	}

	if m := p.metrics.Load(); m != nil {
		m.taskSubmitted(p.global.Len())
	}

	// A shutdown that raced with the push above may have already drained
	// the queues. Drain again so this task's future cannot hang.
	if p.closed.Load() {
		p.discardPending()
	}
}

// Shutdown initiates pool teardown: no new task starts, in-flight tasks
// finish, and every task still queued is discarded with ErrTaskCancelled
// so its future resolves. The returned channel closes once all workers
// have exited and the queues are drained. Subsequent calls return the same
// channel.
func (p *Pool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.closed.Store(true)
		p.cancel()

		go func() {
			p.workerWg.Wait()
			p.discardPending()
			close(p.doneCh)
		}()
	})
	return p.doneCh
}

// Stop shuts the pool down and blocks until teardown completes.
func (p *Pool) Stop() {
	<-p.Shutdown()
}

// discardPending resolves the futures of all tasks still sitting in a
// queue. Safe to call repeatedly; each task is drained exactly once.
func (p *Pool) discardPending() {
	dropped := p.global.Drain()
	for _, d := range p.locals {
		dropped = append(dropped, d.Drain()...)
	}
	for _, t := range dropped {
		t.discard(errors.ErrTaskCancelled)
	}
	if n := len(dropped); n > 0 {
		p.cancelled.Add(int64(n))
		if m := p.metrics.Load(); m != nil {
			m.tasksCancelled(n)
		}
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.cfg.Workers
}

// ActiveWorkers returns the number of workers currently executing a task.
func (p *Pool) ActiveWorkers() int {
	return int(p.active.Load())
}

// QueueSize returns the number of tasks waiting in the shared queue.
func (p *Pool) QueueSize() int {
	return p.global.Len()
}

// PendingTasks returns the number of tasks waiting in any queue, shared or
// local.
func (p *Pool) PendingTasks() int {
	n := p.global.Len()
	for _, d := range p.locals {
		n += d.Len()
	}
	return n
}

// TotalSubmitted returns the total number of tasks accepted by Submit.
func (p *Pool) TotalSubmitted() int64 {
	return p.submitted.Load()
}

// TotalCompleted returns the total number of tasks that ran to completion
// without error.
func (p *Pool) TotalCompleted() int64 {
	return p.completed.Load()
}

// TotalFailed returns the total number of tasks that returned an error or
// panicked.
func (p *Pool) TotalFailed() int64 {
	return p.failed.Load()
}

// TotalStolen returns the total number of tasks executed by a worker other
// than the one whose queue held them.
func (p *Pool) TotalStolen() int64 {
	return p.stolen.Load()
}

// TotalCancelled returns the total number of tasks discarded unexecuted at
// shutdown.
func (p *Pool) TotalCancelled() int64 {
	return p.cancelled.Load()
}
