package stealpool

import (
	"context"
	"runtime"
	"time"

	"github.com/mvasek/gosteal/pkg/queue"
)

const (
	// idleSpinLimit is the number of consecutive empty polls a worker
	// tolerates before it starts sleeping between polls.
	idleSpinLimit = 64

	// idleSleep bounds how long an idle worker is off the CPU. Short
	// enough that new work and shutdown are picked up promptly.
	idleSleep = 100 * time.Microsecond
)

// worker is one scheduling loop of the pool. It drains its own deque
// first, then the shared queue, then tries to steal from a peer, and
// yields when everything is empty.
type worker struct {
	pool   *Pool
	index  int
	local  *queue.Deque[*task]
	misses int
}

func (w *worker) run() {
	p := w.pool
	if p.cfg.OnWorkerStart != nil {
		p.cfg.OnWorkerStart(w.index)
	}
	defer func() {
		if p.cfg.OnWorkerStop != nil {
			p.cfg.OnWorkerStop(w.index)
		}
		p.workerWg.Done()
	}()

	// Every task executed by this worker runs under a context that names
	// it, so in-task submissions route to w.local.
	ctx := context.WithValue(p.baseCtx, workerCtxKey{}, &workerRef{pool: p, index: w.index})

	for !p.closed.Load() {
		w.runPending(ctx)
	}
}

// runPending executes at most one task, or idles when none is available.
func (w *worker) runPending(ctx context.Context) {
	if t, ok := w.local.TryPop(); ok {
		w.execute(ctx, t)
		return
	}
	if t, ok := w.pool.global.TryPop(); ok {
		w.execute(ctx, t)
		return
	}
	if t, ok := w.steal(); ok {
		w.execute(ctx, t)
		return
	}
	w.idle()
}

// steal scans the other workers' deques for the oldest available task.
// The scan starts at this worker's right-hand neighbor so that steal
// attempts spread across victims instead of converging on worker 0.
func (w *worker) steal() (*task, bool) {
	n := len(w.pool.locals)
	for i := 1; i < n; i++ {
		victim := (w.index + i) % n
		if t, ok := w.pool.locals[victim].TrySteal(); ok {
			w.pool.stolen.Add(1)
			if m := w.pool.metrics.Load(); m != nil {
				m.taskStolen()
			}
			return t, true
		}
	}
	return nil, false
}

func (w *worker) execute(ctx context.Context, t *task) {
	w.misses = 0
	p := w.pool

	p.active.Add(1)
	start := time.Now()
	err := t.run(ctx)
	duration := time.Since(start)
	p.active.Add(-1)

	if err != nil {
		p.failed.Add(1)
	} else {
		p.completed.Add(1)
	}
	if p.cfg.OnTaskComplete != nil {
		p.cfg.OnTaskComplete(w.index, err, duration)
	}
	if m := p.metrics.Load(); m != nil {
		m.taskFinished(err, duration, int(p.active.Load()), p.global.Len())
	}
}

// idle backs off cooperatively: spin-yield at first for low latency, then
// bounded sleeps so an empty pool does not burn a CPU.
func (w *worker) idle() {
	w.misses++
	if w.misses < idleSpinLimit {
		runtime.Gosched()
		return
	}
	time.Sleep(idleSleep)
}
