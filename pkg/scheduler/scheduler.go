package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mvasek/gosteal/pkg/common/errors"
	"github.com/mvasek/gosteal/pkg/stealpool"
)

// Job is a unit of work the scheduler submits to its pool when due.
type Job func(ctx context.Context) error

// Entry describes a registered task.
type Entry struct {
	ID       string
	RunAt    time.Time
	Interval time.Duration // Zero for one-time and cron tasks
	Created  time.Time
}

// Scheduler submits jobs to a work-stealing pool at scheduled times.
type Scheduler interface {
	// Basic scheduling
	Schedule(id string, job Job, runAt time.Time) error
	ScheduleAfter(id string, job Job, delay time.Duration) error
	ScheduleRepeating(id string, job Job, interval time.Duration) error

	// Cron scheduling
	ScheduleCron(id string, cronExpr string, job Job) error

	// Task management
	Cancel(id string) bool
	CancelAll()
	List() []Entry
	NextRun(id string) (time.Time, error)

	// Lifecycle
	Start() error
	Stop() <-chan struct{}

	// Statistics
	Runs() int64
	RunsFailed() int64
}

// Config holds scheduler configuration.
type Config struct {
	// Pool receives due jobs. When nil the scheduler creates and owns a
	// pool with one worker per CPU, shut down by Stop.
	Pool *stealpool.Pool

	// Location is the time zone for cron schedules. Defaults to time.Local.
	Location *time.Location

	// TickInterval is how often due tasks are checked for. Default: 50ms.
	TickInterval time.Duration

	// MaxTasks caps the number of registered tasks. Default: 10000.
	MaxTasks int
}

type scheduledTask struct {
	id           string
	job          Job
	runAt        time.Time
	interval     time.Duration
	cronSchedule cron.Schedule
	created      time.Time
}

type scheduler struct {
	pool         *stealpool.Pool
	ownPool      bool
	location     *time.Location
	tickInterval time.Duration
	maxTasks     int
	cronParser   cron.Parser
	name         string

	mu      sync.Mutex
	tasks   map[string]*scheduledTask
	ticker  *time.Ticker
	done    chan struct{}
	running bool

	watchWg    sync.WaitGroup
	runs       atomic.Int64
	runsFailed atomic.Int64

	metrics *schedulerMetrics
}

// New creates a scheduler with default configuration.
func New() Scheduler {
	s, _ := NewWithConfig(Config{})
	return s
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) (Scheduler, error) {
	pool := cfg.Pool
	ownPool := false
	if pool == nil {
		var err error
		pool, err = stealpool.New(0)
		if err != nil {
			return nil, err
		}
		ownPool = true
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = 50 * time.Millisecond
	}

	maxTasks := cfg.MaxTasks
	if maxTasks <= 0 {
		maxTasks = 10000
	}

	return &scheduler{
		pool:         pool,
		ownPool:      ownPool,
		location:     location,
		tickInterval: tickInterval,
		maxTasks:     maxTasks,
		cronParser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		name:         "scheduler",
		tasks:        make(map[string]*scheduledTask),
		done:         make(chan struct{}),
	}, nil
}

// validate checks the fields shared by every Schedule variant.
func (s *scheduler) validate(id string, job Job) error {
	if id == "" {
		return errors.NewValidationError("scheduler", "id", id, "cannot be empty")
	}
	if len(id) > 255 {
		return errors.NewValidationError("scheduler", "id", id, "too long (max 255 characters)")
	}
	if job == nil {
		return fmt.Errorf("scheduler: %w", errors.ErrNilTask)
	}
	return nil
}

// register inserts the task under the scheduler lock.
func (s *scheduler) register(t *scheduledTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.id]; exists {
		return fmt.Errorf("task with ID %q already exists, cancel it first", t.id)
	}
	if len(s.tasks) >= s.maxTasks {
		return fmt.Errorf("cannot schedule task: maximum number of tasks (%d) reached", s.maxTasks)
	}

	s.tasks[t.id] = t
	if m := s.metrics; m != nil {
		m.taskScheduled()
	}
	return nil
}

func (s *scheduler) Schedule(id string, job Job, runAt time.Time) error {
	if err := s.validate(id, job); err != nil {
		return err
	}
	if runAt.IsZero() {
		return errors.NewValidationError("scheduler", "runAt", runAt, "cannot be zero")
	}

	return s.register(&scheduledTask{
		id:      id,
		job:     job,
		runAt:   runAt,
		created: time.Now(),
	})
}

func (s *scheduler) ScheduleAfter(id string, job Job, delay time.Duration) error {
	return s.Schedule(id, job, time.Now().Add(delay))
}

func (s *scheduler) ScheduleRepeating(id string, job Job, interval time.Duration) error {
	if err := s.validate(id, job); err != nil {
		return err
	}
	if interval <= 0 {
		return errors.NewValidationError("scheduler", "interval", interval, "must be positive")
	}

	return s.register(&scheduledTask{
		id:       id,
		job:      job,
		runAt:    time.Now(),
		interval: interval,
		created:  time.Now(),
	})
}

func (s *scheduler) ScheduleCron(id string, cronExpr string, job Job) error {
	if err := s.validate(id, job); err != nil {
		return err
	}
	if cronExpr == "" {
		return errors.NewValidationError("scheduler", "cron", cronExpr, "cannot be empty")
	}

	schedule, err := s.cronParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	now := time.Now().In(s.location)
	return s.register(&scheduledTask{
		id:           id,
		job:          job,
		runAt:        schedule.Next(now),
		cronSchedule: schedule,
		created:      time.Now(),
	})
}

func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; exists {
		delete(s.tasks, id)
		return true
	}
	return false
}

func (s *scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make(map[string]*scheduledTask)
}

func (s *scheduler) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.tasks))
	for _, t := range s.tasks {
		entries = append(entries, Entry{
			ID:       t.id,
			RunAt:    t.runAt,
			Interval: t.interval,
			Created:  t.created,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RunAt.Before(entries[j].RunAt)
	})

	return entries
}

func (s *scheduler) NextRun(id string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.tasks[id]
	if !exists {
		return time.Time{}, fmt.Errorf("task %q: %w", id, errors.ErrNotFound)
	}
	return t.runAt, nil
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running, call Stop() first")
	}

	s.running = true
	s.ticker = time.NewTicker(s.tickInterval)

	go s.run()
	return nil
}

func (s *scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.done)
		s.ticker.Stop()
	}
	s.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		if s.ownPool {
			s.pool.Stop()
		}
		s.watchWg.Wait()
	}()

	return stopped
}

// Runs returns the total number of job submissions performed so far.
func (s *scheduler) Runs() int64 {
	return s.runs.Load()
}

// RunsFailed returns the number of runs that could not be submitted or
// finished with an error.
func (s *scheduler) RunsFailed() int64 {
	return s.runsFailed.Load()
}

func (s *scheduler) run() {
	ticker := s.ticker
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.submitReady()
		}
	}
}

// submitReady collects due tasks under the lock, reschedules the repeating
// ones, and submits outside the lock.
func (s *scheduler) submitReady() {
	now := time.Now()

	s.mu.Lock()
	if len(s.tasks) == 0 {
		s.mu.Unlock()
		return
	}

	ready := make([]*scheduledTask, 0, len(s.tasks))
	for id, t := range s.tasks {
		if now.Before(t.runAt) {
			continue
		}
		ready = append(ready, t)

		switch {
		case t.interval > 0:
			t.runAt = now.Add(t.interval)
		case t.cronSchedule != nil:
			t.runAt = t.cronSchedule.Next(now.In(s.location))
		default:
			delete(s.tasks, id)
		}
	}
	s.mu.Unlock()

	for _, t := range ready {
		s.submit(t)
	}
}

func (s *scheduler) submit(t *scheduledTask) {
	fut, err := s.pool.SubmitFunc(context.Background(), t.job)
	if err != nil {
		s.runsFailed.Add(1)
		if m := s.metrics; m != nil {
			m.runFailed()
		}
		return
	}

	s.runs.Add(1)
	if m := s.metrics; m != nil {
		m.run()
	}

	// Watch the outcome so failed runs are counted. The future always
	// resolves, even across a pool shutdown.
	s.watchWg.Add(1)
	go func() {
		defer s.watchWg.Done()
		if _, err := fut.Get(); err != nil {
			s.runsFailed.Add(1)
			if m := s.metrics; m != nil {
				m.runFailed()
			}
		}
	}()
}
