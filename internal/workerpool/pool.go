package workerpool

import (
	"errors"
	"log"
	"sync"
	"runtime"
	"sync/atomic"
)

var ErrNotRunning = errors.New("worker pool doesn't accept new tasks anymore")

// FallbackSize is used whenever the hardware parallelism can't be detected.
const FallbackSize = 4

// DefaultSize returns the detected hardware parallelism, falling back to FallbackSize if
// it wasn't detected.
func DefaultSize() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}

	return FallbackSize
}

type Logger interface {
	Printf(format string, v ...any)
}

type State uint8

const (
	Running State = iota
	Draining
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Task binds a value, exclusively owned by the task, to the routine handling it.
type Task[T any] struct {
	Value T
	Run   func(T)
}

type Stats struct {
	Workers   int
	Live      int
	Queued    int
	Completed uint64
	Failed    uint64
	State     State
}

// Pool is a fixed set of workers consuming tasks from a shared unbounded queue. The queue
// and the lifecycle state are guarded by a single mutex, idle workers wait on its
// condition variable.
type Pool[T any] struct {
	mu        sync.Mutex
	cond      *sync.Cond
	queue     queue[Task[T]]
	state     State
	workers   int
	live      int
	stopped   chan struct{}
	completed atomic.Uint64
	failed    atomic.Uint64
	logger    Logger
}

// New starts a pool of the given size. Non-positive size means the detected hardware
// parallelism. Nil logger means log.Default().
func New[T any](workers int, logger Logger) *Pool[T] {
	if workers <= 0 {
		workers = DefaultSize()
	}

	if logger == nil {
		logger = log.Default()
	}

	p := &Pool[T]{
		state:   Running,
		workers: workers,
		live:    workers,
		stopped: make(chan struct{}),
		logger:  logger,
	}
	p.cond = sync.NewCond(&p.mu)

	for i := range workers {
		go p.worker(i)
	}

	return p
}

// Enqueue appends the task to the queue and wakes a single idle worker up. It never waits
// for a worker to become free. ErrNotRunning is returned once the shutdown was requested.
func (p *Pool[T]) Enqueue(task Task[T]) error {
	p.mu.Lock()
	if p.state != Running {
		p.mu.Unlock()
		return ErrNotRunning
	}

	p.queue.Push(task)
	p.mu.Unlock()
	p.cond.Signal()

	return nil
}

// Shutdown stops accepting new tasks, lets the workers drain the queue and blocks until
// all of them exit. Safe to be called multiple times and concurrently.
func (p *Pool[T]) Shutdown() {
	p.mu.Lock()
	if p.state == Running {
		p.state = Draining
		p.cond.Broadcast()
	}
	p.mu.Unlock()

	<-p.stopped
}

// State returns the current lifecycle state.
func (p *Pool[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

func (p *Pool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		Workers:   p.workers,
		Live:      p.live,
		Queued:    p.queue.Len(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		State:     p.state,
	}
}

func (p *Pool[T]) worker(id int) {
	defer p.exit()

	for {
		task, ok := p.next()
		if !ok {
			return
		}

		p.run(id, task)
	}
}

// next blocks until there's a task to run. ok is false when the pool is draining and the
// queue is empty, which means the worker must exit.
func (p *Pool[T]) next() (task Task[T], ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.queue.Len() == 0 && p.state == Running {
		p.cond.Wait()
	}

	return p.queue.Pop()
}

func (p *Pool[T]) run(id int, task Task[T]) {
	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
			p.logger.Printf("worker %d: task panicked: %v", id, r)
			return
		}

		p.completed.Add(1)
	}()

	task.Run(task.Value)
}

func (p *Pool[T]) exit() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.live--; p.live == 0 {
		p.state = Stopped
		close(p.stopped)
	}
}
