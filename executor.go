package gruby

import (
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// The runtime must only ever be touched from the thread that initialized
// it. Executor provides that thread as a schedulable resource: one locked
// OS thread owns setup, every job, and teardown, in strict FIFO order.

type executorState int

const (
	stateCreated executorState = iota
	stateRunning
	stateStopRequested
	stateStopped
)

// Job is a unit of work executed on the runtime thread. Jobs run strictly
// sequentially; once accepted a job cannot be cancelled.
type Job func()

// Executor owns the runtime thread and its FIFO job queue.
type Executor struct {
	mu    sync.Mutex
	cond  *sync.Cond
	queue []Job
	state executorState

	setupErr error
	done     chan struct{}
	tid      atomic.Uint64

	setup    func() error
	teardown func() error
}

// NewExecutor starts the runtime thread. The thread performs Setup before
// servicing jobs; if setup fails the executor comes up stopped and Submit
// reports the failure.
func NewExecutor() *Executor {
	return newExecutor(Setup, Cleanup)
}

// newExecutor allows the queue machinery to be exercised without
// initializing the process-global runtime, which can only happen once.
func newExecutor(setup, teardown func() error) *Executor {
	x := &Executor{
		done:     make(chan struct{}),
		setup:    setup,
		teardown: teardown,
	}
	x.cond = sync.NewCond(&x.mu)
	go x.run()
	return x
}

func (x *Executor) run() {
	runtime.LockOSThread()
	x.tid.Store(currentThreadID())

	if err := x.setup(); err != nil {
		Logger().Error("runtime setup failed", zap.Error(err))
		x.mu.Lock()
		x.state = stateStopped
		x.setupErr = err
		x.queue = nil
		x.mu.Unlock()
		close(x.done)
		return
	}
	Logger().Debug("runtime thread up", zap.Uint64("tid", x.tid.Load()))

	x.mu.Lock()
	if x.state == stateCreated {
		x.state = stateRunning
	}
	for {
		for len(x.queue) == 0 && x.state == stateRunning {
			x.cond.Wait()
		}
		if len(x.queue) == 0 {
			// Stop requested and the queue is drained.
			break
		}
		batch := x.queue
		x.queue = nil
		x.mu.Unlock()

		for _, job := range batch {
			job()
		}

		x.mu.Lock()
	}
	x.mu.Unlock()

	if err := x.teardown(); err != nil {
		Logger().Warn("runtime teardown reported error", zap.Error(err))
	}

	x.mu.Lock()
	x.state = stateStopped
	x.mu.Unlock()
	close(x.done)
}

// Enqueue appends a job to the queue. Callable from any goroutine; never
// blocks beyond the coordination lock. Jobs enqueued after a stop request
// are refused.
func (x *Executor) Enqueue(job Job) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.state >= stateStopRequested {
		if x.setupErr != nil {
			return x.setupErr
		}
		return ErrExecutorStopped
	}
	x.queue = append(x.queue, job)
	x.cond.Signal()
	return nil
}

// Submit runs fn on the runtime thread and waits for its result.
func (x *Executor) Submit(fn func() error) error {
	errc := make(chan error, 1)
	if err := x.Enqueue(func() { errc <- fn() }); err != nil {
		return err
	}
	select {
	case err := <-errc:
		return err
	case <-x.done:
		// Accepted jobs always run before done closes, except when the
		// executor never came up.
		select {
		case err := <-errc:
			return err
		default:
		}
		x.mu.Lock()
		defer x.mu.Unlock()
		if x.setupErr != nil {
			return x.setupErr
		}
		return ErrExecutorStopped
	}
}

// Stop drains the queue, tears the runtime down on the owning thread and
// blocks until that completes. Idempotent; concurrent callers all return
// once teardown has run. Abandoning an executor without calling Stop is
// valid, just graceless.
func (x *Executor) Stop() {
	x.mu.Lock()
	if x.state < stateStopRequested {
		x.state = stateStopRequested
		x.cond.Broadcast()
	}
	x.mu.Unlock()
	<-x.done
}

// OnRuntimeThread reports whether the caller is on the executor's thread.
func (x *Executor) OnRuntimeThread() bool {
	return currentThreadID() == x.tid.Load()
}
