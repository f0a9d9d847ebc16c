// Package local implements the default execution backend: a bounded pool
// of workers running task commands on the local host.
// See docs/ARCHITECTURE.md § Execution Backends.
package local

import (
	"context"
	"os/exec"
	"runtime"
	"sync"

	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

// Location is the dotted location this backend registers under.
const Location = "conductor.executors.local.LocalExecutor"

func init() {
	symtab.Register(Location, func() (types.Executor, error) {
		return New(), nil
	})
}

// queueDepth bounds how many tasks may wait for a free worker before
// Submit blocks.
const queueDepth = 128

// LocalExecutor runs tasks concurrently on a fixed pool of workers.
type LocalExecutor struct {
	// Parallelism is the worker count. Settable before Start; defaults
	// to the number of CPUs.
	Parallelism int

	mu       sync.Mutex
	started  bool
	tasks    chan types.Task
	cancel   context.CancelFunc
	workerWG sync.WaitGroup
	taskWG   sync.WaitGroup

	stateMu sync.RWMutex
	states  map[string]types.TaskState
}

// New creates a stopped LocalExecutor.
func New() *LocalExecutor {
	return &LocalExecutor{
		Parallelism: runtime.NumCPU(),
		states:      make(map[string]types.TaskState),
	}
}

// Start launches the worker pool.
// Returns ErrAlreadyStarted if called while running.
func (e *LocalExecutor) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return types.ErrAlreadyStarted
	}

	parallelism := e.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	// Workers outlive the Start call; they stop on Stop, not on ctx.
	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.tasks = make(chan types.Task, queueDepth)

	for i := 0; i < parallelism; i++ {
		e.workerWG.Add(1)
		go e.worker(runCtx)
	}

	e.started = true
	return nil
}

// Submit queues a task on the pool. Blocks while the queue is full.
func (e *LocalExecutor) Submit(ctx context.Context, task types.Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return types.ErrNotStarted
	}

	e.setState(task.ID, types.TaskQueued)
	e.taskWG.Add(1)
	select {
	case e.tasks <- task:
		return nil
	case <-ctx.Done():
		e.taskWG.Done()
		e.setState(task.ID, types.TaskFailed)
		return ctx.Err()
	}
}

// Drain blocks until every submitted task has finished.
func (e *LocalExecutor) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.taskWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop finishes queued tasks and shuts the pool down. Idempotent.
// If ctx expires before the workers finish, running commands are killed.
func (e *LocalExecutor) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return nil
	}
	e.started = false
	close(e.tasks)
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.workerWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.cancel()
		return nil
	case <-ctx.Done():
		e.cancel()
		<-done
		return ctx.Err()
	}
}

// TaskState reports the last known state of a task.
func (e *LocalExecutor) TaskState(id string) (types.TaskState, bool) {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	state, ok := e.states[id]
	return state, ok
}

func (e *LocalExecutor) setState(id string, state types.TaskState) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.states[id] = state
}

func (e *LocalExecutor) worker(ctx context.Context) {
	defer e.workerWG.Done()
	for task := range e.tasks {
		e.runTask(ctx, task)
		e.taskWG.Done()
	}
}

func (e *LocalExecutor) runTask(ctx context.Context, task types.Task) {
	e.setState(task.ID, types.TaskRunning)

	// An empty command is a barrier task; it completes immediately.
	if len(task.Command) == 0 {
		e.setState(task.ID, types.TaskSucceeded)
		return
	}

	cmd := exec.CommandContext(ctx, task.Command[0], task.Command[1:]...)
	if err := cmd.Run(); err != nil {
		e.setState(task.ID, types.TaskFailed)
		return
	}
	e.setState(task.ID, types.TaskSucceeded)
}
