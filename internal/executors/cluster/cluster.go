// Package cluster implements a scheduler-style execution backend: every
// task gets its own isolated worker, the way a cluster scheduler gives
// each task a fresh unit of compute. Parallelism is unbounded; the
// cluster, not the submitter, is the capacity limit.
package cluster

import (
	"context"
	"os/exec"
	"sync"

	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

// Location is the dotted location this backend registers under.
const Location = "conductor.executors.cluster.ClusterExecutor"

func init() {
	symtab.Register(Location, func() (types.Executor, error) {
		return New(), nil
	})
}

// ClusterExecutor launches one worker goroutine per submitted task.
type ClusterExecutor struct {
	mu      sync.Mutex
	started bool
	runCtx  context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	stateMu sync.RWMutex
	states  map[string]types.TaskState
}

// New creates a stopped ClusterExecutor.
func New() *ClusterExecutor {
	return &ClusterExecutor{states: make(map[string]types.TaskState)}
}

// Start marks the executor ready. Returns ErrAlreadyStarted if running.
func (e *ClusterExecutor) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return types.ErrAlreadyStarted
	}
	e.runCtx, e.cancel = context.WithCancel(context.Background())
	e.started = true
	return nil
}

// Submit launches an isolated worker for the task and returns immediately.
func (e *ClusterExecutor) Submit(ctx context.Context, task types.Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return types.ErrNotStarted
	}

	e.setState(task.ID, types.TaskQueued)
	e.wg.Add(1)
	runCtx := e.runCtx
	go func() {
		defer e.wg.Done()
		e.runTask(runCtx, task)
	}()
	return nil
}

// Drain blocks until every submitted task has finished.
func (e *ClusterExecutor) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop kills in-flight tasks and shuts the executor down. Idempotent.
func (e *ClusterExecutor) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return nil
	}
	e.started = false
	cancel := e.cancel
	e.mu.Unlock()

	cancel()
	e.wg.Wait()
	return nil
}

// TaskState reports the last known state of a task.
func (e *ClusterExecutor) TaskState(id string) (types.TaskState, bool) {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	state, ok := e.states[id]
	return state, ok
}

func (e *ClusterExecutor) setState(id string, state types.TaskState) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.states[id] = state
}

func (e *ClusterExecutor) runTask(ctx context.Context, task types.Task) {
	e.setState(task.ID, types.TaskRunning)

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
