// Package sequential implements an execution backend that runs each task
// to completion at submit time, one at a time. Useful for debugging and
// for environments that cannot tolerate concurrency.
package sequential

import (
	"context"
	"os/exec"
	"sync"

	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

// Location is the dotted location this backend registers under.
const Location = "conductor.executors.sequential.SequentialExecutor"

func init() {
	symtab.Register(Location, func() (types.Executor, error) {
		return New(), nil
	})
}

// SequentialExecutor runs tasks inline, serialized by a mutex.
type SequentialExecutor struct {
	mu      sync.Mutex
	started bool
	states  map[string]types.TaskState
}

// New creates a stopped SequentialExecutor.
func New() *SequentialExecutor {
	return &SequentialExecutor{states: make(map[string]types.TaskState)}
}

// Start marks the executor ready. Returns ErrAlreadyStarted if running.
func (e *SequentialExecutor) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return types.ErrAlreadyStarted
	}
	e.started = true
	return nil
}

// Submit runs the task to completion before returning. The task's failure
// is reflected in its state, not in the returned error.
func (e *SequentialExecutor) Submit(ctx context.Context, task types.Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return types.ErrNotStarted
	}

	e.states[task.ID] = types.TaskRunning
	if len(task.Command) == 0 {
		e.states[task.ID] = types.TaskSucceeded
		return nil
	}
	cmd := exec.CommandContext(ctx, task.Command[0], task.Command[1:]...)
	if err := cmd.Run(); err != nil {
		e.states[task.ID] = types.TaskFailed
		return nil
	}
	e.states[task.ID] = types.TaskSucceeded
	return nil
}

// Drain is a no-op: every task finished during Submit.
func (e *SequentialExecutor) Drain(ctx context.Context) error {
	return nil
}

// Stop marks the executor stopped. Idempotent.
func (e *SequentialExecutor) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started = false
	return nil
}

// TaskState reports the last known state of a task.
func (e *SequentialExecutor) TaskState(id string) (types.TaskState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	state, ok := e.states[id]
	return state, ok
}
