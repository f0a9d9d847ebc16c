// Package debug implements an execution backend for interactive
// troubleshooting: tasks run inline and their results, including captured
// output, are kept for inspection.
package debug

import (
	"context"
	"os/exec"
	"sync"

	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

// Location is the dotted location this backend registers under.
const Location = "conductor.executors.debug.DebugExecutor"

func init() {
	symtab.Register(Location, func() (types.Executor, error) {
		return New(), nil
	})
}

// Result records the outcome of one task.
type Result struct {
	Task   types.Task
	State  types.TaskState
	Output []byte // combined stdout and stderr
	Err    error
}

// DebugExecutor runs tasks inline and records every result.
type DebugExecutor struct {
	mu      sync.Mutex
	started bool
	results []Result
}

// New creates a stopped DebugExecutor.
func New() *DebugExecutor {
	return &DebugExecutor{}
}

// Start marks the executor ready. Returns ErrAlreadyStarted if running.
func (e *DebugExecutor) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return types.ErrAlreadyStarted
	}
	e.started = true
	return nil
}

// Submit runs the task to completion and records its result.
func (e *DebugExecutor) Submit(ctx context.Context, task types.Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return types.ErrNotStarted
	}

	result := Result{Task: task, State: types.TaskSucceeded}
	if len(task.Command) > 0 {
		cmd := exec.CommandContext(ctx, task.Command[0], task.Command[1:]...)
		result.Output, result.Err = cmd.CombinedOutput()
		if result.Err != nil {
			result.State = types.TaskFailed
		}
	}
	e.results = append(e.results, result)
	return nil
}

// Drain is a no-op: every task finished during Submit.
func (e *DebugExecutor) Drain(ctx context.Context) error {
	return nil
}

// Stop marks the executor stopped. Recorded results survive Stop.
func (e *DebugExecutor) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started = false
	return nil
}

// Results returns a copy of the recorded results in submission order.
func (e *DebugExecutor) Results() []Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Result, len(e.results))
	copy(out, e.results)
	return out
}

// TaskState reports the recorded state of a task.
func (e *DebugExecutor) TaskState(id string) (types.TaskState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range e.results {
		if r.Task.ID == id {
			return r.State, true
		}
	}
	return "", false
}
