package types

import (
	"context"
	"errors"
)

// Executor is the interface every execution backend implements.
// Callers start the executor, submit tasks, optionally drain, and stop.
// See docs/ARCHITECTURE.md § Executor Lifecycle.
type Executor interface {
	// Start prepares the executor for task submission.
	// Returns ErrAlreadyStarted if called while running.
	Start(ctx context.Context) error

	// Submit queues a task for execution. Returns ErrNotStarted if the
	// executor has not been started or has been stopped.
	Submit(ctx context.Context, task Task) error

	// Drain blocks until every submitted task has reached a terminal
	// state, or until ctx is done.
	Drain(ctx context.Context) error

	// Stop releases backend resources. Idempotent: multiple calls
	// succeed. After Stop, Submit returns ErrNotStarted.
	Stop(ctx context.Context) error
}

// StateReporter is implemented by executors that track per-task states.
type StateReporter interface {
	// TaskState reports the last known state of the task with the given
	// ID. The second result is false if the task is unknown.
	TaskState(id string) (TaskState, bool)
}

// Executor lifecycle errors.
var (
	ErrNotStarted     = errors.New("executor is not started")
	ErrAlreadyStarted = errors.New("executor is already started")
)
