package types

import "github.com/google/uuid"

// TaskState is the lifecycle state of a submitted task.
type TaskState string

// Task states. A task progresses queued → running → succeeded or failed.
const (
	TaskQueued    TaskState = "queued"
	TaskRunning   TaskState = "running"
	TaskSucceeded TaskState = "succeeded"
	TaskFailed    TaskState = "failed"
)

// Terminal reports whether the state is final.
func (s TaskState) Terminal() bool {
	return s == TaskSucceeded || s == TaskFailed
}

// Task is a unit of work submitted to an executor.
type Task struct {
	ID      string   // UUID v7, generated on creation.
	Name    string   // Human-readable name.
	Queue   string   // Routing hint; composites dispatch on it, others ignore it.
	Command []string // Argv to run. An empty command completes immediately.
}

// NewTask creates a task with a fresh ID.
func NewTask(name, queue string, command []string) Task {
	return Task{
		ID:      generateID(),
		Name:    name,
		Queue:   queue,
		Command: command,
	}
}

// generateID generates a new UUID v7 for task IDs.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
