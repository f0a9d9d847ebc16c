// Package queue implements the distributed-queue execution backend. Tasks
// are persisted to a SQLite broker table on submit; a pool of workers
// claims and runs them. The broker database survives the executor, so a
// restarted process re-queues work that was running when the previous
// owner died.
// See docs/ARCHITECTURE.md § Execution Backends.
package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

// Location is the dotted location this backend registers under.
const Location = "conductor.executors.queue.QueueExecutor"

func init() {
	symtab.Register(Location, func() (types.Executor, error) {
		return New(), nil
	})
}

const (
	defaultWorkers = 2
	pollInterval   = 25 * time.Millisecond
	dbFileName     = "broker.db"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS task_queue (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	queue      TEXT NOT NULL DEFAULT '',
	command    TEXT NOT NULL DEFAULT '[]',
	state      TEXT NOT NULL DEFAULT 'queued',
	created_at TEXT NOT NULL,
	claimed_at TEXT
);
CREATE INDEX IF NOT EXISTS task_queue_state_idx ON task_queue(state);
`

// QueueExecutor persists tasks to a SQLite broker and runs them from a
// worker pool.
type QueueExecutor struct {
	// DataDir holds the broker database. Settable before Start; empty
	// means a fresh per-process temporary directory.
	DataDir string

	// Workers is the worker count. Settable before Start.
	Workers int

	mu      sync.Mutex
	started bool
	db      *sql.DB
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// claimMu serializes claim transactions so two workers cannot take
	// the same row.
	claimMu sync.Mutex
}

// New creates a stopped QueueExecutor.
func New() *QueueExecutor {
	return &QueueExecutor{Workers: defaultWorkers}
}

// Start opens the broker database, re-queues orphaned tasks, and launches
// the worker pool. Returns ErrAlreadyStarted if called while running.
func (e *QueueExecutor) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return types.ErrAlreadyStarted
	}

	dataDir := e.DataDir
	if dataDir == "" {
		dir, err := os.MkdirTemp("", "conductor-broker-*")
		if err != nil {
			return fmt.Errorf("create broker dir: %w", err)
		}
		dataDir = dir
		e.DataDir = dir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create broker dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("open broker: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("init broker schema: %w", err)
	}

	// Tasks left running by a dead owner go back to the queue.
	if _, err := db.ExecContext(ctx,
		`UPDATE task_queue SET state = ?, claimed_at = NULL WHERE state = ?`,
		types.TaskQueued, types.TaskRunning); err != nil {
		db.Close()
		return fmt.Errorf("requeue orphaned tasks: %w", err)
	}

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}

	runCtx, cancel := context.WithCancel(context.Background())
	e.db = db
	e.cancel = cancel

	for i := 0; i < workers; i++ {
		e.wg.Add(1)
		go e.worker(runCtx)
	}

	e.started = true
	return nil
}

// Submit persists the task to the broker. A worker picks it up later.
func (e *QueueExecutor) Submit(ctx context.Context, task types.Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return types.ErrNotStarted
	}

	command, err := json.Marshal(task.Command)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}

	_, err = e.db.ExecContext(ctx,
		`INSERT INTO task_queue (id, name, queue, command, state, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.Name, task.Queue, string(command),
		types.TaskQueued, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("enqueue task %s: %w", task.ID, err)
	}
	return nil
}

// Drain blocks until no task is queued or running, or until ctx is done.
func (e *QueueExecutor) Drain(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		pending, err := e.pendingCount(ctx)
		if err != nil {
			return err
		}
		if pending == 0 {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop halts the workers and closes the broker database. Idempotent.
// Queued rows stay in the broker for the next Start.
func (e *QueueExecutor) Stop(ctx context.Context) error {
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

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			return fmt.Errorf("close broker: %w", err)
		}
		e.db = nil
	}
	return nil
}

// TaskState reports the broker-recorded state of a task.
func (e *QueueExecutor) TaskState(id string) (types.TaskState, bool) {
	e.mu.Lock()
	db := e.db
	e.mu.Unlock()
	if db == nil {
		return "", false
	}

	var state string
	err := db.QueryRow(`SELECT state FROM task_queue WHERE id = ?`, id).Scan(&state)
	if err != nil {
		return "", false
	}
	return types.TaskState(state), true
}

func (e *QueueExecutor) pendingCount(ctx context.Context) (int, error) {
	e.mu.Lock()
	db := e.db
	e.mu.Unlock()
	if db == nil {
		return 0, types.ErrNotStarted
	}

	var pending int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM task_queue WHERE state IN (?, ?)`,
		types.TaskQueued, types.TaskRunning).Scan(&pending)
	if err != nil {
		return 0, fmt.Errorf("count pending tasks: %w", err)
	}
	return pending, nil
}

func (e *QueueExecutor) worker(ctx context.Context) {
	defer e.wg.Done()
	for {
		task, ok, err := e.claimNext(ctx)
		if err == nil && ok {
			e.runTask(ctx, task)
			continue
		}
		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return
		}
	}
}

// claimNext atomically moves the oldest queued row to running and returns
// it. The second result is false when the queue is empty.
func (e *QueueExecutor) claimNext(ctx context.Context) (types.Task, bool, error) {
	e.claimMu.Lock()
	defer e.claimMu.Unlock()

	e.mu.Lock()
	db := e.db
	e.mu.Unlock()
	if db == nil {
		return types.Task{}, false, types.ErrNotStarted
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return types.Task{}, false, err
	}
	defer tx.Rollback()

	var (
		task    types.Task
		command string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, queue, command FROM task_queue
		 WHERE state = ? ORDER BY created_at LIMIT 1`,
		types.TaskQueued).Scan(&task.ID, &task.Name, &task.Queue, &command)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Task{}, false, nil
	}
	if err != nil {
		return types.Task{}, false, err
	}

	if err := json.Unmarshal([]byte(command), &task.Command); err != nil {
		return types.Task{}, false, fmt.Errorf("unmarshal command for %s: %w", task.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE task_queue SET state = ?, claimed_at = ? WHERE id = ?`,
		types.TaskRunning, time.Now().UTC().Format(time.RFC3339Nano), task.ID)
	if err != nil {
		return types.Task{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return types.Task{}, false, err
	}
	return task, true, nil
}

func (e *QueueExecutor) runTask(ctx context.Context, task types.Task) {
	state := types.TaskSucceeded
	if len(task.Command) > 0 {
		cmd := exec.CommandContext(ctx, task.Command[0], task.Command[1:]...)
		if err := cmd.Run(); err != nil {
			state = types.TaskFailed
		}
	}
	e.markDone(task.ID, state)
}

func (e *QueueExecutor) markDone(id string, state types.TaskState) {
	e.mu.Lock()
	db := e.db
	e.mu.Unlock()
	if db == nil {
		return
	}
	_, _ = db.Exec(`UPDATE task_queue SET state = ? WHERE id = ?`, state, id)
}
