package cluster

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/conductor/pkg/types"
)

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	e := New()

	require.ErrorIs(t, e.Submit(ctx, types.NewTask("early", "", nil)), types.ErrNotStarted)
	require.NoError(t, e.Start(ctx))
	require.ErrorIs(t, e.Start(ctx), types.ErrAlreadyStarted)
	require.NoError(t, e.Stop(ctx))
	require.NoError(t, e.Stop(ctx))
}

func TestEachTaskRunsIsolated(t *testing.T) {
	ctx := context.Background()
	e := New()
	require.NoError(t, e.Start(ctx))
	defer e.Stop(ctx)

	tasks := make([]types.Task, 20)
	for i := range tasks {
		tasks[i] = types.NewTask(fmt.Sprintf("job-%d", i), "cluster", nil)
		require.NoError(t, e.Submit(ctx, tasks[i]))
	}

	drainCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, e.Drain(drainCtx))

	for _, task := range tasks {
		state, ok := e.TaskState(task.ID)
		require.True(t, ok)
		assert.Equal(t, types.TaskSucceeded, state)
	}
}

func TestCommandFailureIsRecorded(t *testing.T) {
	ctx := context.Background()
	e := New()
	require.NoError(t, e.Start(ctx))
	defer e.Stop(ctx)

	bad := types.NewTask("bad", "cluster", []string{"sh", "-c", "exit 1"})
	require.NoError(t, e.Submit(ctx, bad))

	drainCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	require.NoError(t, e.Drain(drainCtx))

	state, ok := e.TaskState(bad.ID)
	require.True(t, ok)
	assert.Equal(t, types.TaskFailed, state)
}
