package sequential

import (
	"context"
	"testing"

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
	require.ErrorIs(t, e.Submit(ctx, types.NewTask("late", "", nil)), types.ErrNotStarted)
}

func TestTasksFinishDuringSubmit(t *testing.T) {
	ctx := context.Background()
	e := New()
	require.NoError(t, e.Start(ctx))
	defer e.Stop(ctx)

	task := types.NewTask("barrier", "", nil)
	require.NoError(t, e.Submit(ctx, task))

	// No Drain needed: the task already ran.
	state, ok := e.TaskState(task.ID)
	require.True(t, ok)
	assert.Equal(t, types.TaskSucceeded, state)

	require.NoError(t, e.Drain(ctx))
}

func TestCommandFailureIsRecordedNotReturned(t *testing.T) {
	ctx := context.Background()
	e := New()
	require.NoError(t, e.Start(ctx))
	defer e.Stop(ctx)

	bad := types.NewTask("bad", "", []string{"sh", "-c", "exit 3"})
	require.NoError(t, e.Submit(ctx, bad))

	state, ok := e.TaskState(bad.ID)
	require.True(t, ok)
	assert.Equal(t, types.TaskFailed, state)
}
