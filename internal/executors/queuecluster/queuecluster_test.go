package queuecluster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/conductor/pkg/types"
)

// recordingExecutor records lifecycle calls and submitted tasks.
type recordingExecutor struct {
	startErr  error
	started   bool
	stopped   bool
	drained   bool
	submitted []types.Task
}

func (r *recordingExecutor) Start(ctx context.Context) error {
	if r.startErr != nil {
		return r.startErr
	}
	r.started = true
	return nil
}

func (r *recordingExecutor) Submit(ctx context.Context, task types.Task) error {
	r.submitted = append(r.submitted, task)
	return nil
}

func (r *recordingExecutor) Drain(ctx context.Context) error {
	r.drained = true
	return nil
}

func (r *recordingExecutor) Stop(ctx context.Context) error {
	r.stopped = true
	return nil
}

func TestSubmitRoutesByQueueTag(t *testing.T) {
	ctx := context.Background()
	queueExec := &recordingExecutor{}
	clusterExec := &recordingExecutor{}
	e := New(queueExec, clusterExec)

	clusterTask := types.NewTask("on-cluster", ClusterQueue, nil)
	queueTask := types.NewTask("on-queue", "default", nil)
	untaggedTask := types.NewTask("untagged", "", nil)

	require.NoError(t, e.Submit(ctx, clusterTask))
	require.NoError(t, e.Submit(ctx, queueTask))
	require.NoError(t, e.Submit(ctx, untaggedTask))

	require.Len(t, clusterExec.submitted, 1)
	assert.Equal(t, clusterTask.ID, clusterExec.submitted[0].ID)

	require.Len(t, queueExec.submitted, 2)
	assert.Equal(t, queueTask.ID, queueExec.submitted[0].ID)
	assert.Equal(t, untaggedTask.ID, queueExec.submitted[1].ID)
}

func TestStartStartsBothAndRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("both start", func(t *testing.T) {
		queueExec := &recordingExecutor{}
		clusterExec := &recordingExecutor{}
		e := New(queueExec, clusterExec)

		require.NoError(t, e.Start(ctx))
		assert.True(t, queueExec.started)
		assert.True(t, clusterExec.started)
	})

	t.Run("cluster failure stops queue again", func(t *testing.T) {
		queueExec := &recordingExecutor{}
		clusterExec := &recordingExecutor{startErr: errors.New("no cluster")}
		e := New(queueExec, clusterExec)

		err := e.Start(ctx)
		require.ErrorContains(t, err, "no cluster")
		assert.True(t, queueExec.stopped)
	})
}

func TestDrainAndStopReachBoth(t *testing.T) {
	ctx := context.Background()
	queueExec := &recordingExecutor{}
	clusterExec := &recordingExecutor{}
	e := New(queueExec, clusterExec)

	require.NoError(t, e.Drain(ctx))
	assert.True(t, queueExec.drained)
	assert.True(t, clusterExec.drained)

	require.NoError(t, e.Stop(ctx))
	assert.True(t, queueExec.stopped)
	assert.True(t, clusterExec.stopped)
}

func TestSubExecutorAccessors(t *testing.T) {
	queueExec := &recordingExecutor{}
	clusterExec := &recordingExecutor{}
	e := New(queueExec, clusterExec)

	assert.Same(t, queueExec, e.QueueExecutor().(*recordingExecutor))
	assert.Same(t, clusterExec, e.ClusterExecutor().(*recordingExecutor))
}
