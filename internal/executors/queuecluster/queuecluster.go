// Package queuecluster implements the hybrid execution backend. It owns
// one queue executor and one cluster executor and dispatches each task on
// its queue tag: tasks tagged for the cluster queue go to the cluster
// executor, everything else goes to the distributed queue. The type is
// only ever constructed by the loader's composite builder, never through
// the generic resolution path.
package queuecluster

import (
	"context"
	"errors"

	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

// Location is the dotted location this backend registers under.
const Location = "conductor.executors.queuecluster.QueueClusterExecutor"

// ClusterQueue is the task queue tag that routes to the cluster executor.
const ClusterQueue = "cluster"

func init() {
	symtab.RegisterComposite(Location, func(primary, secondary types.Executor) (types.Executor, error) {
		return New(primary, secondary), nil
	})
}

// QueueClusterExecutor delegates every operation to its two sub-executors.
type QueueClusterExecutor struct {
	queue   types.Executor
	cluster types.Executor
}

// New creates the hybrid executor from an already instantiated queue
// executor and cluster executor. Both are owned exclusively by the
// returned instance.
func New(queue, cluster types.Executor) *QueueClusterExecutor {
	return &QueueClusterExecutor{queue: queue, cluster: cluster}
}

// QueueExecutor returns the sub-executor serving non-cluster queues.
func (e *QueueClusterExecutor) QueueExecutor() types.Executor {
	return e.queue
}

// ClusterExecutor returns the sub-executor serving the cluster queue.
func (e *QueueClusterExecutor) ClusterExecutor() types.Executor {
	return e.cluster
}

// Start starts both sub-executors, queue first. If the cluster executor
// fails to start, the queue executor is stopped again.
func (e *QueueClusterExecutor) Start(ctx context.Context) error {
	if err := e.queue.Start(ctx); err != nil {
		return err
	}
	if err := e.cluster.Start(ctx); err != nil {
		stopErr := e.queue.Stop(ctx)
		return errors.Join(err, stopErr)
	}
	return nil
}

// Submit routes the task to a sub-executor by its queue tag.
func (e *QueueClusterExecutor) Submit(ctx context.Context, task types.Task) error {
	if task.Queue == ClusterQueue {
		return e.cluster.Submit(ctx, task)
	}
	return e.queue.Submit(ctx, task)
}

// Drain drains both sub-executors.
func (e *QueueClusterExecutor) Drain(ctx context.Context) error {
	if err := e.queue.Drain(ctx); err != nil {
		return err
	}
	return e.cluster.Drain(ctx)
}

// Stop stops both sub-executors and reports every failure.
func (e *QueueClusterExecutor) Stop(ctx context.Context) error {
	return errors.Join(e.queue.Stop(ctx), e.cluster.Stop(ctx))
}

// TaskState consults both sub-executors.
func (e *QueueClusterExecutor) TaskState(id string) (types.TaskState, bool) {
	if r, ok := e.cluster.(types.StateReporter); ok {
		if state, found := r.TaskState(id); found {
			return state, true
		}
	}
	if r, ok := e.queue.(types.StateReporter); ok {
		if state, found := r.TaskState(id); found {
			return state, true
		}
	}
	return "", false
}
