package loader

import (
	"github.com/dukaforge/conductor/internal/executors/cluster"
	"github.com/dukaforge/conductor/internal/executors/debug"
	"github.com/dukaforge/conductor/internal/executors/local"
	"github.com/dukaforge/conductor/internal/executors/queue"
	"github.com/dukaforge/conductor/internal/executors/queuecluster"
	"github.com/dukaforge/conductor/internal/executors/sequential"
)

// Logical executor names accepted in the "executor" configuration key.
const (
	LocalExecutor        = "LocalExecutor"
	SequentialExecutor   = "SequentialExecutor"
	QueueExecutor        = "QueueExecutor"
	ClusterExecutor      = "ClusterExecutor"
	QueueClusterExecutor = "QueueClusterExecutor"
	DebugExecutor        = "DebugExecutor"
)

// executorNamespace is the dotted prefix tried for plugin-qualified names.
// It matches plugins.ExecutorNamespace and the core executor locations.
const executorNamespace = "conductor.executors"

// coreExecutors maps logical names to canonical dotted locations. The
// table is fixed at build time; the resolver never mutates it. Importing
// the executor packages for their Location constants also guarantees
// every entry is registered in the symbol table before first use.
var coreExecutors = map[string]string{
	LocalExecutor:        local.Location,
	SequentialExecutor:   sequential.Location,
	QueueExecutor:        queue.Location,
	ClusterExecutor:      cluster.Location,
	QueueClusterExecutor: queuecluster.Location,
	DebugExecutor:        debug.Location,
}

// Registry returns a copy of the logical-name table, for display.
func Registry() map[string]string {
	out := make(map[string]string, len(coreExecutors))
	for name, location := range coreExecutors {
		out[name] = location
	}
	return out
}
