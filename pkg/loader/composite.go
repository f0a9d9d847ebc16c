package loader

import (
	"fmt"

	"github.com/dukaforge/conductor/internal/executors/queuecluster"
	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

// The hybrid's registry entry resolves like any core executor, but its
// zero-arg factory defers to the composite rule: there is no other way to
// construct it.
func init() {
	symtab.Register(queuecluster.Location, func() (types.Executor, error) {
		return loadQueueClusterExecutor()
	})
}

// loadQueueClusterExecutor builds the hybrid executor. Both sub-executors
// are instantiated through the generic load path using their own registry
// entries, then the composite constructor is resolved from the registry
// and handed the two instances, queue first. The composite itself is
// never built any other way.
func loadQueueClusterExecutor() (types.Executor, error) {
	queueExec, err := Load(QueueExecutor)
	if err != nil {
		return nil, err
	}
	clusterExec, err := Load(ClusterExecutor)
	if err != nil {
		return nil, err
	}

	factory, err := symtab.LoadComposite(coreExecutors[QueueClusterExecutor])
	if err != nil {
		return nil, &ResolutionError{Name: QueueClusterExecutor, Err: err}
	}
	executor, err := factory(queueExec, clusterExec)
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", QueueClusterExecutor, err)
	}
	return executor, nil
}
