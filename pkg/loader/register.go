package loader

import (
	"github.com/dukaforge/conductor/internal/plugins"
	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

// Factory constructs an executor with no arguments.
type Factory = symtab.Factory

// RegisterExecutor makes a factory loadable under the given dotted
// location, so configuration can select it as a literal path. Call it
// from init in the package providing the executor. Reusing a location
// panics.
func RegisterExecutor(location string, factory func() (types.Executor, error)) {
	symtab.Register(location, factory)
}

// RegisterPluginExecutor queues a plugin-contributed executor for
// integration. The executor becomes loadable as "{pluginName}.{typeName}"
// once the resolver integrates plugins.
func RegisterPluginExecutor(pluginName, typeName string, factory func() (types.Executor, error)) error {
	return plugins.Add(plugins.ExecutorPlugin{
		PluginName: pluginName,
		TypeName:   typeName,
		Factory:    factory,
	})
}
