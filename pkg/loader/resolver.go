package loader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukaforge/conductor/internal/plugins"
	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

// integratePlugins is the plugin collaborator hook; tests swap it out.
var integratePlugins = plugins.IntegrateExecutorPlugins

// Resolve maps a logical executor name to a factory and the strategy that
// found it, in strict precedence order:
//
//  1. a registry key loads its canonical dotted location (SourceCore);
//  2. a name with exactly one "." is tried as "{plugin}.{Type}" under the
//     executors namespace (SourcePlugin); any failure here is expected
//     and falls through silently;
//  3. the name itself is loaded as a literal dotted location
//     (SourceCustomPath).
//
// Only the final strategy's failure (or a registry entry that fails to
// load) is returned. Resolve does not instantiate anything.
func Resolve(name string) (symtab.Factory, Source, error) {
	if location, ok := coreExecutors[name]; ok {
		factory, err := symtab.Load(location)
		if err != nil {
			return nil, SourceCore, err
		}
		return factory, SourceCore, nil
	}

	if strings.Count(name, ".") == 1 {
		slog.Debug("executor name looks plugin-qualified, trying plugin resolution",
			"name", name)
		factory, err := resolvePlugin(name)
		if err == nil {
			return factory, SourcePlugin, nil
		}
		// Expected for two-segment custom paths; fall through.
		slog.Debug("plugin resolution failed, trying literal path",
			"name", name, "error", err)
	}

	factory, err := symtab.Load(name)
	if err != nil {
		return nil, SourceCustomPath, err
	}
	return factory, SourceCustomPath, nil
}

// resolvePlugin integrates pending executor plugins and loads the
// plugin-qualified location. Integration happens here, lazily, because
// plugins may not have been discovered yet when the resolver is first
// called.
func resolvePlugin(name string) (symtab.Factory, error) {
	if err := integratePlugins(); err != nil {
		return nil, err
	}
	return symtab.Load(executorNamespace + "." + name)
}

// Load resolves name and instantiates the executor. The reserved hybrid
// name is built by the composite rule and never goes through Resolve.
// A failed resolution is returned as a *ResolutionError.
func Load(name string) (types.Executor, error) {
	if name == QueueClusterExecutor {
		return loadQueueClusterExecutor()
	}

	factory, source, err := Resolve(name)
	if err != nil {
		slog.Error("executor resolution failed", "name", name, "error", err)
		return nil, &ResolutionError{Name: name, Err: err}
	}
	slog.Debug("loading executor", "name", name, "source", source.String())

	executor, err := factory()
	if err != nil {
		return nil, fmt.Errorf("instantiate executor %q: %w", name, err)
	}
	slog.Info("loaded executor", "name", name)
	return executor, nil
}
