package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/conductor/internal/executors/debug"
	"github.com/dukaforge/conductor/internal/symtab"
	"github.com/dukaforge/conductor/pkg/types"
)

func debugFactory() (types.Executor, error) {
	return debug.New(), nil
}

func TestEveryRegistryNameResolvesCoreAndInstantiates(t *testing.T) {
	for name := range Registry() {
		t.Run(name, func(t *testing.T) {
			factory, source, err := Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, SourceCore, source)

			executor, err := factory()
			require.NoError(t, err)
			assert.NotNil(t, executor)
		})
	}
}

func TestPluginConvention(t *testing.T) {
	require.NoError(t, RegisterPluginExecutor("resplug", "ResExecutor", debugFactory))

	factory, source, err := Resolve("resplug.ResExecutor")
	require.NoError(t, err)
	assert.Equal(t, SourcePlugin, source)

	executor, err := factory()
	require.NoError(t, err)
	assert.IsType(t, &debug.DebugExecutor{}, executor)
}

func TestPluginShapedNameFallsThroughToCustomPath(t *testing.T) {
	// "mymodule.MyBackend" matches the plugin shape but no such plugin
	// exists; the literal location is registered, so resolution must
	// fall through rather than fail at the plugin stage.
	RegisterExecutor("mymodule.MyBackend", debugFactory)

	factory, source, err := Resolve("mymodule.MyBackend")
	require.NoError(t, err)
	assert.Equal(t, SourceCustomPath, source)
	assert.NotNil(t, factory)
}

func TestMultiSegmentCustomPath(t *testing.T) {
	RegisterExecutor("acme.backends.CustomExecutor", debugFactory)

	factory, source, err := Resolve("acme.backends.CustomExecutor")
	require.NoError(t, err)
	assert.Equal(t, SourceCustomPath, source)

	executor, err := factory()
	require.NoError(t, err)
	assert.IsType(t, &debug.DebugExecutor{}, executor)
}

func TestUnresolvableNameReturnsResolutionError(t *testing.T) {
	_, err := Load("totally.bogus.path.NoSuchType")
	require.Error(t, err)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "totally.bogus.path.NoSuchType", resErr.Name)
	assert.Contains(t, err.Error(), "totally.bogus.path.NoSuchType")
	assert.ErrorIs(t, err, symtab.ErrSymbolNotFound)
}

func TestPluginIntegrationFailureIsSwallowed(t *testing.T) {
	restore := integratePlugins
	integratePlugins = func() error { return errors.New("plugin registry unavailable") }
	defer func() { integratePlugins = restore }()

	RegisterExecutor("fallback.SurvivorExecutor", debugFactory)

	_, source, err := Resolve("fallback.SurvivorExecutor")
	require.NoError(t, err)
	assert.Equal(t, SourceCustomPath, source)
}

func TestResolveDoesNotInstantiate(t *testing.T) {
	calls := 0
	RegisterExecutor("counting.probe.Executor", func() (types.Executor, error) {
		calls++
		return debug.New(), nil
	})

	_, _, err := Resolve("counting.probe.Executor")
	require.NoError(t, err)
	assert.Zero(t, calls)

	_, err = Load("counting.probe.Executor")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
