// Package plugins manages plugin-contributed execution backends. Plugins
// declare executors as (plugin name, type name, factory) descriptors; the
// manager integrates them into the symbol table under the core executors
// namespace so the loader can resolve "{plugin}.{Type}" names.
// See docs/ARCHITECTURE.md § Plugin Manager.
package plugins

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dukaforge/conductor/internal/symtab"
)

// ExecutorNamespace is the dotted prefix under which plugin executors are
// registered. It matches the namespace of the core executors so plugin
// names resolve through the same symbol table.
const ExecutorNamespace = "conductor.executors"

// ExecutorPlugin describes one plugin-contributed executor.
type ExecutorPlugin struct {
	// PluginName is the plugin's registered name. Must not contain ".".
	PluginName string
	// TypeName is the executor type exported by the plugin. Must not
	// contain ".".
	TypeName string
	// Factory constructs the executor.
	Factory symtab.Factory
}

// location returns the dotted location the plugin executor registers under.
func (p ExecutorPlugin) location() string {
	return ExecutorNamespace + "." + p.PluginName + "." + p.TypeName
}

func (p ExecutorPlugin) validate() error {
	if p.PluginName == "" || strings.Contains(p.PluginName, ".") {
		return fmt.Errorf("invalid plugin name %q", p.PluginName)
	}
	if p.TypeName == "" || strings.Contains(p.TypeName, ".") {
		return fmt.Errorf("invalid executor type name %q", p.TypeName)
	}
	if p.Factory == nil {
		return fmt.Errorf("plugin %s.%s has no factory", p.PluginName, p.TypeName)
	}
	return nil
}

// Manager holds pending plugin executors and integrates them on demand.
type Manager struct {
	mu      sync.Mutex
	pending []ExecutorPlugin
}

// NewManager returns an empty plugin manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add queues a plugin executor for integration. Descriptors added after an
// integration pass are picked up by the next one.
func (m *Manager) Add(p ExecutorPlugin) error {
	if err := p.validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, p)
	return nil
}

// IntegrateExecutorPlugins registers every pending plugin executor in the
// symbol table. Idempotent: each descriptor is integrated at most once,
// and repeat calls with nothing pending are no-ops. A location collision
// is reported as an error and the descriptor is dropped.
func (m *Manager) IntegrateExecutorPlugins() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for _, p := range m.pending {
		if symtab.Registered(p.location()) {
			if firstErr == nil {
				firstErr = fmt.Errorf("plugin executor %s already registered", p.location())
			}
			continue
		}
		symtab.Register(p.location(), p.Factory)
	}
	m.pending = nil
	return firstErr
}

// defaultManager serves the package-level convenience API used by the
// loader and by process bootstrap code.
var defaultManager = NewManager()

// Add queues a plugin executor on the default manager.
func Add(p ExecutorPlugin) error {
	return defaultManager.Add(p)
}

// IntegrateExecutorPlugins integrates pending plugins on the default manager.
func IntegrateExecutorPlugins() error {
	return defaultManager.IntegrateExecutorPlugins()
}
