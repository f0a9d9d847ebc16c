// Package symtab is the dynamic-loading facility for execution backends.
// It maps dotted locations ("conductor.executors.local.LocalExecutor") to
// factory functions. Core executors register themselves at init time;
// plugin-contributed executors are registered when the plugin manager
// integrates them. Every load failure surfaces as ErrSymbolNotFound so
// callers can treat "module absent" and "attribute absent" uniformly.
// See docs/ARCHITECTURE.md § Symbol Table.
package symtab

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dukaforge/conductor/pkg/types"
)

// Factory constructs an executor with no arguments.
type Factory func() (types.Executor, error)

// CompositeFactory constructs a composite executor from two already
// instantiated sub-executors, in a fixed (primary, secondary) order.
type CompositeFactory func(primary, secondary types.Executor) (types.Executor, error)

// ErrSymbolNotFound is returned by Load and LoadComposite when the dotted
// location does not name a registered factory.
var ErrSymbolNotFound = errors.New("symbol not found")

var (
	mu         sync.RWMutex
	factories  = make(map[string]Factory)
	composites = make(map[string]CompositeFactory)
)

// Register makes a factory loadable under the given dotted location.
// Registering a nil factory or reusing a location panics: both are
// init-time programming errors, not runtime conditions.
func Register(location string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	if factory == nil {
		panic("symtab: Register factory is nil")
	}
	if _, dup := factories[location]; dup {
		panic(fmt.Sprintf("symtab: Register called twice for %q", location))
	}
	factories[location] = factory
}

// RegisterComposite makes a two-executor constructor loadable under the
// given dotted location. Same panic rules as Register.
func RegisterComposite(location string, factory CompositeFactory) {
	mu.Lock()
	defer mu.Unlock()
	if factory == nil {
		panic("symtab: RegisterComposite factory is nil")
	}
	if _, dup := composites[location]; dup {
		panic(fmt.Sprintf("symtab: RegisterComposite called twice for %q", location))
	}
	composites[location] = factory
}

// Registered reports whether a factory exists at the given location.
func Registered(location string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[location]
	return ok
}

// Load resolves a dotted location to its factory.
func Load(location string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	factory, ok := factories[location]
	if !ok {
		return nil, fmt.Errorf("load %q: %w", location, ErrSymbolNotFound)
	}
	return factory, nil
}

// LoadComposite resolves a dotted location to its composite factory.
func LoadComposite(location string) (CompositeFactory, error) {
	mu.RLock()
	defer mu.RUnlock()
	factory, ok := composites[location]
	if !ok {
		return nil, fmt.Errorf("load composite %q: %w", location, ErrSymbolNotFound)
	}
	return factory, nil
}
