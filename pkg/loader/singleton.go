package loader

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/dukaforge/conductor/pkg/types"
)

// Settings is the configuration collaborator: the subset of *viper.Viper
// the loader consults.
type Settings interface {
	GetString(key string) string
}

// defaultExecutorKey is the configuration key naming the default executor
// ("executor" in the "core" section).
const defaultExecutorKey = "core.executor"

var (
	settingsMu sync.Mutex
	settings   Settings

	defaultOnce sync.Once
	defaultExec types.Executor
	defaultErr  error
)

// SetSettings installs the configuration source consulted by Default.
// It has no effect on an already created default executor.
func SetSettings(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

// currentSettings returns the installed settings, falling back to a
// defaults-only viper instance so Default works without bootstrap.
func currentSettings() Settings {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if settings == nil {
		v := viper.New()
		v.SetDefault(defaultExecutorKey, LocalExecutor)
		settings = v
	}
	return settings
}

// Default returns the process-wide executor, creating it on the first
// call from the configured name. Configuration is read exactly once per
// process; concurrent first callers observe a single resolution and the
// same instance. The active executor cannot change through this path.
func Default() (types.Executor, error) {
	defaultOnce.Do(func() {
		name := currentSettings().GetString(defaultExecutorKey)
		defaultExec, defaultErr = Load(name)
	})
	return defaultExec, defaultErr
}

// ResetDefault clears the cached default executor and installed settings
// so the next Default call re-reads configuration. NOT safe for
// concurrent use; intended for tests.
func ResetDefault() {
	settingsMu.Lock()
	settings = nil
	settingsMu.Unlock()

	defaultOnce = sync.Once{}
	defaultExec = nil
	defaultErr = nil
}
