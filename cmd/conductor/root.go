package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dukaforge/conductor/internal/paths"
	"github.com/dukaforge/conductor/pkg/loader"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
}

var flags rootFlags

// NewRootCmd creates the top-level "conductor" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "conductor",
		Short: "A task orchestrator with interchangeable execution backends",
		Long: "Conductor runs tasks on a configurable execution backend.\n" +
			"The backend is selected by the \"core.executor\" configuration key\n" +
			"and may be a built-in executor, a plugin-contributed one, or any\n" +
			"registered dotted location.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "",
		"configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "",
		"data directory for the queue broker (default: platform data dir)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newExecutorsCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newRunCmd())

	return root
}

// initSettings loads config.yaml and installs it as the loader's
// configuration source. Called by subcommands that resolve executors.
// Returns the loaded settings for CLI-side keys.
func initSettings() (*viper.Viper, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, err
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	loader.SetSettings(v)
	return v, nil
}
