package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukaforge/conductor/pkg/loader"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME",
		Short: "Show how an executor name would be resolved",
		Long: "Resolve an executor name without instantiating it and report the\n" +
			"strategy that found it (core, plugin, or custom path).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			// The hybrid executor never goes through the generic
			// resolver; report it directly.
			if name == loader.QueueClusterExecutor {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: composite of %s and %s\n",
					name, loader.QueueExecutor, loader.ClusterExecutor)
				return nil
			}

			_, source, err := loader.Resolve(name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: resolved via %s\n", name, source)
			if location, ok := loader.Registry()[name]; ok {
				fmt.Fprintf(out, "location: %s\n", location)
			}
			return nil
		},
	}
}
