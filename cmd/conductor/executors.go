package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dukaforge/conductor/pkg/loader"
)

func newExecutorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "executors",
		Short: "List the built-in execution backends",
		Long:  "List every logical executor name and the dotted location it loads from.",
		Run: func(cmd *cobra.Command, args []string) {
			registry := loader.Registry()
			names := make([]string, 0, len(registry))
			for name := range registry {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", name, registry[name])
			}
		},
	}
}
