package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the CLI version string.
const version = "v0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "conductor %s\n", version)
		},
	}
}
