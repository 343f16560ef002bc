package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/projtree"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of projtree",
		// No project needed.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "projtree version %s\n", projtree.Version)
		},
	}
}
