package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/projtree"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [name]",
		Short: "Create an empty project",
		Long:  `Create an empty project file in the project directory. Unless versioning is off, the directory becomes a git repository.`,
		Args:  cobra.MaximumNArgs(1),
		// The target directory may not exist yet, so skip root discovery.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.dir == "" {
				a.dir = "."
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := filepath.Base(a.root)
			if len(args) == 1 {
				name = args[0]
			}
			ws, err := projtree.Init(cmd.Context(), a.root, name, a.options()...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized project %q in %s\n", name, ws.Store.FilePath())
			return nil
		},
	}
}
