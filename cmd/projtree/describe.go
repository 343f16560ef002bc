package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/aretw0/projtree"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the workspace state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(cmd.Context(), projtree.WithReadOnly(true))
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(map[string]any{
				"component": ws.ComponentType(),
				"state":     ws.State(),
			})
		},
	}
}
