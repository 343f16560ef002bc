package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/projtree"
	"github.com/aretw0/projtree/pkg/adapters/fs"
	"github.com/aretw0/projtree/pkg/core"
)

type listedKind struct {
	Kind  string      `json:"kind"`
	Label string      `json:"label"`
	Items []core.Item `json:"items"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		listJSON bool
		filter   string
	)

	cmd := &cobra.Command{
		Use:   "list [kind]",
		Short: "List the entities of one kind, or of every kind",
		Long: `List prints each entity with its position. --filter keeps names containing
the text (case-insensitive) or, when it holds *, ?, [ or {, matching the glob.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := core.Kinds()
			if len(args) == 1 {
				k, err := projtree.ParseKind(args[0])
				if err != nil {
					return err
				}
				kinds = []core.Kind{k}
			}

			ws, err := a.open(cmd.Context(), projtree.WithReadOnly(true))
			if err != nil {
				return err
			}
			// Reading the file clipboard keeps CanPaste accurate without writing.
			ws.Clipboard = fs.NewClipboardStore(ws.Store.ClipboardDir(), a.logger)

			out := make([]listedKind, 0, len(kinds))
			for _, k := range kinds {
				m, err := ws.Manager(k)
				if err != nil {
					return err
				}
				out = append(out, listedKind{Kind: k.Tag(), Label: k.Label(), Items: m.Items(filter)})
			}

			w := cmd.OutOrStdout()
			if listJSON {
				encoder := json.NewEncoder(w)
				encoder.SetIndent("", "  ")
				return encoder.Encode(out)
			}
			for _, lk := range out {
				if len(kinds) > 1 {
					fmt.Fprintf(w, "%s:\n", lk.Label)
				}
				for _, item := range lk.Items {
					fmt.Fprintf(w, "%3d  %s\n", item.Index, item.Name)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&filter, "filter", "", "Filter names by text or glob")
	return cmd
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the entity kinds",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, k := range core.Kinds() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s (new: %s)\n", k.Tag(), k.Label(), k.BaseName())
			}
		},
	}
}
