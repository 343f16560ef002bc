package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/projtree"
)

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <kind> <name>",
		Short: "Copy an entity to the clipboard of its kind",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[1]
			return a.mutate(cmd, args[0], func(m *projtree.Manager) (change, error) {
				if err := m.Copy(name); err != nil {
					return change{}, err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: copied %s\n", m.Kind(), name)
				return change{}, nil
			})
		},
	}
}

func newCutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cut <kind> <name>",
		Short: "Copy an entity to the clipboard and delete it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[1]
			return a.mutate(cmd, args[0], func(m *projtree.Manager) (change, error) {
				if err := m.Cut(name); err != nil {
					return change{}, err
				}
				return change{projtree.CommitTypeFeat, "cut " + name}, nil
			})
		},
	}
}

func newPasteCmd(a *app) *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "paste <kind>",
		Short: "Paste the clipboard entry of a kind under a fresh name",
		Long:  `Paste inserts the copied entity at position --at (default: the end), renamed if its name is taken.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, args[0], func(m *projtree.Manager) (change, error) {
				if !m.CanPaste() {
					return change{}, fmt.Errorf("clipboard is empty for %s", m.Kind())
				}
				index := at
				if !cmd.Flags().Changed("at") {
					index = len(m.Names())
				}
				name, ok := m.Paste(index)
				if !ok {
					return change{}, fmt.Errorf("position %d is out of range", index)
				}
				return change{projtree.CommitTypeFeat, "paste " + name}, nil
			})
		},
	}
	cmd.Flags().IntVar(&at, "at", 0, "Insert at this position")
	return cmd
}
