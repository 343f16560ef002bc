package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/projtree"
)

func newAddCmd(a *app) *cobra.Command {
	var after int

	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Add an entity with a generated name",
		Long:  `Add inserts a new entity after position --after (-1 for the top; default: the end).`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, args[0], func(m *projtree.Manager) (change, error) {
				index := after
				if !cmd.Flags().Changed("after") {
					index = len(m.Names()) - 1
				}
				name, ok := m.Add(index)
				if !ok {
					return change{}, fmt.Errorf("position %d is out of range", index)
				}
				return change{projtree.CommitTypeFeat, "add " + name}, nil
			})
		},
	}
	cmd.Flags().IntVar(&after, "after", -1, "Insert after this position")
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <kind> <old> <new>",
		Short: "Rename an entity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, newName := args[1], args[2]
			return a.mutate(cmd, args[0], func(m *projtree.Manager) (change, error) {
				if err := m.Rename(oldName, newName); err != nil {
					return change{}, err
				}
				if oldName == newName {
					return change{}, nil
				}
				return change{projtree.CommitTypeRefactor, fmt.Sprintf("rename %s to %s", oldName, newName)}, nil
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <name>",
		Short: "Delete an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[1]
			return a.mutate(cmd, args[0], func(m *projtree.Manager) (change, error) {
				if !m.Delete(name) {
					return change{}, fmt.Errorf("%w: %q", projtree.ErrNotFound, name)
				}
				return change{projtree.CommitTypeChore, "delete " + name}, nil
			})
		},
	}
}

func newMoveCmd(a *app, up bool) *cobra.Command {
	use, short, verb := "move-down", "Move an entity one position down", "move down"
	if up {
		use, short, verb = "move-up", "Move an entity one position up", "move up"
	}

	return &cobra.Command{
		Use:   use + " <kind> <name>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[1]
			return a.mutate(cmd, args[0], func(m *projtree.Manager) (change, error) {
				index := m.IndexOf(name)
				if index < 0 {
					return change{}, fmt.Errorf("%w: %q", projtree.ErrNotFound, name)
				}
				moved := m.MoveDown(index)
				if up {
					moved = m.MoveUp(index)
				}
				if !moved {
					return change{}, fmt.Errorf("cannot %s %q from position %d", verb, name, index)
				}
				return change{projtree.CommitTypeRefactor, verb + " " + name}, nil
			})
		},
	}
}
