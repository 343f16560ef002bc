package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/projtree"
	"github.com/aretw0/projtree/internal/config"
)

// app carries the state shared by every subcommand.
type app struct {
	dir     string
	verbose bool

	root   string
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "projtree",
		Short: "Manage the scenes, external events, external layouts and extensions of a project",
		Long: `projtree edits the named-entity collections of a project file.
Names stay unique within each collection; copies are pasted under a fresh name
and every change is saved (and committed when the project is under git).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.dir, "dir", "C", "", "Project directory (default: nearest project root)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newInitCmd(a),
		newListCmd(a),
		newKindsCmd(a),
		newAddCmd(a),
		newRenameCmd(a),
		newDeleteCmd(a),
		newCopyCmd(a),
		newCutCmd(a),
		newPasteCmd(a),
		newMoveCmd(a, true),
		newMoveCmd(a, false),
		newDescribeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup resolves the project root, loads the config and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	root := a.dir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		root, err = projtree.FindRoot(wd)
		if err != nil {
			root = wd
		}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	a.root = abs

	cfg, err := config.Load(filepath.Join(a.root, config.FileName))
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Log.Logger(cmd.ErrOrStderr(), a.verbose)
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) options(extra ...projtree.Option) []projtree.Option {
	opts := []projtree.Option{
		projtree.WithLogger(a.logger),
		projtree.WithProjectFile(a.cfg.Project.File),
		projtree.WithSystemDir(a.cfg.Project.SystemDir),
		projtree.WithStrict(a.cfg.Project.Strict),
	}
	if enabled, ok := a.cfg.Versioning(); ok {
		opts = append(opts, projtree.WithVersioning(enabled))
	}
	return append(opts, extra...)
}

func (a *app) open(ctx context.Context, extra ...projtree.Option) (*projtree.Workspace, error) {
	ws, err := projtree.Open(ctx, a.root, a.options(extra...)...)
	if errors.Is(err, projtree.ErrNotFound) {
		return nil, fmt.Errorf("no project in %s (run 'projtree init'): %w", a.root, err)
	}
	return ws, err
}

// change is the outcome of a mutating command.
type change struct {
	ctype   string
	subject string
}

// mutate opens the workspace, runs fn on the manager of kindArg and saves.
func (a *app) mutate(cmd *cobra.Command, kindArg string, fn func(m *projtree.Manager) (change, error)) error {
	kind, err := projtree.ParseKind(kindArg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	ws, err := a.open(ctx)
	if err != nil {
		return err
	}
	m, err := ws.Manager(kind)
	if err != nil {
		return err
	}

	c, err := fn(m)
	if err != nil {
		return err
	}
	if c.subject == "" {
		return nil
	}
	if err := ws.Save(ctx, projtree.ChangeReason(c.ctype, kind, c.subject)); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", kind, c.subject)
	return nil
}
