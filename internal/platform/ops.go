package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/projtree/pkg/adapters/fs"
	"github.com/aretw0/projtree/pkg/core"
	"github.com/aretw0/projtree/pkg/git"
	"github.com/aretw0/projtree/pkg/project"
)

// ErrProjectExists is returned by Init when the project file is already present.
var ErrProjectExists = errors.New("project already exists")

// New creates an in-memory workspace with an empty project.
func New(name string, opts ...Option) *Workspace {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	w := newWorkspace(nil, o)
	w.project = project.New(name, w.projectOptions()...)
	return w
}

// Init creates a project called name in dir. The directory is created and,
// unless versioning is disabled, a git repository is initialized.
func Init(ctx context.Context, dir, name string, opts ...Option) (*Workspace, error) {
	opts = append([]Option{WithAutoInit(true)}, opts...)
	store, o, err := openStore(ctx, dir, opts...)
	if err != nil {
		return nil, err
	}
	if store.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, store.FilePath())
	}

	w := newWorkspace(store, o)
	w.project = project.New(name, w.projectOptions()...)
	if err := w.Save(ctx, FormatCommitMessage(CommitTypeChore, "", "init project "+name, "")); err != nil {
		return nil, err
	}
	return w, nil
}

// Open loads the project stored in dir.
func Open(ctx context.Context, dir string, opts ...Option) (*Workspace, error) {
	store, o, err := openStore(ctx, dir, opts...)
	if err != nil {
		return nil, err
	}
	w := newWorkspace(store, o)
	if err := w.Reload(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

func newWorkspace(store *fs.Store, o *options) *Workspace {
	w := &Workspace{
		Store:     store,
		Clipboard: o.clipboard,
		view:      o.view,
		logger:    o.logger,
	}
	if w.Clipboard == nil {
		readOnly, _ := o.config["read_only"].(bool)
		if store != nil && !readOnly {
			w.Clipboard = fs.NewClipboardStore(store.ClipboardDir(), o.logger)
		} else {
			w.Clipboard = core.NewMemoryClipboard()
		}
	}
	return w
}

// openStore resolves the options into a filesystem store and initializes it.
func openStore(ctx context.Context, dir string, opts ...Option) (*fs.Store, *options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	path, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, err
	}

	autoInit, _ := o.config["auto_init"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	strict, _ := o.config["strict"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	projectFile, _ := o.config["project_file"].(string)
	systemDir, _ := o.config["system_dir"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	gitless, explicit := o.config["gitless"].(bool)
	if !explicit {
		gitless = detectGitless(path, autoInit)
		if gitless && o.logger != nil {
			o.logger.Debug("auto-detected gitless mode", "path", path)
		}
	}

	store := fs.NewStore(fs.Config{
		Path:         path,
		ProjectFile:  projectFile,
		AutoInit:     autoInit,
		Gitless:      gitless,
		MustExist:    mustExist || !autoInit,
		ReadOnly:     readOnly,
		Strict:       strict,
		SystemDir:    systemDir,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})

	for ext, s := range o.serializers {
		serializer, ok := s.(fs.Serializer)
		if !ok {
			return nil, nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
		store.RegisterSerializer(ext, serializer)
	}

	if err := store.Initialize(ctx); err != nil {
		return nil, nil, err
	}
	return store, o, nil
}

// detectGitless versions a directory already under git, and a fresh one
// created with auto-init when git is available.
func detectGitless(path string, autoInit bool) bool {
	if git.IsRepo(path) {
		return false
	}
	if !autoInit || !git.IsInstalled() {
		return true
	}
	// An existing unversioned project stays unversioned.
	if _, err := os.Stat(path); err == nil {
		entries, _ := os.ReadDir(path)
		return len(entries) > 0
	}
	return false
}
