package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/projtree/pkg/adapters/fs"
	"github.com/aretw0/projtree/pkg/core"
	"github.com/aretw0/projtree/pkg/project"
)

// ErrNoStore is returned by persistence operations of an in-memory workspace.
var ErrNoStore = errors.New("workspace has no store")

// Workspace binds a project to its store and clipboard.
type Workspace struct {
	Store     *fs.Store // nil for in-memory workspaces
	Clipboard core.Clipboard

	mu      sync.RWMutex
	project *project.Project
	view    core.View
	logger  *slog.Logger
}

// Project returns the current project. Reload replaces it.
func (w *Workspace) Project() *project.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.project
}

// Manager builds the collection manager of kind over the current project.
func (w *Workspace) Manager(kind core.Kind) (*core.Manager[*project.Entity], error) {
	var opts []core.ManagerOption
	if w.view != nil {
		opts = append(opts, core.WithView(w.view))
	}
	if w.logger != nil {
		opts = append(opts, core.WithManagerLogger(w.logger))
	}
	return w.Project().Manager(kind, w.Clipboard, opts...)
}

// Save persists the project, recording reason as the commit message.
func (w *Workspace) Save(ctx context.Context, reason string) error {
	if w.Store == nil {
		return ErrNoStore
	}
	if reason != "" {
		ctx = context.WithValue(ctx, core.ChangeReasonKey, AppendFooter(reason))
	}
	return w.Store.Save(ctx, w.Project())
}

// Reload replaces the project with the content of the project file.
func (w *Workspace) Reload(ctx context.Context) error {
	if w.Store == nil {
		return ErrNoStore
	}
	p, err := w.Store.Load(ctx, w.projectOptions()...)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.project = p
	w.mu.Unlock()
	return nil
}

// Watch reports external edits of the project file.
func (w *Workspace) Watch(ctx context.Context) (<-chan core.Event, error) {
	if w.Store == nil {
		return nil, ErrNoStore
	}
	return w.Store.Watch(ctx)
}

func (w *Workspace) projectOptions() []project.Option {
	if w.logger == nil {
		return nil
	}
	return []project.Option{project.WithLogger(w.logger)}
}

// WorkspaceState exposes internal state for observability.
type WorkspaceState struct {
	Project any `json:"project"`
	Store   any `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (w *Workspace) State() any {
	s := WorkspaceState{Project: w.Project().State()}
	if w.Store != nil {
		s.Store = w.Store.State()
	}
	return s
}

// ComponentType implements introspection.Component.
func (w *Workspace) ComponentType() string {
	return "workspace"
}

var _ introspection.Introspectable = (*Workspace)(nil)
var _ introspection.Component = (*Workspace)(nil)

func (w *Workspace) String() string {
	if w.Store == nil {
		return fmt.Sprintf("workspace(%s, memory)", w.Project().Name())
	}
	return fmt.Sprintf("workspace(%s, %s)", w.Project().Name(), w.Store.FilePath())
}
