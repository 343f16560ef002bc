package projtree

import (
	"context"
	"log/slog"

	"github.com/aretw0/projtree/internal/platform"
	"github.com/aretw0/projtree/pkg/core"
	"github.com/aretw0/projtree/pkg/project"
	"github.com/aretw0/projtree/pkg/typed"
)

// --- Types ---

// Kind identifies a named-entity collection.
type Kind = core.Kind

const (
	KindScene          = core.KindScene
	KindExternalEvents = core.KindExternalEvents
	KindExternalLayout = core.KindExternalLayout
	KindExtension      = core.KindExtension
)

// Workspace binds a project to its store and clipboard.
type Workspace = platform.Workspace

// Project owns one ordered collection per kind.
type Project = project.Project

// Entity is a named entry of a project collection.
type Entity = project.Entity

// Manager runs the collection operations (add, rename, copy, paste...) of one kind.
type Manager = core.Manager[*project.Entity]

// Payload is the opaque content of an entity.
type Payload = core.Payload

// Clipboard holds at most one copied entity per kind.
type Clipboard = core.Clipboard

// View is notified after each structural change.
type View = core.View

// Event describes a change in a project.
type Event = core.Event

// TypedCollection gives typed access to the entities of one kind.
type TypedCollection[T any] = typed.Collection[T, *project.Entity]

// --- Errors ---

var (
	ErrNameCollision = core.ErrNameCollision
	ErrNotFound      = core.ErrNotFound
	ErrInvalidName   = core.ErrInvalidName
	ErrUnknownKind   = core.ErrUnknownKind
	ErrReadOnly      = core.ErrReadOnly
	ErrProjectExists = platform.ErrProjectExists
)

// --- Configuration ---

// Option configures a workspace.
type Option = platform.Option

// WithAutoInit creates the directory (and git repository) on open.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning enables or disables git versioning.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithMustExist requires the project directory to exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSystemDir sets the hidden directory name (e.g. ".projtree").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithProjectFile sets the project file name (e.g. "game.json").
func WithProjectFile(name string) Option {
	return platform.WithProjectFile(name)
}

// WithStrict keeps numbers as json.Number.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithReadOnly rejects saves.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithSerializer registers an fs.Serializer for a file extension.
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// WithWatcherErrorHandler receives watch loop errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithClipboard replaces the default clipboard.
func WithClipboard(c Clipboard) Option {
	return platform.WithClipboard(c)
}

// WithView sets the view notified by the managers.
func WithView(v View) Option {
	return platform.WithView(v)
}

// --- Factory ---

// New creates an in-memory workspace.
func New(name string, opts ...Option) *Workspace {
	return platform.New(name, opts...)
}

// Init creates a project in dir.
func Init(ctx context.Context, dir, name string, opts ...Option) (*Workspace, error) {
	return platform.Init(ctx, dir, name, opts...)
}

// Open loads the project in dir.
func Open(ctx context.Context, dir string, opts ...Option) (*Workspace, error) {
	return platform.Open(ctx, dir, opts...)
}

// NewTypedCollection gives typed access to the entities of kind in p.
func NewTypedCollection[T any](p *Project, kind Kind) (*TypedCollection[T], error) {
	c, err := p.Collection(kind)
	if err != nil {
		return nil, err
	}
	return typed.NewCollection[T, *project.Entity](c), nil
}

// ParseKind resolves a kind tag or alias.
func ParseKind(s string) (Kind, error) {
	return core.ParseKind(s)
}

// NewMemoryClipboard creates a process-lifetime clipboard, shareable between workspaces.
func NewMemoryClipboard() *core.MemoryClipboard {
	return core.NewMemoryClipboard()
}

// FindRoot looks upwards for a project root.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// --- Semantic Commits ---

const (
	CommitTypeFeat     = platform.CommitTypeFeat
	CommitTypeFix      = platform.CommitTypeFix
	CommitTypeRefactor = platform.CommitTypeRefactor
	CommitTypeChore    = platform.CommitTypeChore
)

// FormatChangeReason builds a Conventional Commit message.
func FormatChangeReason(ctype, scope, subject, body string) string {
	return platform.FormatCommitMessage(ctype, scope, subject, body)
}

// ChangeReason builds a commit message scoped by the kind tag.
func ChangeReason(ctype string, kind Kind, subject string) string {
	return platform.ChangeReason(ctype, kind, subject)
}

// AppendFooter appends the projtree footer to a message.
func AppendFooter(msg string) string {
	return platform.AppendFooter(msg)
}
