package platform

import (
	"log/slog"

	"github.com/aretw0/projtree/pkg/core"
)

// options holds the internal configuration of a workspace.
type options struct {
	logger      *slog.Logger
	clipboard   core.Clipboard
	view        core.View
	config      map[string]any
	serializers map[string]any
}

// Option configures a workspace.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		config:      make(map[string]any),
		serializers: make(map[string]any),
	}
}

// WithSerializer registers a serializer for a project file extension.
// s must implement fs.Serializer; this is checked when the workspace opens.
func WithSerializer(ext string, s any) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithAutoInit creates the directory (and the git repository when versioning) on open.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithVersioning enables or disables git versioning. When unset it is
// detected from the presence of a .git directory.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["gitless"] = !enabled
	}
}

// WithMustExist requires the project directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger shared by the store, the project and the managers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSystemDir sets the hidden directory name. Defaults to ".projtree".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithProjectFile sets the project file name. Its extension selects the format.
func WithProjectFile(name string) Option {
	return func(o *options) {
		o.config["project_file"] = name
	}
}

// WithStrict parses numbers as json.Number to preserve the precision of large integers.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithWatcherErrorHandler receives errors raised by the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithReadOnly rejects saves with core.ErrReadOnly and skips initialization.
// The clipboard is kept in memory.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithClipboard replaces the default clipboard (files under the system dir,
// or memory for in-memory and read-only workspaces).
func WithClipboard(c core.Clipboard) Option {
	return func(o *options) {
		o.clipboard = c
	}
}

// WithView sets the view notified by every manager of the workspace.
func WithView(v core.View) Option {
	return func(o *options) {
		o.view = v
	}
}
