package fs

import (
	"sort"
	"time"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle/pkg/core/worker"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string        `json:"path"`
	ProjectFile   string        `json:"project_file"`
	SystemDir     string        `json:"system_dir"`
	Gitless       bool          `json:"gitless"`
	ReadOnly      bool          `json:"read_only"`
	Strict        bool          `json:"strict"`
	Serializers   []string      `json:"serializers"`
	WatcherActive bool          `json:"watcher_active"`
	Watcher       *worker.State `json:"watcher,omitempty"`
	LastSaved     *time.Time    `json:"last_saved,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	serializers := make([]string, 0, len(s.serializers))
	for ext := range s.serializers {
		serializers = append(serializers, ext)
	}
	sort.Strings(serializers)

	state := StoreState{
		Path:          s.Path,
		ProjectFile:   s.config.ProjectFile,
		SystemDir:     s.config.SystemDir,
		Gitless:       s.config.Gitless,
		ReadOnly:      s.config.ReadOnly,
		Strict:        s.config.Strict,
		Serializers:   serializers,
		WatcherActive: s.watcherActive,
		LastSaved:     s.lastSaved,
	}
	w := s.watcher
	s.mu.RUnlock()

	// The worker guards its own state.
	if w != nil {
		ws := w.State()
		state.Watcher = &ws
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
