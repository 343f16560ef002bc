package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/projtree/pkg/core"
)

// DebounceInterval groups the burst of events produced by a single save.
const DebounceInterval = 50 * time.Millisecond

// debouncer runs the last scheduled callback once the interval elapses quietly.
type debouncer struct {
	mu      sync.Mutex
	wait    time.Duration
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{wait: wait}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.wait, func() {
		defer d.wg.Done()
		fn()
	})
}

// stop cancels the pending callback and waits for a running one.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Watch reports external edits of the project file as MODIFY events on the
// returned channel until ctx is done. Writes made by this store are not reported.
// The channel is closed when the watcher stops.
func (s *Store) Watch(ctx context.Context) (<-chan core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	events := make(chan core.Event, 16)
	w := newWatchWorker(s, events)

	s.mu.Lock()
	if s.watcherActive {
		s.mu.Unlock()
		return nil, fmt.Errorf("watcher already started")
	}
	s.watcherActive = true
	s.watcher = w
	s.mu.Unlock()

	if err := w.Start(ctx); err != nil {
		s.setWatcherActive(false)
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(store *Store, events chan core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: atomic renames replace the file inode.
	if err := watcher.Add(w.store.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.store.Path, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(DebounceInterval)
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.store.config.Logger

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger != nil && logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			}
		}
		if err != nil {
			w.store.reportError(err)
		}
		// Unblocks a pending send when the loop exits on its own.
		w.cancel()
		w.debouncer.stop()
		_ = w.watcher.Close()
		w.store.setWatcherActive(false)
		close(w.events)
	}()

	target := filepath.Clean(w.store.FilePath())
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if logger != nil {
				logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			}
			w.debouncer.trigger(func() { w.checkExternalEdit(ctx) })

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.store.reportError(wErr)
		}
	}
}

// checkExternalEdit runs after a quiet period and emits when the file changed
// behind the store's back.
func (w *watchWorker) checkExternalEdit(ctx context.Context) {
	s := w.store
	data, err := os.ReadFile(s.FilePath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.reportError(fmt.Errorf("failed to read %s: %w", s.config.ProjectFile, err))
		}
		return
	}
	if s.ownWrite(data) {
		return
	}
	s.rememberDigest(data)

	select {
	case w.events <- core.Event{
		Type:      core.EventModify,
		Name:      s.config.ProjectFile,
		Timestamp: time.Now().Unix(),
	}:
	case <-ctx.Done():
	}
}

func (s *Store) reportError(err error) {
	if s.config.Logger != nil {
		s.config.Logger.Error("watcher error", "error", err)
	}
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
