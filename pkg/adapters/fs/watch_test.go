package fs

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/projtree/pkg/core"
)

func TestStore_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore(Config{Path: t.TempDir(), Gitless: true})
	p := newTestProject(t)
	require.NoError(t, store.Save(ctx, p))

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	_, err = store.Watch(ctx)
	assert.Error(t, err, "single watcher per store")

	state := store.State().(StoreState)
	assert.True(t, state.WatcherActive)
	require.NotNil(t, state.Watcher)
	assert.Equal(t, worker.StatusRunning, state.Watcher.Status)
	assert.Equal(t, string(worker.TypeGoroutine), state.Watcher.Metadata[worker.MetadataType])

	// Own writes are suppressed.
	scenes, _ := p.Collection(core.KindScene)
	scenes.InsertNew("Credits", 2)
	require.NoError(t, store.Save(ctx, p))

	select {
	case e := <-events:
		t.Fatalf("unexpected event for own write: %v", e)
	case <-time.After(4 * DebounceInterval):
	}

	// External edits are reported once.
	require.NoError(t, os.WriteFile(store.FilePath(), []byte("name: Edited\n"), 0644))

	select {
	case e := <-events:
		assert.Equal(t, core.EventModify, e.Type)
		assert.Equal(t, "project.yaml", e.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for external edit event")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-events
		return !open
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return !store.State().(StoreState).WatcherActive
	}, time.Second, 10*time.Millisecond)
}

func TestWatchWorker_Stop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewStore(Config{Path: t.TempDir(), Gitless: true})
	require.NoError(t, store.Save(ctx, newTestProject(t)))

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	require.NoError(t, store.watcher.Stop(stopCtx))

	assert.Eventually(t, func() bool {
		_, open := <-events
		return !open
	}, 2*time.Second, 10*time.Millisecond)
	waitForWatcher(t, store, false)

	// A stopped watcher can be replaced.
	_, err = store.Watch(ctx)
	assert.NoError(t, err)
}

func TestWatchWorker_ClosedWatcherDoesNotHang(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reported atomic.Int32
	store := NewStore(Config{
		Path:         t.TempDir(),
		Gitless:      true,
		ErrorHandler: func(error) { reported.Add(1) },
	})
	require.NoError(t, store.Save(ctx, newTestProject(t)))

	// Nobody reads: the debounced send blocks.
	w := newWatchWorker(store, make(chan core.Event))
	require.NoError(t, w.Start(ctx))
	waitForWatcher(t, store, true)

	require.NoError(t, os.WriteFile(store.FilePath(), []byte("name: Edited\n"), 0644))
	time.Sleep(4 * DebounceInterval)

	// The loop exits on its own while ctx is still live.
	_ = w.watcher.Close()
	waitForWatcher(t, store, false)
	assert.NotZero(t, reported.Load(), "unexpected close is reported")
}

func waitForWatcher(t *testing.T, store *Store, expected bool) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		if store.State().(StoreState).WatcherActive == expected {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for watcher state = %v", expected)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDebouncer(t *testing.T) {
	var calls atomic.Int32
	d := newDebouncer(20 * time.Millisecond)

	for i := 0; i < 5; i++ {
		d.trigger(func() { calls.Add(1) })
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.trigger(func() { calls.Add(1) })
	d.stop()
	d.trigger(func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "stop cancels pending and later callbacks")
}
