package core

import (
	"fmt"
	"log/slog"
	"sync"
)

// Manager provides add/rename/delete/copy/cut/paste/reorder over one
// collection of a Project, independent of what the entities represent.
//
// Manager is driven by a single host view; it is not meant to be used
// concurrently from several goroutines.
type Manager[E any] struct {
	kind      Kind
	coll      Collection[E]
	clipboard Clipboard
	view      View
	logger    *slog.Logger
	baseName  string

	mu       sync.Mutex
	renaming string
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	view     View
	logger   *slog.Logger
	baseName string
}

// WithView sets the host view notified after mutations.
func WithView(v View) ManagerOption {
	return func(o *managerOptions) {
		o.view = v
	}
}

// WithManagerLogger sets the logger for the manager.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(o *managerOptions) {
		o.logger = logger
	}
}

// WithBaseName overrides the kind's default seed for Add.
func WithBaseName(name string) ManagerOption {
	return func(o *managerOptions) {
		o.baseName = name
	}
}

// NewManager creates a manager for kind over coll.
// A nil clipboard gives the manager a private in-memory one.
func NewManager[E any](kind Kind, coll Collection[E], clipboard Clipboard, opts ...ManagerOption) *Manager[E] {
	o := &managerOptions{view: NopView{}, baseName: kind.BaseName()}
	for _, opt := range opts {
		opt(o)
	}
	if o.view == nil {
		o.view = NopView{}
	}
	if clipboard == nil {
		clipboard = NewMemoryClipboard()
	}

	return &Manager[E]{
		kind:      kind,
		coll:      coll,
		clipboard: clipboard,
		view:      o.view,
		logger:    o.logger,
		baseName:  o.baseName,
	}
}

// Kind returns the kind this manager operates on.
func (m *Manager[E]) Kind() Kind {
	return m.kind
}

// Names returns the entity names in collection order.
func (m *Manager[E]) Names() []string {
	n := m.coll.Count()
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, m.coll.Name(m.coll.At(i)))
	}
	return names
}

// IndexOf returns the position of name, or -1.
func (m *Manager[E]) IndexOf(name string) int {
	_, idx, ok := m.find(name)
	if !ok {
		return -1
	}
	return idx
}

// Items returns one row per entity whose name matches filter (see MatchName).
// Indexes are positions in the full collection.
func (m *Manager[E]) Items(filter string) []Item {
	renaming := m.Renaming()
	canPaste := m.CanPaste()

	n := m.coll.Count()
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		name := m.coll.Name(m.coll.At(i))
		if !MatchName(filter, name) {
			continue
		}
		items = append(items, Item{
			Index:       i,
			Name:        name,
			Renaming:    renaming != "" && renaming == name,
			CanMoveUp:   i != 0,
			CanMoveDown: i != n-1,
			CanPaste:    canPaste,
		})
	}
	return items
}

// Add inserts a new empty entity right after index, named from the kind's
// base name. index -1 inserts at the front. Out-of-range indexes are ignored.
func (m *Manager[E]) Add(index int) (string, bool) {
	if index < -1 || index >= m.coll.Count() {
		m.debug("add ignored", "index", index)
		return "", false
	}

	name := NewName(m.baseName, m.coll.HasNamed)
	m.coll.InsertNew(name, index+1)

	m.debug("entity added", "name", name, "index", index+1)
	m.view.Refresh(m.kind)
	return name, true
}

// Rename renames oldName to newName. It fails with ErrNameCollision when a
// sibling already uses newName; names are never disambiguated here.
// Any rename in progress for oldName ends, whatever the outcome.
func (m *Manager[E]) Rename(oldName, newName string) error {
	m.endRename(oldName)

	if newName == "" {
		return fmt.Errorf("%w: empty name for %s %q", ErrInvalidName, m.kind, oldName)
	}

	e, _, ok := m.find(oldName)
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrNotFound, m.kind, oldName)
	}
	if oldName == newName {
		return nil
	}
	if m.coll.HasNamed(newName) {
		if m.logger != nil {
			m.logger.Warn("rename rejected", "kind", m.kind, "from", oldName, "to", newName)
		}
		return fmt.Errorf("%w: %s %q", ErrNameCollision, m.kind, newName)
	}

	m.coll.SetName(e, newName)
	m.debug("entity renamed", "from", oldName, "to", newName)
	m.view.Refresh(m.kind)
	return nil
}

// Delete removes name from the collection and cancels a rename in progress on it.
func (m *Manager[E]) Delete(name string) bool {
	e, _, ok := m.find(name)
	if !ok {
		return false
	}

	m.endRename(name)
	m.coll.Remove(e)

	m.debug("entity deleted", "name", name)
	m.view.Refresh(m.kind)
	return true
}

// Copy stores the entity payload and name in the kind's clipboard slot,
// replacing whatever was there.
func (m *Manager[E]) Copy(name string) error {
	e, _, ok := m.find(name)
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrNotFound, m.kind, name)
	}

	entry := NewClipEntry(m.kind, m.coll.Name(e), m.coll.Serialize(e))
	if err := m.clipboard.Set(m.kind, entry); err != nil {
		return fmt.Errorf("failed to copy %s %q: %w", m.kind, name, err)
	}

	m.debug("entity copied", "name", name, "clip", entry.ID)
	return nil
}

// Cut is Copy followed by Delete. Nothing is deleted if the copy fails.
func (m *Manager[E]) Cut(name string) error {
	if err := m.Copy(name); err != nil {
		return err
	}
	m.Delete(name)
	return nil
}

// CanPaste reports whether the kind's clipboard slot holds an entry.
func (m *Manager[E]) CanPaste() bool {
	_, ok := m.clipboard.Get(m.kind)
	return ok
}

// Paste inserts a copy of the clipboard entry at index (0..Count), named
// after the copied entity with a fresh suffix when needed. It is a no-op when
// the slot is empty or index is out of range.
//
// The fresh name is applied after the payload, which may carry the original name.
func (m *Manager[E]) Paste(index int) (string, bool) {
	entry, ok := m.clipboard.Get(m.kind)
	if !ok {
		return "", false
	}
	if index < 0 || index > m.coll.Count() {
		m.debug("paste ignored", "index", index)
		return "", false
	}

	name := NewName(entry.Name, m.coll.HasNamed)
	e := m.coll.InsertNew(name, index)
	m.coll.DeserializeInto(e, entry.Payload.Clone())
	m.coll.SetName(e, name)

	if dup, found := m.duplicateName(); found && m.logger != nil {
		m.logger.Error("duplicate name after paste", "kind", m.kind, "name", dup)
	}

	m.debug("entity pasted", "name", name, "index", index, "from", entry.Name)
	m.view.Refresh(m.kind)
	return name, true
}

// MoveUp swaps the entity at index with its predecessor.
func (m *Manager[E]) MoveUp(index int) bool {
	if index <= 0 || index >= m.coll.Count() {
		return false
	}
	m.coll.Swap(index, index-1)
	m.debug("entity moved up", "index", index)
	m.view.Refresh(m.kind)
	return true
}

// MoveDown swaps the entity at index with its successor.
func (m *Manager[E]) MoveDown(index int) bool {
	if index < 0 || index >= m.coll.Count()-1 {
		return false
	}
	m.coll.Swap(index, index+1)
	m.debug("entity moved down", "index", index)
	m.view.Refresh(m.kind)
	return true
}

// BeginRename puts name in rename mode, replacing any other entity in it.
func (m *Manager[E]) BeginRename(name string) bool {
	if _, _, ok := m.find(name); !ok {
		return false
	}

	m.mu.Lock()
	m.renaming = name
	m.mu.Unlock()

	m.view.RenameStarted(m.kind, name)
	return true
}

// CancelRename leaves rename mode.
func (m *Manager[E]) CancelRename() {
	m.mu.Lock()
	m.renaming = ""
	m.mu.Unlock()
}

// Renaming returns the entity in rename mode, or "".
func (m *Manager[E]) Renaming() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renaming
}

func (m *Manager[E]) endRename(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renaming == name {
		m.renaming = ""
	}
}

func (m *Manager[E]) find(name string) (E, int, bool) {
	n := m.coll.Count()
	for i := 0; i < n; i++ {
		e := m.coll.At(i)
		if m.coll.Name(e) == name {
			return e, i, true
		}
	}
	var zero E
	return zero, -1, false
}

func (m *Manager[E]) duplicateName() (string, bool) {
	seen := make(map[string]struct{}, m.coll.Count())
	for _, name := range m.Names() {
		if _, ok := seen[name]; ok {
			return name, true
		}
		seen[name] = struct{}{}
	}
	return "", false
}

func (m *Manager[E]) debug(msg string, args ...any) {
	if m.logger == nil {
		return
	}
	m.logger.Debug(msg, append([]any{"kind", m.kind}, args...)...)
}
