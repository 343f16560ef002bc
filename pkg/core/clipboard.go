package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ClipEntry is the content of one clipboard slot.
type ClipEntry struct {
	ID       string    `json:"id" yaml:"id"`
	Kind     string    `json:"kind" yaml:"kind"`
	Name     string    `json:"name" yaml:"name"`
	Payload  Payload   `json:"payload" yaml:"payload"`
	CopiedAt time.Time `json:"copiedAt" yaml:"copiedAt"`
}

// NewClipEntry snapshots payload for kind under a fresh entry ID.
func NewClipEntry(kind Kind, name string, payload Payload) ClipEntry {
	return ClipEntry{
		ID:       uuid.NewString(),
		Kind:     kind.Tag(),
		Name:     name,
		Payload:  payload.Clone(),
		CopiedAt: time.Now().UTC(),
	}
}

// Clipboard stores at most one entry per kind. Set overwrites the slot; Get
// reads it without clearing it.
type Clipboard interface {
	Set(kind Kind, entry ClipEntry) error
	Get(kind Kind) (ClipEntry, bool)
}

// MemoryClipboard is a process-lifetime Clipboard.
type MemoryClipboard struct {
	mu    sync.RWMutex
	slots map[Kind]ClipEntry
}

// NewMemoryClipboard creates an empty clipboard.
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{slots: make(map[Kind]ClipEntry)}
}

func (c *MemoryClipboard) Set(kind Kind, entry ClipEntry) error {
	entry.Payload = entry.Payload.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[kind] = entry
	return nil
}

func (c *MemoryClipboard) Get(kind Kind) (ClipEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.slots[kind]
	if !ok {
		return ClipEntry{}, false
	}
	entry.Payload = entry.Payload.Clone()
	return entry, true
}

// Clear empties every slot.
func (c *MemoryClipboard) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = make(map[Kind]ClipEntry)
}

var _ Clipboard = (*MemoryClipboard)(nil)
