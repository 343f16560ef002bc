package project

import (
	"github.com/aretw0/projtree/pkg/core"
)

// Collection is the ordered list of entities of one kind.
// It implements core.Collection[*Entity].
type Collection struct {
	project *Project
	kind    core.Kind
	items   []*Entity
}

var _ core.Collection[*Entity] = (*Collection)(nil)

// Kind returns the kind of entities held.
func (c *Collection) Kind() core.Kind {
	return c.kind
}

func (c *Collection) Count() int {
	c.project.mu.RLock()
	defer c.project.mu.RUnlock()
	return len(c.items)
}

func (c *Collection) HasNamed(name string) bool {
	c.project.mu.RLock()
	defer c.project.mu.RUnlock()
	return c.indexOfNameLocked(name) >= 0
}

// Get returns the entity called name, or nil.
func (c *Collection) Get(name string) *Entity {
	c.project.mu.RLock()
	defer c.project.mu.RUnlock()
	if i := c.indexOfNameLocked(name); i >= 0 {
		return c.items[i]
	}
	return nil
}

// InsertNew creates an empty entity at index. Indexes outside [0, Count] append.
func (c *Collection) InsertNew(name string, index int) *Entity {
	e := &Entity{name: name, payload: core.Payload{}}

	c.project.mu.Lock()
	if index < 0 || index > len(c.items) {
		index = len(c.items)
	}
	c.items = append(c.items, nil)
	copy(c.items[index+1:], c.items[index:])
	c.items[index] = e
	c.project.mu.Unlock()

	c.project.emit(core.Event{Type: core.EventCreate, Kind: c.kind, Name: name})
	return e
}

// At returns the entity at index, or nil when out of range.
func (c *Collection) At(index int) *Entity {
	c.project.mu.RLock()
	defer c.project.mu.RUnlock()
	if index < 0 || index >= len(c.items) {
		return nil
	}
	return c.items[index]
}

func (c *Collection) Name(e *Entity) string {
	if e == nil {
		return ""
	}
	c.project.mu.RLock()
	defer c.project.mu.RUnlock()
	return e.name
}

// SetName renames e unconditionally; uniqueness is the caller's concern.
func (c *Collection) SetName(e *Entity, name string) {
	if e == nil {
		return
	}
	c.project.mu.Lock()
	old := e.name
	e.name = name
	c.project.mu.Unlock()

	if old != name {
		c.project.emit(core.Event{Type: core.EventRename, Kind: c.kind, Name: name, OldName: old})
	}
}

func (c *Collection) Remove(e *Entity) {
	c.project.mu.Lock()
	idx := -1
	for i, item := range c.items {
		if item == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.project.mu.Unlock()
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	name := e.name
	c.project.mu.Unlock()

	c.project.emit(core.Event{Type: core.EventDelete, Kind: c.kind, Name: name})
}

// Swap exchanges two positions. Out-of-range indexes are ignored.
func (c *Collection) Swap(i, j int) {
	c.project.mu.Lock()
	if i < 0 || j < 0 || i >= len(c.items) || j >= len(c.items) || i == j {
		c.project.mu.Unlock()
		return
	}
	c.items[i], c.items[j] = c.items[j], c.items[i]
	name := c.items[j].name
	c.project.mu.Unlock()

	c.project.emit(core.Event{Type: core.EventMove, Kind: c.kind, Name: name})
}

// Serialize returns the entity content with its name under core.PayloadNameKey.
func (c *Collection) Serialize(e *Entity) core.Payload {
	c.project.mu.RLock()
	defer c.project.mu.RUnlock()
	return serializeLocked(e)
}

// DeserializeInto replaces the content of e with p, including its name when p carries one.
func (c *Collection) DeserializeInto(e *Entity, p core.Payload) {
	if e == nil {
		return
	}
	c.project.mu.Lock()
	payload := p.Clone()
	if payload == nil {
		payload = core.Payload{}
	}
	if n, ok := payload[core.PayloadNameKey].(string); ok {
		e.name = n
	}
	delete(payload, core.PayloadNameKey)
	e.payload = payload
	name := e.name
	c.project.mu.Unlock()

	c.project.emit(core.Event{Type: core.EventModify, Kind: c.kind, Name: name})
}

// Names returns the entity names in order.
func (c *Collection) Names() []string {
	c.project.mu.RLock()
	defer c.project.mu.RUnlock()
	out := make([]string, 0, len(c.items))
	for _, e := range c.items {
		out = append(out, e.name)
	}
	return out
}

func (c *Collection) indexOfNameLocked(name string) int {
	for i, e := range c.items {
		if e.name == name {
			return i
		}
	}
	return -1
}

func serializeLocked(e *Entity) core.Payload {
	if e == nil {
		return nil
	}
	p := e.payload.Clone()
	if p == nil {
		p = core.Payload{}
	}
	p[core.PayloadNameKey] = e.name
	return p
}
