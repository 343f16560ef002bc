package project

import (
	"fmt"

	"github.com/aretw0/projtree/pkg/core"
)

// File is the serializable form of a project. Each entry is an entity
// payload carrying its name under core.PayloadNameKey.
type File struct {
	Name            string         `json:"name" yaml:"name"`
	Scenes          []core.Payload `json:"scenes,omitempty" yaml:"scenes,omitempty"`
	ExternalEvents  []core.Payload `json:"externalEvents,omitempty" yaml:"externalEvents,omitempty"`
	ExternalLayouts []core.Payload `json:"externalLayouts,omitempty" yaml:"externalLayouts,omitempty"`
	Extensions      []core.Payload `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Entries returns a pointer to the entry list of kind, or nil for an unknown kind.
func (f *File) Entries(kind core.Kind) *[]core.Payload {
	switch kind {
	case core.KindScene:
		return &f.Scenes
	case core.KindExternalEvents:
		return &f.ExternalEvents
	case core.KindExternalLayout:
		return &f.ExternalLayouts
	case core.KindExtension:
		return &f.Extensions
	}
	return nil
}

// Snapshot returns the serializable form of p.
func (p *Project) Snapshot() File {
	p.mu.RLock()
	defer p.mu.RUnlock()

	f := File{Name: p.name}
	for _, k := range core.Kinds() {
		items := p.collections[k].items
		if len(items) == 0 {
			continue
		}
		out := make([]core.Payload, 0, len(items))
		for _, e := range items {
			out = append(out, serializeLocked(e))
		}
		*f.Entries(k) = out
	}
	return f
}

// FromFile builds a project from its serialized form. Every entry needs a
// non-empty name, unique within its collection.
func FromFile(f File, opts ...Option) (*Project, error) {
	p := New(f.Name, opts...)
	for _, k := range core.Kinds() {
		entries := *f.Entries(k)
		items := make([]*Entity, 0, len(entries))
		seen := make(map[string]struct{}, len(entries))

		for i, raw := range entries {
			name, _ := raw[core.PayloadNameKey].(string)
			if name == "" {
				return nil, fmt.Errorf("%w: %s entry %d has no name", core.ErrInvalidName, k, i)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("%w: %s %q", core.ErrNameCollision, k, name)
			}
			seen[name] = struct{}{}

			payload := raw.Clone()
			delete(payload, core.PayloadNameKey)
			items = append(items, &Entity{name: name, payload: payload})
		}
		p.collections[k].items = items
	}
	return p, nil
}
