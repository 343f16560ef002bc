package project

import (
	"github.com/aretw0/introspection"
)

// State exposes internal state for observability.
type State struct {
	Name        string         `json:"name"`
	Counts      map[string]int `json:"counts"`
	Subscribers int            `json:"subscribers"`
}

// State implements introspection.Introspectable.
func (p *Project) State() any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	counts := make(map[string]int, len(p.collections))
	for _, c := range p.collections {
		counts[c.kind.Tag()] = len(c.items)
	}
	return State{
		Name:        p.name,
		Counts:      counts,
		Subscribers: len(p.subscribers),
	}
}

// ComponentType implements introspection.Component.
func (p *Project) ComponentType() string {
	return "project"
}

var _ introspection.Introspectable = (*Project)(nil)
var _ introspection.Component = (*Project)(nil)
