package core

import (
	"github.com/aretw0/introspection"
)

// ManagerState exposes internal state for observability.
type ManagerState struct {
	Kind     string `json:"kind"`
	Count    int    `json:"count"`
	Renaming string `json:"renaming,omitempty"`
	CanPaste bool   `json:"can_paste"`
}

// State implements introspection.Introspectable.
func (m *Manager[E]) State() any {
	return ManagerState{
		Kind:     m.kind.Tag(),
		Count:    m.coll.Count(),
		Renaming: m.Renaming(),
		CanPaste: m.CanPaste(),
	}
}

// ComponentType implements introspection.Component.
func (m *Manager[E]) ComponentType() string {
	return "manager"
}

var _ introspection.Introspectable = (*Manager[struct{}])(nil)
var _ introspection.Component = (*Manager[struct{}])(nil)
