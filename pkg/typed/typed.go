// Package typed converts between the opaque entity payloads and Go structs.
package typed

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/projtree/pkg/core"
)

// Model is a typed view of an entity.
type Model[T any] struct {
	Name string
	Data T
}

// Decode converts a payload into T through a JSON round-trip.
// The name key is ignored unless T maps it.
func Decode[T any](p core.Payload) (T, error) {
	var data T
	raw, err := json.Marshal(p)
	if err != nil {
		return data, fmt.Errorf("payload marshal failed: %w", err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("unmarshal to target type failed: %w", err)
	}
	return data, nil
}

// Encode converts v into a payload. v must marshal to a JSON object.
func Encode(v any) (core.Payload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal typed data: %w", err)
	}
	var p core.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to convert typed data to payload: %w", err)
	}
	if p == nil {
		p = core.Payload{}
	}
	return p, nil
}

// Collection gives typed access to the entities of a core.Collection.
type Collection[T any, E any] struct {
	coll core.Collection[E]
}

// NewCollection wraps coll.
func NewCollection[T any, E any](coll core.Collection[E]) *Collection[T, E] {
	return &Collection[T, E]{coll: coll}
}

// Get decodes the entity called name.
func (c *Collection[T, E]) Get(name string) (*Model[T], error) {
	e, ok := c.find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrNotFound, name)
	}
	data, err := Decode[T](c.coll.Serialize(e))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", name, err)
	}
	return &Model[T]{Name: name, Data: data}, nil
}

// List decodes every entity in order.
func (c *Collection[T, E]) List() ([]*Model[T], error) {
	n := c.coll.Count()
	out := make([]*Model[T], 0, n)
	for i := 0; i < n; i++ {
		e := c.coll.At(i)
		name := c.coll.Name(e)
		data, err := Decode[T](c.coll.Serialize(e))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", name, err)
		}
		out = append(out, &Model[T]{Name: name, Data: data})
	}
	return out, nil
}

// Set replaces the content of the entity called name with data, keeping its name.
func (c *Collection[T, E]) Set(name string, data T) error {
	e, ok := c.find(name)
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrNotFound, name)
	}
	p, err := Encode(data)
	if err != nil {
		return err
	}
	p[core.PayloadNameKey] = name
	c.coll.DeserializeInto(e, p)
	return nil
}

func (c *Collection[T, E]) find(name string) (E, bool) {
	n := c.coll.Count()
	for i := 0; i < n; i++ {
		e := c.coll.At(i)
		if c.coll.Name(e) == name {
			return e, true
		}
	}
	var zero E
	return zero, false
}
