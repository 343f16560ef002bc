// Package project is the in-process Project: one ordered collection of named
// entities per kind, exposed to the manager through core.Collection.
package project

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/projtree/pkg/core"
)

// Entity is a named entry of a project collection.
type Entity struct {
	name    string
	payload core.Payload
}

// Name returns the entity name.
func (e *Entity) Name() string {
	return e.name
}

// Payload returns a copy of the entity content, without the name.
func (e *Entity) Payload() core.Payload {
	return e.payload.Clone()
}

// Project owns one collection per kind.
type Project struct {
	mu          sync.RWMutex
	name        string
	collections [core.KindCount]*Collection
	subscribers []chan core.Event
	logger      *slog.Logger
}

// Option configures a Project.
type Option func(*Project)

// WithLogger sets the logger used to report dropped events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Project) {
		p.logger = logger
	}
}

// New creates an empty project.
func New(name string, opts ...Option) *Project {
	p := &Project{name: name}
	for _, k := range core.Kinds() {
		p.collections[k] = &Collection{project: p, kind: k}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the project name.
func (p *Project) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

// SetName renames the project.
func (p *Project) SetName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = name
}

// Collection returns the collection of kind.
func (p *Project) Collection(kind core.Kind) (*Collection, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", core.ErrUnknownKind, int(kind))
	}
	return p.collections[kind], nil
}

// Manager builds a collection manager for kind.
func (p *Project) Manager(kind core.Kind, clipboard core.Clipboard, opts ...core.ManagerOption) (*core.Manager[*Entity], error) {
	c, err := p.Collection(kind)
	if err != nil {
		return nil, err
	}
	return core.NewManager[*Entity](kind, c, clipboard, opts...), nil
}

// Subscribe returns a channel receiving every change event, and a function
// that unsubscribes and closes it. Events are dropped when the buffer is full.
func (p *Project) Subscribe(buffer int) (<-chan core.Event, func()) {
	if buffer <= 0 {
		buffer = 100
	}
	ch := make(chan core.Event, buffer)

	p.mu.Lock()
	p.subscribers = append(p.subscribers, ch)
	p.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			for i, s := range p.subscribers {
				if s == ch {
					p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
					break
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

// emit must be called without p.mu held.
func (p *Project) emit(e core.Event) {
	e.Timestamp = time.Now().Unix()

	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, ch := range p.subscribers {
		select {
		case ch <- e:
		default:
			if p.logger != nil {
				p.logger.Warn("event dropped", "event", e.String())
			}
		}
	}
}
