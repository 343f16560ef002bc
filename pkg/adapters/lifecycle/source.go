// Package lifecycle exposes project change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/projtree/pkg/core"
)

type projectSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps a project event channel (Project.Subscribe, Store.Watch)
// as a lifecycle.Source. The source output closes when events closes or the
// Start context ends.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &projectSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *projectSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *projectSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event satisfies lifecycle.Event through String.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
