// Package lifecycle exposes watcher reloads as a lifecycle event source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/silt/pkg/adapters/fs"
)

type reloadSource struct {
	reloads <-chan fs.Reload
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits one event per reload.
func NewSource(reloads <-chan fs.Reload) lifecycle.Source {
	return &reloadSource{
		reloads: reloads,
		out:     make(chan lifecycle.Event),
	}
}

func (s *reloadSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *reloadSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case r, ok := <-s.reloads:
				if !ok {
					return nil
				}
				// fs.Reload implements lifecycle.Event (has String())
				select {
				case s.out <- r:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
