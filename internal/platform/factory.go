package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/silt/pkg/adapters/fs"
	"github.com/aretw0/silt/pkg/silt"
	"github.com/aretw0/silt/pkg/transform"
)

// New creates an empty Context configured by opts.
//
//	c, err := silt.New(silt.WithStrict(true))
func New(opts ...Option) (*silt.Context, error) {
	return newContext(apply(opts))
}

func newContext(o *options) (*silt.Context, error) {
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	transforms := transform.DefaultRegistry()
	for kind, fn := range o.transforms {
		if err := transforms.Register(kind, fn); err != nil {
			return nil, err
		}
	}

	return silt.NewContext(silt.Settings{
		Config:     o.config,
		Logger:     o.logger,
		Transforms: transforms,
	}), nil
}

func (o *options) fileDecoders() map[string]fs.Decoder {
	decs := fs.DefaultDecoders(o.useNumber)
	for ext, d := range o.decoders {
		decs[ext] = d
	}
	return decs
}

// LoadFiles expands patterns and loads every matched file into one Context.
func LoadFiles(patterns []string, opts ...Option) (*silt.Context, error) {
	files, err := fs.Expand(patterns...)
	if err != nil {
		return nil, err
	}
	return LoadPaths(files, opts...)
}

// LoadPaths decodes files in order and loads them into one new Context.
// Relationships are resolved across files.
func LoadPaths(files []string, opts ...Option) (*silt.Context, error) {
	o := apply(opts)
	c, err := newContext(o)
	if err != nil {
		return nil, err
	}

	decoders := o.fileDecoders()
	raws := make([]any, 0, len(files))
	for _, f := range files {
		raw, err := fs.DecodeFile(f, decoders)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}

	if _, err := c.LoadObjects(raws...); err != nil {
		return nil, err
	}
	return c, nil
}

// Watch loads the files matched by patterns and starts a watcher that
// rebuilds the Context whenever one of them changes. The initial Context is
// returned alongside the running watcher; stop it with Stop or by
// cancelling ctx.
func Watch(ctx context.Context, patterns []string, opts ...Option) (*silt.Context, *fs.Watcher, error) {
	files, err := fs.Expand(patterns...)
	if err != nil {
		return nil, nil, err
	}
	initial, err := LoadPaths(files, opts...)
	if err != nil {
		return nil, nil, err
	}

	logger := apply(opts).logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := fs.NewWatcher(files, func() (*silt.Context, error) {
		return LoadPaths(files, opts...)
	}, logger)
	if err := w.Start(ctx); err != nil {
		return nil, nil, err
	}
	return initial, w, nil
}
