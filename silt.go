package silt

import (
	"context"
	"log/slog"

	"github.com/aretw0/silt/internal/platform"
	"github.com/aretw0/silt/pkg/adapters/fs"
	"github.com/aretw0/silt/pkg/core"
	siltctx "github.com/aretw0/silt/pkg/silt"
	"github.com/aretw0/silt/pkg/transform"
	"github.com/aretw0/silt/pkg/typed"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Context is a public alias for the collection registry.
type Context = siltctx.Context

// ContextState is a public alias for the introspection state of a Context.
type ContextState = siltctx.ContextState

// Collection is a public alias for a typed, keyed collection.
type Collection = core.Collection

// Record is a public alias for one record of a Collection.
type Record = core.Record

// Ref is a public alias for a link between records.
type Ref = core.Ref

// Config is a public alias for the ingestion conventions.
type Config = core.Config

// Model is a public alias for a record decoded into T.
type Model[T any] = typed.Model[T]

// View is a public alias for the typed collection view.
type View[T any] = typed.View[T]

// Reload is a public alias for a watcher reload event.
type Reload = fs.Reload

// --- Configuration ---

// Option defines a functional option for configuring silt.
type Option = platform.Option

// DefaultConfig returns the default conventions (_k, _metadata, data, loose).
func DefaultConfig() Config {
	return core.DefaultConfig()
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return platform.WithConfig(cfg)
}

// WithMode selects loose or strict mode.
func WithMode(mode core.Mode) Option {
	return platform.WithMode(mode)
}

// WithStrict enables strict mode.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithPreciseNumbers keeps JSON file numbers as json.Number.
func WithPreciseNumbers(precise bool) Option {
	return platform.WithPreciseNumbers(precise)
}

// WithIDKey sets the identity field name.
func WithIDKey(key string) Option {
	return platform.WithIDKey(key)
}

// WithMetadataKey sets the container metadata field name.
func WithMetadataKey(key string) Option {
	return platform.WithMetadataKey(key)
}

// WithDataKey sets the container data field name.
func WithDataKey(key string) Option {
	return platform.WithDataKey(key)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithTransform registers a custom transform kind.
func WithTransform(kind string, fn transform.Func) Option {
	return platform.WithTransform(kind, fn)
}

// WithDecoder registers a file decoder for an extension.
func WithDecoder(ext string, d fs.Decoder) Option {
	return platform.WithDecoder(ext, d)
}

// --- Factory ---

// New creates an empty Context.
func New(opts ...Option) (*Context, error) {
	return platform.New(opts...)
}

// Load creates a Context and loads raw into it.
//
// Go maps have no field order, so their keys are read sorted. Link fields
// are only recognized before the identity field, which means a link such as
// "_user" is ignored when it sorts after the default "_k". Pass a
// *core.Object, or decode a file, when field order matters.
func Load(raw any, opts ...Option) (*Context, error) {
	c, err := platform.New(opts...)
	if err != nil {
		return nil, err
	}
	return c.LoadFromObject(raw)
}

// LoadFiles loads every file matched by patterns (JSON or YAML, doublestar
// globs allowed) into one Context.
func LoadFiles(patterns []string, opts ...Option) (*Context, error) {
	return platform.LoadFiles(patterns, opts...)
}

// Watch loads the matched files and rebuilds the Context on every change.
func Watch(ctx context.Context, patterns []string, opts ...Option) (*Context, *fs.Watcher, error) {
	return platform.Watch(ctx, patterns, opts...)
}

// FindConfig looks upwards from dir for a .silt.yaml file.
func FindConfig(dir string) (string, error) {
	return platform.FindConfig(dir)
}

// --- Typed Factories ---

// NewView creates a typed view over a Collection.
func NewView[T any](coll *Collection) *View[T] {
	return typed.NewView[T](coll)
}

// OpenView looks up typeName in c and wraps it in a typed view.
func OpenView[T any](c *Context, typeName string) (*View[T], error) {
	coll, err := c.TypeStore(typeName)
	if err != nil {
		return nil, err
	}
	return typed.NewView[T](coll), nil
}
