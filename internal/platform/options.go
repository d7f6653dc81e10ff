package platform

import (
	"log/slog"

	"github.com/aretw0/silt/pkg/adapters/fs"
	"github.com/aretw0/silt/pkg/core"
	"github.com/aretw0/silt/pkg/transform"
)

// options holds the internal configuration for a silt Context.
type options struct {
	config     core.Config
	logger     *slog.Logger
	transforms map[string]transform.Func
	decoders   map[string]fs.Decoder
	useNumber  bool
}

// Option defines a functional option for configuring silt.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config:     core.DefaultConfig(),
		transforms: make(map[string]transform.Func),
		decoders:   make(map[string]fs.Decoder),
	}
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithConfig replaces the whole configuration. Options applied after it
// still override individual fields.
func WithConfig(cfg core.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithMode selects loose or strict handling of absent values and empty records.
func WithMode(mode core.Mode) Option {
	return func(o *options) {
		o.config.Mode = mode
	}
}

// WithStrict is shorthand for WithMode(core.ModeStrict).
func WithStrict(strict bool) Option {
	return func(o *options) {
		if strict {
			o.config.Mode = core.ModeStrict
		} else {
			o.config.Mode = core.ModeLoose
		}
	}
}

// WithPreciseNumbers makes the JSON file decoder keep numbers as
// json.Number instead of converting them to int64 or float64.
func WithPreciseNumbers(precise bool) Option {
	return func(o *options) {
		o.useNumber = precise
	}
}

// WithIDKey sets the identity field name (default "_k").
func WithIDKey(key string) Option {
	return func(o *options) {
		o.config.IDKey = key
	}
}

// WithMetadataKey sets the container metadata field name (default "_metadata").
func WithMetadataKey(key string) Option {
	return func(o *options) {
		o.config.MetadataKey = key
	}
}

// WithDataKey sets the container data field name (default "data").
func WithDataKey(key string) Option {
	return func(o *options) {
		o.config.DataKey = key
	}
}

// WithLogger sets the logger for the Context and the file watcher.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTransform registers a custom transform kind next to the built-in "date".
func WithTransform(kind string, fn transform.Func) Option {
	return func(o *options) {
		o.transforms[kind] = fn
	}
}

// WithDecoder registers a decoder for a file extension (e.g. ".toml").
// It replaces the default decoder for extensions that already have one.
func WithDecoder(ext string, d fs.Decoder) Option {
	return func(o *options) {
		o.decoders[ext] = d
	}
}
