package silt

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/silt/pkg/core"
	"github.com/aretw0/silt/pkg/ingest"
	"github.com/aretw0/silt/pkg/linking"
	"github.com/aretw0/silt/pkg/transform"
)

// Settings configures a Context. Zero fields take their defaults.
type Settings struct {
	Config     core.Config
	Logger     *slog.Logger
	Transforms *transform.Registry
}

// Context owns every Collection of one load-and-query session. It is not
// safe for concurrent use.
type Context struct {
	id         string
	cfg        core.Config
	logger     *slog.Logger
	transforms *transform.Registry

	names  []string
	stores map[string]*core.Collection

	loads    int
	lastLoad *time.Time
}

// NewContext creates an empty Context.
func NewContext(s Settings) *Context {
	if s.Config == (core.Config{}) {
		s.Config = core.DefaultConfig()
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	if s.Transforms == nil {
		s.Transforms = transform.DefaultRegistry()
	}
	id := uuid.NewString()
	return &Context{
		id:         id,
		cfg:        s.Config,
		logger:     s.Logger.With("context", id),
		transforms: s.Transforms,
		stores:     make(map[string]*core.Collection),
	}
}

// ID identifies this Context in logs and introspection output.
func (c *Context) ID() string {
	return c.id
}

// Config returns the conventions this Context loads with.
func (c *Context) Config() core.Config {
	return c.cfg
}

// RegisterType creates the collection for name. Registering a name twice,
// in any casing, fails.
func (c *Context) RegisterType(name string, transforms []core.Transformation) (*core.Collection, error) {
	norm, err := core.NormalizeTypeName(name)
	if err != nil {
		return nil, core.Errorf(core.ErrShape, "", "%v", err)
	}
	if _, ok := c.stores[norm]; ok {
		return nil, &core.Error{Kind: core.ErrTypeRegistered, Type: name}
	}
	coll := core.NewCollection(name, c.cfg.IDKey, transforms)
	c.names = append(c.names, name)
	c.stores[norm] = coll
	c.logger.Debug("type registered", "type", name, "transforms", len(transforms))
	return coll, nil
}

// HasType reports whether name is registered, ignoring case.
func (c *Context) HasType(name string) bool {
	norm, err := core.NormalizeTypeName(name)
	if err != nil {
		return false
	}
	_, ok := c.stores[norm]
	return ok
}

// TypeStore returns the collection registered under name, ignoring case.
func (c *Context) TypeStore(name string) (*core.Collection, error) {
	norm, err := core.NormalizeTypeName(name)
	if err != nil {
		return nil, &core.Error{Kind: core.ErrTypeNotFound, Type: name, Detail: err.Error()}
	}
	coll, ok := c.stores[norm]
	if !ok {
		return nil, &core.Error{Kind: core.ErrTypeNotFound, Type: name}
	}
	return coll, nil
}

// Types returns the registered type names as originally written, in
// registration order.
func (c *Context) Types() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// LoadFromObject loads raw into the Context, then hydrates relationships and
// applies transforms across every registered type. On failure the Context
// keeps whatever was loaded before the error; there is no rollback.
//
// raw may hold *core.Object values or plain Go maps and slices. Go map keys
// are read in sorted order, and link fields are only recognized before the
// identity field, so with the default "_k" a link named "_user" or "_trip"
// in a Go map is silently treated as a plain field. Use *core.Object for
// inputs whose field order matters.
func (c *Context) LoadFromObject(raw any) (*Context, error) {
	return c.LoadObjects(raw)
}

// LoadObjects loads every raw root in order and hydrates once at the end, so
// links may point at types declared by a later root.
func (c *Context) LoadObjects(raws ...any) (*Context, error) {
	if err := c.cfg.Validate(); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}

	for _, raw := range raws {
		loaded, err := ingest.Load(c, raw, c.cfg)
		if err != nil {
			return c, err
		}
		c.logger.Debug("object loaded", "containers", loaded.Containers, "records", loaded.Records)
	}

	linked, err := linking.Hydrate(c, c.cfg)
	if err != nil {
		return c, err
	}
	c.logger.Debug("relationships hydrated", "records", linked.Records, "links", linked.Links)

	applied, err := transform.Apply(c, c.transforms)
	if err != nil {
		return c, err
	}
	c.logger.Debug("transforms applied", "values", applied.Applied)

	now := time.Now()
	c.loads++
	c.lastLoad = &now
	return c, nil
}

// Resolve returns the record a Ref points at.
func (c *Context) Resolve(ref core.Ref) (*core.Record, error) {
	coll, err := c.TypeStore(ref.Type)
	if err != nil {
		return nil, err
	}
	return coll.Get(ref.Key)
}

// Follow resolves the one-to-one link stored under property.
func (c *Context) Follow(rec *core.Record, property string) (*core.Record, error) {
	v, ok := rec.Get(property)
	if !ok {
		return nil, &core.Error{Kind: core.ErrRecordNotFound, Field: property, Detail: "record has no such property"}
	}
	ref, ok := v.(core.Ref)
	if !ok {
		return nil, &core.Error{Kind: core.ErrShape, Field: property, Detail: fmt.Sprintf("property is not a one-to-one link (got %T)", v)}
	}
	return c.Resolve(ref)
}

// FollowAll resolves the one-to-many link stored under property, in the
// order the keys were declared.
func (c *Context) FollowAll(rec *core.Record, property string) ([]*core.Record, error) {
	v, ok := rec.Get(property)
	if !ok {
		return nil, &core.Error{Kind: core.ErrRecordNotFound, Field: property, Detail: "record has no such property"}
	}
	refs, ok := v.([]core.Ref)
	if !ok {
		return nil, &core.Error{Kind: core.ErrShape, Field: property, Detail: fmt.Sprintf("property is not a one-to-many link (got %T)", v)}
	}
	return c.resolveAll(refs)
}

// Related resolves the records of sourceType that link to rec.
func (c *Context) Related(rec *core.Record, sourceType string) ([]*core.Record, error) {
	return c.resolveAll(rec.Related(sourceType))
}

func (c *Context) resolveAll(refs []core.Ref) ([]*core.Record, error) {
	out := make([]*core.Record, 0, len(refs))
	for _, ref := range refs {
		rec, err := c.Resolve(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

var _ core.Registry = (*Context)(nil)
