package silt

import (
	"time"

	"github.com/aretw0/introspection"
)

// TypeState describes one registered collection.
type TypeState struct {
	Name       string   `json:"name"`
	Count      int      `json:"count"`
	Transforms []string `json:"transforms,omitempty"`
}

// ContextState exposes internal state for observability.
type ContextState struct {
	ID         string      `json:"id"`
	Mode       string      `json:"mode"`
	IDKey      string      `json:"id_key"`
	Types      []TypeState `json:"types"`
	Transforms []string    `json:"transform_kinds"`
	Loads      int         `json:"loads"`
	LastLoad   *time.Time  `json:"last_load,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Context) State() any {
	types := make([]TypeState, 0, len(c.names))
	for _, name := range c.names {
		coll, err := c.TypeStore(name)
		if err != nil {
			continue
		}
		ts := TypeState{Name: name, Count: coll.Count()}
		for _, t := range coll.Transforms() {
			ts.Transforms = append(ts.Transforms, t.SourceField+"->"+t.TargetField+" ("+t.Kind+")")
		}
		types = append(types, ts)
	}
	return ContextState{
		ID:         c.id,
		Mode:       string(c.cfg.Mode),
		IDKey:      c.cfg.IDKey,
		Types:      types,
		Transforms: c.transforms.Kinds(),
		Loads:      c.loads,
		LastLoad:   c.lastLoad,
	}
}

// ComponentType implements introspection.Component.
func (c *Context) ComponentType() string {
	return "context"
}

var _ introspection.Introspectable = (*Context)(nil)
var _ introspection.Component = (*Context)(nil)
