// Package typed decodes the records of a Collection into caller structs.
package typed

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/silt/pkg/core"
)

// Model wraps a decoded record.
type Model[T any] struct {
	Key    any          // normalized identity value
	Data   T            // the record decoded into T
	Record *core.Record // the untyped record it was decoded from
}

// View is a read-only, type-safe window over a Collection. Links decode as
// core.Ref values ({"type", "key"}) and back-references as a map of []core.Ref
// under the "related" field.
type View[T any] struct {
	coll *core.Collection
}

// NewView creates a typed view over coll.
func NewView[T any](coll *core.Collection) *View[T] {
	return &View[T]{coll: coll}
}

// Get decodes the record stored under key.
func (v *View[T]) Get(key any) (*Model[T], error) {
	rec, err := v.coll.Get(key)
	if err != nil {
		return nil, err
	}
	norm, _ := core.NormalizeKey(key)
	return decode[T](norm, rec)
}

// List decodes every record in insertion order.
func (v *View[T]) List() ([]*Model[T], error) {
	return v.decodeAll(v.coll.Keys(), v.coll.Records())
}

// Query decodes the records matching filter (see core.Match).
func (v *View[T]) Query(filter map[string]any) ([]*Model[T], error) {
	recs := v.coll.Query(filter)
	keys := make([]any, len(recs))
	for i, rec := range recs {
		raw, _ := rec.Get(v.coll.IDKey())
		keys[i], _ = core.NormalizeKey(raw)
	}
	return v.decodeAll(keys, recs)
}

func (v *View[T]) decodeAll(keys []any, recs []*core.Record) ([]*Model[T], error) {
	out := make([]*Model[T], 0, len(recs))
	for i, rec := range recs {
		m, err := decode[T](keys[i], rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func decode[T any](key any, rec *core.Record) (*Model[T], error) {
	// 1. Marshal the record (fields in order, refs as objects)
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record %s: %w", core.FormatKey(key), err)
	}

	// 2. Unmarshal into T
	var t T
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", core.FormatKey(key), err)
	}

	return &Model[T]{Key: key, Data: t, Record: rec}, nil
}
