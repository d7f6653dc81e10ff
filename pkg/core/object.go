package core

import (
	"fmt"
	"reflect"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a string-keyed map that remembers insertion order.
// Input nodes and record fields are held as Objects because relationship
// inference depends on the order fields were declared in.
type Object struct {
	om *orderedmap.OrderedMap[string, any]
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{om: orderedmap.New[string, any]()}
}

// ObjectFromMap copies m into a new Object. Go maps carry no order, so keys
// are inserted sorted to keep loads deterministic.
func ObjectFromMap(m map[string]any) *Object {
	o := NewObject()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o == nil || o.om == nil {
		return 0
	}
	return o.om.Len()
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	if o == nil || o.om == nil {
		return nil
	}
	out := make([]string, 0, o.om.Len())
	for p := o.om.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil || o.om == nil {
		return nil, false
	}
	return o.om.Get(key)
}

// Has reports whether key is present, even when its value is nil.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores value under key. New keys are appended; existing keys keep
// their position.
func (o *Object) Set(key string, value any) {
	if o.om == nil {
		o.om = orderedmap.New[string, any]()
	}
	o.om.Set(key, value)
}

// Delete removes key, if present.
func (o *Object) Delete(key string) {
	if o.om == nil {
		return
	}
	o.om.Delete(key)
}

// Map returns a shallow, unordered copy of the fields.
func (o *Object) Map() map[string]any {
	m := make(map[string]any, o.Len())
	if o == nil || o.om == nil {
		return m
	}
	for p := o.om.Oldest(); p != nil; p = p.Next() {
		m[p.Key] = p.Value
	}
	return m
}

// MarshalJSON encodes the fields in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil || o.om == nil {
		return []byte("{}"), nil
	}
	return o.om.MarshalJSON()
}

// Normalize converts caller-supplied Go values into the form the loader
// walks: maps with string keys become *Object, slices and arrays of any
// element type become []any, scalars pass through.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *Object:
		if t == nil {
			return nil
		}
		out := NewObject()
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out.Set(k, Normalize(val))
		}
		return out
	case map[string]any:
		out := NewObject()
		for _, k := range sortedKeys(t) {
			out.Set(k, Normalize(t[k]))
		}
		return out
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = val
		}
		return Normalize(m)
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case []byte:
		return v
	}
	return normalizeReflect(v)
}

// normalizeReflect handles typed containers such as []int, []*Object or
// map[string]string.
func normalizeReflect(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return Normalize(m)
	default:
		return v
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
