package transform

import (
	"fmt"
	"sort"
)

// KindDate is the built-in date transform.
const KindDate = "date"

// Func converts one source value into the value stored in the target field.
type Func func(value any) (any, error)

// Registry maps transform kinds to their implementation.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// DefaultRegistry returns a registry holding the built-in transforms.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.funcs[KindDate] = ParseDate
	return r
}

// Register adds or replaces the implementation of kind.
func (r *Registry) Register(kind string, fn Func) error {
	if kind == "" {
		return fmt.Errorf("transform kind cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("transform %q has no implementation", kind)
	}
	r.funcs[kind] = fn
	return nil
}

// Lookup returns the implementation of kind.
func (r *Registry) Lookup(kind string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.funcs[kind]
	return fn, ok
}

// Kinds lists the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.funcs))
	for k := range r.funcs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
