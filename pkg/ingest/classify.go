// Package ingest walks a raw nested object and loads the data containers it
// finds into typed collections.
package ingest

import (
	"github.com/aretw0/silt/pkg/core"
)

// NodeKind is the role a raw value plays in the input graph.
type NodeKind int

const (
	// Value is a leaf the loader ignores.
	Value NodeKind = iota
	// Object is a plain object whose fields are walked recursively.
	Object
	// DataInstance is a single record, recognized by its identity key.
	DataInstance
	// DataContainer declares the records (and transforms) of one type.
	DataContainer
)

func (k NodeKind) String() string {
	switch k {
	case Value:
		return "value"
	case Object:
		return "object"
	case DataInstance:
		return "dataInstance"
	case DataContainer:
		return "dataContainer"
	default:
		return "unknown"
	}
}

// Classify decides what kind of node value is. The checks form a priority
// list: identity key presence wins over container key presence. Values that
// are not objects (scalars, sequences) are leaves.
func Classify(value any, cfg core.Config) (NodeKind, error) {
	if isAbsent(value) {
		if cfg.Strict() {
			return Value, core.Errorf(core.ErrShape, "", "absent value in strict mode")
		}
		return Value, nil
	}

	var has func(string) bool
	switch v := value.(type) {
	case *core.Object:
		has = v.Has
	case map[string]any:
		has = func(k string) bool {
			_, ok := v[k]
			return ok
		}
	default:
		return Value, nil
	}

	switch {
	case has(cfg.IDKey):
		return DataInstance, nil
	case has(cfg.MetadataKey), has(cfg.DataKey):
		return DataContainer, nil
	default:
		return Object, nil
	}
}

func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	obj, ok := value.(*core.Object)
	return ok && obj == nil
}
