// Package transform parses the transform declarations carried by data
// containers and applies them to loaded records.
package transform

import (
	"fmt"
	"strings"

	"github.com/aretw0/silt/pkg/core"
)

// Declaration field names inside a container's metadata.
const (
	transformsKey  = "transforms"
	sourceFieldKey = "sourceField"
	targetFieldKey = "targetField"
	kindKey        = "transform"
)

// Declarations reads the transforms declared in container's metadata. A
// container without metadata, or metadata without transforms, declares none.
// Every declaration must name a transform, a source field and a target field,
// and the target may be neither the identity field nor the related field.
func Declarations(typeName string, container *core.Object, cfg core.Config) ([]core.Transformation, error) {
	rawMeta, ok := container.Get(cfg.MetadataKey)
	if !ok || rawMeta == nil {
		return nil, nil
	}
	meta, ok := rawMeta.(*core.Object)
	if !ok {
		return nil, &core.Error{Kind: core.ErrInvalidTransform, Type: typeName, Field: cfg.MetadataKey, Detail: "metadata is not an object"}
	}
	rawList, ok := meta.Get(transformsKey)
	if !ok || rawList == nil {
		return nil, nil
	}
	list, ok := rawList.([]any)
	if !ok {
		return nil, &core.Error{Kind: core.ErrInvalidTransform, Type: typeName, Field: transformsKey, Detail: "transforms is not a sequence"}
	}

	out := make([]core.Transformation, 0, len(list))
	for i, item := range list {
		decl, ok := item.(*core.Object)
		if !ok {
			return nil, &core.Error{Kind: core.ErrInvalidTransform, Type: typeName, Detail: fmt.Sprintf("transform #%d is not an object", i)}
		}
		var missing []string
		get := func(key string) string {
			v, _ := decl.Get(key)
			s, ok := v.(string)
			if !ok || s == "" {
				missing = append(missing, key)
			}
			return s
		}
		t := core.Transformation{
			Kind:        get(kindKey),
			SourceField: get(sourceFieldKey),
			TargetField: get(targetFieldKey),
		}
		if len(missing) > 0 {
			return nil, &core.Error{
				Kind:   core.ErrInvalidTransform,
				Type:   typeName,
				Detail: fmt.Sprintf("transform #%d is missing %s", i, strings.Join(missing, ", ")),
			}
		}
		// The identity is already indexed and related is rebuilt by hydration.
		if t.TargetField == core.RelatedField || t.TargetField == cfg.IDKey {
			return nil, &core.Error{
				Kind:   core.ErrReservedField,
				Type:   typeName,
				Field:  t.TargetField,
				Detail: fmt.Sprintf("transform #%d cannot target a reserved field", i),
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// Stats summarizes one Apply pass.
type Stats struct {
	Applied int // values written
}

// Apply runs every declared transform over every record of every type, in
// registration order. Records lacking the source field are skipped. The pass
// rewrites target fields from source fields, so running it again over
// unchanged records yields the same state.
func Apply(reg core.Registry, transforms *Registry) (Stats, error) {
	var stats Stats
	for _, name := range reg.Types() {
		coll, err := reg.TypeStore(name)
		if err != nil {
			return stats, err
		}
		records := coll.Records()
		for _, decl := range coll.Transforms() {
			fn, ok := transforms.Lookup(decl.Kind)
			for _, rec := range records {
				src, has := rec.Get(decl.SourceField)
				if !has {
					continue
				}
				if !ok {
					return stats, &core.Error{
						Kind:   core.ErrUnregisteredTransform,
						Type:   name,
						Field:  decl.SourceField,
						Detail: fmt.Sprintf("transform %q", decl.Kind),
					}
				}
				val, err := fn(src)
				if err != nil {
					return stats, &core.Error{
						Kind:   core.ErrTransformFailed,
						Type:   name,
						Field:  decl.SourceField,
						Detail: fmt.Sprintf("%s: %v", decl.Kind, err),
					}
				}
				rec.Set(decl.TargetField, val)
				stats.Applied++
			}
		}
	}
	return stats, nil
}
