package ingest

import (
	"fmt"

	"github.com/aretw0/silt/pkg/core"
	"github.com/aretw0/silt/pkg/transform"
)

// Stats summarizes one Load call.
type Stats struct {
	Containers int // collections registered
	Records    int // records inserted
}

// Load walks raw depth-first and fills reg. The field name at each level is
// the type name candidate one level down:
//
//   - a data container registers a collection under that name and inserts
//     every element of its data sequence;
//   - a plain object is walked field by field;
//   - a data instance is inserted into the already registered collection of
//     that name;
//   - values are ignored.
//
// Records are not walked. Load stops at the first error and leaves whatever
// was registered so far in place.
func Load(reg core.Registry, raw any, cfg core.Config) (Stats, error) {
	l := &loader{reg: reg, cfg: cfg}
	root := core.Normalize(raw)

	kind, err := Classify(root, cfg)
	if err != nil {
		return l.stats, err
	}
	if kind == DataInstance || kind == DataContainer {
		return l.stats, core.Errorf(core.ErrShape, "", "root node is a %s but has no field name to use as its type", kind)
	}
	return l.stats, l.walk(root, "")
}

type loader struct {
	reg   core.Registry
	cfg   core.Config
	stats Stats
}

func (l *loader) walk(node any, typeName string) error {
	kind, err := Classify(node, l.cfg)
	if err != nil {
		if cerr, ok := err.(*core.Error); ok && cerr.Field == "" {
			cerr.Field = typeName
		}
		return err
	}

	switch kind {
	case Object:
		obj := node.(*core.Object)
		for _, field := range obj.Keys() {
			child, _ := obj.Get(field)
			if err := l.walk(child, field); err != nil {
				return err
			}
		}
	case DataContainer:
		return l.container(node.(*core.Object), typeName)
	case DataInstance:
		return l.instance(node.(*core.Object), typeName)
	}
	return nil
}

func (l *loader) container(node *core.Object, typeName string) error {
	transforms, err := transform.Declarations(typeName, node, l.cfg)
	if err != nil {
		return err
	}

	// Validate the whole data sequence before registering, so a malformed
	// container leaves no half-filled collection behind.
	var items []*core.Object
	if raw, ok := node.Get(l.cfg.DataKey); ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return &core.Error{Kind: core.ErrShape, Type: typeName, Field: l.cfg.DataKey, Detail: fmt.Sprintf("data field is not a sequence (got %T)", raw)}
		}
		items = make([]*core.Object, 0, len(list))
		for i, item := range list {
			obj, ok := item.(*core.Object)
			if !ok || obj == nil {
				return &core.Error{Kind: core.ErrShape, Type: typeName, Field: l.cfg.DataKey, Detail: fmt.Sprintf("element #%d is not an object (got %T)", i, item)}
			}
			items = append(items, obj)
		}
	}

	coll, err := l.reg.RegisterType(typeName, transforms)
	if err != nil {
		return err
	}
	l.stats.Containers++

	var fallback int64
	for _, obj := range items {
		if id, ok := obj.Get(l.cfg.IDKey); !ok || id == nil {
			obj.Set(l.cfg.IDKey, fallback)
			fallback++
		}
		if _, err := coll.Add(core.NewRecord(obj)); err != nil {
			return err
		}
		l.stats.Records++
	}
	return nil
}

func (l *loader) instance(node *core.Object, typeName string) error {
	if typeName == "" {
		return core.Errorf(core.ErrShape, "", "data instance without a type name")
	}
	coll, err := l.reg.TypeStore(typeName)
	if err != nil {
		return fmt.Errorf("data instance found outside a registered type: %w", err)
	}
	if _, err := coll.Add(core.NewRecord(node)); err != nil {
		return err
	}
	l.stats.Records++
	return nil
}
