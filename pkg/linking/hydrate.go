package linking

import (
	"fmt"

	"github.com/aretw0/silt/pkg/core"
)

// Stats summarizes one Hydrate pass.
type Stats struct {
	Records int // records scanned
	Links   int // references resolved
}

// Hydrate resolves the relationship fields of every record in reg. For each
// resolved link the source record gets a Ref (or []Ref for one-to-many)
// under the link property, and the target record gets a back-reference in
// its related bucket for the source type.
//
// Back-reference buckets are rebuilt from scratch on every pass, so calling
// Hydrate again over an unchanged registry produces the same state.
func Hydrate(reg core.Registry, cfg core.Config) (Stats, error) {
	var stats Stats

	type entry struct {
		typeName string
		records  []*core.Record
	}
	var entries []entry
	for _, name := range reg.Types() {
		coll, err := reg.TypeStore(name)
		if err != nil {
			return stats, err
		}
		entries = append(entries, entry{typeName: coll.Name(), records: coll.Records()})
	}

	// Reject caller supplied back-reference fields before touching anything.
	for _, e := range entries {
		for _, rec := range e.records {
			if rec.Has(core.RelatedField) {
				id, _ := rec.Get(cfg.IDKey)
				return stats, &core.Error{
					Kind:   core.ErrReservedField,
					Type:   e.typeName,
					Key:    id,
					Field:  core.RelatedField,
					Detail: "field is reserved for relationships",
				}
			}
		}
	}

	for _, e := range entries {
		for _, rec := range e.records {
			rec.ResetRelated()
		}
	}

	for _, e := range entries {
		for _, rec := range e.records {
			stats.Records++
			defs, err := Infer(rec, cfg)
			if err != nil {
				if cerr, ok := err.(*core.Error); ok && cerr.Type == "" {
					cerr.Type = e.typeName
				}
				return stats, err
			}
			for _, def := range defs {
				n, err := link(reg, cfg, e.typeName, rec, def)
				if err != nil {
					return stats, err
				}
				stats.Links += n
			}
		}
	}
	return stats, nil
}

func link(reg core.Registry, cfg core.Config, sourceType string, rec *core.Record, def core.RelationshipDefinition) (int, error) {
	srcID, _ := rec.Get(cfg.IDKey)
	srcKey, err := core.NormalizeKey(srcID)
	if err != nil {
		return 0, &core.Error{Kind: core.ErrShape, Type: sourceType, Field: cfg.IDKey, Detail: err.Error()}
	}
	self := core.Ref{Type: sourceType, Key: srcKey}

	unresolved := func(key any, detail string) error {
		return &core.Error{
			Kind:   core.ErrUnresolvedLink,
			Type:   sourceType,
			Field:  def.Property,
			Target: def.TargetType,
			Key:    key,
			Detail: detail,
		}
	}

	target, err := reg.TypeStore(def.TargetType)
	if err != nil {
		return 0, unresolved(def.Value, fmt.Sprintf("type %s is not registered", def.TargetType))
	}

	resolve := func(key any) (core.Ref, *core.Record, error) {
		tr, err := target.Get(key)
		if err != nil {
			return core.Ref{}, nil, unresolved(key, fmt.Sprintf("did not find %s in %s", core.FormatKey(key), target.Name()))
		}
		norm, _ := core.NormalizeKey(key)
		return core.Ref{Type: target.Name(), Key: norm}, tr, nil
	}

	if def.Cardinality == core.OneToOne {
		ref, tr, err := resolve(def.Value)
		if err != nil {
			return 0, err
		}
		rec.Set(def.Property, ref)
		tr.AddRelated(sourceType, self)
		return 1, nil
	}

	keys, ok := def.Value.([]any)
	if !ok {
		return 0, &core.Error{
			Kind:   core.ErrShape,
			Type:   sourceType,
			Field:  def.Field,
			Key:    srcID,
			Detail: fmt.Sprintf("one-to-many relationship value must be a sequence (got %T)", def.Value),
		}
	}
	refs := make([]core.Ref, 0, len(keys))
	targets := make([]*core.Record, 0, len(keys))
	for _, key := range keys {
		ref, tr, err := resolve(key)
		if err != nil {
			return 0, err
		}
		refs = append(refs, ref)
		targets = append(targets, tr)
	}
	rec.Set(def.Property, refs)
	for _, tr := range targets {
		tr.AddRelated(sourceType, self)
	}
	return len(refs), nil
}
