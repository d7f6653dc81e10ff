// Package linking infers relationships from field naming conventions and
// resolves them into references between records.
//
// A field whose name starts with an underscore is a link:
//
//	_user: 1            one-to-one, target type "user", property "user"
//	_user_s: [1, 2]     one-to-many, target type "user", property "users"
//	_start_day: "d1"    one-to-one, target type "day", property "startDay"
package linking

import (
	"fmt"
	"strings"

	"github.com/aretw0/silt/pkg/core"
)

const manySuffix = "_s"

// Infer extracts the relationship candidates of rec. Fields are scanned in
// declaration order and scanning stops at the identity field: links declared
// after it are not considered.
func Infer(rec *core.Record, cfg core.Config) ([]core.RelationshipDefinition, error) {
	if cfg.Strict() && rec.Len() == 0 {
		return nil, core.Errorf(core.ErrShape, "", "cannot infer relationships from an empty record")
	}

	var defs []core.RelationshipDefinition
	for _, field := range rec.Fields() {
		if strings.EqualFold(field, cfg.IDKey) {
			break
		}
		if !strings.HasPrefix(field, "_") {
			continue
		}
		def, err := parseField(field)
		if err != nil {
			return nil, err
		}
		def.Value, _ = rec.Get(field)
		defs = append(defs, def)
	}
	return defs, nil
}

func parseField(field string) (core.RelationshipDefinition, error) {
	def := core.RelationshipDefinition{Field: field, Cardinality: core.OneToOne}
	if strings.HasSuffix(field, manySuffix) {
		def.Cardinality = core.OneToMany
	}

	parts := strings.Split(field, "_")
	for _, p := range parts[1:] {
		if p == "" {
			return def, &core.Error{Kind: core.ErrInvalidLinkField, Field: field, Detail: "empty name segment"}
		}
	}
	switch {
	case len(parts) == 2:
		def.TargetType = parts[1]
		def.Property = parts[1]
	case len(parts) == 3 && def.Cardinality == core.OneToMany:
		def.TargetType = parts[1]
		def.Property = parts[1] + "s"
	case len(parts) == 3:
		def.TargetType = parts[2]
		def.Property = core.CamelCase(parts[1], parts[2])
	default:
		return def, &core.Error{Kind: core.ErrInvalidLinkField, Field: field, Detail: fmt.Sprintf("%d name segments", len(parts))}
	}
	if def.Property == core.RelatedField {
		return def, &core.Error{Kind: core.ErrReservedField, Field: field, Detail: "link property would overwrite " + core.RelatedField}
	}
	return def, nil
}
