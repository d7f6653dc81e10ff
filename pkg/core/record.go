package core

import (
	"encoding/json"
	"strings"
)

// RelatedField is the reserved field name under which back-references are
// exposed. Input records must not carry it.
const RelatedField = "related"

// Ref points at a record by type name and normalized key. Links between
// records are stored as Refs and resolved through the owning registry, so
// records never own each other.
type Ref struct {
	Type string `json:"type"`
	Key  any    `json:"key"`
}

// String renders the ref as type:key.
func (r Ref) String() string {
	return r.Type + ":" + FormatKey(r.Key)
}

// Record is one item of a Collection: an ordered set of fields plus the
// back-reference buckets written by hydration.
type Record struct {
	fields  *Object
	related *Object // source type -> []Ref
}

// NewRecord wraps fields as a Record. The Object is used as-is, not copied.
func NewRecord(fields *Object) *Record {
	if fields == nil {
		fields = NewObject()
	}
	return &Record{fields: fields}
}

// RecordFrom builds a Record from a Go map; keys are ordered alphabetically.
func RecordFrom(fields map[string]any) *Record {
	if obj, ok := Normalize(fields).(*Object); ok {
		return NewRecord(obj)
	}
	return NewRecord(nil)
}

// Get returns a field value.
func (r *Record) Get(field string) (any, bool) {
	return r.fields.Get(field)
}

// Set writes a field, appending it when new.
func (r *Record) Set(field string, value any) {
	r.fields.Set(field, value)
}

// Has reports whether the record carries field.
func (r *Record) Has(field string) bool {
	return r.fields.Has(field)
}

// Fields returns the field names in declaration order.
func (r *Record) Fields() []string {
	return r.fields.Keys()
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Object exposes the underlying field set.
func (r *Record) Object() *Object {
	return r.fields
}

// Related returns the back-references pushed by records of sourceType.
// The type name is matched case-insensitively.
func (r *Record) Related(sourceType string) []Ref {
	if r.related == nil {
		return nil
	}
	for _, k := range r.related.Keys() {
		if strings.EqualFold(k, sourceType) {
			v, _ := r.related.Get(k)
			refs := v.([]Ref)
			out := make([]Ref, len(refs))
			copy(out, refs)
			return out
		}
	}
	return nil
}

// RelatedTypes lists the source types that reference this record, in the
// order their first back-reference was recorded.
func (r *Record) RelatedTypes() []string {
	if r.related == nil {
		return nil
	}
	return r.related.Keys()
}

// ResetRelated drops every back-reference. Hydration calls it before
// rebuilding the buckets so repeated passes never duplicate entries.
func (r *Record) ResetRelated() {
	r.related = nil
}

// AddRelated appends a back-reference from a record of sourceType.
func (r *Record) AddRelated(sourceType string, ref Ref) {
	if r.related == nil {
		r.related = NewObject()
	}
	var refs []Ref
	if v, ok := r.related.Get(sourceType); ok {
		refs = v.([]Ref)
	}
	r.related.Set(sourceType, append(refs, ref))
}

// MarshalJSON encodes the fields in order followed by the related buckets.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r.related == nil || r.related.Len() == 0 {
		return json.Marshal(r.fields)
	}
	out := NewObject()
	for _, k := range r.fields.Keys() {
		v, _ := r.fields.Get(k)
		out.Set(k, v)
	}
	out.Set(RelatedField, r.related)
	return json.Marshal(out)
}
