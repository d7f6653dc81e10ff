package core

// Cardinality is the shape of a relationship.
type Cardinality int

const (
	OneToOne Cardinality = iota
	OneToMany
)

func (c Cardinality) String() string {
	switch c {
	case OneToOne:
		return "one-to-one"
	case OneToMany:
		return "one-to-many"
	default:
		return "unknown"
	}
}

// RelationshipDefinition describes one link candidate found on a record.
// It is derived from field names and never stored.
type RelationshipDefinition struct {
	Field       string // originating field, e.g. "_start_day"
	Cardinality Cardinality
	TargetType  string // type the value(s) resolve against
	Property    string // field the resolved link is written to
	Value       any    // raw key, or sequence of keys for one-to-many
}

// Transformation declares a value conversion for one type.
type Transformation struct {
	SourceField string `json:"sourceField" yaml:"sourceField"`
	TargetField string `json:"targetField" yaml:"targetField"`
	Kind        string `json:"transform" yaml:"transform"`
}
