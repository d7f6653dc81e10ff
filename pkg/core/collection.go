package core

// Collection holds the records of one inferred type, keyed by normalized
// identity value and kept in insertion order.
type Collection struct {
	name       string
	idKey      string
	transforms []Transformation
	keys       []any
	records    map[any]*Record
}

// NewCollection creates an empty collection. idKey names the identity field
// read from records on Add.
func NewCollection(name, idKey string, transforms []Transformation) *Collection {
	return &Collection{
		name:       name,
		idKey:      idKey,
		transforms: transforms,
		records:    make(map[any]*Record),
	}
}

// Name returns the type name as originally registered.
func (c *Collection) Name() string {
	return c.name
}

// IDKey returns the identity field name.
func (c *Collection) IDKey() string {
	return c.idKey
}

// Transforms returns the transforms declared for this type.
func (c *Collection) Transforms() []Transformation {
	out := make([]Transformation, len(c.transforms))
	copy(out, c.transforms)
	return out
}

// Add inserts rec under its normalized identity value. It fails when the
// identity is missing, not a string or number, or already present.
func (c *Collection) Add(rec *Record) (*Collection, error) {
	raw, ok := rec.Get(c.idKey)
	if !ok {
		return c, &Error{Kind: ErrShape, Type: c.name, Field: c.idKey, Detail: "record has no identity field"}
	}
	key, err := NormalizeKey(raw)
	if err != nil {
		return c, &Error{Kind: ErrShape, Type: c.name, Field: c.idKey, Detail: err.Error()}
	}
	if _, exists := c.records[key]; exists {
		return c, &Error{Kind: ErrDuplicateKey, Type: c.name, Key: raw}
	}
	c.keys = append(c.keys, key)
	c.records[key] = rec
	return c, nil
}

// Get returns the record stored under key (normalized before lookup).
func (c *Collection) Get(key any) (*Record, error) {
	norm, err := NormalizeKey(key)
	if err != nil {
		return nil, &Error{Kind: ErrRecordNotFound, Type: c.name, Key: key, Detail: err.Error()}
	}
	rec, ok := c.records[norm]
	if !ok {
		return nil, &Error{Kind: ErrRecordNotFound, Type: c.name, Key: key}
	}
	return rec, nil
}

// Has reports whether a record is stored under key.
func (c *Collection) Has(key any) bool {
	norm, err := NormalizeKey(key)
	if err != nil {
		return false
	}
	_, ok := c.records[norm]
	return ok
}

// Count returns the number of records.
func (c *Collection) Count() int {
	return len(c.keys)
}

// Keys returns the normalized identity values in insertion order.
func (c *Collection) Keys() []any {
	out := make([]any, len(c.keys))
	copy(out, c.keys)
	return out
}

// Records returns every record in insertion order.
func (c *Collection) Records() []*Record {
	out := make([]*Record, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.records[k])
	}
	return out
}

// Query returns the records matching filter in insertion order. A nil or
// empty filter returns every record.
func (c *Collection) Query(filter map[string]any) []*Record {
	if len(filter) == 0 {
		return c.Records()
	}
	out := make([]*Record, 0)
	for _, k := range c.keys {
		if rec := c.records[k]; Match(rec, filter) {
			out = append(out, rec)
		}
	}
	return out
}
