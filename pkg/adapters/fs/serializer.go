package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/silt/pkg/core"
)

// Decoder reads one input document into the ordered form the loader walks:
// objects become *core.Object, sequences []any, scalars stay scalars.
type Decoder interface {
	Decode(r io.Reader) (any, error)
}

// DefaultDecoders returns the standard set of decoders, keyed by extension.
// useNumber is passed to the JSON decoder.
func DefaultDecoders(useNumber bool) map[string]Decoder {
	return map[string]Decoder{
		".json": NewJSONDecoder(useNumber),
		".yaml": NewYAMLDecoder(),
		".yml":  NewYAMLDecoder(),
	}
}

// --- JSON Decoder ---

// JSONDecoder reads JSON while keeping object field order.
type JSONDecoder struct {
	// UseNumber keeps numbers as json.Number to avoid precision loss.
	UseNumber bool
}

// NewJSONDecoder creates a new JSON decoder.
// Without useNumber numbers become int64 when integral and float64 otherwise.
func NewJSONDecoder(useNumber bool) *JSONDecoder {
	return &JSONDecoder{UseNumber: useNumber}
}

func (d *JSONDecoder) Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := d.value(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid json: unexpected data after top-level value")
	}
	return v, nil
}

func (d *JSONDecoder) value(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := core.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T", keyTok)
				}
				val, err := d.value(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				val, err := d.value(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		if d.UseNumber {
			return t, nil
		}
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

// --- YAML Decoder ---

// YAMLDecoder reads YAML through yaml.Node so mapping order survives.
// Since JSON is valid YAML, it also accepts JSON documents.
type YAMLDecoder struct{}

// NewYAMLDecoder creates a new YAML decoder.
func NewYAMLDecoder() *YAMLDecoder {
	return &YAMLDecoder{}
}

func (d *YAMLDecoder) Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	v, err := fromNode(&doc)
	if err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return v, nil
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.MappingNode:
		obj := core.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Tag == "!!merge" {
				if err := merge(obj, v); err != nil {
					return nil, err
				}
				continue
			}
			val, err := fromNode(v)
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, val)
		}
		return obj, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if i, ok := v.(int); ok {
			return int64(i), nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// merge applies a `<<` merge key: fields from the referenced mapping(s) are
// added unless the mapping already defines them.
func merge(dst *core.Object, n *yaml.Node) error {
	src, err := fromNode(n)
	if err != nil {
		return err
	}
	var sources []*core.Object
	switch s := src.(type) {
	case *core.Object:
		sources = append(sources, s)
	case []any:
		for _, item := range s {
			obj, ok := item.(*core.Object)
			if !ok {
				return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
			}
			sources = append(sources, obj)
		}
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", n.Line)
	}
	for _, s := range sources {
		for _, k := range s.Keys() {
			if !dst.Has(k) {
				v, _ := s.Get(k)
				dst.Set(k, v)
			}
		}
	}
	return nil
}
