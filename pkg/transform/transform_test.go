package transform_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/silt/pkg/core"
	"github.com/aretw0/silt/pkg/transform"
)

// memRegistry is a minimal core.Registry for exercising Apply in isolation.
type memRegistry struct {
	names []string
	colls map[string]*core.Collection
}

func newMemRegistry() *memRegistry {
	return &memRegistry{colls: make(map[string]*core.Collection)}
}

func (m *memRegistry) RegisterType(name string, tr []core.Transformation) (*core.Collection, error) {
	c := core.NewCollection(name, "_k", tr)
	m.names = append(m.names, name)
	m.colls[strings.ToLower(name)] = c
	return c, nil
}

func (m *memRegistry) TypeStore(name string) (*core.Collection, error) {
	c, ok := m.colls[strings.ToLower(name)]
	if !ok {
		return nil, &core.Error{Kind: core.ErrTypeNotFound, Type: name}
	}
	return c, nil
}

func (m *memRegistry) HasType(name string) bool {
	_, ok := m.colls[strings.ToLower(name)]
	return ok
}

func (m *memRegistry) Types() []string { return m.names }

func container(t *testing.T, transforms ...map[string]any) *core.Object {
	t.Helper()
	list := make([]any, len(transforms))
	for i, tr := range transforms {
		list[i] = tr
	}
	obj, ok := core.Normalize(map[string]any{
		"_metadata": map[string]any{"transforms": list},
		"data":      []any{},
	}).(*core.Object)
	require.True(t, ok)
	return obj
}

func TestDeclarations(t *testing.T) {
	cfg := core.DefaultConfig()

	t.Run("valid", func(t *testing.T) {
		decls, err := transform.Declarations("type1", container(t, map[string]any{
			"sourceField": "sf", "targetField": "date", "transform": "date",
		}), cfg)
		require.NoError(t, err)
		assert.Equal(t, []core.Transformation{{SourceField: "sf", TargetField: "date", Kind: "date"}}, decls)
	})

	t.Run("no metadata", func(t *testing.T) {
		obj := core.NewObject()
		obj.Set("data", []any{})
		decls, err := transform.Declarations("type1", obj, cfg)
		require.NoError(t, err)
		assert.Empty(t, decls)
	})

	t.Run("missing transform kind", func(t *testing.T) {
		_, err := transform.Declarations("type1", container(t, map[string]any{
			"sourceField": "sf", "targetField": "tf", "type": "nonsense",
		}), cfg)
		require.ErrorIs(t, err, core.ErrInvalidTransform)
		assert.Contains(t, err.Error(), "transform")
		assert.Contains(t, err.Error(), "type1")
	})

	t.Run("transforms not a sequence", func(t *testing.T) {
		obj := core.Normalize(map[string]any{
			"_metadata": map[string]any{"transforms": "date"},
		}).(*core.Object)
		_, err := transform.Declarations("type1", obj, cfg)
		require.ErrorIs(t, err, core.ErrInvalidTransform)
	})

	t.Run("empty source field", func(t *testing.T) {
		_, err := transform.Declarations("type1", container(t, map[string]any{
			"sourceField": "", "targetField": "tf", "transform": "date",
		}), cfg)
		require.ErrorIs(t, err, core.ErrInvalidTransform)
	})

	for _, target := range []string{core.RelatedField, cfg.IDKey} {
		t.Run("target "+target+" is reserved", func(t *testing.T) {
			_, err := transform.Declarations("day", container(t, map[string]any{
				"sourceField": "when", "targetField": target, "transform": "date",
			}), cfg)
			require.ErrorIs(t, err, core.ErrReservedField)
			assert.Contains(t, err.Error(), "day")
		})
	}
}

func TestApply_Date(t *testing.T) {
	reg := newMemRegistry()
	coll, _ := reg.RegisterType("type1", []core.Transformation{{SourceField: "sf", TargetField: "date", Kind: "date"}})
	for i, v := range []any{"2017-05-01", "2017-06-01T10:00:00Z", "2017-07-01 08:30:00"} {
		_, err := coll.Add(core.RecordFrom(map[string]any{"_k": i, "sf": v}))
		require.NoError(t, err)
	}
	_, _ = coll.Add(core.RecordFrom(map[string]any{"_k": 99}))

	stats, err := transform.Apply(reg, transform.DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Applied)

	for _, rec := range coll.Records()[:3] {
		v, ok := rec.Get("date")
		require.True(t, ok)
		assert.Equal(t, 2017, v.(time.Time).Year())
	}
	assert.False(t, coll.Records()[3].Has("date"), "records without the source field are skipped")

	// a second pass leaves the same values behind
	_, err = transform.Apply(reg, transform.DefaultRegistry())
	require.NoError(t, err)
	v, _ := coll.Records()[0].Get("date")
	assert.Equal(t, time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC), v)
}

func TestApply_Unregistered(t *testing.T) {
	reg := newMemRegistry()
	coll, _ := reg.RegisterType("type1", []core.Transformation{{SourceField: "sf", TargetField: "tf", Kind: "nonsense"}})
	_, _ = coll.Add(core.RecordFrom(map[string]any{"_k": 1}))

	_, err := transform.Apply(reg, transform.DefaultRegistry())
	require.NoError(t, err, "no record carries the source field yet")

	_, _ = coll.Add(core.RecordFrom(map[string]any{"_k": 2, "sf": 1234}))
	_, err = transform.Apply(reg, transform.DefaultRegistry())
	require.ErrorIs(t, err, core.ErrUnregisteredTransform)

	var cerr *core.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "type1", cerr.Type)
	assert.Equal(t, "sf", cerr.Field)
}

func TestApply_CustomAndFailure(t *testing.T) {
	reg := newMemRegistry()
	coll, _ := reg.RegisterType("t", []core.Transformation{
		{SourceField: "name", TargetField: "upper", Kind: "upper"},
		{SourceField: "when", TargetField: "at", Kind: "date"},
	})
	_, _ = coll.Add(core.RecordFrom(map[string]any{"_k": 1, "name": "ada", "when": "not a date"}))

	funcs := transform.DefaultRegistry()
	require.NoError(t, funcs.Register("upper", func(v any) (any, error) {
		return strings.ToUpper(v.(string)), nil
	}))
	assert.Equal(t, []string{"date", "upper"}, funcs.Kinds())

	_, err := transform.Apply(reg, funcs)
	require.ErrorIs(t, err, core.ErrTransformFailed)
	upper, _ := coll.Records()[0].Get("upper")
	assert.Equal(t, "ADA", upper, "transforms before the failure were applied")
}

func TestRegistry_Register(t *testing.T) {
	r := transform.NewRegistry()
	assert.Error(t, r.Register("", transform.ParseDate))
	assert.Error(t, r.Register("x", nil))
	_, ok := r.Lookup("date")
	assert.False(t, ok)
}
