package linking_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/silt/pkg/core"
	"github.com/aretw0/silt/pkg/linking"
)

func record(kv ...any) *core.Record {
	o := core.NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1])
	}
	return core.NewRecord(o)
}

func TestInfer_NamingShapes(t *testing.T) {
	rec := record(
		"_user", int64(1),
		"_tag_s", []any{"a", "b"},
		"_start_day", "d1",
		"plain", "ignored",
		"_k", "x",
	)

	defs, err := linking.Infer(rec, core.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Equal(t, core.RelationshipDefinition{
		Field: "_user", Cardinality: core.OneToOne, TargetType: "user", Property: "user", Value: int64(1),
	}, defs[0])
	assert.Equal(t, core.RelationshipDefinition{
		Field: "_tag_s", Cardinality: core.OneToMany, TargetType: "tag", Property: "tags", Value: []any{"a", "b"},
	}, defs[1])
	assert.Equal(t, core.RelationshipDefinition{
		Field: "_start_day", Cardinality: core.OneToOne, TargetType: "day", Property: "startDay", Value: "d1",
	}, defs[2])
}

func TestInfer_StopsAtIdentity(t *testing.T) {
	rec := record("_user", int64(1), "_K", "x", "_tag", "late")

	defs, err := linking.Infer(rec, core.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "_user", defs[0].Field)
}

func TestInfer_NoLinks(t *testing.T) {
	defs, err := linking.Infer(record("_k", 1, "_user", 2), core.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestInfer_InvalidNames(t *testing.T) {
	tests := []struct {
		field string
		kind  error
	}{
		{"_a_b_c", core.ErrInvalidLinkField},
		{"_", core.ErrInvalidLinkField},
		{"__user", core.ErrInvalidLinkField},
		{"_related", core.ErrReservedField},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := linking.Infer(record(tt.field, 1, "_k", 1), core.DefaultConfig())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestInfer_StrictEmptyRecord(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Mode = core.ModeStrict

	_, err := linking.Infer(record(), cfg)
	assert.True(t, errors.Is(err, core.ErrShape))

	defs, err := linking.Infer(record(), core.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, defs)
}
