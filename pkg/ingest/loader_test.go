package ingest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/silt/pkg/core"
	"github.com/aretw0/silt/pkg/ingest"
	"github.com/aretw0/silt/pkg/silt"
)

func newRegistry() *silt.Context {
	return silt.NewContext(silt.Settings{})
}

func TestLoad_Containers(t *testing.T) {
	reg := newRegistry()
	raw := obj(
		"users", obj("data", []any{
			obj("_k", "Alice", "age", int64(30)),
			obj("_k", "bob"),
		}),
		"title", "ignored",
		"nested", obj(
			"groups", obj("data", []any{obj("_k", int64(1))}),
		),
	)

	stats, err := ingest.Load(reg, raw, core.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ingest.Stats{Containers: 2, Records: 3}, stats)
	assert.Equal(t, []string{"users", "groups"}, reg.Types())

	users, err := reg.TypeStore("USERS")
	require.NoError(t, err)
	assert.Equal(t, 2, users.Count())
	assert.True(t, users.Has("alice"))

	groups, err := reg.TypeStore("groups")
	require.NoError(t, err)
	assert.True(t, groups.Has(1.0))
}

func TestLoad_FallbackKeys(t *testing.T) {
	reg := newRegistry()
	raw := obj("notes", obj("data", []any{
		obj("text", "a"),
		obj("_k", "x", "text", "b"),
		obj("_k", nil, "text", "c"),
	}))

	_, err := ingest.Load(reg, raw, core.DefaultConfig())
	require.NoError(t, err)

	notes, _ := reg.TypeStore("notes")
	assert.Equal(t, []any{int64(0), "x", int64(1)}, notes.Keys())
}

func TestLoad_FallbackKeyCollision(t *testing.T) {
	reg := newRegistry()
	raw := obj("notes", obj("data", []any{
		obj("_k", int64(0)),
		obj("text", "gets key 0"),
	}))

	_, err := ingest.Load(reg, raw, core.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDuplicateKey))
}

func TestLoad_EmptyContainer(t *testing.T) {
	reg := newRegistry()
	raw := obj("tags", obj("_metadata", obj()))

	stats, err := ingest.Load(reg, raw, core.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Containers)

	tags, err := reg.TypeStore("tags")
	require.NoError(t, err)
	assert.Equal(t, 0, tags.Count())
}

func TestLoad_DataNotSequence(t *testing.T) {
	reg := newRegistry()
	raw := obj("users", obj("data", "nope"))

	_, err := ingest.Load(reg, raw, core.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrShape))
	assert.False(t, reg.HasType("users"), "malformed container must not be registered")
}

func TestLoad_DataElementNotObject(t *testing.T) {
	reg := newRegistry()
	raw := obj("users", obj("data", []any{obj("_k", 1), "stray"}))

	_, err := ingest.Load(reg, raw, core.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrShape))
}

func TestLoad_DuplicateType(t *testing.T) {
	reg := newRegistry()
	raw := obj(
		"users", obj("data", []any{}),
		"more", obj("Users", obj("data", []any{})),
	)

	_, err := ingest.Load(reg, raw, core.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTypeRegistered))
}

func TestLoad_DirectInstance(t *testing.T) {
	reg := newRegistry()
	raw := obj(
		"users", obj("data", []any{obj("_k", "a")}),
		"extra", obj("users", obj("_k", "b", "name", "direct")),
	)

	stats, err := ingest.Load(reg, raw, core.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Records)

	users, _ := reg.TypeStore("users")
	rec, err := users.Get("b")
	require.NoError(t, err)
	name, _ := rec.Get("name")
	assert.Equal(t, "direct", name)
}

func TestLoad_InstanceWithoutType(t *testing.T) {
	reg := newRegistry()
	raw := obj("ghosts", obj("_k", "boo"))

	_, err := ingest.Load(reg, raw, core.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTypeNotFound))
	assert.Contains(t, err.Error(), "outside a registered type")
}

func TestLoad_RootShapes(t *testing.T) {
	cfg := core.DefaultConfig()

	_, err := ingest.Load(newRegistry(), obj("data", []any{}), cfg)
	assert.True(t, errors.Is(err, core.ErrShape))

	_, err = ingest.Load(newRegistry(), obj("_k", 1), cfg)
	assert.True(t, errors.Is(err, core.ErrShape))

	stats, err := ingest.Load(newRegistry(), "just a string", cfg)
	require.NoError(t, err)
	assert.Zero(t, stats.Containers)
}

func TestLoad_StrictAbsentValue(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Mode = core.ModeStrict

	_, err := ingest.Load(newRegistry(), obj("missing", nil), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrShape))

	_, err = ingest.Load(newRegistry(), obj("missing", nil), core.DefaultConfig())
	assert.NoError(t, err)
}

func TestLoad_DoesNotMutateInput(t *testing.T) {
	raw := obj("notes", obj("data", []any{obj("text", "a")}))

	_, err := ingest.Load(newRegistry(), raw, core.DefaultConfig())
	require.NoError(t, err)

	notes, _ := raw.Get("notes")
	data, _ := notes.(*core.Object).Get("data")
	assert.False(t, data.([]any)[0].(*core.Object).Has("_k"))
}
