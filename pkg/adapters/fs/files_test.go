package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/silt/pkg/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.json"), `{}`)
	writeFile(t, filepath.Join(dir, "nested", "b.json"), `{}`)
	writeFile(t, filepath.Join(dir, "nested", "c.yaml"), `a: 1`)

	files, err := Expand(filepath.Join(dir, "**", "*.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "nested", "b.json"),
	}, files)

	t.Run("Deduplicates", func(t *testing.T) {
		files, err := Expand(filepath.Join(dir, "a.json"), filepath.Join(dir, "*.json"))
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("NoMatch", func(t *testing.T) {
		_, err := Expand(filepath.Join(dir, "*.toml"))
		assert.Error(t, err)
	})

	t.Run("DirectoriesSkipped", func(t *testing.T) {
		files, err := Expand(filepath.Join(dir, "*"))
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.json")}, files)
	})
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "data.json")
	writeFile(t, jsonPath, `{"b": 1, "a": 2}`)

	v, err := DecodeFile(jsonPath, DefaultDecoders(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, v.(*core.Object).Keys())

	t.Run("UnknownExtension", func(t *testing.T) {
		p := filepath.Join(dir, "data.toml")
		writeFile(t, p, `a = 1`)
		_, err := DecodeFile(p, DefaultDecoders(false))
		assert.Error(t, err)
	})

	t.Run("ErrorNamesFile", func(t *testing.T) {
		p := filepath.Join(dir, "broken.json")
		writeFile(t, p, `{`)
		_, err := DecodeFile(p, DefaultDecoders(false))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.json")
	})
}
