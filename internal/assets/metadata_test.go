package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahsyx/CardioRetina/internal/assets"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadMetadata(t *testing.T) {
	dir := t.TempDir()

	t.Run("full record", func(t *testing.T) {
		path := writeFile(t, dir, "full.json",
			`{"version":"1.2.0","trained_at":"2025-11-03","classes":["low risk","high risk"],"recall":0.885,"output_shape":[1,1]}`)
		meta, err := assets.ReadMetadata(path)
		require.NoError(t, err)
		assert.Equal(t, "1.2.0", meta.Version)
		assert.Equal(t, []string{"low risk", "high risk"}, meta.Classes)
		assert.Equal(t, []int64{1, 1}, meta.OutputShape)
	})

	t.Run("missing keys are advisory", func(t *testing.T) {
		path := writeFile(t, dir, "sparse.json", `{"version":"0.1.0"}`)
		meta, err := assets.ReadMetadata(path)
		require.NoError(t, err)
		assert.Empty(t, meta.Classes)
		assert.Zero(t, meta.Recall)
		assert.Empty(t, meta.OutputShape)
	})

	t.Run("empty object", func(t *testing.T) {
		path := writeFile(t, dir, "empty.json", `{}`)
		meta, err := assets.ReadMetadata(path)
		require.NoError(t, err)
		assert.NotNil(t, meta)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := assets.ReadMetadata(filepath.Join(dir, "absent.json"))
		var loadErr *assets.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, assets.StageMetadata, loadErr.Stage)
	})

	t.Run("malformed record", func(t *testing.T) {
		path := writeFile(t, dir, "broken.json", `{"version": `)
		_, err := assets.ReadMetadata(path)
		var loadErr *assets.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, assets.StageMetadata, loadErr.Stage)
	})
}
