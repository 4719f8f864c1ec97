package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahsyx/CardioRetina/internal/assets"
)

func TestFallbackArchitecture_IsValid(t *testing.T) {
	arch := assets.FallbackArchitecture("models/fallback_arch.onnx")
	require.NoError(t, arch.Validate())

	assert.Equal(t, "mobilenet_v2", arch.Backbone)
	assert.Equal(t, "global_average", arch.Pooling)
	assert.Equal(t, 1, arch.DenseUnits)
	assert.Equal(t, "sigmoid", arch.Activation)
	assert.Equal(t, []int64{1, 224, 224, 3}, arch.InputShape)
	assert.Equal(t, []int64{1, 1}, arch.OutputShape)
}

func TestArchitecture_Validate(t *testing.T) {
	valid := assets.FallbackArchitecture("tpl.onnx")

	tests := []struct {
		name   string
		mutate func(*assets.Architecture)
	}{
		{"missing name", func(a *assets.Architecture) { a.Name = "" }},
		{"zero version", func(a *assets.Architecture) { a.Version = 0 }},
		{"missing backbone", func(a *assets.Architecture) { a.Backbone = "" }},
		{"no dense units", func(a *assets.Architecture) { a.DenseUnits = 0 }},
		{"missing activation", func(a *assets.Architecture) { a.Activation = "" }},
		{"missing template", func(a *assets.Architecture) { a.TemplatePath = "" }},
		{"missing weights name", func(a *assets.Architecture) { a.WeightsName = "" }},
		{"missing input shape", func(a *assets.Architecture) { a.InputShape = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arch := valid
			tt.mutate(&arch)
			assert.Error(t, arch.Validate())
		})
	}
}

func TestArchitecture_Stage(t *testing.T) {
	src := t.TempDir()
	template := writeFile(t, src, "fallback_arch.onnx", "graph-template-bytes")
	weights := writeFile(t, src, "cardio_retina.onnx", "bare-weight-values")

	arch := assets.FallbackArchitecture(template)
	dst := t.TempDir()

	graphPath, err := arch.Stage(dst, weights)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dst, "fallback_arch.onnx"), graphPath)

	staged, err := os.ReadFile(graphPath)
	require.NoError(t, err)
	assert.Equal(t, "graph-template-bytes", string(staged))

	// Weight values land under the external-data name the template references.
	stagedWeights, err := os.ReadFile(filepath.Join(dst, arch.WeightsName))
	require.NoError(t, err)
	assert.Equal(t, "bare-weight-values", string(stagedWeights))
}

func TestArchitecture_StageMissingInputs(t *testing.T) {
	dst := t.TempDir()

	t.Run("missing template", func(t *testing.T) {
		arch := assets.FallbackArchitecture(filepath.Join(dst, "no_such_template.onnx"))
		weights := writeFile(t, dst, "weights.bin", "w")
		_, err := arch.Stage(dst, weights)
		assert.Error(t, err)
	})

	t.Run("missing weights", func(t *testing.T) {
		template := writeFile(t, dst, "tpl.onnx", "g")
		arch := assets.FallbackArchitecture(template)
		_, err := arch.Stage(dst, filepath.Join(dst, "no_such_weights.bin"))
		assert.Error(t, err)
	})

	t.Run("invalid descriptor", func(t *testing.T) {
		arch := assets.FallbackArchitecture("")
		_, err := arch.Stage(dst, "whatever.bin")
		assert.Error(t, err)
	})
}
