// Package assets loads the trained model artifact and its advisory metadata,
// caching the result for the life of the process.
package assets

import (
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initRuntime() error {
	ortInitOnce.Do(func() {
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// Model is the callable inference asset. It is immutable after construction
// and safe for concurrent use.
type Model interface {
	Predict(input []float32) ([]float32, error)
	Close() error
}

// Asset wraps an ONNX inference session. Tensors are created per call so
// concurrent requests can share one session without locking.
type Asset struct {
	session  *ort.DynamicAdvancedSession
	inShape  []int64
	outShape []int64
}

// Predict runs one forward pass and returns a copy of the raw output values.
func (a *Asset) Predict(input []float32) ([]float32, error) {
	in, err := ort.NewTensor(ort.NewShape(a.inShape...), input)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer in.Destroy()

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(a.outShape...))
	if err != nil {
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	defer out.Destroy()

	if err := a.session.Run([]ort.ArbitraryTensor{in}, []ort.ArbitraryTensor{out}); err != nil {
		return nil, fmt.Errorf("run session: %w", err)
	}

	result := make([]float32, len(out.GetData()))
	copy(result, out.GetData())
	return result, nil
}

// Close releases the underlying session.
func (a *Asset) Close() error {
	if a.session != nil {
		return a.session.Destroy()
	}
	return nil
}

// sessionOpener turns a model file into a ready Asset. Indirection exists so
// the two-tier attempt order can be tested without the native runtime.
type sessionOpener func(path string, meta *Metadata) (*Asset, error)

// Load produces a ready Model from the artifact at modelPath plus the
// metadata record at metaPath. Two encodings are tolerated at modelPath:
// a full self-describing model, tried first, and a bare weights file for the
// fallback architecture. Both attempts failing folds into a single LoadError.
func Load(modelPath, metaPath string, arch Architecture) (Model, *Metadata, error) {
	return loadWith(openSession, modelPath, metaPath, arch)
}

func loadWith(open sessionOpener, modelPath, metaPath string, arch Architecture) (Model, *Metadata, error) {
	meta, err := ReadMetadata(metaPath)
	if err != nil {
		return nil, nil, err
	}

	asset, directErr := open(modelPath, meta)
	if directErr == nil {
		return asset, meta, nil
	}

	asset, fallbackErr := reconstruct(open, modelPath, meta, arch)
	if fallbackErr == nil {
		return asset, meta, nil
	}

	return nil, nil, &LoadError{
		Stage: StageModel,
		Err:   fmt.Errorf("direct load: %v; fallback reconstruction: %w", directErr, fallbackErr),
	}
}

// openSession loads a complete model artifact for inference only; no
// training-mode state is compiled in.
func openSession(path string, meta *Metadata) (*Asset, error) {
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", err)
	}

	inShape := []int64{1, 224, 224, 3}
	if len(meta.InputShape) > 0 {
		inShape = meta.InputShape
	}
	outShape := []int64{1, 1}
	if len(meta.OutputShape) > 0 {
		outShape = meta.OutputShape
	}

	session, err := ort.NewDynamicAdvancedSession(path,
		[]string{"input"}, []string{"output"}, nil)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Asset{
		session:  session,
		inShape:  inShape,
		outShape: outShape,
	}, nil
}

// reconstruct rebuilds the known fallback architecture and loads only the
// numeric weight values from weightsPath into it.
func reconstruct(open sessionOpener, weightsPath string, meta *Metadata, arch Architecture) (*Asset, error) {
	dir, err := os.MkdirTemp("", "cardioretina-fallback-*")
	if err != nil {
		return nil, fmt.Errorf("stage dir: %w", err)
	}
	defer os.RemoveAll(dir)

	graphPath, err := arch.Stage(dir, weightsPath)
	if err != nil {
		return nil, err
	}
	return open(graphPath, meta)
}
