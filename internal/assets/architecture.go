package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Architecture is an explicit, versioned description of the fallback network
// used when the model file is not a full self-describing artifact. The graph
// template is an architecture-only ONNX file whose initializers point at an
// external data file; Stage pairs it with the bare weight values so a normal
// session can be opened on the result.
type Architecture struct {
	Name        string
	Version     int
	Backbone    string
	Pooling     string
	DropoutRate float64
	DenseUnits  int
	Activation  string

	// TemplatePath locates the architecture-only graph on disk.
	TemplatePath string
	// WeightsName is the external-data file name the template's initializers
	// reference.
	WeightsName string

	InputName   string
	OutputName  string
	InputShape  []int64
	OutputShape []int64
}

// FallbackArchitecture returns the fixed reconstruction target: a MobileNetV2
// backbone without its classification head, global average pooling, dropout
// (inert at inference time), and a single dense sigmoid unit.
func FallbackArchitecture(templatePath string) Architecture {
	return Architecture{
		Name:         "cardio-retina-fallback",
		Version:      1,
		Backbone:     "mobilenet_v2",
		Pooling:      "global_average",
		DropoutRate:  0.3,
		DenseUnits:   1,
		Activation:   "sigmoid",
		TemplatePath: templatePath,
		WeightsName:  "fallback_weights.bin",
		InputName:    "input",
		OutputName:   "output",
		InputShape:   []int64{1, 224, 224, 3},
		OutputShape:  []int64{1, 1},
	}
}

// Validate checks the descriptor is internally complete before the loader
// relies on it.
func (a Architecture) Validate() error {
	switch {
	case a.Name == "" || a.Version < 1:
		return fmt.Errorf("architecture %q v%d: missing identity", a.Name, a.Version)
	case a.Backbone == "" || a.DenseUnits < 1 || a.Activation == "":
		return fmt.Errorf("architecture %q: incomplete topology", a.Name)
	case a.TemplatePath == "" || a.WeightsName == "":
		return fmt.Errorf("architecture %q: missing graph template or weights name", a.Name)
	case len(a.InputShape) == 0 || len(a.OutputShape) == 0:
		return fmt.Errorf("architecture %q: missing tensor shapes", a.Name)
	}
	return nil
}

// Stage materializes the reconstructed model in dir: the graph template is
// copied in alongside the bare weights file, renamed to the external-data
// name the graph expects. It returns the path of the staged graph.
func (a Architecture) Stage(dir, weightsPath string) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	graphPath := filepath.Join(dir, filepath.Base(a.TemplatePath))
	if err := copyFile(a.TemplatePath, graphPath); err != nil {
		return "", fmt.Errorf("stage graph template: %w", err)
	}
	if err := copyFile(weightsPath, filepath.Join(dir, a.WeightsName)); err != nil {
		return "", fmt.Errorf("stage weights: %w", err)
	}
	return graphPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
