// Package inference runs a single forward pass and reduces the model output
// to one scalar probability.
package inference

import (
	"fmt"

	"github.com/Ahsyx/CardioRetina/internal/vision"
)

// Predictor is the callable surface of a loaded model asset. Implementations
// must be safe for concurrent use; the forward pass runs in inference mode
// with no gradient or training-time behavior.
type Predictor interface {
	Predict(input []float32) ([]float32, error)
}

// ShapeError reports a model output that is not reducible to exactly one
// scalar. It signals an asset/architecture mismatch and is local to one
// request.
type ShapeError struct {
	Len int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("model output has %d values, want exactly 1", e.Len)
}

// Run feeds a preprocessed tensor through the model and returns the scalar
// probability.
func Run(m Predictor, t *vision.Tensor) (float64, error) {
	if len(t.Data) != vision.TensorLen {
		return 0, &vision.DecodeError{Reason: fmt.Sprintf("tensor has %d elements, want %d", len(t.Data), vision.TensorLen)}
	}

	out, err := m.Predict(t.Data)
	if err != nil {
		return 0, fmt.Errorf("forward pass: %w", err)
	}
	if len(out) != 1 {
		return 0, &ShapeError{Len: len(out)}
	}
	return float64(out[0]), nil
}
