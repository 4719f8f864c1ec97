// Package vision converts decoded retinal photographs into the fixed-shape
// tensor the model consumes.
package vision

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

const (
	// ImageSize is the side length the model was trained on.
	ImageSize = 224
	// Channels is the number of color channels after RGB conversion.
	Channels = 3
)

// TensorLen is the element count of a preprocessed tensor, batch dim included.
const TensorLen = 1 * ImageSize * ImageSize * Channels

// Tensor is a normalized model input: NHWC layout, shape (1, 224, 224, 3),
// every element in [0.0, 1.0].
type Tensor struct {
	Data []float32
}

// Shape returns the tensor dimensions including the leading batch dimension.
func (t *Tensor) Shape() []int64 {
	return []int64{1, ImageSize, ImageSize, Channels}
}

// DecodeError reports an image that could not be normalized to the model's
// input shape. It is local to one request.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode image: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode image: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Preprocess converts any decoded raster image to a model input tensor:
// RGB conversion, direct resize to 224x224 (not aspect-preserving), and
// scaling of 8-bit intensities into [0, 1]. It is a pure function; the same
// image always yields an identical tensor.
func Preprocess(img image.Image) (*Tensor, error) {
	if img == nil {
		return nil, &DecodeError{Reason: "nil image"}
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, &DecodeError{Reason: fmt.Sprintf("empty image %dx%d", bounds.Dx(), bounds.Dy())}
	}

	resized := resize.Resize(ImageSize, ImageSize, img, resize.Lanczos3)
	rb := resized.Bounds()
	if rb.Dx() != ImageSize || rb.Dy() != ImageSize {
		return nil, &DecodeError{Reason: fmt.Sprintf("resize produced %dx%d, want %dx%d", rb.Dx(), rb.Dy(), ImageSize, ImageSize)}
	}

	data := make([]float32, 0, TensorLen)
	for y := rb.Min.Y; y < rb.Max.Y; y++ {
		for x := rb.Min.X; x < rb.Max.X; x++ {
			// RGBA() yields 16-bit channels for any color mode; grayscale and
			// paletted sources come back with r == g == b. Alpha is dropped.
			r, g, b, _ := resized.At(x, y).RGBA()
			data = append(data,
				float32(r>>8)/255.0,
				float32(g>>8)/255.0,
				float32(b>>8)/255.0,
			)
		}
	}

	return &Tensor{Data: data}, nil
}
