package assets

import (
	"encoding/json"
	"os"
)

// Metadata is the advisory record describing the trained asset. Every field
// is optional; readers must tolerate absent keys. Nothing in the pipeline
// derives decisions from it.
type Metadata struct {
	Version     string   `json:"version"`
	TrainedAt   string   `json:"trained_at"`
	Notes       string   `json:"notes"`
	Classes     []string `json:"classes"`
	Recall      float64  `json:"recall"`
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	ImageSize   int      `json:"image_size"`
}

// ReadMetadata parses the metadata record at path. A missing or malformed
// file is an error; missing keys inside a well-formed file are not.
func ReadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Stage: StageMetadata, Err: err}
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, &LoadError{Stage: StageMetadata, Err: err}
	}
	return &meta, nil
}
