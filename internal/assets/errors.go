package assets

import "fmt"

// Load stages, used to tell a metadata failure from a model failure in logs.
const (
	StageMetadata = "metadata"
	StageModel    = "model"
)

// LoadError folds every asset-loading failure into one error kind. It is
// fatal for the process's inference capability: once cached, no further load
// attempt is made and callers must surface "inference unavailable".
type LoadError struct {
	Stage string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("asset loading failed (%s): %v", e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
