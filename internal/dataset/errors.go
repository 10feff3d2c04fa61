package dataset

import (
	"fmt"

	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// ShapeMismatchError reports a feature/label count disagreement within
// a batch. It indicates a corrupt or mismatched dataset and is not
// recoverable locally.
type ShapeMismatchError struct {
	Features int // Number of images in the batch
	Labels   int // Number of labels in the batch
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("dataset: feature count %d != label count %d", e.Features, e.Labels)
}

// DimensionError reports an image tensor that lacks the expected
// channel depth or spatial dimensions at a stage boundary.
type DimensionError struct {
	Op    string       // Stage that detected the mismatch (e.g., "grayscale")
	Shape tensor.Shape // Offending tensor shape
	Want  string       // Human-readable expectation
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dataset: %s: got shape %v, want %s", e.Op, e.Shape, e.Want)
}
