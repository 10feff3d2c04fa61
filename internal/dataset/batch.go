// Package dataset implements the preprocessing pipeline that turns raw
// labeled image batches into normalized tensors ready for the classifier.
//
// A dataset split (training, validation or test) arrives as an
// ImageBatch: uint8 RGB images of shape [N, H, W, 3] plus one integer
// class label per image. Preprocess turns it into a NormalizedBatch:
// single-channel float32 images of shape [N, H, W, 1] with pixel values
// in [-1, 1], optionally shuffled (training split only) with labels
// kept aligned.
package dataset

import (
	"math/rand"

	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// ImageBatch is one raw dataset split: RGB images and their labels.
//
// Features holds uint8 pixel data of shape [N, H, W, 3]; Labels holds
// one class identifier per image, index-aligned with Features.
// Construct batches through NewImageBatch so the alignment invariant
// holds from the start.
type ImageBatch struct {
	Features *tensor.RawTensor // [N, H, W, 3] uint8
	Labels   []int32           // [N], labels[i] describes image i
}

// NewImageBatch validates and wraps raw feature/label arrays.
//
// Returns ShapeMismatchError when the image and label counts disagree,
// and DimensionError when features is not a 4D uint8 tensor.
func NewImageBatch(features *tensor.RawTensor, labels []int32) (*ImageBatch, error) {
	if features == nil {
		return nil, &DimensionError{Op: "batch", Want: "non-nil features tensor"}
	}
	shape := features.Shape()
	if len(shape) != 4 {
		return nil, &DimensionError{Op: "batch", Shape: shape, Want: "4D tensor [N, H, W, C]"}
	}
	if features.DType() != tensor.Uint8 {
		return nil, &DimensionError{Op: "batch", Shape: shape, Want: "uint8 pixel data"}
	}
	if shape[0] != len(labels) {
		return nil, &ShapeMismatchError{Features: shape[0], Labels: len(labels)}
	}

	return &ImageBatch{Features: features, Labels: labels}, nil
}

// Len returns the number of (image, label) pairs in the batch.
func (b *ImageBatch) Len() int {
	return len(b.Labels)
}

// Shuffle returns a batch containing the same (image, label) pairs in
// a uniformly random order. Images and labels move with the same
// permutation, so no image is ever paired with a different label.
//
// The caller supplies the random source; one source per invocation (or
// a fixed seed) keeps behavior deterministic under test. The input
// batch is left untouched.
//
// Only the training split should be shuffled; validation and test
// order must stay deterministic for reproducible evaluation.
func (b *ImageBatch) Shuffle(rng *rand.Rand) (*ImageBatch, error) {
	shape := b.Features.Shape()
	n := shape[0]
	if n != len(b.Labels) {
		return nil, &ShapeMismatchError{Features: n, Labels: len(b.Labels)}
	}

	perm := rng.Perm(n)

	features, err := tensor.NewRaw(shape.Clone(), b.Features.DType())
	if err != nil {
		return nil, err
	}

	imageSize := shape[1] * shape[2] * shape[3] // bytes per image (uint8)
	src := b.Features.Data()
	dst := features.Data()
	labels := make([]int32, n)

	for i, j := range perm {
		// Pair (image, label) j moves to position i as one unit.
		copy(dst[i*imageSize:(i+1)*imageSize], src[j*imageSize:(j+1)*imageSize])
		labels[i] = b.Labels[j]
	}

	return &ImageBatch{Features: features, Labels: labels}, nil
}
