package dataset

import (
	"fmt"
	"math/rand"

	"github.com/trafficnet-ml/trafficnet/internal/parallel"
	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// Pixel normalization constants: (v - 128) / 128 maps the [0, 255]
// domain onto [-1, 0.9921875] with 128 as the zero point.
const (
	normCenter = 128.0
	normScale  = 128.0
)

// NormalizedBatch is the preprocessed form of an ImageBatch: grayscale
// float32 images of shape [N, H, W, 1] with every pixel in [-1, 1],
// and labels copied (post-shuffle, for the training split) from the
// source batch. Treat it as immutable once produced.
type NormalizedBatch struct {
	Features *tensor.RawTensor // [N, H, W, 1] float32 in [-1, 1]
	Labels   []int32           // [N], index-aligned with Features
}

// Len returns the number of (image, label) pairs in the batch.
func (b *NormalizedBatch) Len() int {
	return len(b.Labels)
}

// ToGrayscale reduces RGB images to a single intensity channel.
//
// For each pixel the output value is the arithmetic mean of the three
// color channels: (R + G + B) / 3. The transform is pointwise: no
// spatial mixing, same height and width, channel depth drops from 3
// to 1. Images are independent, so the per-image loop fans out across
// workers.
//
// Input must be a 4D uint8 tensor [N, H, W, 3]; anything else returns
// DimensionError.
func ToGrayscale(features *tensor.RawTensor) (*tensor.RawTensor, error) {
	shape := features.Shape()
	if len(shape) != 4 {
		return nil, &DimensionError{Op: "grayscale", Shape: shape, Want: "4D tensor [N, H, W, 3]"}
	}
	if shape[3] != 3 {
		return nil, &DimensionError{Op: "grayscale", Shape: shape, Want: "exactly 3 channels"}
	}
	if features.DType() != tensor.Uint8 {
		return nil, &DimensionError{Op: "grayscale", Shape: shape, Want: "uint8 pixel data"}
	}

	n, h, w := shape[0], shape[1], shape[2]
	out, err := tensor.NewRaw(tensor.Shape{n, h, w, 1}, tensor.Float32)
	if err != nil {
		return nil, err
	}

	src := features.AsUint8()
	dst := out.AsFloat32()
	pixels := h * w

	parallel.For(n, func(i int) {
		in := src[i*pixels*3 : (i+1)*pixels*3]
		gray := dst[i*pixels : (i+1)*pixels]
		for p := 0; p < pixels; p++ {
			r := float32(in[p*3])
			g := float32(in[p*3+1])
			b := float32(in[p*3+2])
			gray[p] = (r + g + b) / 3.0
		}
	}, parallel.DefaultConfig())

	return out, nil
}

// Normalize rescales grayscale pixel values from [0, 255] to [-1, 1]
// by computing (v - 128) / 128 for every element. 0 maps to -1, 128
// maps to 0 and 255 maps to 127/128.
//
// Normalize is NOT idempotent: applying it to already-normalized data
// shifts values toward -1 instead of leaving them in place. Call it
// exactly once per batch.
func Normalize(features *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	if features.DType() != tensor.Float32 {
		return nil, &DimensionError{Op: "normalize", Shape: features.Shape(), Want: "float32 pixel data"}
	}

	centered := b.SubScalar(features, float32(normCenter))
	return b.DivScalar(centered, float32(normScale)), nil
}

// Preprocess runs the full transform: optional shuffle (training split
// only), then grayscale reduction, then normalization, in that fixed
// order. The shuffle permutes features and labels as one atomic step.
//
// When shuffle is true a caller-supplied random source is required; a
// source per invocation keeps results reproducible. On any failure no
// partially transformed batch is returned.
func Preprocess(batch *ImageBatch, shuffle bool, rng *rand.Rand, b tensor.Backend) (*NormalizedBatch, error) {
	if batch.Features.Shape()[0] != len(batch.Labels) {
		return nil, &ShapeMismatchError{Features: batch.Features.Shape()[0], Labels: len(batch.Labels)}
	}

	if shuffle {
		if rng == nil {
			return nil, fmt.Errorf("dataset: shuffle requires a random source")
		}
		shuffled, err := batch.Shuffle(rng)
		if err != nil {
			return nil, err
		}
		batch = shuffled
	}

	gray, err := ToGrayscale(batch.Features)
	if err != nil {
		return nil, err
	}

	norm, err := Normalize(gray, b)
	if err != nil {
		return nil, err
	}

	labels := make([]int32, len(batch.Labels))
	copy(labels, batch.Labels)

	return &NormalizedBatch{Features: norm, Labels: labels}, nil
}
