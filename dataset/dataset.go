// Copyright 2026 TrafficNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset exposes the preprocessing pipeline that turns raw
// labeled image batches into normalized tensors ready for the
// classifier.
//
// A split arrives as an ImageBatch ([N, H, W, 3] uint8 RGB plus one
// label per image) and leaves Preprocess as a NormalizedBatch
// ([N, H, W, 1] float32 in [-1, 1]), shuffled with labels kept aligned
// when the split is the training one.
//
// Example:
//
//	backend := cpu.New()
//	batch, err := dataset.NewImageBatch(features, labels)
//	if err != nil {
//	    return err
//	}
//	rng := rand.New(rand.NewSource(seed))
//	norm, err := dataset.Preprocess(batch, true, rng, backend)
package dataset

import (
	"math/rand"

	"github.com/trafficnet-ml/trafficnet/internal/dataset"
	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// ImageBatch is one raw dataset split: RGB images and their labels.
type ImageBatch = dataset.ImageBatch

// NormalizedBatch is the preprocessed form of an ImageBatch.
type NormalizedBatch = dataset.NormalizedBatch

// ShapeMismatchError reports a feature/label count disagreement.
type ShapeMismatchError = dataset.ShapeMismatchError

// DimensionError reports an image tensor with unexpected dimensions.
type DimensionError = dataset.DimensionError

// NewImageBatch validates and wraps raw feature/label arrays.
func NewImageBatch(features *tensor.RawTensor, labels []int32) (*ImageBatch, error) {
	return dataset.NewImageBatch(features, labels)
}

// ToGrayscale reduces RGB images to a single intensity channel by
// averaging the three color channels per pixel.
func ToGrayscale(features *tensor.RawTensor) (*tensor.RawTensor, error) {
	return dataset.ToGrayscale(features)
}

// Normalize rescales grayscale pixel values from [0, 255] to [-1, 1]
// via (v - 128) / 128. Not idempotent; apply exactly once.
func Normalize(features *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return dataset.Normalize(features, b)
}

// Preprocess runs optional shuffle, grayscale and normalization in
// that fixed order and returns the resulting NormalizedBatch.
func Preprocess(batch *ImageBatch, shuffle bool, rng *rand.Rand, b tensor.Backend) (*NormalizedBatch, error) {
	return dataset.Preprocess(batch, shuffle, rng, b)
}
