// Package lenet defines the fixed LeNet-style traffic-sign classifier:
// two convolution/ReLU/pool blocks, a flatten stage, two dense layers
// with ReLU and a linear projection to per-class scores.
//
// The stage-by-stage shape table is part of the package's contract.
// Architecture computes it from the convolution arithmetic rule, and
// New refuses to build a network whose layers would deviate from it.
package lenet

import (
	"fmt"

	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// Architecture constants. Only the class count is configurable; every
// preceding stage is fixed.
const (
	InputHeight   = 32
	InputWidth    = 32
	InputChannels = 1

	conv1Filters = 6
	conv2Filters = 16
	kernelSize   = 5
	convStride   = 1
	convPadding  = 0

	poolSize   = 2
	poolStride = 2

	fc1Nodes = 120
	fc2Nodes = 80
)

// OpKind identifies the operation performed by one network stage.
type OpKind int

// Stage operation kinds.
const (
	OpConvolution OpKind = iota
	OpActivation
	OpPooling
	OpFlatten
	OpDense
	OpOutput
)

// String returns a human-readable operation name.
func (k OpKind) String() string {
	switch k {
	case OpConvolution:
		return "convolution"
	case OpActivation:
		return "activation"
	case OpPooling:
		return "pooling"
	case OpFlatten:
		return "flatten"
	case OpDense:
		return "dense"
	case OpOutput:
		return "output"
	default:
		return "unknown"
	}
}

// LayerShape describes one stage of the network: the operation kind
// and the tensor shapes entering and leaving it. Spatial stages use
// [height, width, channels]; vector stages use [nodes].
type LayerShape struct {
	Stage  int
	Op     OpKind
	Input  tensor.Shape
	Output tensor.Shape
}

// convOutputDim applies the general rule for a convolution or pooling
// stage with no padding beyond the explicit parameter:
//
//	out = (in + 2*padding - kernel) / stride + 1
func convOutputDim(in, kernel, stride, padding int) int {
	return (in+2*padding-kernel)/stride + 1
}

// Architecture returns the invariant stage table for a classifier with
// the given class count. Shapes are derived from the convolution
// arithmetic rule, not hard-coded, so the table and the layer
// implementations cannot drift apart silently.
//
// For a 32x32x1 input the table instantiates to:
//
//	conv 6x5x5   32x32x1  -> 28x28x6
//	relu         28x28x6  -> 28x28x6
//	pool 2x2     28x28x6  -> 14x14x6
//	conv 16x5x5  14x14x6  -> 10x10x16
//	relu         10x10x16 -> 10x10x16
//	pool 2x2     10x10x16 -> 5x5x16
//	flatten      5x5x16   -> 400
//	dense+relu   400      -> 120
//	dense+relu   120      -> 80
//	output       80       -> classes
//
// The 80->classes stage is a single linear projection with no
// activation; the loss that would consume the raw scores is outside
// this package.
func Architecture(classes int) []LayerShape {
	h, w := InputHeight, InputWidth

	c1H := convOutputDim(h, kernelSize, convStride, convPadding)
	c1W := convOutputDim(w, kernelSize, convStride, convPadding)
	p1H := convOutputDim(c1H, poolSize, poolStride, 0)
	p1W := convOutputDim(c1W, poolSize, poolStride, 0)
	c2H := convOutputDim(p1H, kernelSize, convStride, convPadding)
	c2W := convOutputDim(p1W, kernelSize, convStride, convPadding)
	p2H := convOutputDim(c2H, poolSize, poolStride, 0)
	p2W := convOutputDim(c2W, poolSize, poolStride, 0)
	flat := p2H * p2W * conv2Filters

	return []LayerShape{
		{Stage: 1, Op: OpConvolution, Input: tensor.Shape{h, w, InputChannels}, Output: tensor.Shape{c1H, c1W, conv1Filters}},
		{Stage: 2, Op: OpActivation, Input: tensor.Shape{c1H, c1W, conv1Filters}, Output: tensor.Shape{c1H, c1W, conv1Filters}},
		{Stage: 3, Op: OpPooling, Input: tensor.Shape{c1H, c1W, conv1Filters}, Output: tensor.Shape{p1H, p1W, conv1Filters}},
		{Stage: 4, Op: OpConvolution, Input: tensor.Shape{p1H, p1W, conv1Filters}, Output: tensor.Shape{c2H, c2W, conv2Filters}},
		{Stage: 5, Op: OpActivation, Input: tensor.Shape{c2H, c2W, conv2Filters}, Output: tensor.Shape{c2H, c2W, conv2Filters}},
		{Stage: 6, Op: OpPooling, Input: tensor.Shape{c2H, c2W, conv2Filters}, Output: tensor.Shape{p2H, p2W, conv2Filters}},
		{Stage: 7, Op: OpFlatten, Input: tensor.Shape{p2H, p2W, conv2Filters}, Output: tensor.Shape{flat}},
		{Stage: 8, Op: OpDense, Input: tensor.Shape{flat}, Output: tensor.Shape{fc1Nodes}},
		{Stage: 9, Op: OpDense, Input: tensor.Shape{fc1Nodes}, Output: tensor.Shape{fc2Nodes}},
		{Stage: 10, Op: OpOutput, Input: tensor.Shape{fc2Nodes}, Output: tensor.Shape{classes}},
	}
}

// ArchitectureMismatchError reports a stage whose declared shape does
// not line up with what the preceding stages produce. It is raised at
// construction time, before any image is processed.
type ArchitectureMismatchError struct {
	Stage int
	Op    OpKind
	Want  tensor.Shape
	Got   tensor.Shape
}

func (e *ArchitectureMismatchError) Error() string {
	return fmt.Sprintf("lenet: stage %d (%s): declared shape %v does not match propagated shape %v",
		e.Stage, e.Op, e.Want, e.Got)
}
