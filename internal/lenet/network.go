package lenet

import (
	"fmt"

	"github.com/trafficnet-ml/trafficnet/internal/nn"
	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// Network is the traffic-sign classifier.
//
// Architecture (input [batch, 1, 32, 32]):
//
//	Conv1: 1 → 6 channels, 5x5 kernel -> [batch, 6, 28, 28]
//	ReLU
//	MaxPool: 2x2 -> [batch, 6, 14, 14]
//	Conv2: 6 → 16 channels, 5x5 kernel -> [batch, 16, 10, 10]
//	ReLU
//	MaxPool: 2x2 -> [batch, 16, 5, 5]
//	Flatten -> [batch, 400]
//	FC1: 400 → 120, ReLU
//	FC2: 120 → 80, ReLU
//	Output: 80 → classes (linear, raw scores)
//
// The design follows LeNet-5 (LeCun et al., 1998) adapted for 32x32
// single-channel images and a configurable class count.
type Network[B tensor.Backend] struct {
	classes int

	conv1  *nn.Conv2D[B]
	relu1  *nn.ReLU[B]
	pool1  *nn.MaxPool2D[B]
	conv2  *nn.Conv2D[B]
	relu2  *nn.ReLU[B]
	pool2  *nn.MaxPool2D[B]
	fc1    *nn.Linear[B]
	relu3  *nn.ReLU[B]
	fc2    *nn.Linear[B]
	relu4  *nn.ReLU[B]
	output *nn.Linear[B]
}

// New creates the classifier for the given class count and verifies
// the assembled layers against the invariant stage table before any
// data can flow. A table deviation yields ArchitectureMismatchError
// and no network.
func New[B tensor.Backend](classes int, backend B) (*Network[B], error) {
	if classes <= 0 {
		return nil, fmt.Errorf("lenet: class count must be positive, got %d", classes)
	}

	net := newNetwork(classes, backend)
	if err := net.verify(Architecture(classes)); err != nil {
		return nil, err
	}
	return net, nil
}

// newNetwork assembles the layers without verification.
func newNetwork[B tensor.Backend](classes int, backend B) *Network[B] {
	flat := Architecture(classes)[6].Output[0] // flatten stage width

	return &Network[B]{
		classes: classes,

		conv1: nn.NewConv2D(InputChannels, conv1Filters, kernelSize, kernelSize, convStride, convPadding, true, backend),
		relu1: nn.NewReLU[B](),
		pool1: nn.NewMaxPool2D(poolSize, poolStride, backend),
		conv2: nn.NewConv2D(conv1Filters, conv2Filters, kernelSize, kernelSize, convStride, convPadding, true, backend),
		relu2: nn.NewReLU[B](),
		pool2: nn.NewMaxPool2D(poolSize, poolStride, backend),

		fc1:    nn.NewLinear[B](flat, fc1Nodes, backend),
		relu3:  nn.NewReLU[B](),
		fc2:    nn.NewLinear[B](fc1Nodes, fc2Nodes, backend),
		relu4:  nn.NewReLU[B](),
		output: nn.NewLinear[B](fc2Nodes, classes, backend),
	}
}

// verify propagates shapes through the assembled layers and checks
// every stage against the declared table. The first deviation is
// returned as ArchitectureMismatchError.
func (n *Network[B]) verify(arch []LayerShape) error {
	convs := []*nn.Conv2D[B]{n.conv1, n.conv2}
	pools := []*nn.MaxPool2D[B]{n.pool1, n.pool2}
	dense := []*nn.Linear[B]{n.fc1, n.fc2, n.output}
	ci, pi, di := 0, 0, 0

	cur := tensor.Shape{InputHeight, InputWidth, InputChannels}
	for _, ls := range arch {
		if !cur.Equal(ls.Input) {
			return &ArchitectureMismatchError{Stage: ls.Stage, Op: ls.Op, Want: ls.Input, Got: cur}
		}

		var next tensor.Shape
		switch ls.Op {
		case OpConvolution:
			conv := convs[ci]
			ci++
			if conv.InChannels() != cur[2] {
				return &ArchitectureMismatchError{Stage: ls.Stage, Op: ls.Op, Want: ls.Input, Got: tensor.Shape{cur[0], cur[1], conv.InChannels()}}
			}
			out := conv.ComputeOutputSize(cur[0], cur[1])
			next = tensor.Shape{out[0], out[1], conv.OutChannels()}
		case OpActivation:
			next = cur.Clone()
		case OpPooling:
			pool := pools[pi]
			pi++
			out := pool.ComputeOutputSize(cur[0], cur[1])
			next = tensor.Shape{out[0], out[1], cur[2]}
		case OpFlatten:
			next = tensor.Shape{cur.NumElements()}
		case OpDense, OpOutput:
			l := dense[di]
			di++
			if l.InFeatures() != cur[0] {
				return &ArchitectureMismatchError{Stage: ls.Stage, Op: ls.Op, Want: ls.Input, Got: tensor.Shape{l.InFeatures()}}
			}
			next = tensor.Shape{l.OutFeatures()}
		default:
			return fmt.Errorf("lenet: stage %d: unknown operation %v", ls.Stage, ls.Op)
		}

		if !next.Equal(ls.Output) {
			return &ArchitectureMismatchError{Stage: ls.Stage, Op: ls.Op, Want: ls.Output, Got: next}
		}
		cur = next
	}

	if len(cur) != 1 || cur[0] != n.classes {
		return &ArchitectureMismatchError{Stage: len(arch), Op: OpOutput, Want: tensor.Shape{n.classes}, Got: cur}
	}
	return nil
}

// Forward computes raw class scores for a batch of preprocessed images.
//
// Input: [batch, 32, 32, 1] (preprocessor layout) or [batch, 1, 32, 32].
// With a single channel the two layouts are byte-identical, so the
// input is reshaped rather than permuted.
//
// Output: [batch, classes] raw scores; no softmax is applied.
func (n *Network[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("lenet: expected 4D input, got shape %v", shape))
	}

	batch := shape[0]
	nhwc := shape[1] == InputHeight && shape[2] == InputWidth && shape[3] == InputChannels
	nchw := shape[1] == InputChannels && shape[2] == InputHeight && shape[3] == InputWidth
	if !nhwc && !nchw {
		panic(fmt.Sprintf("lenet: expected input [N,%d,%d,%d] or [N,%d,%d,%d], got %v",
			InputHeight, InputWidth, InputChannels, InputChannels, InputHeight, InputWidth, shape))
	}
	x := input.Reshape(batch, InputChannels, InputHeight, InputWidth)

	// Convolutional block 1
	x = n.conv1.Forward(x) // [batch, 6, 28, 28]
	x = n.relu1.Forward(x)
	x = n.pool1.Forward(x) // [batch, 6, 14, 14]

	// Convolutional block 2
	x = n.conv2.Forward(x) // [batch, 16, 10, 10]
	x = n.relu2.Forward(x)
	x = n.pool2.Forward(x) // [batch, 16, 5, 5]

	// Flatten for the dense head
	x = x.Reshape(batch, n.fc1.InFeatures()) // [batch, 400]

	x = n.fc1.Forward(x) // [batch, 120]
	x = n.relu3.Forward(x)
	x = n.fc2.Forward(x) // [batch, 80]
	x = n.relu4.Forward(x)
	x = n.output.Forward(x) // [batch, classes]

	return x
}

// Scores computes the raw class-score vector for one preprocessed
// image of shape [32, 32, 1]. The result has shape [classes].
func (n *Network[B]) Scores(image *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := image.Shape()
	if len(shape) != 3 || shape[0] != InputHeight || shape[1] != InputWidth || shape[2] != InputChannels {
		panic(fmt.Sprintf("lenet: expected single image [%d,%d,%d], got %v",
			InputHeight, InputWidth, InputChannels, shape))
	}

	batched := image.Reshape(1, InputHeight, InputWidth, InputChannels)
	return n.Forward(batched).Reshape(n.classes)
}

// Classes returns the number of output classes.
func (n *Network[B]) Classes() int {
	return n.classes
}

// Parameters returns all parameters of the network.
func (n *Network[B]) Parameters() []*nn.Parameter[B] {
	// 5 parameter-bearing layers × 2 params (weight + bias).
	params := make([]*nn.Parameter[B], 0, 10)
	params = append(params, n.conv1.Parameters()...)
	params = append(params, n.conv2.Parameters()...)
	params = append(params, n.fc1.Parameters()...)
	params = append(params, n.fc2.Parameters()...)
	params = append(params, n.output.Parameters()...)
	return params
}

// String returns a string representation of the model architecture.
func (n *Network[B]) String() string {
	return fmt.Sprintf(`Network(
  %s
  ReLU()
  %s
  %s
  ReLU()
  %s
  %s
  ReLU()
  %s
  ReLU()
  %s
)`,
		n.conv1.String(),
		n.pool1.String(),
		n.conv2.String(),
		n.pool2.String(),
		n.fc1.String(),
		n.fc2.String(),
		n.output.String(),
	)
}
