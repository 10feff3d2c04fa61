// Package nn implements the neural network building blocks for TrafficNet.
//
// The package provides the layers the classifier is assembled from:
//   - Module interface: base interface for all NN components
//   - Parameter: named weight/bias tensors
//   - Conv2D: 2D convolutional layer
//   - MaxPool2D: 2D max pooling layer
//   - Linear: fully connected (dense) layer
//   - ReLU: rectified linear activation
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all parameters
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all parameters of this module.
	//
	// Returns an empty slice for modules without parameters
	// (e.g., activation functions and pooling).
	Parameters() []*Parameter[B]
}
