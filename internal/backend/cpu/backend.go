// Package cpu implements the pure-Go CPU backend for TrafficNet tensors.
package cpu

import (
	"fmt"

	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// CPUBackend implements tensor operations on the CPU.
type CPUBackend struct{}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("add: %v", err))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("add: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	result, err := tensor.NewRaw(outShape, a.DType())
	if err != nil {
		panic(fmt.Sprintf("add: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		if !needsBroadcast {
			addVectorizedFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		} else {
			addBroadcastFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape)
		}
	case tensor.Float64:
		if !needsBroadcast {
			addVectorizedFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		} else {
			addBroadcastFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape)
		}
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", a.DType()))
	}

	return result
}

// Reshape returns a tensor with the same data but a different shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}

	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	result, err := tensor.NewRaw(newShape, t.DType())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}

	copy(result.Data(), t.Data())
	return result
}

// Transpose transposes the tensor by permuting its dimensions.
// With no axes, all dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	// Validate axes
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	// Compute new shape
	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType())
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	transposeData(result, t, axes)

	return result
}

// transposeData permutes element positions according to axes.
func transposeData(dst, src *tensor.RawTensor, axes []int) {
	srcShape := src.Shape()
	ndim := len(srcShape)
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dst.Shape().ComputeStrides()

	n := src.NumElements()
	elemSize := src.DType().Size()
	srcData := src.Data()
	dstData := dst.Data()

	coords := make([]int, ndim)
	for i := 0; i < n; i++ {
		// Decompose flat source index into coordinates.
		rem := i
		for d := 0; d < ndim; d++ {
			coords[d] = rem / srcStrides[d]
			rem %= srcStrides[d]
		}

		// Destination index uses permuted coordinates.
		dstIdx := 0
		for d := 0; d < ndim; d++ {
			dstIdx += coords[axes[d]] * dstStrides[d]
		}

		copy(dstData[dstIdx*elemSize:(dstIdx+1)*elemSize], srcData[i*elemSize:(i+1)*elemSize])
	}
}
