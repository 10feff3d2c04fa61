package cpu

import (
	"fmt"

	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// SubScalar subtracts a scalar from each element of the tensor.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("subscalar: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		s := toFloat64(scalar)
		in := x.AsFloat32()
		out := result.AsFloat32()
		for i := range in {
			out[i] = in[i] - float32(s)
		}
	case tensor.Float64:
		s := toFloat64(scalar)
		in := x.AsFloat64()
		out := result.AsFloat64()
		for i := range in {
			out[i] = in[i] - s
		}
	default:
		panic(fmt.Sprintf("subscalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// DivScalar divides each element of the tensor by a scalar.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64(scalar)
	if s == 0 {
		panic("divscalar: division by zero")
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("divscalar: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		in := x.AsFloat32()
		out := result.AsFloat32()
		for i := range in {
			out[i] = in[i] / float32(s)
		}
	case tensor.Float64:
		in := x.AsFloat64()
		out := result.AsFloat64()
		for i := range in {
			out[i] = in[i] / s
		}
	default:
		panic(fmt.Sprintf("divscalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// toFloat64 converts a numeric scalar argument to float64.
func toFloat64(scalar any) float64 {
	switch v := scalar.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint8:
		return float64(v)
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", scalar))
	}
}
