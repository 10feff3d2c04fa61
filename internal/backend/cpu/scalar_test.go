package cpu

import (
	"testing"

	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// TestSubScalar tests element-wise scalar subtraction.
func TestSubScalar(t *testing.T) {
	backend := New()

	x, _ := tensor.NewRaw(tensor.Shape{4}, tensor.Float32)
	copy(x.AsFloat32(), []float32{0, 64, 128, 255})

	result := backend.SubScalar(x, float32(128))

	expected := []float32{-128, -64, 0, 127}
	for i, exp := range expected {
		if result.AsFloat32()[i] != exp {
			t.Errorf("SubScalar[%d]: expected %.1f, got %.1f", i, exp, result.AsFloat32()[i])
		}
	}

	// Input untouched
	if x.AsFloat32()[0] != 0 {
		t.Error("SubScalar should not modify its input")
	}
}

// TestDivScalar tests element-wise scalar division.
func TestDivScalar(t *testing.T) {
	backend := New()

	x, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float32)
	copy(x.AsFloat32(), []float32{-128, 0, 127})

	result := backend.DivScalar(x, float32(128))

	expected := []float32{-1, 0, 127.0 / 128.0}
	for i, exp := range expected {
		if result.AsFloat32()[i] != exp {
			t.Errorf("DivScalar[%d]: expected %v, got %v", i, exp, result.AsFloat32()[i])
		}
	}
}

func TestDivScalar_ByZeroPanics(t *testing.T) {
	backend := New()
	x, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float32)

	defer func() {
		if r := recover(); r == nil {
			t.Error("DivScalar should panic on division by zero")
		}
	}()
	backend.DivScalar(x, float32(0))
}

// TestNormalizationChain tests the pixel rescale used by the
// preprocessor: (v - 128) / 128.
func TestNormalizationChain(t *testing.T) {
	backend := New()

	x, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float32)
	copy(x.AsFloat32(), []float32{0, 128, 255})

	result := backend.DivScalar(backend.SubScalar(x, float32(128)), float32(128))

	expected := []float32{-1, 0, 0.9921875}
	for i, exp := range expected {
		if result.AsFloat32()[i] != exp {
			t.Errorf("normalize[%d]: expected %v, got %v", i, exp, result.AsFloat32()[i])
		}
	}
}

// TestReLU tests the rectifier on float32 data.
func TestReLU(t *testing.T) {
	backend := New()

	x, _ := tensor.NewRaw(tensor.Shape{5}, tensor.Float32)
	copy(x.AsFloat32(), []float32{-2, -0.5, 0, 0.5, 2})

	result := backend.ReLU(x)

	expected := []float32{0, 0, 0, 0.5, 2}
	for i, exp := range expected {
		if result.AsFloat32()[i] != exp {
			t.Errorf("ReLU[%d]: expected %v, got %v", i, exp, result.AsFloat32()[i])
		}
	}
}

func TestReLU_Float64(t *testing.T) {
	backend := New()

	x, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float64)
	copy(x.AsFloat64(), []float64{-1.5, 1.5})

	result := backend.ReLU(x)

	if result.AsFloat64()[0] != 0 || result.AsFloat64()[1] != 1.5 {
		t.Errorf("ReLU float64: expected [0 1.5], got %v", result.AsFloat64())
	}
}
