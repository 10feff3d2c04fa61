package cpu

import (
	"testing"

	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

func TestBackendName(t *testing.T) {
	backend := New()
	if backend.Name() != "CPU" {
		t.Errorf("Name() = %q, want %q", backend.Name(), "CPU")
	}
}

// TestAdd_SameShape tests element-wise addition without broadcasting.
func TestAdd_SameShape(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
	b, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
	for i := 0; i < 6; i++ {
		a.AsFloat32()[i] = float32(i + 1)
		b.AsFloat32()[i] = float32(10 * (i + 1))
	}

	result := backend.Add(a, b)

	expected := []float32{11, 22, 33, 44, 55, 66}
	for i, exp := range expected {
		if result.AsFloat32()[i] != exp {
			t.Errorf("Add[%d]: expected %.1f, got %.1f", i, exp, result.AsFloat32()[i])
		}
	}
}

// TestAdd_BiasBroadcast tests the [1,C,1,1] bias pattern used by the
// convolution layer.
func TestAdd_BiasBroadcast(t *testing.T) {
	backend := New()

	// Feature map: [1, 2, 2, 2]
	x, _ := tensor.NewRaw(tensor.Shape{1, 2, 2, 2}, tensor.Float32)
	for i := 0; i < 8; i++ {
		x.AsFloat32()[i] = float32(i)
	}

	// Per-channel bias: [1, 2, 1, 1]
	bias, _ := tensor.NewRaw(tensor.Shape{1, 2, 1, 1}, tensor.Float32)
	bias.AsFloat32()[0] = 100
	bias.AsFloat32()[1] = 200

	result := backend.Add(x, bias)

	if !result.Shape().Equal(tensor.Shape{1, 2, 2, 2}) {
		t.Fatalf("shape: expected [1 2 2 2], got %v", result.Shape())
	}

	// Channel 0 gets +100, channel 1 gets +200
	expected := []float32{100, 101, 102, 103, 204, 205, 206, 207}
	for i, exp := range expected {
		if result.AsFloat32()[i] != exp {
			t.Errorf("Add[%d]: expected %.1f, got %.1f", i, exp, result.AsFloat32()[i])
		}
	}
}

func TestAdd_Float64(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float64)
	b, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float64)
	copy(a.AsFloat64(), []float64{1.5, 2.5, 3.5})
	copy(b.AsFloat64(), []float64{0.5, 0.5, 0.5})

	result := backend.Add(a, b)

	expected := []float64{2, 3, 4}
	for i, exp := range expected {
		if result.AsFloat64()[i] != exp {
			t.Errorf("Add[%d]: expected %v, got %v", i, exp, result.AsFloat64()[i])
		}
	}
}

func TestAdd_IncompatibleShapesPanics(t *testing.T) {
	backend := New()

	a, _ := tensor.NewRaw(tensor.Shape{3, 4}, tensor.Float32)
	b, _ := tensor.NewRaw(tensor.Shape{3, 5}, tensor.Float32)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Add should panic on incompatible shapes")
		}
	}()
	backend.Add(a, b)
}

// TestReshape tests reshape preserving row-major data order.
func TestReshape(t *testing.T) {
	backend := New()

	x, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
	for i := 0; i < 6; i++ {
		x.AsFloat32()[i] = float32(i)
	}

	result := backend.Reshape(x, tensor.Shape{3, 2})

	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape: expected [3 2], got %v", result.Shape())
	}
	for i := 0; i < 6; i++ {
		if result.AsFloat32()[i] != float32(i) {
			t.Errorf("Reshape[%d]: expected %d, got %.1f", i, i, result.AsFloat32()[i])
		}
	}
}

func TestReshape_WrongElementCountPanics(t *testing.T) {
	backend := New()
	x, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Reshape should panic when element counts differ")
		}
	}()
	backend.Reshape(x, tensor.Shape{4, 2})
}

// TestTranspose_2D tests the matrix transpose used by the dense layer.
func TestTranspose_2D(t *testing.T) {
	backend := New()

	// [[0,1,2],
	//  [3,4,5]]
	x, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
	for i := 0; i < 6; i++ {
		x.AsFloat32()[i] = float32(i)
	}

	result := backend.Transpose(x)

	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape: expected [3 2], got %v", result.Shape())
	}

	// [[0,3],
	//  [1,4],
	//  [2,5]]
	expected := []float32{0, 3, 1, 4, 2, 5}
	for i, exp := range expected {
		if result.AsFloat32()[i] != exp {
			t.Errorf("Transpose[%d]: expected %.1f, got %.1f", i, exp, result.AsFloat32()[i])
		}
	}
}

func TestTranspose_ExplicitAxes(t *testing.T) {
	backend := New()

	x, _ := tensor.NewRaw(tensor.Shape{2, 3, 4}, tensor.Float32)
	for i := 0; i < 24; i++ {
		x.AsFloat32()[i] = float32(i)
	}

	// Swap the last two axes only
	result := backend.Transpose(x, 0, 2, 1)

	if !result.Shape().Equal(tensor.Shape{2, 4, 3}) {
		t.Fatalf("shape: expected [2 4 3], got %v", result.Shape())
	}

	// Element (n, h, w) of the source lands at (n, w, h).
	// Source (1, 2, 3) = 1*12 + 2*4 + 3 = 23 -> dest (1, 3, 2) = 1*12 + 3*3 + 2 = 23
	if result.AsFloat32()[23] != 23 {
		t.Errorf("Transpose corner: expected 23, got %.1f", result.AsFloat32()[23])
	}
	// Source (0, 1, 2) = 6 -> dest (0, 2, 1) = 2*3 + 1 = 7
	if result.AsFloat32()[7] != 6 {
		t.Errorf("Transpose element: expected 6, got %.1f", result.AsFloat32()[7])
	}
}

func TestTranspose_InvalidAxesPanics(t *testing.T) {
	backend := New()
	x, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Transpose should panic on duplicate axes")
		}
	}()
	backend.Transpose(x, 0, 0)
}
