package tensor

import (
	"math"
	"math/rand"
	"testing"
)

// Test helpers

func assertEqualFloat32(t *testing.T, expected, actual float32, msg string) {
	t.Helper()
	if math.Abs(float64(expected-actual)) > 1e-6 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// Creation Tests

func TestZeros(t *testing.T) {
	backend := NewMockBackend()
	x := Zeros[float32](Shape{2, 3}, backend)

	assertEqualShape(t, Shape{2, 3}, x.Shape(), "Zeros shape")
	for i, v := range x.Data() {
		if v != 0 {
			t.Errorf("Zeros data[%d] = %v, want 0", i, v)
		}
	}
}

func TestOnes(t *testing.T) {
	backend := NewMockBackend()
	x := Ones[float32](Shape{4}, backend)

	for i, v := range x.Data() {
		if v != 1 {
			t.Errorf("Ones data[%d] = %v, want 1", i, v)
		}
	}
}

func TestFull(t *testing.T) {
	backend := NewMockBackend()
	x := Full[float32](Shape{2, 2}, 3.5, backend)

	for i, v := range x.Data() {
		if v != 3.5 {
			t.Errorf("Full data[%d] = %v, want 3.5", i, v)
		}
	}
}

func TestRandDeterministic(t *testing.T) {
	backend := NewMockBackend()

	a := Rand(Shape{3, 3}, rand.New(rand.NewSource(7)), backend)
	b := Rand(Shape{3, 3}, rand.New(rand.NewSource(7)), backend)

	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatal("Rand with the same seed should produce identical tensors")
		}
	}
}

func TestFromSlice(t *testing.T) {
	backend := NewMockBackend()
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice error: %v", err)
	}

	assertEqualShape(t, Shape{2, 3}, x.Shape(), "FromSlice shape")
	assertEqualFloat32(t, 6, x.At(1, 2), "FromSlice At(1,2)")
}

func TestFromSliceShapeMismatch(t *testing.T) {
	backend := NewMockBackend()
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 3}, backend); err == nil {
		t.Error("FromSlice should reject a slice shorter than the shape requires")
	}
}

// Method Tests

func TestTensorAtSet(t *testing.T) {
	backend := NewMockBackend()
	x := Zeros[float32](Shape{3, 4}, backend)

	x.Set(7.5, 1, 2)
	assertEqualFloat32(t, 7.5, x.At(1, 2), "At after Set")
	assertEqualFloat32(t, 0, x.At(1, 3), "untouched element")
}

func TestTensorDataZeroCopy(t *testing.T) {
	backend := NewMockBackend()
	x := Zeros[float32](Shape{2, 2}, backend)

	x.Data()[0] = 42
	assertEqualFloat32(t, 42, x.At(0, 0), "Data should be a zero-copy view")
}

func TestTensorClone(t *testing.T) {
	backend := NewMockBackend()
	x, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)

	y := x.Clone()
	y.Set(99, 0, 0)

	assertEqualFloat32(t, 1, x.At(0, 0), "Clone should not alias the original")
}

// Operation Tests (via MockBackend)

func TestTensorAdd(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	b, _ := FromSlice([]float32{10, 20, 30, 40}, Shape{2, 2}, backend)

	c := a.Add(b)

	expected := []float32{11, 22, 33, 44}
	for i, want := range expected {
		assertEqualFloat32(t, want, c.Data()[i], "Add result")
	}
}

func TestTensorAddBroadcast(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	bias, _ := FromSlice([]float32{10, 20, 30}, Shape{1, 3}, backend)

	c := a.Add(bias)

	assertEqualShape(t, Shape{2, 3}, c.Shape(), "broadcast Add shape")
	expected := []float32{11, 22, 33, 14, 25, 36}
	for i, want := range expected {
		assertEqualFloat32(t, want, c.Data()[i], "broadcast Add result")
	}
}

func TestTensorMatMul(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	b, _ := FromSlice([]float32{5, 6, 7, 8}, Shape{2, 2}, backend)

	c := a.MatMul(b)

	// [1 2]   [5 6]   [19 22]
	// [3 4] @ [7 8] = [43 50]
	expected := []float32{19, 22, 43, 50}
	for i, want := range expected {
		assertEqualFloat32(t, want, c.Data()[i], "MatMul result")
	}
}

func TestTensorReshape(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	b := a.Reshape(3, 2)

	assertEqualShape(t, Shape{3, 2}, b.Shape(), "Reshape shape")
	// Row-major data order is preserved
	assertEqualFloat32(t, 3, b.At(1, 0), "Reshape element order")
}

func TestTensorTranspose(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	b := a.T()

	assertEqualShape(t, Shape{3, 2}, b.Shape(), "Transpose shape")
	assertEqualFloat32(t, a.At(0, 2), b.At(2, 0), "Transpose element")
	assertEqualFloat32(t, a.At(1, 0), b.At(0, 1), "Transpose element")
}

func TestTensorSubDivScalar(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{0, 128, 255}, Shape{3}, backend)

	normalized := a.SubScalar(128).DivScalar(128)

	expected := []float32{-1, 0, 127.0 / 128.0}
	for i, want := range expected {
		assertEqualFloat32(t, want, normalized.Data()[i], "normalize chain")
	}
}

func TestTensorReLU(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{-2, -0.5, 0, 0.5, 2}, Shape{5}, backend)

	b := a.ReLU()

	expected := []float32{0, 0, 0, 0.5, 2}
	for i, want := range expected {
		assertEqualFloat32(t, want, b.Data()[i], "ReLU result")
	}
}
