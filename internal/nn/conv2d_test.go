package nn

import (
	"testing"

	"github.com/trafficnet-ml/trafficnet/internal/backend/cpu"
	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// TestConv2D_Creation tests Conv2D layer creation.
func TestConv2D_Creation(t *testing.T) {
	backend := cpu.New()

	// 1 -> 6 channels, 5x5 kernel
	conv := NewConv2D(1, 6, 5, 5, 1, 0, true, backend)

	if conv.InChannels() != 1 {
		t.Errorf("Expected in_channels=1, got %d", conv.InChannels())
	}
	if conv.OutChannels() != 6 {
		t.Errorf("Expected out_channels=6, got %d", conv.OutChannels())
	}

	kernelSize := conv.KernelSize()
	if kernelSize[0] != 5 || kernelSize[1] != 5 {
		t.Errorf("Expected kernel_size=[5,5], got %v", kernelSize)
	}

	// Weight shape: [6, 1, 5, 5]
	weightShape := conv.weight.Tensor().Shape()
	if !weightShape.Equal(tensor.Shape{6, 1, 5, 5}) {
		t.Errorf("Weight shape: expected [6 1 5 5], got %v", weightShape)
	}

	// Bias shape: [6]
	biasShape := conv.bias.Tensor().Shape()
	if !biasShape.Equal(tensor.Shape{6}) {
		t.Errorf("Bias shape: expected [6], got %v", biasShape)
	}

	params := conv.Parameters()
	if len(params) != 2 {
		t.Errorf("Expected 2 parameters (weight, bias), got %d", len(params))
	}
}

func TestConv2D_NoBias(t *testing.T) {
	backend := cpu.New()
	conv := NewConv2D(1, 4, 3, 3, 1, 0, false, backend)

	params := conv.Parameters()
	if len(params) != 1 {
		t.Errorf("Expected 1 parameter (weight only), got %d", len(params))
	}
}

// TestConv2D_ForwardShape tests output shapes for the classifier's
// convolution stages.
func TestConv2D_ForwardShape(t *testing.T) {
	backend := cpu.New()

	conv1 := NewConv2D(1, 6, 5, 5, 1, 0, true, backend)
	input := tensor.Zeros[float32](tensor.Shape{2, 1, 32, 32}, backend)

	output := conv1.Forward(input)
	if !output.Shape().Equal(tensor.Shape{2, 6, 28, 28}) {
		t.Errorf("Conv1 output: expected [2 6 28 28], got %v", output.Shape())
	}

	conv2 := NewConv2D(6, 16, 5, 5, 1, 0, true, backend)
	input2 := tensor.Zeros[float32](tensor.Shape{2, 6, 14, 14}, backend)

	output2 := conv2.Forward(input2)
	if !output2.Shape().Equal(tensor.Shape{2, 16, 10, 10}) {
		t.Errorf("Conv2 output: expected [2 16 10 10], got %v", output2.Shape())
	}
}

// TestConv2D_BiasApplied verifies that the per-channel bias lands on
// every spatial position.
func TestConv2D_BiasApplied(t *testing.T) {
	backend := cpu.New()

	conv := NewConv2D(1, 2, 2, 2, 1, 0, true, backend)

	// Zero the weights, set distinct biases: output is pure bias.
	weightData := conv.weight.Tensor().Data()
	for i := range weightData {
		weightData[i] = 0
	}
	biasData := conv.bias.Tensor().Data()
	biasData[0] = 1.5
	biasData[1] = -2.5

	input := tensor.Ones[float32](tensor.Shape{1, 1, 3, 3}, backend)
	output := conv.Forward(input) // [1, 2, 2, 2]

	data := output.Data()
	for i := 0; i < 4; i++ {
		if data[i] != 1.5 {
			t.Errorf("Channel 0 position %d: expected 1.5, got %v", i, data[i])
		}
		if data[4+i] != -2.5 {
			t.Errorf("Channel 1 position %d: expected -2.5, got %v", i, data[4+i])
		}
	}
}

func TestConv2D_ComputeOutputSize(t *testing.T) {
	backend := cpu.New()
	conv := NewConv2D(1, 6, 5, 5, 1, 0, true, backend)

	out := conv.ComputeOutputSize(32, 32)
	if out[0] != 28 || out[1] != 28 {
		t.Errorf("ComputeOutputSize(32, 32) = %v, want [28 28]", out)
	}
}

func TestConv2D_InvalidParamsPanic(t *testing.T) {
	backend := cpu.New()

	defer func() {
		if r := recover(); r == nil {
			t.Error("NewConv2D should panic on non-positive channels")
		}
	}()
	NewConv2D(0, 6, 5, 5, 1, 0, true, backend)
}

func TestConv2D_WrongChannelsPanic(t *testing.T) {
	backend := cpu.New()
	conv := NewConv2D(1, 6, 5, 5, 1, 0, true, backend)
	input := tensor.Zeros[float32](tensor.Shape{1, 3, 32, 32}, backend)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Forward should panic on channel mismatch")
		}
	}()
	conv.Forward(input)
}
