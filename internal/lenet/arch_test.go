package lenet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

func TestArchitecture_StageTable(t *testing.T) {
	arch := Architecture(43)
	require.Len(t, arch, 10)

	expected := []struct {
		op     OpKind
		input  tensor.Shape
		output tensor.Shape
	}{
		{OpConvolution, tensor.Shape{32, 32, 1}, tensor.Shape{28, 28, 6}},
		{OpActivation, tensor.Shape{28, 28, 6}, tensor.Shape{28, 28, 6}},
		{OpPooling, tensor.Shape{28, 28, 6}, tensor.Shape{14, 14, 6}},
		{OpConvolution, tensor.Shape{14, 14, 6}, tensor.Shape{10, 10, 16}},
		{OpActivation, tensor.Shape{10, 10, 16}, tensor.Shape{10, 10, 16}},
		{OpPooling, tensor.Shape{10, 10, 16}, tensor.Shape{5, 5, 16}},
		{OpFlatten, tensor.Shape{5, 5, 16}, tensor.Shape{400}},
		{OpDense, tensor.Shape{400}, tensor.Shape{120}},
		{OpDense, tensor.Shape{120}, tensor.Shape{80}},
		{OpOutput, tensor.Shape{80}, tensor.Shape{43}},
	}

	for i, exp := range expected {
		assert.Equal(t, i+1, arch[i].Stage, "stage number at index %d", i)
		assert.Equal(t, exp.op, arch[i].Op, "op at stage %d", i+1)
		assert.True(t, arch[i].Input.Equal(exp.input),
			"stage %d input: want %v, got %v", i+1, exp.input, arch[i].Input)
		assert.True(t, arch[i].Output.Equal(exp.output),
			"stage %d output: want %v, got %v", i+1, exp.output, arch[i].Output)
	}
}

func TestArchitecture_StagesChain(t *testing.T) {
	// Each stage's input must equal the previous stage's output.
	arch := Architecture(10)
	for i := 1; i < len(arch); i++ {
		assert.True(t, arch[i-1].Output.Equal(arch[i].Input),
			"stage %d output %v does not feed stage %d input %v",
			arch[i-1].Stage, arch[i-1].Output, arch[i].Stage, arch[i].Input)
	}
}

func TestArchitecture_ClassCountOnlyAffectsOutput(t *testing.T) {
	a := Architecture(10)
	b := Architecture(43)

	for i := 0; i < 9; i++ {
		assert.True(t, a[i].Output.Equal(b[i].Output),
			"stage %d should not depend on class count", i+1)
	}
	assert.True(t, a[9].Output.Equal(tensor.Shape{10}))
	assert.True(t, b[9].Output.Equal(tensor.Shape{43}))
}

func TestConvOutputDim(t *testing.T) {
	// (in + 2*padding - kernel) / stride + 1
	assert.Equal(t, 28, convOutputDim(32, 5, 1, 0))
	assert.Equal(t, 14, convOutputDim(28, 2, 2, 0))
	assert.Equal(t, 10, convOutputDim(14, 5, 1, 0))
	assert.Equal(t, 5, convOutputDim(10, 2, 2, 0))
	assert.Equal(t, 32, convOutputDim(32, 5, 1, 2)) // same-padding case
}

func TestOpKindString(t *testing.T) {
	assert.Equal(t, "convolution", OpConvolution.String())
	assert.Equal(t, "pooling", OpPooling.String())
	assert.Equal(t, "output", OpOutput.String())
}

func TestArchitectureMismatchError_Message(t *testing.T) {
	err := &ArchitectureMismatchError{
		Stage: 7,
		Op:    OpFlatten,
		Want:  tensor.Shape{400},
		Got:   tensor.Shape{256},
	}
	assert.Contains(t, err.Error(), "stage 7")
	assert.Contains(t, err.Error(), "flatten")
}
