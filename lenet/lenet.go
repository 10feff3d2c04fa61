// Copyright 2026 TrafficNet. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package lenet exposes the fixed LeNet-style traffic-sign classifier
// and its invariant stage table.
//
// Example:
//
//	backend := cpu.New()
//	net, err := lenet.New(43, backend)
//	if err != nil {
//	    return err
//	}
//	scores := net.Forward(images) // [batch, 43] raw scores
package lenet

import (
	"github.com/trafficnet-ml/trafficnet/internal/lenet"
	"github.com/trafficnet-ml/trafficnet/internal/tensor"
)

// Input dimensions of the classifier.
const (
	InputHeight   = lenet.InputHeight
	InputWidth    = lenet.InputWidth
	InputChannels = lenet.InputChannels
)

// OpKind identifies the operation performed by one network stage.
type OpKind = lenet.OpKind

// Stage operation kinds.
const (
	OpConvolution OpKind = lenet.OpConvolution
	OpActivation  OpKind = lenet.OpActivation
	OpPooling     OpKind = lenet.OpPooling
	OpFlatten     OpKind = lenet.OpFlatten
	OpDense       OpKind = lenet.OpDense
	OpOutput      OpKind = lenet.OpOutput
)

// LayerShape describes one stage of the network.
type LayerShape = lenet.LayerShape

// ArchitectureMismatchError reports a stage whose declared shape does
// not line up with what the preceding stages produce.
type ArchitectureMismatchError = lenet.ArchitectureMismatchError

// Network is the traffic-sign classifier.
type Network[B tensor.Backend] = lenet.Network[B]

// Architecture returns the invariant stage table for a classifier with
// the given class count.
func Architecture(classes int) []LayerShape {
	return lenet.Architecture(classes)
}

// New creates the classifier for the given class count, verifying the
// assembled layers against the stage table before any data can flow.
func New[B tensor.Backend](classes int, backend B) (*Network[B], error) {
	return lenet.New(classes, backend)
}
