// Copyright 2025 The Inkwell Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation
// (backpropagation) using a gradient tape. It wraps any backend to add
// autodiff capabilities.
//
// Example:
//
//	import (
//	    "github.com/inkwell-ml/inkwell/autodiff"
//	    "github.com/inkwell-ml/inkwell/backend/cpu"
//	    "github.com/inkwell-ml/inkwell/nn"
//	)
//
//	func main() {
//	    // Wrap CPU backend with autodiff
//	    base := cpu.New()
//	    backend := autodiff.New(base)
//
//	    // Forward pass with recording on
//	    backend.Tape().StartRecording()
//	    loss := nn.SequenceNLL(cell, inputs, targets, backend)
//	    backend.Tape().StopRecording()
//
//	    // Compute gradients
//	    grads := autodiff.Backward(loss, backend)
//	}
package autodiff

import (
	"github.com/inkwell-ml/inkwell/internal/autodiff"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Backend is the autodiff-enabled backend.
//
// It implements tensor.Backend by delegating every operation to the
// wrapped backend, recording the operation on the gradient tape when
// recording is on.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewTape creates a new gradient tape. Backends built with New already
// carry one; this is for tests and custom wiring.
func NewTape() *GradientTape {
	return autodiff.NewTape()
}

// Backward computes gradients of loss with respect to every tensor that
// participated in recorded operations. The returned map is keyed by the
// raw tensors of the forward pass, so parameter gradients can be looked
// up via Parameter.Tensor().Raw().
func Backward[T tensor.DType, B tensor.Backend](
	loss *tensor.Tensor[T, *Backend[B]],
	backend *Backend[B],
) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(loss, backend)
}
