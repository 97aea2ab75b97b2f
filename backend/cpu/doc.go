// Copyright 2025 The Inkwell Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - In-place updates when a buffer has a single owner
//
// # Basic Usage
//
//	import (
//	    "github.com/inkwell-ml/inkwell/backend/cpu"
//	    "github.com/inkwell-ml/inkwell/tensor"
//	    "github.com/inkwell-ml/inkwell/nn"
//	)
//
//	func main() {
//	    // Create CPU backend
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//
//	    // Use with models
//	    cell := nn.NewRNNCell(65, 128, backend)
//	}
//
// # Numerical Stability
//
// Softmax uses the max-shifted formulation, so probability rows stay
// finite even when activations span hundreds of units. This matters for
// the NLL loss, which takes a bare logarithm of the selected
// probability.
//
// # Thread Safety
//
// The CPU backend is stateless and safe for concurrent use as long as
// the tensors involved are not shared between goroutines.
package cpu
