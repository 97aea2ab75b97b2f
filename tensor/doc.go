// Copyright 2025 The Inkwell Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the Inkwell framework.
//
// # Overview
//
// Tensors are the fundamental data structure in Inkwell. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for element-wise operations
//   - Copy-on-write buffers with reference counting
//   - A small Backend interface every compute device implements
//
// # Basic Usage
//
//	import (
//	    "github.com/inkwell-ml/inkwell/tensor"
//	    "github.com/inkwell-ml/inkwell/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    probs := z.Softmax(1)
//	}
//
// # Type Safety
//
// The element type and the backend are both part of the tensor's type, so
// mixing backends or element types is a compile error rather than a runtime
// surprise:
//
//	x := tensor.Zeros[float32](tensor.Shape{2}, cpuBackend)
//	y := tensor.Zeros[float64](tensor.Shape{2}, cpuBackend)
//	// x.Add(y) does not compile
//
// # Memory Management
//
// Tensors share buffers through reference counting. Clone() is cheap (it
// bumps a refcount), and backends only mutate a buffer in place when they
// can prove it has a single owner. See RawTensor for the low-level API.
package tensor
