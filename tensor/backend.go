// Copyright 2025 The Inkwell Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go reference implementation
//
// Decorator backends for additional functionality:
//   - autodiff: Automatic differentiation (wraps any backend)
//
// The interface is intentionally small: exactly the operations the
// recurrent models and their gradients need. Shape and dtype violations
// panic; they indicate programmer error, not runtime conditions to
// recover from.
//
// Example:
//
//	import (
//	    "github.com/inkwell-ml/inkwell/tensor"
//	    "github.com/inkwell-ml/inkwell/backend/cpu"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend interface {
	// Identification.
	Name() string   // Backend name, e.g. "CPU" or "Autodiff(CPU)".
	Device() Device // Device this backend computes on.

	// Element-wise binary operations with broadcasting.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Matrix operations.
	MatMul(a, b *RawTensor) *RawTensor // Matrix multiplication of 2D tensors.

	// Shape operations.
	Reshape(x *RawTensor, shape Shape) *RawTensor // Reshape tensor, element count preserved.
	Transpose(x *RawTensor, axes ...int) *RawTensor // Permute axes; no axes reverses the order.

	// Activations.
	Tanh(x *RawTensor) *RawTensor             // Hyperbolic tangent, element-wise.
	Sigmoid(x *RawTensor) *RawTensor          // Logistic function, element-wise.
	Softmax(x *RawTensor, dim int) *RawTensor // Max-shifted softmax along dim.
	Log(x *RawTensor) *RawTensor              // Natural logarithm, element-wise.
}
