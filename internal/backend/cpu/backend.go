// Package cpu implements the tensor.Backend compute interface with
// plain Go loops.
//
// Kernels are organized by concern: element-wise arithmetic in ops.go
// with per-dtype loops in ops_float32.go and ops_float64.go, matrix
// multiplication in matmul.go, activations in activation.go. Binary
// operations take an in-place fast path when the destination buffer
// has no other references, fall back to a vectorized loop for equal
// shapes, and use stride-based iteration when broadcasting. Row-level
// kernels (matmul, softmax) fan their outer loops out across cores
// through the parallel package.
package cpu

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// CPUBackend executes tensor operations on the host CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a CPU backend.
func New() *CPUBackend {
	return &CPUBackend{device: tensor.CPU}
}

// Name returns "CPU".
func (b *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the CPU device.
func (b *CPUBackend) Device() tensor.Device {
	return b.device
}

// Add computes element-wise a + b with broadcasting.
func (b *CPUBackend) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("add", x, y, addInplace, addVectorized, addWithBroadcast)
}

// Sub computes element-wise a - b with broadcasting.
func (b *CPUBackend) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("sub", x, y, subInplace, subVectorized, subWithBroadcast)
}

// Mul computes element-wise a * b with broadcasting.
func (b *CPUBackend) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("mul", x, y, mulInplace, mulVectorized, mulWithBroadcast)
}

// Div computes element-wise a / b with broadcasting.
func (b *CPUBackend) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("div", x, y, divInplace, divVectorized, divWithBroadcast)
}

type inplaceKernel func(dst, src *tensor.RawTensor)
type vectorKernel func(x, y, out *tensor.RawTensor)
type broadcastKernel func(x, y, out *tensor.RawTensor)

// binaryOp implements the shared dispatch for element-wise arithmetic.
func (b *CPUBackend) binaryOp(
	name string,
	x, y *tensor.RawTensor,
	inplace inplaceKernel,
	vectorized vectorKernel,
	broadcast broadcastKernel,
) *tensor.RawTensor {
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, x.DType(), y.DType()))
	}

	resultShape, needsBroadcast, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if !needsBroadcast {
		// Same shapes. Reuse x's buffer when nobody else can see it.
		if x.IsUnique() {
			inplace(x, y)
			return x
		}
		result := mustNewRaw(resultShape, x.DType(), b.device)
		vectorized(x, y, result)
		return result
	}

	result := mustNewRaw(resultShape, x.DType(), b.device)
	broadcast(x, y, result)
	return result
}

// Reshape returns a copy of x with a new shape. The element count must
// be preserved.
func (b *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	if shape.NumElements() != x.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			x.Shape(), x.NumElements(), shape, shape.NumElements()))
	}

	result := mustNewRaw(shape, x.DType(), b.device)
	copy(result.Data(), x.Data())
	return result
}

// Transpose permutes the axes of x. With no axes given, the axis order
// is reversed.
func (b *CPUBackend) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	ndim := len(x.Shape())

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: %d axes for %d-dimensional tensor", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("transpose: invalid axes %v for shape %v", axes, x.Shape()))
		}
		seen[ax] = true
	}

	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		outShape[i] = x.Shape()[ax]
	}
	result := mustNewRaw(outShape, x.DType(), b.device)

	switch x.DType() {
	case tensor.Float32:
		transposeFloat32(x, result, axes)
	case tensor.Float64:
		transposeFloat64(x, result, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", x.DType()))
	}
	return result
}

// mustNewRaw allocates a tensor or panics. Allocation only fails on
// invalid shapes, which earlier validation has ruled out.
func mustNewRaw(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(err)
	}
	return raw
}
