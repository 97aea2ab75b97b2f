package cpu

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Per-operation dispatchers. Each forwards to the typed loop for the
// tensor's dtype; the typed loops live in ops_float32.go and
// ops_float64.go.

func addInplace(dst, src *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		addInplaceFloat32(dst.AsFloat32(), src.AsFloat32())
	case tensor.Float64:
		addInplaceFloat64(dst.AsFloat64(), src.AsFloat64())
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", dst.DType()))
	}
}

func addVectorized(x, y, out *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		addVectorizedFloat32(x.AsFloat32(), y.AsFloat32(), out.AsFloat32())
	case tensor.Float64:
		addVectorizedFloat64(x.AsFloat64(), y.AsFloat64(), out.AsFloat64())
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", x.DType()))
	}
}

func addWithBroadcast(x, y, out *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		broadcastLoopFloat32(x, y, out, func(a, b float32) float32 { return a + b })
	case tensor.Float64:
		broadcastLoopFloat64(x, y, out, func(a, b float64) float64 { return a + b })
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", x.DType()))
	}
}

func subInplace(dst, src *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		subInplaceFloat32(dst.AsFloat32(), src.AsFloat32())
	case tensor.Float64:
		subInplaceFloat64(dst.AsFloat64(), src.AsFloat64())
	default:
		panic(fmt.Sprintf("sub: unsupported dtype %s", dst.DType()))
	}
}

func subVectorized(x, y, out *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		subVectorizedFloat32(x.AsFloat32(), y.AsFloat32(), out.AsFloat32())
	case tensor.Float64:
		subVectorizedFloat64(x.AsFloat64(), y.AsFloat64(), out.AsFloat64())
	default:
		panic(fmt.Sprintf("sub: unsupported dtype %s", x.DType()))
	}
}

func subWithBroadcast(x, y, out *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		broadcastLoopFloat32(x, y, out, func(a, b float32) float32 { return a - b })
	case tensor.Float64:
		broadcastLoopFloat64(x, y, out, func(a, b float64) float64 { return a - b })
	default:
		panic(fmt.Sprintf("sub: unsupported dtype %s", x.DType()))
	}
}

func mulInplace(dst, src *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		mulInplaceFloat32(dst.AsFloat32(), src.AsFloat32())
	case tensor.Float64:
		mulInplaceFloat64(dst.AsFloat64(), src.AsFloat64())
	default:
		panic(fmt.Sprintf("mul: unsupported dtype %s", dst.DType()))
	}
}

func mulVectorized(x, y, out *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		mulVectorizedFloat32(x.AsFloat32(), y.AsFloat32(), out.AsFloat32())
	case tensor.Float64:
		mulVectorizedFloat64(x.AsFloat64(), y.AsFloat64(), out.AsFloat64())
	default:
		panic(fmt.Sprintf("mul: unsupported dtype %s", x.DType()))
	}
}

func mulWithBroadcast(x, y, out *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		broadcastLoopFloat32(x, y, out, func(a, b float32) float32 { return a * b })
	case tensor.Float64:
		broadcastLoopFloat64(x, y, out, func(a, b float64) float64 { return a * b })
	default:
		panic(fmt.Sprintf("mul: unsupported dtype %s", x.DType()))
	}
}

func divInplace(dst, src *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		divInplaceFloat32(dst.AsFloat32(), src.AsFloat32())
	case tensor.Float64:
		divInplaceFloat64(dst.AsFloat64(), src.AsFloat64())
	default:
		panic(fmt.Sprintf("div: unsupported dtype %s", dst.DType()))
	}
}

func divVectorized(x, y, out *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		divVectorizedFloat32(x.AsFloat32(), y.AsFloat32(), out.AsFloat32())
	case tensor.Float64:
		divVectorizedFloat64(x.AsFloat64(), y.AsFloat64(), out.AsFloat64())
	default:
		panic(fmt.Sprintf("div: unsupported dtype %s", x.DType()))
	}
}

func divWithBroadcast(x, y, out *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		broadcastLoopFloat32(x, y, out, func(a, b float32) float32 { return a / b })
	case tensor.Float64:
		broadcastLoopFloat64(x, y, out, func(a, b float64) float64 { return a / b })
	default:
		panic(fmt.Sprintf("div: unsupported dtype %s", x.DType()))
	}
}
