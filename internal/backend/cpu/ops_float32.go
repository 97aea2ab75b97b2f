package cpu

import "github.com/inkwell-ml/inkwell/internal/tensor"

// Typed float32 loops for element-wise arithmetic. The in-place and
// vectorized variants assume equal shapes; the broadcast loop walks
// both operands with broadcast strides.

func addInplaceFloat32(dst, src []float32) {
	for i := range dst {
		dst[i] += src[i]
	}
}

func addVectorizedFloat32(x, y, out []float32) {
	for i := range x {
		out[i] = x[i] + y[i]
	}
}

func subInplaceFloat32(dst, src []float32) {
	for i := range dst {
		dst[i] -= src[i]
	}
}

func subVectorizedFloat32(x, y, out []float32) {
	for i := range x {
		out[i] = x[i] - y[i]
	}
}

func mulInplaceFloat32(dst, src []float32) {
	for i := range dst {
		dst[i] *= src[i]
	}
}

func mulVectorizedFloat32(x, y, out []float32) {
	for i := range x {
		out[i] = x[i] * y[i]
	}
}

func divInplaceFloat32(dst, src []float32) {
	for i := range dst {
		dst[i] /= src[i]
	}
}

func divVectorizedFloat32(x, y, out []float32) {
	for i := range x {
		out[i] = x[i] / y[i]
	}
}

// broadcastLoopFloat32 applies fn element-wise across broadcast
// operands. Both inputs are indexed with broadcast strides so size-1
// dimensions repeat.
func broadcastLoopFloat32(x, y, out *tensor.RawTensor, fn func(a, b float32) float32) {
	outShape := out.Shape()
	stridesX := computeBroadcastStrides(x.Shape(), outShape)
	stridesY := computeBroadcastStrides(y.Shape(), outShape)

	xData := x.AsFloat32()
	yData := y.AsFloat32()
	outData := out.AsFloat32()

	coords := make([]int, len(outShape))
	for i := range outData {
		outData[i] = fn(xData[flatIndex(coords, stridesX)], yData[flatIndex(coords, stridesY)])
		advanceCoords(coords, outShape)
	}
}
