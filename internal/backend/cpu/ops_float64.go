package cpu

import "github.com/inkwell-ml/inkwell/internal/tensor"

// Typed float64 loops for element-wise arithmetic, mirroring
// ops_float32.go.

func addInplaceFloat64(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}

func addVectorizedFloat64(x, y, out []float64) {
	for i := range x {
		out[i] = x[i] + y[i]
	}
}

func subInplaceFloat64(dst, src []float64) {
	for i := range dst {
		dst[i] -= src[i]
	}
}

func subVectorizedFloat64(x, y, out []float64) {
	for i := range x {
		out[i] = x[i] - y[i]
	}
}

func mulInplaceFloat64(dst, src []float64) {
	for i := range dst {
		dst[i] *= src[i]
	}
}

func mulVectorizedFloat64(x, y, out []float64) {
	for i := range x {
		out[i] = x[i] * y[i]
	}
}

func divInplaceFloat64(dst, src []float64) {
	for i := range dst {
		dst[i] /= src[i]
	}
}

func divVectorizedFloat64(x, y, out []float64) {
	for i := range x {
		out[i] = x[i] / y[i]
	}
}

func broadcastLoopFloat64(x, y, out *tensor.RawTensor, fn func(a, b float64) float64) {
	outShape := out.Shape()
	stridesX := computeBroadcastStrides(x.Shape(), outShape)
	stridesY := computeBroadcastStrides(y.Shape(), outShape)

	xData := x.AsFloat64()
	yData := y.AsFloat64()
	outData := out.AsFloat64()

	coords := make([]int, len(outShape))
	for i := range outData {
		outData[i] = fn(xData[flatIndex(coords, stridesX)], yData[flatIndex(coords, stridesY)])
		advanceCoords(coords, outShape)
	}
}
