package cpu

import (
	"fmt"
	"math"

	"github.com/inkwell-ml/inkwell/internal/parallel"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Tanh applies the hyperbolic tangent element-wise.
func (b *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	result := mustNewRaw(x.Shape(), x.DType(), b.device)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(math.Tanh(float64(v)))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[i] = math.Tanh(v)
		}
	default:
		panic(fmt.Sprintf("tanh: unsupported dtype %s", x.DType()))
	}
	return result
}

// Sigmoid applies the logistic function 1/(1+exp(-x)) element-wise.
func (b *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result := mustNewRaw(x.Shape(), x.DType(), b.device)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(1.0 / (1.0 + math.Exp(-float64(v))))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[i] = 1.0 / (1.0 + math.Exp(-v))
		}
	default:
		panic(fmt.Sprintf("sigmoid: unsupported dtype %s", x.DType()))
	}
	return result
}

// Softmax normalizes x into a probability distribution along dim.
//
// Every row is shifted by its maximum before exponentiation, so rows
// whose entries differ by hundreds still produce finite, normalized
// output. This max-shifted form is the only softmax the backend
// exposes; see naiveSoftmaxFloat32 for the overflow it avoids.
func (b *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("softmax: dim %d out of range for shape %v", dim, shape))
	}

	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < ndim; i++ {
		inner *= shape[i]
	}
	size := shape[dim]

	result := mustNewRaw(shape, x.DType(), b.device)
	switch x.DType() {
	case tensor.Float32:
		softmaxFloat32(x.AsFloat32(), result.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		softmaxFloat64(x.AsFloat64(), result.AsFloat64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s", x.DType()))
	}
	return result
}

// Each outer slice writes a disjoint region of dst, so the slices fan
// out across cores like matmul rows.
func softmaxFloat32(src, dst []float32, outer, size, inner int) {
	parallel.For(outer, func(o int) {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in

			maxVal := src[base]
			for k := 1; k < size; k++ {
				if v := src[base+k*inner]; v > maxVal {
					maxVal = v
				}
			}

			var sum float32
			for k := 0; k < size; k++ {
				idx := base + k*inner
				e := float32(math.Exp(float64(src[idx] - maxVal)))
				dst[idx] = e
				sum += e
			}

			for k := 0; k < size; k++ {
				dst[base+k*inner] /= sum
			}
		}
	}, rowParallel)
}

func softmaxFloat64(src, dst []float64, outer, size, inner int) {
	parallel.For(outer, func(o int) {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in

			maxVal := src[base]
			for k := 1; k < size; k++ {
				if v := src[base+k*inner]; v > maxVal {
					maxVal = v
				}
			}

			var sum float64
			for k := 0; k < size; k++ {
				idx := base + k*inner
				e := math.Exp(src[idx] - maxVal)
				dst[idx] = e
				sum += e
			}

			for k := 0; k < size; k++ {
				dst[base+k*inner] /= sum
			}
		}
	}, rowParallel)
}

// naiveSoftmaxFloat32 exponentiates without the max shift.
//
// exp overflows float64 near x = 710, so any row containing a value in
// the hundreds produces +Inf and the normalization collapses to NaN.
// The function is kept to demonstrate that failure mode in tests; no
// backend operation calls it.
func naiveSoftmaxFloat32(src []float32) []float32 {
	dst := make([]float32, len(src))
	var sum float32
	for i, v := range src {
		dst[i] = float32(math.Exp(float64(v)))
		sum += dst[i]
	}
	for i := range dst {
		dst[i] /= sum
	}
	return dst
}
