package ops

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// reduceBroadcast reduces grad back to targetShape by summing the
// dimensions that were expanded during broadcasting.
//
// A forward broadcast copies values across expanded dimensions, so the
// backward pass must sum the incoming gradient over exactly those
// dimensions: leading dimensions the target never had, and dimensions
// where the target has size 1.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad.Clone()
	}

	// Scalar target: sum everything.
	if targetShape.NumElements() == 1 {
		summed := sumAll(grad)
		return backend.Reshape(summed, targetShape)
	}

	result := grad

	// Sum away leading dimensions the target does not have.
	for len(result.Shape()) > len(targetShape) {
		result = sumAlongDim(result, 0)
	}

	// Sum dimensions where the target is 1 but the gradient is not.
	for i := 0; i < len(targetShape); i++ {
		if targetShape[i] == 1 && result.Shape()[i] != 1 {
			result = sumAlongDim(result, i)
			// sumAlongDim removes the dimension; restore it as size 1.
			newShape := make(tensor.Shape, 0, len(targetShape))
			newShape = append(newShape, result.Shape()[:i]...)
			newShape = append(newShape, 1)
			newShape = append(newShape, result.Shape()[i:]...)
			result = backend.Reshape(result, newShape)
		}
	}

	if !result.Shape().Equal(targetShape) {
		panic(fmt.Sprintf("reduceBroadcast: reduced %v to %v, want %v",
			grad.Shape(), result.Shape(), targetShape))
	}
	return result
}

// sumAll reduces a tensor to a single-element tensor.
func sumAll(x *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), x.Device())
	if err != nil {
		panic(err)
	}

	switch x.DType() {
	case tensor.Float32:
		var sum float32
		for _, v := range x.AsFloat32() {
			sum += v
		}
		out.AsFloat32()[0] = sum
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		out.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("sumAll: unsupported dtype %s", x.DType()))
	}
	return out
}

// sumAlongDim sums over one dimension and removes it from the shape.
func sumAlongDim(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumAlongDim: dim %d out of range for shape %v", dim, shape))
	}

	outShape := make(tensor.Shape, 0, len(shape)-1)
	outShape = append(outShape, shape[:dim]...)
	outShape = append(outShape, shape[dim+1:]...)
	if len(outShape) == 0 {
		outShape = tensor.Shape{1}
	}

	out, err := tensor.NewRaw(outShape, x.DType(), x.Device())
	if err != nil {
		panic(err)
	}

	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	size := shape[dim]

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), out.AsFloat32()
		for o := 0; o < outer; o++ {
			for k := 0; k < size; k++ {
				for in := 0; in < inner; in++ {
					dst[o*inner+in] += src[o*size*inner+k*inner+in]
				}
			}
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), out.AsFloat64()
		for o := 0; o < outer; o++ {
			for k := 0; k < size; k++ {
				for in := 0; in < inner; in++ {
					dst[o*inner+in] += src[o*size*inner+k*inner+in]
				}
			}
		}
	default:
		panic(fmt.Sprintf("sumAlongDim: unsupported dtype %s", x.DType()))
	}
	return out
}

// negateGradient returns -grad.
func negateGradient(grad *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(grad.Shape(), grad.DType(), grad.Device())
	if err != nil {
		panic(err)
	}

	switch grad.DType() {
	case tensor.Float32:
		src, dst := grad.AsFloat32(), out.AsFloat32()
		for i, v := range src {
			dst[i] = -v
		}
	case tensor.Float64:
		src, dst := grad.AsFloat64(), out.AsFloat64()
		for i, v := range src {
			dst[i] = -v
		}
	default:
		panic(fmt.Sprintf("negateGradient: unsupported dtype %s", grad.DType()))
	}
	return out
}
