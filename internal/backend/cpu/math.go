package cpu

import (
	"fmt"
	"math"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Log applies the natural logarithm element-wise.
// Panics on non-positive input rather than letting NaN propagate.
func (b *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	result := mustNewRaw(x.Shape(), x.DType(), b.device)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			if v <= 0 {
				panic(fmt.Sprintf("log: non-positive value %g at index %d", v, i))
			}
			dst[i] = float32(math.Log(float64(v)))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			if v <= 0 {
				panic(fmt.Sprintf("log: non-positive value %g at index %d", v, i))
			}
			dst[i] = math.Log(v)
		}
	default:
		panic(fmt.Sprintf("log: unsupported dtype %s", x.DType()))
	}
	return result
}
