package cpu

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/parallel"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// rowParallel tunes parallel.For for kernels that walk a whole row per
// iteration. A row carries O(cols) work, so goroutines pay off at a
// much smaller count than the element-wise default.
var rowParallel = func() parallel.Config {
	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 8
	return cfg
}()

// MatMul computes the matrix product of two 2D tensors.
// For a [m, k] and b [k, n] the result is [m, n].
func (b *CPUBackend) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	xShape, yShape := x.Shape(), y.Shape()

	if len(xShape) != 2 || len(yShape) != 2 {
		panic(fmt.Sprintf("matmul: requires 2D tensors, got %v and %v", xShape, yShape))
	}
	if xShape[1] != yShape[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", xShape, yShape))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", x.DType(), y.DType()))
	}

	m, k, n := xShape[0], xShape[1], yShape[1]
	result := mustNewRaw(tensor.Shape{m, n}, x.DType(), b.device)

	switch x.DType() {
	case tensor.Float32:
		matmulFloat32(x.AsFloat32(), y.AsFloat32(), result.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulFloat64(x.AsFloat64(), y.AsFloat64(), result.AsFloat64(), m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", x.DType()))
	}
	return result
}

// matmulFloat32 is the classic triple loop, ordered i-k-j so the inner
// loop walks both operands sequentially. Zero entries are skipped;
// one-hot input rows make them the common case. Output rows are
// independent, so the outer loop fans out across cores.
func matmulFloat32(x, y, out []float32, m, k, n int) {
	parallel.For(m, func(i int) {
		for p := 0; p < k; p++ {
			xv := x[i*k+p]
			if xv == 0 {
				continue
			}
			yRow := y[p*n : p*n+n]
			outRow := out[i*n : i*n+n]
			for j := range yRow {
				outRow[j] += xv * yRow[j]
			}
		}
	}, rowParallel)
}

func matmulFloat64(x, y, out []float64, m, k, n int) {
	parallel.For(m, func(i int) {
		for p := 0; p < k; p++ {
			xv := x[i*k+p]
			if xv == 0 {
				continue
			}
			yRow := y[p*n : p*n+n]
			outRow := out[i*n : i*n+n]
			for j := range yRow {
				outRow[j] += xv * yRow[j]
			}
		}
	}, rowParallel)
}
