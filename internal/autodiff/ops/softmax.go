package ops

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// SoftmaxOp records a softmax along one dimension.
//
// Forward (per slice along dim):
//
//	softmax(x)_i = exp(x_i - max(x)) / Σ_j exp(x_j - max(x))
//
// Backward, via the softmax Jacobian s_i(δ_ij - s_j):
//
//	grad_x_j = s_j * (outputGrad_j - Σ_i outputGrad_i * s_i)
//
// The dot product is taken over the normalized dimension of each
// slice independently.
type SoftmaxOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor // cached probabilities
	dim    int               // resolved non-negative dimension
}

// NewSoftmaxOp creates a new SoftmaxOp. dim must already be resolved
// to a non-negative axis.
func NewSoftmaxOp(input, output *tensor.RawTensor, dim int) *SoftmaxOp {
	return &SoftmaxOp{input: input, output: output, dim: dim}
}

// Backward computes the input gradient from the cached probabilities.
func (op *SoftmaxOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	shape := op.input.Shape()

	inputGrad, err := tensor.NewRaw(shape, op.input.DType(), op.input.Device())
	if err != nil {
		panic(err)
	}

	outer, inner := 1, 1
	for i := 0; i < op.dim; i++ {
		outer *= shape[i]
	}
	for i := op.dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	size := shape[op.dim]

	switch op.input.DType() {
	case tensor.Float32:
		softmaxBackwardFloat32(op.output.AsFloat32(), outputGrad.AsFloat32(), inputGrad.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		softmaxBackwardFloat64(op.output.AsFloat64(), outputGrad.AsFloat64(), inputGrad.AsFloat64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("SoftmaxOp: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{inputGrad}
}

func softmaxBackwardFloat32(probs, outGrad, inGrad []float32, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in

			var dot float32
			for k := 0; k < size; k++ {
				idx := base + k*inner
				dot += outGrad[idx] * probs[idx]
			}

			for k := 0; k < size; k++ {
				idx := base + k*inner
				inGrad[idx] = probs[idx] * (outGrad[idx] - dot)
			}
		}
	}
}

func softmaxBackwardFloat64(probs, outGrad, inGrad []float64, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*size*inner + in

			var dot float64
			for k := 0; k < size; k++ {
				idx := base + k*inner
				dot += outGrad[idx] * probs[idx]
			}

			for k := 0; k < size; k++ {
				idx := base + k*inner
				inGrad[idx] = probs[idx] * (outGrad[idx] - dot)
			}
		}
	}
}

// Inputs returns the input tensor.
func (op *SoftmaxOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SoftmaxOp) Output() *tensor.RawTensor {
	return op.output
}
