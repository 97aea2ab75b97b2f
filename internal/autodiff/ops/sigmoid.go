package ops

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// SigmoidOp records the logistic activation.
//
// Backward uses the cached forward output:
//
//	d(σ(x))/dx = σ(x) * (1 - σ(x))
//	grad_x = outputGrad * output * (1 - output)
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

// Backward computes the input gradient from the cached output.
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	inputGrad, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), op.input.Device())
	if err != nil {
		panic(err)
	}

	switch op.input.DType() {
	case tensor.Float32:
		out := op.output.AsFloat32()
		outGrad := outputGrad.AsFloat32()
		inGrad := inputGrad.AsFloat32()
		for i, y := range out {
			inGrad[i] = outGrad[i] * y * (1 - y)
		}
	case tensor.Float64:
		out := op.output.AsFloat64()
		outGrad := outputGrad.AsFloat64()
		inGrad := inputGrad.AsFloat64()
		for i, y := range out {
			inGrad[i] = outGrad[i] * y * (1 - y)
		}
	default:
		panic(fmt.Sprintf("SigmoidOp: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensor.
func (op *SigmoidOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SigmoidOp) Output() *tensor.RawTensor {
	return op.output
}
