package ops

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// TanhOp records the hyperbolic tangent activation.
//
// Backward uses the cached forward output:
//
//	d(tanh(x))/dx = 1 - tanh(x)²
//	grad_x = outputGrad * (1 - output²)
type TanhOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(input, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{input: input, output: output}
}

// Backward computes the input gradient from the cached output.
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
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
			inGrad[i] = outGrad[i] * (1 - y*y)
		}
	case tensor.Float64:
		out := op.output.AsFloat64()
		outGrad := outputGrad.AsFloat64()
		inGrad := inputGrad.AsFloat64()
		for i, y := range out {
			inGrad[i] = outGrad[i] * (1 - y*y)
		}
	default:
		panic(fmt.Sprintf("TanhOp: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensor.
func (op *TanhOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *TanhOp) Output() *tensor.RawTensor {
	return op.output
}
