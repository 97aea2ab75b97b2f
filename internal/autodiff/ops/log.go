package ops

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// LogOp records the element-wise natural logarithm.
//
// Backward:
//
//	d(log(x))/dx = 1/x
//	grad_x = outputGrad / x
//
// The forward kernel rejects non-positive input, so the division here
// is always defined.
type LogOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewLogOp creates a new LogOp.
func NewLogOp(input, output *tensor.RawTensor) *LogOp {
	return &LogOp{input: input, output: output}
}

// Backward computes the input gradient.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	inputGrad, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), op.input.Device())
	if err != nil {
		panic(err)
	}

	switch op.input.DType() {
	case tensor.Float32:
		in := op.input.AsFloat32()
		outGrad := outputGrad.AsFloat32()
		inGrad := inputGrad.AsFloat32()
		for i := range in {
			inGrad[i] = outGrad[i] / in[i]
		}
	case tensor.Float64:
		in := op.input.AsFloat64()
		outGrad := outputGrad.AsFloat64()
		inGrad := inputGrad.AsFloat64()
		for i := range in {
			inGrad[i] = outGrad[i] / in[i]
		}
	default:
		panic(fmt.Sprintf("LogOp: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensor.
func (op *LogOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *LogOp) Output() *tensor.RawTensor {
	return op.output
}
