package ops

import (
	"fmt"
	"math"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// NLLOp records the negative log-likelihood of target classes under
// probability rows: output = Σ_b -log(probs[b, targets[b]]).
//
// The op consumes probabilities, not logits; it is the loss half of a
// softmax-then-NLL pipeline where the softmax is recorded separately.
// Chaining the two backward passes yields the familiar
// (probs - onehot) gradient at the logits.
//
// Backward: the loss reads exactly one probability per row, so the
// gradient is zero everywhere except the target positions:
//
//	grad_probs[b, targets[b]] = -outputGrad / probs[b, targets[b]]
//
// Targets are class indices and receive no gradient.
type NLLOp struct {
	probs   *tensor.RawTensor
	targets *tensor.RawTensor
	output  *tensor.RawTensor
}

// NewNLLOp creates a new NLLOp.
func NewNLLOp(probs, targets, output *tensor.RawTensor) *NLLOp {
	return &NLLOp{probs: probs, targets: targets, output: output}
}

// NLLForward computes the summed negative log-likelihood.
//
// probs must be [batch, classes] with strictly positive entries at the
// target positions; targets must be an int32 tensor of shape [batch]
// with every index inside [0, classes). The result is a single-element
// tensor. Violations panic: loss inputs are produced by the model, so
// a bad value here is a programming error.
func NLLForward(probs, targets *tensor.RawTensor) *tensor.RawTensor {
	probShape := probs.Shape()
	targetShape := targets.Shape()

	if len(probShape) != 2 {
		panic(fmt.Sprintf("nll: probs must be 2D [batch, classes], got %v", probShape))
	}
	if len(targetShape) != 1 {
		panic(fmt.Sprintf("nll: targets must be 1D [batch], got %v", targetShape))
	}
	if probShape[0] != targetShape[0] {
		panic(fmt.Sprintf("nll: batch mismatch: probs %v vs targets %v", probShape, targetShape))
	}
	if targets.DType() != tensor.Int32 {
		panic(fmt.Sprintf("nll: targets must be int32, got %s", targets.DType()))
	}

	batch, classes := probShape[0], probShape[1]
	targetData := targets.AsInt32()

	output, err := tensor.NewRaw(tensor.Shape{1}, probs.DType(), probs.Device())
	if err != nil {
		panic(err)
	}

	switch probs.DType() {
	case tensor.Float32:
		probData := probs.AsFloat32()
		var loss float64
		for b := 0; b < batch; b++ {
			t := int(targetData[b])
			if t < 0 || t >= classes {
				panic(fmt.Sprintf("nll: target %d out of range [0, %d) at row %d", t, classes, b))
			}
			p := probData[b*classes+t]
			if p <= 0 {
				panic(fmt.Sprintf("nll: non-positive probability %g for target %d at row %d", p, t, b))
			}
			loss += -math.Log(float64(p))
		}
		output.AsFloat32()[0] = float32(loss)
	case tensor.Float64:
		probData := probs.AsFloat64()
		var loss float64
		for b := 0; b < batch; b++ {
			t := int(targetData[b])
			if t < 0 || t >= classes {
				panic(fmt.Sprintf("nll: target %d out of range [0, %d) at row %d", t, classes, b))
			}
			p := probData[b*classes+t]
			if p <= 0 {
				panic(fmt.Sprintf("nll: non-positive probability %g for target %d at row %d", p, t, b))
			}
			loss += -math.Log(p)
		}
		output.AsFloat64()[0] = loss
	default:
		panic(fmt.Sprintf("nll: unsupported dtype %s", probs.DType()))
	}

	return output
}

// Backward routes -outputGrad/p into the target positions.
func (op *NLLOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	probShape := op.probs.Shape()
	batch, classes := probShape[0], probShape[1]
	targetData := op.targets.AsInt32()

	inputGrad, err := tensor.NewRaw(probShape, op.probs.DType(), op.probs.Device())
	if err != nil {
		panic(err)
	}

	switch op.probs.DType() {
	case tensor.Float32:
		probData := op.probs.AsFloat32()
		gradData := inputGrad.AsFloat32()
		scale := outputGrad.AsFloat32()[0]
		for b := 0; b < batch; b++ {
			idx := b*classes + int(targetData[b])
			gradData[idx] = -scale / probData[idx]
		}
	case tensor.Float64:
		probData := op.probs.AsFloat64()
		gradData := inputGrad.AsFloat64()
		scale := outputGrad.AsFloat64()[0]
		for b := 0; b < batch; b++ {
			idx := b*classes + int(targetData[b])
			gradData[idx] = -scale / probData[idx]
		}
	default:
		panic(fmt.Sprintf("NLLOp: unsupported dtype %s", op.probs.DType()))
	}

	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns only the probability tensor; targets are indices and
// carry no gradient.
func (op *NLLOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.probs}
}

// Output returns the scalar loss tensor.
func (op *NLLOp) Output() *tensor.RawTensor {
	return op.output
}
