package ops

import (
	"fmt"
	"math"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// CrossEntropyOp records a fused softmax-plus-NLL loss on raw logits,
// averaged over the batch. Working in log space via the log-sum-exp
// keeps the forward pass finite for any logit magnitudes, and the
// fused backward collapses to the closed form
//
//	grad_logits[b, c] = (softmax(logits)[b, c] - 1{c == targets[b]}) / batch
//
// scaled by the incoming output gradient. This is the loss used by the
// batched model, which produces logits directly; the step-by-step
// cells produce probabilities and use NLLOp instead.
type CrossEntropyOp struct {
	logits  *tensor.RawTensor
	targets *tensor.RawTensor
	output  *tensor.RawTensor
}

// NewCrossEntropyOp creates a new CrossEntropyOp.
func NewCrossEntropyOp(logits, targets, output *tensor.RawTensor) *CrossEntropyOp {
	return &CrossEntropyOp{logits: logits, targets: targets, output: output}
}

// CrossEntropyForward computes mean cross-entropy loss from logits.
//
// logits must be [batch, classes]; targets must be an int32 tensor of
// shape [batch] with every index inside [0, classes). The result is a
// single-element tensor. Violations panic.
func CrossEntropyForward(logits, targets *tensor.RawTensor) *tensor.RawTensor {
	logitShape := logits.Shape()
	targetShape := targets.Shape()

	if len(logitShape) != 2 {
		panic(fmt.Sprintf("cross-entropy: logits must be 2D [batch, classes], got %v", logitShape))
	}
	if len(targetShape) != 1 {
		panic(fmt.Sprintf("cross-entropy: targets must be 1D [batch], got %v", targetShape))
	}
	if logitShape[0] != targetShape[0] {
		panic(fmt.Sprintf("cross-entropy: batch mismatch: logits %v vs targets %v", logitShape, targetShape))
	}
	if targets.DType() != tensor.Int32 {
		panic(fmt.Sprintf("cross-entropy: targets must be int32, got %s", targets.DType()))
	}

	batch, classes := logitShape[0], logitShape[1]
	targetData := targets.AsInt32()

	output, err := tensor.NewRaw(tensor.Shape{1}, logits.DType(), logits.Device())
	if err != nil {
		panic(err)
	}

	switch logits.DType() {
	case tensor.Float32:
		logitData := logits.AsFloat32()
		var loss float64
		for b := 0; b < batch; b++ {
			t := int(targetData[b])
			if t < 0 || t >= classes {
				panic(fmt.Sprintf("cross-entropy: target %d out of range [0, %d) at row %d", t, classes, b))
			}
			row := logitData[b*classes : (b+1)*classes]
			loss += logSumExpFloat32(row) - float64(row[t])
		}
		output.AsFloat32()[0] = float32(loss / float64(batch))
	case tensor.Float64:
		logitData := logits.AsFloat64()
		var loss float64
		for b := 0; b < batch; b++ {
			t := int(targetData[b])
			if t < 0 || t >= classes {
				panic(fmt.Sprintf("cross-entropy: target %d out of range [0, %d) at row %d", t, classes, b))
			}
			row := logitData[b*classes : (b+1)*classes]
			loss += logSumExpFloat64(row) - row[t]
		}
		output.AsFloat64()[0] = loss / float64(batch)
	default:
		panic(fmt.Sprintf("cross-entropy: unsupported dtype %s", logits.DType()))
	}

	return output
}

// Backward computes (softmax - onehot) / batch, scaled by the output
// gradient. The softmax is recomputed from the cached logits.
func (op *CrossEntropyOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	logitShape := op.logits.Shape()
	batch, classes := logitShape[0], logitShape[1]
	targetData := op.targets.AsInt32()

	inputGrad, err := tensor.NewRaw(logitShape, op.logits.DType(), op.logits.Device())
	if err != nil {
		panic(err)
	}

	switch op.logits.DType() {
	case tensor.Float32:
		logitData := op.logits.AsFloat32()
		gradData := inputGrad.AsFloat32()
		scale := outputGrad.AsFloat32()[0] / float32(batch)
		for b := 0; b < batch; b++ {
			row := logitData[b*classes : (b+1)*classes]
			gradRow := gradData[b*classes : (b+1)*classes]
			lse := logSumExpFloat32(row)
			for c := 0; c < classes; c++ {
				gradRow[c] = float32(math.Exp(float64(row[c])-lse)) * scale
			}
			gradRow[targetData[b]] -= scale
		}
	case tensor.Float64:
		logitData := op.logits.AsFloat64()
		gradData := inputGrad.AsFloat64()
		scale := outputGrad.AsFloat64()[0] / float64(batch)
		for b := 0; b < batch; b++ {
			row := logitData[b*classes : (b+1)*classes]
			gradRow := gradData[b*classes : (b+1)*classes]
			lse := logSumExpFloat64(row)
			for c := 0; c < classes; c++ {
				gradRow[c] = math.Exp(row[c]-lse) * scale
			}
			gradRow[targetData[b]] -= scale
		}
	default:
		panic(fmt.Sprintf("CrossEntropyOp: unsupported dtype %s", op.logits.DType()))
	}

	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns only the logits tensor; targets are indices and carry
// no gradient.
func (op *CrossEntropyOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.logits}
}

// Output returns the scalar loss tensor.
func (op *CrossEntropyOp) Output() *tensor.RawTensor {
	return op.output
}

// logSumExpFloat32 computes log(Σ exp(x_i)) with the max shifted out,
// so the intermediate exponentials stay bounded.
func logSumExpFloat32(row []float32) float64 {
	maxVal := row[0]
	for _, v := range row[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	var sum float64
	for _, v := range row {
		sum += math.Exp(float64(v - maxVal))
	}
	return float64(maxVal) + math.Log(sum)
}

func logSumExpFloat64(row []float64) float64 {
	maxVal := row[0]
	for _, v := range row[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	var sum float64
	for _, v := range row {
		sum += math.Exp(v - maxVal)
	}
	return maxVal + math.Log(sum)
}
