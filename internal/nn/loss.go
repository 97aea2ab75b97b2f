package nn

import (
	"fmt"
	"math"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// NLLLoss computes negative log-likelihood loss on probability rows.
//
// The loss is exactly -log(probs[target]) summed over the batch, with
// no smoothing term added. The models produce probabilities through a
// max-shifted softmax, so the target probability is positive whenever
// the inputs are finite.
//
// Usage:
//
//	criterion := nn.NewNLLLoss(backend)
//	probs, state := cell.Step(input, state) // [batch, vocab]
//	loss := criterion.Forward(probs, targets)
type NLLLoss[B tensor.Backend] struct {
	backend B
}

// NewNLLLoss creates a new negative log-likelihood loss function.
func NewNLLLoss[B tensor.Backend](backend B) *NLLLoss[B] {
	return &NLLLoss[B]{backend: backend}
}

// Forward computes the summed negative log-likelihood.
//
// probs has shape [batch_size, num_classes] and holds probabilities;
// targets has shape [batch_size] and holds class indices. Returns a
// single-element loss tensor.
//
// On an autodiff-aware backend the fused loss operation is recorded on
// the tape; on plain backends the value is computed directly and
// carries no gradient information.
func (c *NLLLoss[B]) Forward(
	probs *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	type nllBackend interface {
		NLL(probs, targets *tensor.RawTensor) *tensor.RawTensor
	}

	if adBackend, ok := any(c.backend).(nllBackend); ok {
		resultRaw := adBackend.NLL(probs.Raw(), targets.Raw())
		return tensor.New[float32](resultRaw, c.backend)
	}

	shape := probs.Shape()
	if len(shape) != 2 {
		panic("NLLLoss: probs must be 2D [batch_size, num_classes]")
	}
	batchSize, numClasses := shape[0], shape[1]

	targetsData := targets.Raw().AsInt32()
	if len(targetsData) != batchSize {
		panic("NLLLoss: targets must have shape [batch_size]")
	}

	probsData := probs.Raw().AsFloat32()
	var totalLoss float64
	for b := 0; b < batchSize; b++ {
		target := int(targetsData[b])
		if target < 0 || target >= numClasses {
			panic(fmt.Sprintf("NLLLoss: target index %d out of bounds", target))
		}
		p := probsData[b*numClasses+target]
		if p <= 0 {
			panic(fmt.Sprintf("NLLLoss: non-positive probability %g for target %d", p, target))
		}
		totalLoss += -math.Log(float64(p))
	}

	lossRaw, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, c.backend.Device())
	if err != nil {
		panic(err)
	}
	lossRaw.AsFloat32()[0] = float32(totalLoss)

	return tensor.New[float32](lossRaw, c.backend)
}

// Parameters returns an empty slice; loss functions have no trainable
// parameters.
func (c *NLLLoss[B]) Parameters() []*Parameter[B] {
	return nil
}

// CrossEntropyLoss computes cross-entropy loss from raw logits.
//
// The loss is the mean over the batch of -log_softmax(logits)[target],
// computed through the log-sum-exp so arbitrarily large logits stay
// finite. This is the criterion for BatchRNN, which emits logits; the
// cells emit probabilities and pair with NLLLoss instead.
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss(backend)
//	logits, hidden := model.Step(input, hidden) // [batch_size, num_classes]
//	loss := criterion.Forward(logits, targets)  // targets: [batch_size]
type CrossEntropyLoss[B tensor.Backend] struct {
	backend B
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{backend: backend}
}

// Forward computes mean cross-entropy loss.
//
// logits has shape [batch_size, num_classes]; targets has shape
// [batch_size] and holds class indices. Returns a single-element loss
// tensor.
//
// On an autodiff-aware backend the fused loss operation is recorded on
// the tape; on plain backends the value is computed directly and
// carries no gradient information.
func (c *CrossEntropyLoss[B]) Forward(
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	type crossEntropyBackend interface {
		CrossEntropy(logits, targets *tensor.RawTensor) *tensor.RawTensor
	}

	if adBackend, ok := any(c.backend).(crossEntropyBackend); ok {
		resultRaw := adBackend.CrossEntropy(logits.Raw(), targets.Raw())
		return tensor.New[float32](resultRaw, c.backend)
	}

	shape := logits.Shape()
	if len(shape) != 2 {
		panic("CrossEntropyLoss: logits must be 2D [batch_size, num_classes]")
	}
	batchSize, numClasses := shape[0], shape[1]

	targetsData := targets.Raw().AsInt32()
	if len(targetsData) != batchSize {
		panic("CrossEntropyLoss: targets must have shape [batch_size]")
	}

	logitsData := logits.Raw().AsFloat32()
	var totalLoss float64
	for b := 0; b < batchSize; b++ {
		target := int(targetsData[b])
		if target < 0 || target >= numClasses {
			panic(fmt.Sprintf("CrossEntropyLoss: target index %d out of bounds", target))
		}
		logProbs := logSoftmax(logitsData[b*numClasses : (b+1)*numClasses])
		totalLoss += float64(-logProbs[target])
	}

	lossRaw, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, c.backend.Device())
	if err != nil {
		panic(err)
	}
	lossRaw.AsFloat32()[0] = float32(totalLoss / float64(batchSize))

	return tensor.New[float32](lossRaw, c.backend)
}

// Parameters returns an empty slice; loss functions have no trainable
// parameters.
func (c *CrossEntropyLoss[B]) Parameters() []*Parameter[B] {
	return nil
}

// logSoftmax computes log(softmax(z)) through the log-sum-exp:
//
//	LogSoftmax(z)[i] = z[i] - (max(z) + log(Σ exp(z - max(z))))
//
// Subtracting the maximum before exponentiating keeps every
// intermediate finite.
func logSoftmax(z []float32) []float32 {
	result := make([]float32, len(z))

	maxZ := z[0]
	for _, v := range z[1:] {
		if v > maxZ {
			maxZ = v
		}
	}

	var sumExp float64
	for _, v := range z {
		sumExp += math.Exp(float64(v - maxZ))
	}
	logSumExp := maxZ + float32(math.Log(sumExp))

	for i, v := range z {
		result[i] = v - logSumExp
	}
	return result
}

// SequenceNLL accumulates a cell's step losses over one training
// chunk.
//
// The cell starts from its zero state and consumes inputs one symbol
// at a time; the -log p(target) losses add up into a single scalar
// tensor, so one backward pass reaches every step through the
// recurrent state. inputs[i] is the symbol fed at step i and
// targets[i] the symbol expected next.
func SequenceNLL[B tensor.Backend](cell Cell[B], inputs, targets []int, backend B) *tensor.Tensor[float32, B] {
	if len(inputs) == 0 {
		panic("SequenceNLL: empty chunk")
	}
	if len(inputs) != len(targets) {
		panic(fmt.Sprintf("SequenceNLL: %d inputs vs %d targets", len(inputs), len(targets)))
	}

	criterion := NewNLLLoss(backend)
	state := cell.InitState(1)

	var total *tensor.Tensor[float32, B]
	for step := range inputs {
		x := OneHot(inputs[step], cell.VocabSize(), backend)
		probs, next := cell.Step(x, state)

		stepLoss := criterion.Forward(probs, Targets([]int{targets[step]}, backend))
		if total == nil {
			total = stepLoss
		} else {
			total = total.Add(stepLoss)
		}
		state = next
	}
	return total
}
