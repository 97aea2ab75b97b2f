package nn

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// BatchRNN is a recurrent model assembled from Linear layers that
// processes whole equal-length sequence batches one timestep at a
// time.
//
// Unlike the cells, BatchRNN emits raw logits and leaves normalization
// to the loss: StepLoss pairs the step with CrossEntropyLoss, which
// averages over the batch. The hidden update is
//
//	hidden' = tanh(inputLayer(x) + hiddenLayer(hidden))
//	logits  = outputLayer(hidden')
type BatchRNN[B tensor.Backend] struct {
	vocabSize  int
	hiddenSize int

	inputLayer  *Linear[B] // vocab -> hidden
	hiddenLayer *Linear[B] // hidden -> hidden
	outputLayer *Linear[B] // hidden -> vocab

	criterion *CrossEntropyLoss[B]
	backend   B
}

// NewBatchRNN creates a batched recurrent model.
func NewBatchRNN[B tensor.Backend](vocabSize, hiddenSize int, backend B) *BatchRNN[B] {
	if vocabSize <= 0 || hiddenSize <= 0 {
		panic(fmt.Sprintf("NewBatchRNN: sizes must be positive, got vocab=%d hidden=%d", vocabSize, hiddenSize))
	}

	return &BatchRNN[B]{
		vocabSize:   vocabSize,
		hiddenSize:  hiddenSize,
		inputLayer:  NewLinear(vocabSize, hiddenSize, backend),
		hiddenLayer: NewLinear(hiddenSize, hiddenSize, backend),
		outputLayer: NewLinear(hiddenSize, vocabSize, backend),
		criterion:   NewCrossEntropyLoss(backend),
		backend:     backend,
	}
}

// Step processes one timestep for the batch and returns the logits and
// the new hidden state.
//
// input shape: [batch, vocab] one-hot rows.
// hidden shape: [batch, hidden].
func (m *BatchRNN[B]) Step(input, hidden *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	m.validateStep(input, hidden)

	newHidden := m.inputLayer.Forward(input).
		Add(m.hiddenLayer.Forward(hidden)).
		Tanh()
	logits := m.outputLayer.Forward(newHidden)

	return logits, newHidden
}

// StepLoss processes one timestep and returns the mean cross-entropy
// loss against targets together with the new hidden state.
//
// targets shape: [batch] class indices.
func (m *BatchRNN[B]) StepLoss(input *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B], hidden *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	logits, newHidden := m.Step(input, hidden)
	loss := m.criterion.Forward(logits, targets)
	return loss, newHidden
}

// InitHidden returns the zero hidden state for a batch.
func (m *BatchRNN[B]) InitHidden(batchSize int) *tensor.Tensor[float32, B] {
	if batchSize <= 0 {
		panic(fmt.Sprintf("BatchRNN.InitHidden: batch size must be positive, got %d", batchSize))
	}
	return Zeros(tensor.Shape{batchSize, m.hiddenSize}, m.backend)
}

// Parameters returns the trainable parameters of all three layers.
func (m *BatchRNN[B]) Parameters() []*Parameter[B] {
	params := make([]*Parameter[B], 0, 6)
	params = append(params, m.inputLayer.Parameters()...)
	params = append(params, m.hiddenLayer.Parameters()...)
	params = append(params, m.outputLayer.Parameters()...)
	return params
}

// VocabSize returns the symbol vocabulary size the model expects.
func (m *BatchRNN[B]) VocabSize() int {
	return m.vocabSize
}

// HiddenSize returns the width of the hidden state.
func (m *BatchRNN[B]) HiddenSize() int {
	return m.hiddenSize
}

func (m *BatchRNN[B]) validateStep(input, hidden *tensor.Tensor[float32, B]) {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != m.vocabSize {
		panic(fmt.Sprintf("BatchRNN.Step: expected input [batch, %d], got shape %v", m.vocabSize, shape))
	}
	if hidden == nil {
		panic("BatchRNN.Step: nil hidden state; start from InitHidden")
	}
	hiddenShape := hidden.Shape()
	if len(hiddenShape) != 2 || hiddenShape[0] != shape[0] || hiddenShape[1] != m.hiddenSize {
		panic(fmt.Sprintf("BatchRNN.Step: expected hidden [%d, %d], got shape %v", shape[0], m.hiddenSize, hiddenShape))
	}
}
