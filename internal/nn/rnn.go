package nn

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// initSigma is the standard deviation of the Gaussian weight
// initialization used by the recurrent cells.
const initSigma = 0.01

// RNNCell is a vanilla recurrent cell over one-hot symbol inputs.
//
// Each step computes
//
//	hidden' = tanh(x @ Wxh.T + hidden @ Whh.T + bh)
//	probs   = softmax(hidden' @ Why.T + by)
//
// where x is the [batch, vocab] one-hot input. The cell emits
// probabilities directly; pair it with NLLLoss for training.
type RNNCell[B tensor.Backend] struct {
	vocabSize  int
	hiddenSize int

	wxh *Parameter[B] // [hidden, vocab] input projection
	whh *Parameter[B] // [hidden, hidden] recurrent projection
	bh  *Parameter[B] // [1, hidden]
	why *Parameter[B] // [vocab, hidden] output projection
	by  *Parameter[B] // [1, vocab]

	backend B
}

// NewRNNCell creates a vanilla recurrent cell.
//
// Weights start as small Gaussian values, biases as zeros.
func NewRNNCell[B tensor.Backend](vocabSize, hiddenSize int, backend B) *RNNCell[B] {
	if vocabSize <= 0 || hiddenSize <= 0 {
		panic(fmt.Sprintf("NewRNNCell: sizes must be positive, got vocab=%d hidden=%d", vocabSize, hiddenSize))
	}

	return &RNNCell[B]{
		vocabSize:  vocabSize,
		hiddenSize: hiddenSize,
		wxh:        NewParameter("wxh", Gaussian(tensor.Shape{hiddenSize, vocabSize}, initSigma, nil, backend)),
		whh:        NewParameter("whh", Gaussian(tensor.Shape{hiddenSize, hiddenSize}, initSigma, nil, backend)),
		bh:         NewParameter("bh", Zeros(tensor.Shape{1, hiddenSize}, backend)),
		why:        NewParameter("why", Gaussian(tensor.Shape{vocabSize, hiddenSize}, initSigma, nil, backend)),
		by:         NewParameter("by", Zeros(tensor.Shape{1, vocabSize}, backend)),
		backend:    backend,
	}
}

// Step processes one timestep for the batch.
func (c *RNNCell[B]) Step(input *tensor.Tensor[float32, B], state State[B]) (*tensor.Tensor[float32, B], State[B]) {
	c.validateStep(input, state)

	preact := input.MatMul(c.wxh.Tensor().T()).
		Add(state.Hidden.MatMul(c.whh.Tensor().T())).
		Add(c.bh.Tensor())
	hidden := preact.Tanh()

	logits := hidden.MatMul(c.why.Tensor().T()).Add(c.by.Tensor())
	probs := logits.Softmax(-1)

	return probs, State[B]{Hidden: hidden}
}

// InitState returns the zero hidden state for a batch.
func (c *RNNCell[B]) InitState(batchSize int) State[B] {
	if batchSize <= 0 {
		panic(fmt.Sprintf("RNNCell.InitState: batch size must be positive, got %d", batchSize))
	}
	return State[B]{Hidden: Zeros(tensor.Shape{batchSize, c.hiddenSize}, c.backend)}
}

// Parameters returns all trainable parameters of the cell.
func (c *RNNCell[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{c.wxh, c.whh, c.bh, c.why, c.by}
}

// VocabSize returns the symbol vocabulary size the cell expects.
func (c *RNNCell[B]) VocabSize() int {
	return c.vocabSize
}

// HiddenSize returns the width of the hidden state.
func (c *RNNCell[B]) HiddenSize() int {
	return c.hiddenSize
}

func (c *RNNCell[B]) validateStep(input *tensor.Tensor[float32, B], state State[B]) {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != c.vocabSize {
		panic(fmt.Sprintf("RNNCell.Step: expected input [batch, %d], got shape %v", c.vocabSize, shape))
	}
	if state.Hidden == nil {
		panic("RNNCell.Step: nil hidden state; start from InitState")
	}
	hiddenShape := state.Hidden.Shape()
	if len(hiddenShape) != 2 || hiddenShape[0] != shape[0] || hiddenShape[1] != c.hiddenSize {
		panic(fmt.Sprintf("RNNCell.Step: expected hidden [%d, %d], got shape %v", shape[0], c.hiddenSize, hiddenShape))
	}
}
