package nn

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// LSTMCell is a long short-term memory cell over one-hot symbol
// inputs.
//
// Each step computes the three sigmoid gates and the tanh candidate
// from the input and previous hidden state, then updates the memory
// cell and hidden state:
//
//	i = sigmoid(x @ Wxi.T + h @ Whi.T + bi)
//	f = sigmoid(x @ Wxf.T + h @ Whf.T + bf)
//	o = sigmoid(x @ Wxo.T + h @ Who.T + bo)
//	g = tanh   (x @ Wxc.T + h @ Whc.T + bc)
//	cell'   = i * g + f * cell
//	hidden' = o * tanh(cell')
//	probs   = softmax(hidden' @ Why.T + by)
//
// Each gate carries its own input and recurrent weight matrices; the
// input and previous hidden state are never concatenated.
type LSTMCell[B tensor.Backend] struct {
	vocabSize  int
	hiddenSize int

	wxi, whi, bi *Parameter[B] // input gate
	wxf, whf, bf *Parameter[B] // forget gate
	wxo, who, bo *Parameter[B] // output gate
	wxc, whc, bc *Parameter[B] // candidate

	why *Parameter[B] // [vocab, hidden] output projection
	by  *Parameter[B] // [1, vocab]

	backend B
}

// NewLSTMCell creates an LSTM cell.
//
// Weights start as small Gaussian values. The forget-gate bias starts
// at 1 so early training retains memory by default; all other biases
// start at zero.
func NewLSTMCell[B tensor.Backend](vocabSize, hiddenSize int, backend B) *LSTMCell[B] {
	if vocabSize <= 0 || hiddenSize <= 0 {
		panic(fmt.Sprintf("NewLSTMCell: sizes must be positive, got vocab=%d hidden=%d", vocabSize, hiddenSize))
	}

	gateWeights := func(prefix string) (*Parameter[B], *Parameter[B]) {
		wx := NewParameter("wx"+prefix, Gaussian(tensor.Shape{hiddenSize, vocabSize}, initSigma, nil, backend))
		wh := NewParameter("wh"+prefix, Gaussian(tensor.Shape{hiddenSize, hiddenSize}, initSigma, nil, backend))
		return wx, wh
	}

	c := &LSTMCell[B]{
		vocabSize:  vocabSize,
		hiddenSize: hiddenSize,
		backend:    backend,
	}

	c.wxi, c.whi = gateWeights("i")
	c.bi = NewParameter("bi", Zeros(tensor.Shape{1, hiddenSize}, backend))

	c.wxf, c.whf = gateWeights("f")
	c.bf = NewParameter("bf", Ones(tensor.Shape{1, hiddenSize}, backend))

	c.wxo, c.who = gateWeights("o")
	c.bo = NewParameter("bo", Zeros(tensor.Shape{1, hiddenSize}, backend))

	c.wxc, c.whc = gateWeights("c")
	c.bc = NewParameter("bc", Zeros(tensor.Shape{1, hiddenSize}, backend))

	c.why = NewParameter("why", Gaussian(tensor.Shape{vocabSize, hiddenSize}, initSigma, nil, backend))
	c.by = NewParameter("by", Zeros(tensor.Shape{1, vocabSize}, backend))

	return c
}

// Step processes one timestep for the batch.
func (c *LSTMCell[B]) Step(input *tensor.Tensor[float32, B], state State[B]) (*tensor.Tensor[float32, B], State[B]) {
	c.validateStep(input, state)
	h := state.Hidden

	inputGate := c.preact(input, h, c.wxi, c.whi, c.bi).Sigmoid()
	forgetGate := c.preact(input, h, c.wxf, c.whf, c.bf).Sigmoid()
	outputGate := c.preact(input, h, c.wxo, c.who, c.bo).Sigmoid()
	candidate := c.preact(input, h, c.wxc, c.whc, c.bc).Tanh()

	cell := inputGate.Mul(candidate).Add(forgetGate.Mul(state.Cell))
	hidden := outputGate.Mul(cell.Tanh())

	logits := hidden.MatMul(c.why.Tensor().T()).Add(c.by.Tensor())
	probs := logits.Softmax(-1)

	return probs, State[B]{Hidden: hidden, Cell: cell}
}

// preact computes x @ Wx.T + h @ Wh.T + b for one gate.
func (c *LSTMCell[B]) preact(x, h *tensor.Tensor[float32, B], wx, wh, b *Parameter[B]) *tensor.Tensor[float32, B] {
	return x.MatMul(wx.Tensor().T()).
		Add(h.MatMul(wh.Tensor().T())).
		Add(b.Tensor())
}

// InitState returns the zero hidden and cell state for a batch.
func (c *LSTMCell[B]) InitState(batchSize int) State[B] {
	if batchSize <= 0 {
		panic(fmt.Sprintf("LSTMCell.InitState: batch size must be positive, got %d", batchSize))
	}
	return State[B]{
		Hidden: Zeros(tensor.Shape{batchSize, c.hiddenSize}, c.backend),
		Cell:   Zeros(tensor.Shape{batchSize, c.hiddenSize}, c.backend),
	}
}

// Parameters returns all trainable parameters of the cell.
func (c *LSTMCell[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{
		c.wxi, c.whi, c.bi,
		c.wxf, c.whf, c.bf,
		c.wxo, c.who, c.bo,
		c.wxc, c.whc, c.bc,
		c.why, c.by,
	}
}

// VocabSize returns the symbol vocabulary size the cell expects.
func (c *LSTMCell[B]) VocabSize() int {
	return c.vocabSize
}

// HiddenSize returns the width of the hidden state.
func (c *LSTMCell[B]) HiddenSize() int {
	return c.hiddenSize
}

func (c *LSTMCell[B]) validateStep(input *tensor.Tensor[float32, B], state State[B]) {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != c.vocabSize {
		panic(fmt.Sprintf("LSTMCell.Step: expected input [batch, %d], got shape %v", c.vocabSize, shape))
	}
	if state.Hidden == nil || state.Cell == nil {
		panic("LSTMCell.Step: incomplete state; start from InitState")
	}
	hiddenShape := state.Hidden.Shape()
	if len(hiddenShape) != 2 || hiddenShape[0] != shape[0] || hiddenShape[1] != c.hiddenSize {
		panic(fmt.Sprintf("LSTMCell.Step: expected hidden [%d, %d], got shape %v", shape[0], c.hiddenSize, hiddenShape))
	}
	if !state.Cell.Shape().Equal(hiddenShape) {
		panic(fmt.Sprintf("LSTMCell.Step: cell shape %v does not match hidden shape %v", state.Cell.Shape(), hiddenShape))
	}
}
