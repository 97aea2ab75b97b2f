package nn

import (
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// State carries a recurrent cell's activations between steps.
//
// Hidden is always present. Cell holds the LSTM memory cell and stays
// nil for cells without one. States are values: passing one to Step
// never mutates it, so callers can keep old states around.
type State[B tensor.Backend] struct {
	Hidden *tensor.Tensor[float32, B]
	Cell   *tensor.Tensor[float32, B]
}

// Cell is a recurrent model that consumes one symbol per step.
//
// A step takes the one-hot encoded input symbol and the previous
// state, and produces the probability distribution over the next
// symbol together with the updated state:
//
//	state := cell.InitState(1)
//	probs, state := cell.Step(nn.OneHot(idx, cell.VocabSize(), backend), state)
//
// Training and sampling runs both start from InitState: recurrent
// activations never carry across chunk or generation boundaries.
type Cell[B tensor.Backend] interface {
	// Step processes one timestep. input has shape [batch, vocab];
	// the returned probabilities have shape [batch, vocab] and each
	// row sums to 1.
	Step(input *tensor.Tensor[float32, B], state State[B]) (*tensor.Tensor[float32, B], State[B])

	// InitState returns the all-zero state for a batch.
	InitState(batchSize int) State[B]

	// Parameters returns all trainable parameters of the cell.
	Parameters() []*Parameter[B]

	// VocabSize returns the symbol vocabulary size the cell expects.
	VocabSize() int

	// HiddenSize returns the width of the hidden state.
	HiddenSize() int
}
