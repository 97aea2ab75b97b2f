// Package nn implements the neural network building blocks for
// character-level sequence models.
//
// The package provides two families of models:
//   - Cells (RNNCell, LSTMCell): process one symbol at a time and emit
//     a probability distribution over the next symbol. Their recurrent
//     activations travel through an explicit State value.
//   - BatchRNN: a batched recurrent model composed of Linear layers
//     that emits raw logits and pairs with CrossEntropyLoss.
//
// All models are generic over the tensor.Backend. Run them on an
// autodiff backend to record operations for training; run them on a
// plain backend for inference.
package nn

import (
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Module is the base interface for feed-forward network components.
//
// Every module computes an output from an input and exposes its
// trainable parameters:
//
//	layer := nn.NewLinear(vocabSize, hiddenSize, backend)
//	hidden := layer.Forward(input)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this
	// module. For example, Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters.
	Parameters() []*Parameter[B]
}
