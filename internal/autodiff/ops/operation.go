// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation captures its input and output tensors during the
// forward pass and knows how to turn the gradient of its output into
// gradients of its inputs. The tape replays operations in reverse,
// calling Backward on each and accumulating the returned gradients.
package ops

import "github.com/inkwell-ml/inkwell/internal/tensor"

// Operation is one recorded step of the forward computation.
type Operation interface {
	// Backward converts the gradient flowing into the output into
	// gradients for each input, in Inputs() order. A nil entry means
	// the corresponding input is not differentiated.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the tensors the operation consumed.
	Inputs() []*tensor.RawTensor

	// Output returns the tensor the operation produced.
	Output() *tensor.RawTensor
}
