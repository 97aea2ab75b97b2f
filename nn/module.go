// Copyright 2025 The Inkwell Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Module is the base interface for feed-forward network components.
//
// Every module computes an output from an input tensor and exposes its
// trainable parameters:
//
//	layer := nn.NewLinear(128, 65, backend)
//	out := layer.Forward(hidden)
//	params := layer.Parameters()
type Module[B tensor.Backend] = nn.Module[B]

// Cell is the interface recurrent models implement.
//
// A cell consumes one symbol per step: it takes the one-hot encoded
// input and the previous state, and returns the probability
// distribution over the next symbol together with the updated state.
// States are values; passing one to Step never mutates it.
type Cell[B tensor.Backend] = nn.Cell[B]

// State carries a cell's recurrent activations between steps.
//
// Hidden is always present. Cell is the LSTM cell state and is nil for
// cells without one.
type State[B tensor.Backend] = nn.State[B]

// Parameter represents a trainable parameter in a model.
//
// Parameters are named tensors that receive gradients during training.
// Optimizers look gradients up by the parameter's raw tensor, so the
// tensor identity must be stable across steps.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}
