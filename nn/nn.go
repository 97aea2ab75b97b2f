// Copyright 2025 The Inkwell Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(128, 65, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Recurrent cells

// RNNCell is a vanilla recurrent cell with a tanh hidden update.
type RNNCell[B tensor.Backend] = nn.RNNCell[B]

// NewRNNCell creates a vanilla RNN cell.
//
// Example:
//
//	backend := cpu.New()
//	cell := nn.NewRNNCell(65, 128, backend)
func NewRNNCell[B tensor.Backend](vocabSize, hiddenSize int, backend B) *RNNCell[B] {
	return nn.NewRNNCell(vocabSize, hiddenSize, backend)
}

// LSTMCell is a long short-term memory cell with input, forget, and
// output gates.
type LSTMCell[B tensor.Backend] = nn.LSTMCell[B]

// NewLSTMCell creates an LSTM cell.
//
// Example:
//
//	backend := cpu.New()
//	cell := nn.NewLSTMCell(65, 128, backend)
func NewLSTMCell[B tensor.Backend](vocabSize, hiddenSize int, backend B) *LSTMCell[B] {
	return nn.NewLSTMCell(vocabSize, hiddenSize, backend)
}

// BatchRNN is a batched recurrent model built from Linear layers. It
// processes [batch, vocab] inputs and pairs with the dataset package's
// padding helpers for variable-length batches.
type BatchRNN[B tensor.Backend] = nn.BatchRNN[B]

// NewBatchRNN creates a batched RNN.
func NewBatchRNN[B tensor.Backend](vocabSize, hiddenSize int, backend B) *BatchRNN[B] {
	return nn.NewBatchRNN(vocabSize, hiddenSize, backend)
}

// Losses

// NLLLoss computes the negative log-likelihood of target classes under
// already-normalized probability rows.
type NLLLoss[B tensor.Backend] = nn.NLLLoss[B]

// NewNLLLoss creates an NLL loss criterion.
func NewNLLLoss[B tensor.Backend](backend B) *NLLLoss[B] {
	return nn.NewNLLLoss(backend)
}

// CrossEntropyLoss fuses log-softmax and NLL for logit inputs.
type CrossEntropyLoss[B tensor.Backend] = nn.CrossEntropyLoss[B]

// NewCrossEntropyLoss creates a cross-entropy loss criterion.
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return nn.NewCrossEntropyLoss(backend)
}

// SequenceNLL unrolls cell over the inputs/targets chunk and returns
// the summed negative log-likelihood as a scalar tensor. The cell state
// starts at InitState; it never carries across chunks.
//
// Example:
//
//	loss := nn.SequenceNLL(cell, []int{0, 1}, []int{1, 2}, backend)
//	perSymbol := loss.Item() / 2
func SequenceNLL[B tensor.Backend](cell Cell[B], inputs, targets []int, backend B) *tensor.Tensor[float32, B] {
	return nn.SequenceNLL(cell, inputs, targets, backend)
}

// Encoding helpers

// OneHot returns a [1, numClasses] tensor with a single 1 at index.
func OneHot[B tensor.Backend](index, numClasses int, backend B) *tensor.Tensor[float32, B] {
	return nn.OneHot(index, numClasses, backend)
}

// OneHotBatch returns a [len(indices), numClasses] tensor with one 1
// per row.
func OneHotBatch[B tensor.Backend](indices []int, numClasses int, backend B) *tensor.Tensor[float32, B] {
	return nn.OneHotBatch(indices, numClasses, backend)
}

// Targets packs class indices into an int32 tensor for the loss
// criteria.
func Targets[B tensor.Backend](indices []int, backend B) *tensor.Tensor[int32, B] {
	return nn.Targets(indices, backend)
}
