// Copyright 2025 The Inkwell Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks for character-level
// sequence models.
//
// # Overview
//
// This package contains:
//   - RNNCell, LSTMCell: Recurrent cells stepping one symbol at a time
//   - BatchRNN: A batched recurrent model built from Linear layers
//   - Linear: Fully connected layer with Xavier initialization
//   - NLLLoss, CrossEntropyLoss: Classification losses
//   - SequenceNLL: Summed negative log-likelihood over a sequence
//   - Parameter: Named trainable tensor with gradient storage
//
// # Basic Usage
//
//	import (
//	    "github.com/inkwell-ml/inkwell/nn"
//	    "github.com/inkwell-ml/inkwell/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    cell := nn.NewRNNCell(65, 128, backend)
//
//	    state := cell.InitState(1)
//	    input := nn.OneHot(7, cell.VocabSize(), backend)
//	    probs, state := cell.Step(input, state)
//	    _ = probs // [1, 65] distribution over the next symbol
//	}
//
// # Training
//
// Cells implement the Cell interface, which SequenceNLL drives to
// accumulate the loss over an input/target chunk. With an autodiff
// backend the whole unrolled sequence is recorded on the tape, so one
// Backward call yields gradients for every parameter:
//
//	backend := autodiff.New(cpu.New())
//	cell := nn.NewRNNCell(vocab, hidden, backend)
//
//	backend.Tape().StartRecording()
//	loss := nn.SequenceNLL(cell, inputs, targets, backend)
//	backend.Tape().StopRecording()
//	grads := autodiff.Backward(loss, backend)
package nn
