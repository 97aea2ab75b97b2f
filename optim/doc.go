// Copyright 2025 The Inkwell Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training models.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic gradient descent with optional momentum
//   - Adam: Adaptive moment estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Both optimizers support element-wise gradient clipping: with
// ClipValue set, every gradient component is limited to
// [-ClipValue, ClipValue] before the update, which keeps recurrent
// models from diverging on exploding gradients.
//
// # Basic Usage
//
//	import (
//	    "github.com/inkwell-ml/inkwell/optim"
//	    "github.com/inkwell-ml/inkwell/nn"
//	    "github.com/inkwell-ml/inkwell/autodiff"
//	    "github.com/inkwell-ml/inkwell/backend/cpu"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    cell := nn.NewRNNCell(65, 128, backend)
//
//	    optimizer := optim.NewSGD(cell.Parameters(), optim.SGDConfig{
//	        LR:        0.1,
//	        ClipValue: 5,
//	    }, backend)
//
//	    // One training step
//	    backend.Tape().Clear()
//	    backend.Tape().StartRecording()
//	    loss := nn.SequenceNLL(cell, inputs, targets, backend)
//	    backend.Tape().StopRecording()
//
//	    grads := autodiff.Backward(loss, backend)
//	    optimizer.Step(grads)
//	}
package optim
