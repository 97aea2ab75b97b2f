// Package optim implements the optimization algorithms used to train
// the sequence models.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation
//
// Both optimizers support element-wise gradient clipping, applied to
// each gradient before the update rule.
//
// Example usage:
//
//	optimizer := optim.NewSGD(cell.Parameters(), optim.SGDConfig{
//	    LR:        0.1,
//	    ClipValue: 5,
//	}, backend)
//
//	backend.Tape().Clear()
//	backend.Tape().StartRecording()
//	loss := nn.SequenceNLL(cell, inputs, targets, backend)
//	backend.Tape().StopRecording()
//
//	grads := autodiff.Backward(loss, backend)
//	optimizer.Step(grads)
//	optimizer.ZeroGrad()
package optim

import (
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers consume the gradient map produced by a backward pass and
// update the registered parameters in place.
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Takes the gradient map from Backward and updates parameters
	// in place. Parameters without an entry in the map are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// getGradient retrieves the gradient recorded for a parameter.
//
// Returns nil if the parameter was not part of the computation graph.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}

// clipGradient bounds every gradient element to [-clipValue, clipValue]
// when clipValue is positive; zero disables clipping.
func clipGradient(grad *tensor.RawTensor, clipValue float32) *tensor.RawTensor {
	if clipValue <= 0 {
		return grad
	}
	clipped, err := tensor.Clip(grad, -clipValue, clipValue)
	if err != nil {
		panic(err)
	}
	return clipped
}
