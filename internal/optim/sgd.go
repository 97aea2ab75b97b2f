package optim

import (
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * clip(gradient)
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + clip(gradient)
//	param = param - lr * velocity
//
// Gradient clipping happens element-wise before the update when
// ClipValue is positive.
//
// Example:
//
//	optimizer := optim.NewSGD(cell.Parameters(), optim.SGDConfig{
//	    LR:        0.1,
//	    ClipValue: 5,
//	}, backend)
type SGD[B tensor.Backend] struct {
	params     []*nn.Parameter[B]
	lr         float32
	momentum   float32
	clipValue  float32
	velocities map[*nn.Parameter[B]]*tensor.Tensor[float32, B]
	backend    B
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR        float32 // Learning rate (default: 0.01)
	Momentum  float32 // Momentum factor (default: 0, range [0, 1))
	ClipValue float32 // Element-wise gradient bound (default: 0, disabled)
}

// NewSGD creates a new SGD optimizer over the given parameters.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig, backend B) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[B]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		clipValue:  config.ClipValue,
		velocities: make(map[*nn.Parameter[B]]*tensor.Tensor[float32, B]),
		backend:    backend,
	}
}

// Step performs a single optimization step.
//
// Parameters with no gradient in the map are skipped.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, param := range s.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}

		gradTensor := tensor.New[float32](clipGradient(grad, s.clipValue), s.backend)

		if s.momentum == 0 {
			s.updateParameter(param, gradTensor)
		} else {
			s.updateParameterWithMomentum(param, gradTensor)
		}
	}
}

// updateParameter performs the plain SGD update.
func (s *SGD[B]) updateParameter(param *nn.Parameter[B], grad *tensor.Tensor[float32, B]) {
	// param -= lr * grad
	lrTensor := tensor.Full[float32](tensor.Shape{1}, s.lr, s.backend)
	scaledGrad := grad.Mul(lrTensor)

	updated := param.Tensor().Sub(scaledGrad)

	// Copy back so the parameter keeps its identity: the gradient map
	// and the recorded graph key off the original raw tensor.
	copy(param.Tensor().Raw().AsFloat32(), updated.Raw().AsFloat32())
}

// updateParameterWithMomentum performs the SGD update with momentum.
//
// The velocity buffer is long-lived state, so the update runs as an
// element-wise loop instead of backend operations that may reuse a
// uniquely-held operand as their output.
func (s *SGD[B]) updateParameterWithMomentum(param *nn.Parameter[B], grad *tensor.Tensor[float32, B]) {
	velocity, exists := s.velocities[param]
	if !exists {
		velocity = tensor.Zeros[float32](param.Tensor().Shape(), s.backend)
		s.velocities[param] = velocity
	}

	gradData := grad.Raw().AsFloat32()
	velocityData := velocity.Raw().AsFloat32()
	paramData := param.Tensor().Raw().AsFloat32()

	for i := range paramData {
		// velocity = momentum * velocity + grad
		velocityData[i] = s.momentum*velocityData[i] + gradData[i]
		// param -= lr * velocity
		paramData[i] -= s.lr * velocityData[i]
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD[B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD[B]) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD[B]) SetLR(lr float32) {
	s.lr = lr
}
