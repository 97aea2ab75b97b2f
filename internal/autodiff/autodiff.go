// Package autodiff provides tape-based reverse-mode automatic
// differentiation as a backend decorator.
//
// AutodiffBackend wraps any tensor.Backend. While its tape is
// recording, every operation routed through the wrapper is executed by
// the inner backend and then recorded; Backward replays the tape in
// reverse to produce gradients for the recorded inputs. Code written
// against tensor.Backend runs unchanged with or without gradients.
package autodiff

import (
	"github.com/inkwell-ml/inkwell/internal/autodiff/ops"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// AutodiffBackend decorates an inner backend with gradient recording.
//
// While recording, the wrapper pins each operand as shared before
// delegating, so the inner backend's in-place fast path never reuses a
// tensor that the tape will need intact for the backward pass.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New wraps inner with a fresh, non-recording tape.
func New[B tensor.Backend](inner B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: inner,
		tape:  NewTape(),
	}
}

// Tape returns the gradient tape.
func (ab *AutodiffBackend[B]) Tape() *GradientTape {
	return ab.tape
}

// Inner returns the wrapped backend.
func (ab *AutodiffBackend[B]) Inner() B {
	return ab.inner
}

// Name returns the backend name.
func (ab *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + ab.inner.Name() + ")"
}

// Device returns the inner backend's device.
func (ab *AutodiffBackend[B]) Device() tensor.Device {
	return ab.inner.Device()
}

// Add computes x + y, recording the operation when the tape is active.
func (ab *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
		defer y.ForceNonUnique()()
	}
	result := ab.inner.Add(x, y)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewAddOp(x, y, result))
	}
	return result
}

// Sub computes x - y, recording the operation when the tape is active.
func (ab *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
		defer y.ForceNonUnique()()
	}
	result := ab.inner.Sub(x, y)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewSubOp(x, y, result))
	}
	return result
}

// Mul computes x * y, recording the operation when the tape is active.
func (ab *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
		defer y.ForceNonUnique()()
	}
	result := ab.inner.Mul(x, y)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewMulOp(x, y, result))
	}
	return result
}

// Div computes x / y, recording the operation when the tape is active.
func (ab *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
		defer y.ForceNonUnique()()
	}
	result := ab.inner.Div(x, y)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewDivOp(x, y, result))
	}
	return result
}

// MatMul computes the matrix product, recording the operation when the
// tape is active.
func (ab *AutodiffBackend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
		defer y.ForceNonUnique()()
	}
	result := ab.inner.MatMul(x, y)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewMatMulOp(x, y, result))
	}
	return result
}

// Reshape returns x with a new shape, recording the operation when the
// tape is active.
func (ab *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
	}
	result := ab.inner.Reshape(x, shape)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewReshapeOp(x, result))
	}
	return result
}

// Transpose permutes axes, recording the operation when the tape is
// active.
func (ab *AutodiffBackend[B]) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
	}
	result := ab.inner.Transpose(x, axes...)
	if ab.tape.IsRecording() {
		// The op needs the permutation that was actually applied, so
		// the default reversal is spelled out before recording.
		resolved := axes
		if len(resolved) == 0 {
			n := len(x.Shape())
			resolved = make([]int, n)
			for i := range resolved {
				resolved[i] = n - 1 - i
			}
		}
		ab.tape.Record(ops.NewTransposeOp(x, result, resolved))
	}
	return result
}

// Tanh applies the hyperbolic tangent, recording the operation when
// the tape is active.
func (ab *AutodiffBackend[B]) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
	}
	result := ab.inner.Tanh(x)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewTanhOp(x, result))
	}
	return result
}

// Sigmoid applies the logistic function, recording the operation when
// the tape is active.
func (ab *AutodiffBackend[B]) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
	}
	result := ab.inner.Sigmoid(x)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewSigmoidOp(x, result))
	}
	return result
}

// Softmax normalizes along dim, recording the operation when the tape
// is active.
func (ab *AutodiffBackend[B]) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
	}
	result := ab.inner.Softmax(x, dim)
	if ab.tape.IsRecording() {
		resolved := dim
		if resolved < 0 {
			resolved += len(x.Shape())
		}
		ab.tape.Record(ops.NewSoftmaxOp(x, result, resolved))
	}
	return result
}

// Log applies the natural logarithm, recording the operation when the
// tape is active.
func (ab *AutodiffBackend[B]) Log(x *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer x.ForceNonUnique()()
	}
	result := ab.inner.Log(x)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewLogOp(x, result))
	}
	return result
}

// NLL computes the summed negative log-likelihood of targets under
// probability rows, recording a fused loss operation when the tape is
// active. Targets are class indices and receive no gradient.
func (ab *AutodiffBackend[B]) NLL(probs, targets *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer probs.ForceNonUnique()()
	}
	result := ops.NLLForward(probs, targets)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewNLLOp(probs, targets, result))
	}
	return result
}

// CrossEntropy computes mean cross-entropy loss from logits, recording
// a fused loss operation when the tape is active. Targets are class
// indices and receive no gradient.
func (ab *AutodiffBackend[B]) CrossEntropy(logits, targets *tensor.RawTensor) *tensor.RawTensor {
	if ab.tape.IsRecording() {
		defer logits.ForceNonUnique()()
	}
	result := ops.CrossEntropyForward(logits, targets)
	if ab.tape.IsRecording() {
		ab.tape.Record(ops.NewCrossEntropyOp(logits, targets, result))
	}
	return result
}
