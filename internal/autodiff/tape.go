package autodiff

import (
	"github.com/inkwell-ml/inkwell/internal/autodiff/ops"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// GradientTape records operations during the forward pass so they can
// be replayed in reverse to compute gradients.
//
// A tape is not safe for concurrent use. Training loops own one tape,
// clear it at the start of every chunk, and run forward and backward
// on the same goroutine.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewTape creates a tape with recording off.
func NewTape() *GradientTape {
	return &GradientTape{}
}

// StartRecording turns on operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording turns off operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether operations are currently being recorded.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record appends an operation to the tape.
func (t *GradientTape) Record(op ops.Operation) {
	t.operations = append(t.operations, op)
}

// NumOperations returns the number of recorded operations.
func (t *GradientTape) NumOperations() int {
	return len(t.operations)
}

// Clear drops all recorded operations and keeps the recording flag.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// Backward walks the tape in reverse, propagating outputGrad from the
// last recorded operation's output back to every tensor that
// contributed to it. It returns the accumulated gradient for each
// such tensor, keyed by the tensor's identity.
//
// Gradient arithmetic runs through the supplied backend. Recording is
// suspended for the duration so the tape does not grow while it is
// being replayed; the returned gradients are plain tensors, not graph
// nodes, so gradients of gradients are not available.
func (t *GradientTape) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.operations) == 0 {
		return grads
	}

	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	last := t.operations[len(t.operations)-1]
	grads[last.Output()] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outGrad, ok := grads[op.Output()]
		if !ok {
			// The op's output never reached the loss.
			continue
		}

		inputGrads := backwardPinned(op, outGrad, backend)

		inputs := op.Inputs()
		for j, input := range inputs {
			if j >= len(inputGrads) || inputGrads[j] == nil {
				continue
			}
			if existing, found := grads[input]; found {
				// A tensor used by several ops accumulates the sum of
				// their gradients.
				grads[input] = backend.Add(existing, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads
}

// backwardPinned invokes op.Backward with every tensor the op can see
// pinned as shared. Backward implementations route gradient arithmetic
// through the backend, and the CPU backend reuses a uniquely-held
// operand as its output buffer; pinning keeps the incoming gradient
// and the recorded forward tensors out of that fast path while the op
// reads them.
func backwardPinned(op ops.Operation, outGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	unpinGrad := outGrad.ForceNonUnique()
	defer unpinGrad()
	unpinOut := op.Output().ForceNonUnique()
	defer unpinOut()

	inputs := op.Inputs()
	for _, input := range inputs {
		unpin := input.ForceNonUnique()
		defer unpin()
	}

	return op.Backward(outGrad, backend)
}
