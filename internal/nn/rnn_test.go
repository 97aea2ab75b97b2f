package nn_test

import (
	"math"
	"testing"

	"github.com/inkwell-ml/inkwell/internal/autodiff"
	"github.com/inkwell-ml/inkwell/internal/backend/cpu"
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

func floatNear(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

// paramByName finds a parameter in a cell's parameter list.
func paramByName[B tensor.Backend](t *testing.T, params []*nn.Parameter[B], name string) *nn.Parameter[B] {
	t.Helper()
	for _, p := range params {
		if p.Name() == name {
			return p
		}
	}
	t.Fatalf("no parameter named %q", name)
	return nil
}

// TestRNNCell_StepShapes runs one step and checks the output and state
// shapes.
func TestRNNCell_StepShapes(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewRNNCell(5, 8, backend)

	state := cell.InitState(1)
	input := nn.OneHot(2, 5, backend)

	probs, next := cell.Step(input, state)

	if !probs.Shape().Equal(tensor.Shape{1, 5}) {
		t.Errorf("probs shape = %v, want [1 5]", probs.Shape())
	}
	if !next.Hidden.Shape().Equal(tensor.Shape{1, 8}) {
		t.Errorf("hidden shape = %v, want [1 8]", next.Hidden.Shape())
	}
	if next.Cell != nil {
		t.Error("RNN state should have no memory cell")
	}
}

// TestRNNCell_ProbabilitiesSumToOne checks that every step emits a
// normalized distribution.
func TestRNNCell_ProbabilitiesSumToOne(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewRNNCell(4, 6, backend)

	state := cell.InitState(1)
	for step := 0; step < 3; step++ {
		input := nn.OneHot(step%4, 4, backend)
		probs, next := cell.Step(input, state)

		var sum float32
		for _, p := range probs.Data() {
			if p < 0 {
				t.Errorf("step %d: negative probability %v", step, p)
			}
			sum += p
		}
		if !floatNear(sum, 1.0, 1e-5) {
			t.Errorf("step %d: probabilities sum to %v, want 1", step, sum)
		}
		state = next
	}
}

// TestRNNCell_LargeBiasStaysFinite spreads the output bias far enough
// apart that an unshifted softmax would overflow, then checks the
// emitted distribution is still finite and normalized.
func TestRNNCell_LargeBiasStaysFinite(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewRNNCell(3, 4, backend)

	by := paramByName(t, cell.Parameters(), "by")
	data := by.Tensor().Data()
	for i := range data {
		// The bias adds directly to the logits, so alternating signs
		// push them 600 apart.
		if i%2 == 0 {
			data[i] = 300
		} else {
			data[i] = -300
		}
	}

	probs, _ := cell.Step(nn.OneHot(0, 3, backend), cell.InitState(1))

	var sum float32
	for i, p := range probs.Data() {
		if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
			t.Fatalf("probs[%d] = %v, want finite", i, p)
		}
		sum += p
	}
	if !floatNear(sum, 1.0, 1e-5) {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
}

// TestRNNCell_InitStateIsZero checks that fresh state is all zeros.
func TestRNNCell_InitStateIsZero(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewRNNCell(3, 4, backend)

	state := cell.InitState(2)
	if !state.Hidden.Shape().Equal(tensor.Shape{2, 4}) {
		t.Fatalf("hidden shape = %v, want [2 4]", state.Hidden.Shape())
	}
	for i, v := range state.Hidden.Data() {
		if v != 0 {
			t.Errorf("hidden[%d] = %v, want 0", i, v)
		}
	}
}

// TestRNNCell_Parameters checks the parameter inventory: two weight
// matrices, the hidden bias, and the output projection pair.
func TestRNNCell_Parameters(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewRNNCell(3, 4, backend)

	params := cell.Parameters()
	if len(params) != 5 {
		t.Fatalf("got %d parameters, want 5", len(params))
	}

	wantShapes := map[string]tensor.Shape{
		"wxh": {4, 3},
		"whh": {4, 4},
		"bh":  {1, 4},
		"why": {3, 4},
		"by":  {1, 3},
	}
	for name, want := range wantShapes {
		p := paramByName(t, params, name)
		if !p.Tensor().Shape().Equal(want) {
			t.Errorf("%s shape = %v, want %v", name, p.Tensor().Shape(), want)
		}
	}
}

// TestRNNCell_GradientsReachAllParameters trains one recorded chunk
// and checks that backpropagation produced a gradient for every
// parameter.
func TestRNNCell_GradientsReachAllParameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	cell := nn.NewRNNCell(3, 4, backend)

	backend.Tape().StartRecording()
	loss := nn.SequenceNLL(cell, []int{0, 1}, []int{1, 2}, backend)
	backend.Tape().StopRecording()

	grads := autodiff.Backward(loss, backend)

	for _, p := range cell.Parameters() {
		grad, ok := grads[p.Tensor().Raw()]
		if !ok {
			t.Errorf("no gradient for parameter %s", p.Name())
			continue
		}
		if !grad.Shape().Equal(p.Tensor().Shape()) {
			t.Errorf("gradient shape %v for %s, want %v", grad.Shape(), p.Name(), p.Tensor().Shape())
		}
	}
}

// TestRNNCell_StepValidation rejects mismatched input and state.
func TestRNNCell_StepValidation(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewRNNCell(3, 4, backend)

	t.Run("wrong vocab width", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for wrong input width")
			}
		}()
		cell.Step(nn.OneHot(0, 5, backend), cell.InitState(1))
	})

	t.Run("nil hidden", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for nil hidden state")
			}
		}()
		cell.Step(nn.OneHot(0, 3, backend), nn.State[*cpu.CPUBackend]{})
	})
}
