package nn_test

import (
	"testing"

	"github.com/inkwell-ml/inkwell/internal/autodiff"
	"github.com/inkwell-ml/inkwell/internal/backend/cpu"
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// TestLSTMCell_StepShapes runs one step and checks output, hidden, and
// memory cell shapes.
func TestLSTMCell_StepShapes(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewLSTMCell(5, 8, backend)

	state := cell.InitState(1)
	if state.Cell == nil {
		t.Fatal("LSTM state must include a memory cell")
	}

	probs, next := cell.Step(nn.OneHot(3, 5, backend), state)

	if !probs.Shape().Equal(tensor.Shape{1, 5}) {
		t.Errorf("probs shape = %v, want [1 5]", probs.Shape())
	}
	if !next.Hidden.Shape().Equal(tensor.Shape{1, 8}) {
		t.Errorf("hidden shape = %v, want [1 8]", next.Hidden.Shape())
	}
	if !next.Cell.Shape().Equal(tensor.Shape{1, 8}) {
		t.Errorf("cell shape = %v, want [1 8]", next.Cell.Shape())
	}
}

// TestLSTMCell_ProbabilitiesSumToOne checks normalization across a few
// steps of state evolution.
func TestLSTMCell_ProbabilitiesSumToOne(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewLSTMCell(4, 6, backend)

	state := cell.InitState(1)
	for step := 0; step < 3; step++ {
		probs, next := cell.Step(nn.OneHot(step%4, 4, backend), state)

		var sum float32
		for _, p := range probs.Data() {
			sum += p
		}
		if !floatNear(sum, 1.0, 1e-5) {
			t.Errorf("step %d: probabilities sum to %v, want 1", step, sum)
		}
		state = next
	}
}

// TestLSTMCell_ForgetBiasStartsAtOne checks the forget-gate bias
// initialization; every other bias starts at zero.
func TestLSTMCell_ForgetBiasStartsAtOne(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewLSTMCell(3, 4, backend)
	params := cell.Parameters()

	bf := paramByName(t, params, "bf")
	for i, v := range bf.Tensor().Data() {
		if v != 1 {
			t.Errorf("bf[%d] = %v, want 1", i, v)
		}
	}

	for _, name := range []string{"bi", "bo", "bc", "by"} {
		p := paramByName(t, params, name)
		for i, v := range p.Tensor().Data() {
			if v != 0 {
				t.Errorf("%s[%d] = %v, want 0", name, i, v)
			}
		}
	}
}

// TestLSTMCell_Parameters checks the full inventory: three matrices
// per gate times four gates, plus the output projection pair.
func TestLSTMCell_Parameters(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewLSTMCell(3, 4, backend)

	params := cell.Parameters()
	if len(params) != 14 {
		t.Fatalf("got %d parameters, want 14", len(params))
	}

	wantShapes := map[string]tensor.Shape{
		"wxi": {4, 3}, "whi": {4, 4}, "bi": {1, 4},
		"wxf": {4, 3}, "whf": {4, 4}, "bf": {1, 4},
		"wxo": {4, 3}, "who": {4, 4}, "bo": {1, 4},
		"wxc": {4, 3}, "whc": {4, 4}, "bc": {1, 4},
		"why": {3, 4}, "by": {1, 3},
	}
	for name, want := range wantShapes {
		p := paramByName(t, params, name)
		if !p.Tensor().Shape().Equal(want) {
			t.Errorf("%s shape = %v, want %v", name, p.Tensor().Shape(), want)
		}
	}
}

// TestLSTMCell_MemoryCellEvolves checks that the memory cell actually
// changes across steps rather than being passed through untouched.
func TestLSTMCell_MemoryCellEvolves(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewLSTMCell(3, 4, backend)

	state := cell.InitState(1)
	_, next := cell.Step(nn.OneHot(1, 3, backend), state)

	changed := false
	for _, v := range next.Cell.Data() {
		if v != 0 {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("memory cell unchanged after a step")
	}
}

// TestLSTMCell_GradientsReachAllParameters backpropagates a two-step
// chunk and checks every gate weight received a gradient.
func TestLSTMCell_GradientsReachAllParameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	cell := nn.NewLSTMCell(3, 4, backend)

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

// TestLSTMCell_StepValidation rejects a state without a memory cell.
func TestLSTMCell_StepValidation(t *testing.T) {
	backend := cpu.New()
	cell := nn.NewLSTMCell(3, 4, backend)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for state without memory cell")
		}
	}()
	hiddenOnly := nn.State[*cpu.CPUBackend]{Hidden: nn.Zeros(tensor.Shape{1, 4}, backend)}
	cell.Step(nn.OneHot(0, 3, backend), hiddenOnly)
}
