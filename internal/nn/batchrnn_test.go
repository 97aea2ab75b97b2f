package nn_test

import (
	"testing"

	"github.com/inkwell-ml/inkwell/internal/autodiff"
	"github.com/inkwell-ml/inkwell/internal/backend/cpu"
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// TestBatchRNN_StepShapes runs a batch of 3 sequences through one
// timestep.
func TestBatchRNN_StepShapes(t *testing.T) {
	backend := cpu.New()
	model := nn.NewBatchRNN(5, 8, backend)

	input := nn.OneHotBatch([]int{0, 2, 4}, 5, backend)
	hidden := model.InitHidden(3)

	logits, newHidden := model.Step(input, hidden)

	if !logits.Shape().Equal(tensor.Shape{3, 5}) {
		t.Errorf("logits shape = %v, want [3 5]", logits.Shape())
	}
	if !newHidden.Shape().Equal(tensor.Shape{3, 8}) {
		t.Errorf("hidden shape = %v, want [3 8]", newHidden.Shape())
	}
}

// TestBatchRNN_StepLossIsScalar pairs a step with targets and checks
// the loss reduces to one element.
func TestBatchRNN_StepLossIsScalar(t *testing.T) {
	backend := cpu.New()
	model := nn.NewBatchRNN(4, 6, backend)

	input := nn.OneHotBatch([]int{0, 1}, 4, backend)
	targets := nn.Targets([]int{1, 2}, backend)

	loss, newHidden := model.StepLoss(input, targets, model.InitHidden(2))

	if loss.NumElements() != 1 {
		t.Errorf("loss has %d elements, want 1", loss.NumElements())
	}
	if loss.Item() <= 0 {
		t.Errorf("loss = %v, want positive", loss.Item())
	}
	if !newHidden.Shape().Equal(tensor.Shape{2, 6}) {
		t.Errorf("hidden shape = %v, want [2 6]", newHidden.Shape())
	}
}

// TestBatchRNN_Parameters checks the aggregated inventory: weight and
// bias for each of the three layers.
func TestBatchRNN_Parameters(t *testing.T) {
	backend := cpu.New()
	model := nn.NewBatchRNN(4, 6, backend)

	params := model.Parameters()
	if len(params) != 6 {
		t.Fatalf("got %d parameters, want 6", len(params))
	}
}

// TestBatchRNN_HiddenStateCarriesInformation feeds two different input
// histories and expects different hidden states at the second step.
func TestBatchRNN_HiddenStateCarriesInformation(t *testing.T) {
	backend := cpu.New()
	model := nn.NewBatchRNN(3, 5, backend)

	_, hiddenA := model.Step(nn.OneHotBatch([]int{0}, 3, backend), model.InitHidden(1))
	_, hiddenB := model.Step(nn.OneHotBatch([]int{2}, 3, backend), model.InitHidden(1))

	same := true
	a, b := hiddenA.Data(), hiddenB.Data()
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("hidden state identical for different inputs")
	}
}

// TestBatchRNN_GradientsReachAllLayers records a two-step batch loss
// and checks every layer parameter received a gradient.
func TestBatchRNN_GradientsReachAllLayers(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := nn.NewBatchRNN(3, 5, backend)

	inputs := [][]int{{0, 1}, {1, 2}}
	targets := [][]int{{1, 2}, {2, 0}}

	backend.Tape().StartRecording()
	hidden := model.InitHidden(2)
	var total *tensor.Tensor[float32, *autodiff.AutodiffBackend[*cpu.CPUBackend]]
	for step := range inputs {
		input := nn.OneHotBatch(inputs[step], 3, backend)
		stepTargets := nn.Targets(targets[step], backend)
		loss, next := model.StepLoss(input, stepTargets, hidden)
		if total == nil {
			total = loss
		} else {
			total = total.Add(loss)
		}
		hidden = next
	}
	backend.Tape().StopRecording()

	grads := autodiff.Backward(total, backend)

	for _, p := range model.Parameters() {
		if _, ok := grads[p.Tensor().Raw()]; !ok {
			t.Errorf("no gradient for parameter %s", p.Name())
		}
	}
}
