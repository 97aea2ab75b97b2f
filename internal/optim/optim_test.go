package optim_test

import (
	"testing"

	"github.com/inkwell-ml/inkwell/internal/autodiff"
	"github.com/inkwell-ml/inkwell/internal/backend/cpu"
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/optim"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Interface compliance.
var (
	_ optim.Optimizer = (*optim.SGD[*cpu.CPUBackend])(nil)
	_ optim.Optimizer = (*optim.Adam[*cpu.CPUBackend])(nil)
)

func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func newParam(t *testing.T, backend *cpu.CPUBackend, name string, values []float32) *nn.Parameter[*cpu.CPUBackend] {
	t.Helper()
	tens, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return nn.NewParameter(name, tens)
}

func gradFor(t *testing.T, backend *cpu.CPUBackend, values []float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(tensor.Shape{len(values)}, tensor.Float32, backend.Device())
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(raw.AsFloat32(), values)
	return raw
}

// TestSGD_Step applies one plain update: param -= lr * grad.
func TestSGD_Step(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, "w", []float32{1.0, 2.0})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.SGDConfig{LR: 0.1}, backend)

	grads := map[*tensor.RawTensor]*tensor.RawTensor{
		param.Tensor().Raw(): gradFor(t, backend, []float32{0.5, 1.0}),
	}
	sgd.Step(grads)

	// 1.0 - 0.1*0.5 = 0.95, 2.0 - 0.1*1.0 = 1.9
	want := []float32{0.95, 1.9}
	for i, v := range param.Tensor().Data() {
		if !floatEqual(v, want[i], 1e-6) {
			t.Errorf("param[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestSGD_ClipsGradients bounds each gradient element to
// [-ClipValue, ClipValue] before the update; in-range elements pass
// through unchanged.
func TestSGD_ClipsGradients(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, "w", []float32{0, 0, 0})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.SGDConfig{
		LR:        1.0,
		ClipValue: 5.0,
	}, backend)

	grads := map[*tensor.RawTensor]*tensor.RawTensor{
		param.Tensor().Raw(): gradFor(t, backend, []float32{100.0, -100.0, 2.0}),
	}
	sgd.Step(grads)

	// Clipped gradient is [5, -5, 2]; with lr=1 the params move by the
	// negated clipped values.
	want := []float32{-5.0, 5.0, -2.0}
	for i, v := range param.Tensor().Data() {
		if !floatEqual(v, want[i], 1e-6) {
			t.Errorf("param[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestSGD_SkipsParametersWithoutGradient leaves untouched any
// parameter missing from the gradient map.
func TestSGD_SkipsParametersWithoutGradient(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, "w", []float32{3.0})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.SGDConfig{LR: 0.1}, backend)
	sgd.Step(map[*tensor.RawTensor]*tensor.RawTensor{})

	if got := param.Tensor().Data()[0]; got != 3.0 {
		t.Errorf("param = %v, want unchanged 3.0", got)
	}
}

// TestSGD_Momentum runs two steps with a constant gradient and checks
// the velocity accumulation.
func TestSGD_Momentum(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, "w", []float32{1.0})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.SGDConfig{
		LR:       0.1,
		Momentum: 0.9,
	}, backend)

	step := func() {
		sgd.Step(map[*tensor.RawTensor]*tensor.RawTensor{
			param.Tensor().Raw(): gradFor(t, backend, []float32{1.0}),
		})
	}

	// Step 1: v = 0.9*0 + 1 = 1, param = 1 - 0.1*1 = 0.9
	step()
	if got := param.Tensor().Data()[0]; !floatEqual(got, 0.9, 1e-6) {
		t.Fatalf("after step 1: param = %v, want 0.9", got)
	}

	// Step 2: v = 0.9*1 + 1 = 1.9, param = 0.9 - 0.19 = 0.71
	step()
	if got := param.Tensor().Data()[0]; !floatEqual(got, 0.71, 1e-6) {
		t.Errorf("after step 2: param = %v, want 0.71", got)
	}
}

// TestSGD_DefaultLR fills in 0.01 when the config leaves LR unset.
func TestSGD_DefaultLR(t *testing.T) {
	backend := cpu.New()
	sgd := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{}, optim.SGDConfig{}, backend)

	if got := sgd.GetLR(); got != 0.01 {
		t.Errorf("default LR = %v, want 0.01", got)
	}
}

// TestAdam_FirstStep checks the well-known property that Adam's first
// update is approximately lr * sign(grad) regardless of magnitude.
func TestAdam_FirstStep(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, "w", []float32{1.0, 1.0})

	adam := optim.NewAdam([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.AdamConfig{LR: 0.001}, backend)

	adam.Step(map[*tensor.RawTensor]*tensor.RawTensor{
		param.Tensor().Raw(): gradFor(t, backend, []float32{1.0, -3.0}),
	})

	// m_hat = g, v_hat = g², so the update is lr * g/(|g|+eps) ≈ lr * sign(g).
	want := []float32{1.0 - 0.001, 1.0 + 0.001}
	for i, v := range param.Tensor().Data() {
		if !floatEqual(v, want[i], 1e-5) {
			t.Errorf("param[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestAdam_Defaults verifies the standard hyperparameters.
func TestAdam_Defaults(t *testing.T) {
	backend := cpu.New()
	adam := optim.NewAdam([]*nn.Parameter[*cpu.CPUBackend]{}, optim.AdamConfig{}, backend)

	if got := adam.GetLR(); got != 0.001 {
		t.Errorf("default LR = %v, want 0.001", got)
	}
	if got := adam.GetTimestep(); got != 0 {
		t.Errorf("initial timestep = %v, want 0", got)
	}
}

// TestAdam_TimestepAdvances increments once per Step.
func TestAdam_TimestepAdvances(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, "w", []float32{1.0})
	adam := optim.NewAdam([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.AdamConfig{}, backend)

	for i := 1; i <= 3; i++ {
		adam.Step(map[*tensor.RawTensor]*tensor.RawTensor{
			param.Tensor().Raw(): gradFor(t, backend, []float32{0.5}),
		})
		if got := adam.GetTimestep(); got != i {
			t.Errorf("timestep after step %d = %v", i, got)
		}
	}
}

// TestAdam_ClippedStepMatchesSmallGradient feeds one optimizer a huge
// gradient with clipping and another the already-clipped value; both
// must land on the same parameters.
func TestAdam_ClippedStepMatchesSmallGradient(t *testing.T) {
	backend := cpu.New()
	clippedParam := newParam(t, backend, "w", []float32{1.0})
	plainParam := newParam(t, backend, "w", []float32{1.0})

	clipped := optim.NewAdam([]*nn.Parameter[*cpu.CPUBackend]{clippedParam}, optim.AdamConfig{
		LR:        0.01,
		ClipValue: 5.0,
	}, backend)
	plain := optim.NewAdam([]*nn.Parameter[*cpu.CPUBackend]{plainParam}, optim.AdamConfig{
		LR: 0.01,
	}, backend)

	clipped.Step(map[*tensor.RawTensor]*tensor.RawTensor{
		clippedParam.Tensor().Raw(): gradFor(t, backend, []float32{250.0}),
	})
	plain.Step(map[*tensor.RawTensor]*tensor.RawTensor{
		plainParam.Tensor().Raw(): gradFor(t, backend, []float32{5.0}),
	})

	got := clippedParam.Tensor().Data()[0]
	want := plainParam.Tensor().Data()[0]
	if !floatEqual(got, want, 1e-7) {
		t.Errorf("clipped update %v differs from plain update on clipped value %v", got, want)
	}
}

// TestZeroGrad clears the gradient reference on every parameter.
func TestZeroGrad(t *testing.T) {
	backend := cpu.New()
	param := newParam(t, backend, "w", []float32{1.0})
	gradTensor, err := tensor.FromSlice([]float32{0.5}, tensor.Shape{1}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	param.SetGrad(gradTensor)

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.CPUBackend]{param}, optim.SGDConfig{}, backend)
	sgd.ZeroGrad()

	if param.Grad() != nil {
		t.Error("gradient not cleared by ZeroGrad")
	}
}

// TestSGD_StepReducesSequenceLoss runs one full record, backward, and
// update cycle on a fresh recurrent cell and checks the chunk loss does
// not increase. Several random initializations are tried so the check
// does not hinge on one draw.
func TestSGD_StepReducesSequenceLoss(t *testing.T) {
	inputs := []int{0, 1}
	targets := []int{1, 2}

	for trial := 0; trial < 5; trial++ {
		backend := autodiff.New(cpu.New())
		cell := nn.NewRNNCell(3, 8, backend)
		sgd := optim.NewSGD(cell.Parameters(), optim.SGDConfig{LR: 0.1, ClipValue: 5}, backend)

		tape := backend.Tape()
		tape.StartRecording()
		before := nn.SequenceNLL(cell, inputs, targets, backend)
		tape.StopRecording()

		grads := autodiff.Backward(before, backend)
		sgd.Step(grads)
		tape.Clear()

		after := nn.SequenceNLL(cell, inputs, targets, backend)
		if after.Item() > before.Item() {
			t.Errorf("trial %d: loss rose from %v to %v after one step", trial, before.Item(), after.Item())
		}
	}
}
