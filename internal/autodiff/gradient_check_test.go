package autodiff_test

import (
	"math"
	"testing"

	"github.com/inkwell-ml/inkwell/internal/autodiff"
	"github.com/inkwell-ml/inkwell/internal/backend/cpu"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

func fromValues64(t *testing.T, shape tensor.Shape, values []float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw(%v) failed: %v", shape, err)
	}
	copy(raw.AsFloat64(), values)
	return raw
}

func sumElements(x *tensor.RawTensor) float64 {
	var sum float64
	for _, v := range x.AsFloat64() {
		sum += v
	}
	return sum
}

// checkGradient compares the tape gradient of sum(forward()) with
// respect to param against central differences.
//
// forward must rebuild the graph from the same leaf tensors on every
// call. Every leaf is pinned for the duration: the sweep reruns
// forward without recording, and an unrecorded pass must not reuse a
// leaf buffer for an in-place result.
func checkGradient(t *testing.T, backend *autodiff.AutodiffBackend[*cpu.CPUBackend], param *tensor.RawTensor, leaves []*tensor.RawTensor, forward func() *tensor.RawTensor) {
	t.Helper()

	for _, leaf := range leaves {
		defer leaf.ForceNonUnique()()
	}

	tape := backend.Tape()
	tape.Clear()
	tape.StartRecording()
	loss := forward()
	tape.StopRecording()

	seed, err := tensor.NewRaw(loss.Shape(), tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("seed allocation failed: %v", err)
	}
	seedData := seed.AsFloat64()
	for i := range seedData {
		seedData[i] = 1
	}

	grads := tape.Backward(seed, backend)
	analytic := grads[param]
	if analytic == nil {
		t.Fatal("no gradient recorded for parameter")
	}
	analyticData := analytic.AsFloat64()

	const eps = 1e-6
	data := param.AsFloat64()
	for i := range data {
		orig := data[i]
		data[i] = orig + eps
		plus := sumElements(forward())
		data[i] = orig - eps
		minus := sumElements(forward())
		data[i] = orig

		numeric := (plus - minus) / (2 * eps)
		diff := math.Abs(analyticData[i] - numeric)
		scale := math.Max(math.Abs(analyticData[i]), math.Abs(numeric))
		if diff > 1e-6+1e-4*scale {
			t.Errorf("grad[%d]: analytic %.8f vs numeric %.8f", i, analyticData[i], numeric)
		}
	}
	tape.Clear()
}

// TestGradientCheck_HiddenStep differentiates a tanh hidden update,
// tanh(x·Wᵀ + b), with respect to each of its tensors.
func TestGradientCheck_HiddenStep(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x := fromValues64(t, tensor.Shape{2, 3}, []float64{0.1, -0.2, 0.3, 0.4, 0.5, -0.6})
	w := fromValues64(t, tensor.Shape{4, 3}, []float64{
		0.2, -0.1, 0.3,
		0.5, 0.4, -0.2,
		-0.3, 0.1, 0.2,
		0.6, -0.5, 0.1,
	})
	b := fromValues64(t, tensor.Shape{1, 4}, []float64{0.1, -0.1, 0.2, 0.05})
	leaves := []*tensor.RawTensor{x, w, b}

	forward := func() *tensor.RawTensor {
		return backend.Tanh(backend.Add(backend.MatMul(x, backend.Transpose(w)), b))
	}

	checkGradient(t, backend, w, leaves, forward)
	checkGradient(t, backend, b, leaves, forward)
	checkGradient(t, backend, x, leaves, forward)
}

// TestGradientCheck_GateProduct differentiates a gate-times-candidate
// product, sigmoid(x·Wgᵀ) * tanh(x·Wcᵀ), with respect to both weights.
func TestGradientCheck_GateProduct(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x := fromValues64(t, tensor.Shape{1, 3}, []float64{0.3, -0.4, 0.5})
	wg := fromValues64(t, tensor.Shape{2, 3}, []float64{0.1, 0.2, -0.3, 0.4, -0.5, 0.6})
	wc := fromValues64(t, tensor.Shape{2, 3}, []float64{-0.2, 0.3, 0.1, 0.5, 0.2, -0.4})
	leaves := []*tensor.RawTensor{x, wg, wc}

	forward := func() *tensor.RawTensor {
		gate := backend.Sigmoid(backend.MatMul(x, backend.Transpose(wg)))
		candidate := backend.Tanh(backend.MatMul(x, backend.Transpose(wc)))
		return backend.Mul(gate, candidate)
	}

	checkGradient(t, backend, wg, leaves, forward)
	checkGradient(t, backend, wc, leaves, forward)
}

// TestGradientCheck_LogSoftmax differentiates sum(log(softmax(x·Wᵀ))).
func TestGradientCheck_LogSoftmax(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x := fromValues64(t, tensor.Shape{2, 2}, []float64{0.5, -0.3, 0.2, 0.8})
	w := fromValues64(t, tensor.Shape{3, 2}, []float64{0.4, -0.1, 0.2, 0.3, -0.5, 0.6})
	leaves := []*tensor.RawTensor{x, w}

	forward := func() *tensor.RawTensor {
		return backend.Log(backend.Softmax(backend.MatMul(x, backend.Transpose(w)), -1))
	}

	checkGradient(t, backend, w, leaves, forward)
	checkGradient(t, backend, x, leaves, forward)
}

// TestGradientCheck_SoftmaxNLL differentiates the probability-based
// loss pipeline end to end: softmax, then negative log-likelihood.
func TestGradientCheck_SoftmaxNLL(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x := fromValues64(t, tensor.Shape{2, 2}, []float64{0.5, -0.3, 0.2, 0.8})
	w := fromValues64(t, tensor.Shape{3, 2}, []float64{0.4, -0.1, 0.2, 0.3, -0.5, 0.6})
	targets := targetsFrom(t, []int32{2, 0})
	leaves := []*tensor.RawTensor{x, w}

	forward := func() *tensor.RawTensor {
		probs := backend.Softmax(backend.MatMul(x, backend.Transpose(w)), -1)
		return backend.NLL(probs, targets)
	}

	checkGradient(t, backend, w, leaves, forward)
	checkGradient(t, backend, x, leaves, forward)
}

// TestGradientCheck_CrossEntropy differentiates the fused logits-based
// loss.
func TestGradientCheck_CrossEntropy(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x := fromValues64(t, tensor.Shape{2, 2}, []float64{0.5, -0.3, 0.2, 0.8})
	w := fromValues64(t, tensor.Shape{3, 2}, []float64{0.4, -0.1, 0.2, 0.3, -0.5, 0.6})
	targets := targetsFrom(t, []int32{1, 2})
	leaves := []*tensor.RawTensor{x, w}

	forward := func() *tensor.RawTensor {
		return backend.CrossEntropy(backend.MatMul(x, backend.Transpose(w)), targets)
	}

	checkGradient(t, backend, w, leaves, forward)
	checkGradient(t, backend, x, leaves, forward)
}

// TestGradientCheck_DivSub differentiates a/b - c with respect to all
// three tensors.
func TestGradientCheck_DivSub(t *testing.T) {
	backend := autodiff.New(cpu.New())

	a := fromValues64(t, tensor.Shape{2, 2}, []float64{1.5, -2.0, 0.5, 3.0})
	b := fromValues64(t, tensor.Shape{2, 2}, []float64{2.0, 4.0, -1.0, 0.5})
	c := fromValues64(t, tensor.Shape{2, 2}, []float64{0.1, 0.2, 0.3, 0.4})
	leaves := []*tensor.RawTensor{a, b, c}

	forward := func() *tensor.RawTensor {
		return backend.Sub(backend.Div(a, b), c)
	}

	checkGradient(t, backend, a, leaves, forward)
	checkGradient(t, backend, b, leaves, forward)
	checkGradient(t, backend, c, leaves, forward)
}
