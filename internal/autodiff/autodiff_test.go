package autodiff_test

import (
	"math"
	"testing"

	"github.com/inkwell-ml/inkwell/internal/autodiff"
	"github.com/inkwell-ml/inkwell/internal/backend/cpu"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

func newBackend() *autodiff.AutodiffBackend[*cpu.CPUBackend] {
	return autodiff.New(cpu.New())
}

func fromValues(t *testing.T, shape tensor.Shape, values []float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw(%v) failed: %v", shape, err)
	}
	copy(raw.AsFloat32(), values)
	return raw
}

func targetsFrom(t *testing.T, indices []int32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(tensor.Shape{len(indices)}, tensor.Int32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw targets failed: %v", err)
	}
	copy(raw.AsInt32(), indices)
	return raw
}

func floatEqual(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) < 1e-5
}

func onesGrad(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	values := make([]float32, shape.NumElements())
	for i := range values {
		values[i] = 1
	}
	return fromValues(t, shape, values)
}

// TestTapeRecordsOnlyWhileRecording verifies that operations executed
// outside a recording window leave the tape untouched.
func TestTapeRecordsOnlyWhileRecording(t *testing.T) {
	backend := newBackend()
	x := fromValues(t, tensor.Shape{2}, []float32{1, 2})
	y := fromValues(t, tensor.Shape{2}, []float32{3, 4})

	backend.Add(x, y)
	if n := backend.Tape().NumOperations(); n != 0 {
		t.Fatalf("tape has %d ops before recording, want 0", n)
	}

	backend.Tape().StartRecording()
	backend.Add(x, y)
	backend.Tape().StopRecording()
	if n := backend.Tape().NumOperations(); n != 1 {
		t.Fatalf("tape has %d ops after one recorded Add, want 1", n)
	}

	backend.Add(x, y)
	if n := backend.Tape().NumOperations(); n != 1 {
		t.Fatalf("tape has %d ops after recording stopped, want 1", n)
	}
}

// TestTapeClear drops recorded operations without touching the
// recording flag.
func TestTapeClear(t *testing.T) {
	backend := newBackend()
	x := fromValues(t, tensor.Shape{2}, []float32{1, 2})

	backend.Tape().StartRecording()
	backend.Add(x, x)
	backend.Tape().Clear()

	if n := backend.Tape().NumOperations(); n != 0 {
		t.Errorf("tape has %d ops after Clear, want 0", n)
	}
	if !backend.Tape().IsRecording() {
		t.Error("Clear turned recording off")
	}
}

// TestAddBackward propagates a gradient of ones through an addition:
// both inputs receive the gradient unchanged.
func TestAddBackward(t *testing.T) {
	backend := newBackend()
	x := fromValues(t, tensor.Shape{2}, []float32{1, 2})
	y := fromValues(t, tensor.Shape{2}, []float32{3, 4})

	backend.Tape().StartRecording()
	z := backend.Add(x, y)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(onesGrad(t, z.Shape()), backend)

	for _, input := range []*tensor.RawTensor{x, y} {
		grad, ok := grads[input]
		if !ok {
			t.Fatal("missing gradient for an Add input")
		}
		for i, v := range grad.AsFloat32() {
			if !floatEqual(v, 1) {
				t.Errorf("grad[%d] = %v, want 1", i, v)
			}
		}
	}
}

// TestMulBackward_OperandsSwapCleanly checks d(x*y)/dx = y and
// d(x*y)/dy = x. The second gradient only comes out right if the first
// backward computation left the incoming gradient intact, so this also
// guards against the in-place fast path reusing the seed gradient.
func TestMulBackward_OperandsSwapCleanly(t *testing.T) {
	backend := newBackend()
	x := fromValues(t, tensor.Shape{2}, []float32{2, 3})
	y := fromValues(t, tensor.Shape{2}, []float32{5, 7})

	backend.Tape().StartRecording()
	z := backend.Mul(x, y)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(onesGrad(t, z.Shape()), backend)

	wantX := []float32{5, 7}
	for i, v := range grads[x].AsFloat32() {
		if !floatEqual(v, wantX[i]) {
			t.Errorf("grad x[%d] = %v, want %v", i, v, wantX[i])
		}
	}
	wantY := []float32{2, 3}
	for i, v := range grads[y].AsFloat32() {
		if !floatEqual(v, wantY[i]) {
			t.Errorf("grad y[%d] = %v, want %v", i, v, wantY[i])
		}
	}
}

// TestDivBackward checks d(x/y)/dx = 1/y and d(x/y)/dy = -x/y².
func TestDivBackward(t *testing.T) {
	backend := newBackend()
	x := fromValues(t, tensor.Shape{2}, []float32{6, 8})
	y := fromValues(t, tensor.Shape{2}, []float32{2, 4})

	backend.Tape().StartRecording()
	z := backend.Div(x, y)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(onesGrad(t, z.Shape()), backend)

	wantX := []float32{0.5, 0.25}
	for i, v := range grads[x].AsFloat32() {
		if !floatEqual(v, wantX[i]) {
			t.Errorf("grad x[%d] = %v, want %v", i, v, wantX[i])
		}
	}
	// -x/y²: -6/4 = -1.5, -8/16 = -0.5
	wantY := []float32{-1.5, -0.5}
	for i, v := range grads[y].AsFloat32() {
		if !floatEqual(v, wantY[i]) {
			t.Errorf("grad y[%d] = %v, want %v", i, v, wantY[i])
		}
	}
}

// TestBroadcastBiasBackward adds a [1,3] bias to a [2,3] matrix; the
// bias gradient must sum over the broadcast batch dimension.
func TestBroadcastBiasBackward(t *testing.T) {
	backend := newBackend()
	h := fromValues(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	bias := fromValues(t, tensor.Shape{1, 3}, []float32{10, 20, 30})

	backend.Tape().StartRecording()
	z := backend.Add(h, bias)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(onesGrad(t, z.Shape()), backend)

	biasGrad := grads[bias]
	if !biasGrad.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("bias grad shape = %v, want [1 3]", biasGrad.Shape())
	}
	// Ones summed over a batch of 2.
	for i, v := range biasGrad.AsFloat32() {
		if !floatEqual(v, 2) {
			t.Errorf("bias grad[%d] = %v, want 2", i, v)
		}
	}
}

// TestMatMulBackward checks grad A = G·Bᵀ and grad B = Aᵀ·G for
// C = A·B with a gradient of ones.
func TestMatMulBackward(t *testing.T) {
	backend := newBackend()
	a := fromValues(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
	b := fromValues(t, tensor.Shape{2, 2}, []float32{5, 6, 7, 8})

	backend.Tape().StartRecording()
	c := backend.MatMul(a, b)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(onesGrad(t, c.Shape()), backend)

	// G·Bᵀ with G = ones: row sums of B's rows → [[11, 15], [11, 15]].
	wantA := []float32{11, 15, 11, 15}
	for i, v := range grads[a].AsFloat32() {
		if !floatEqual(v, wantA[i]) {
			t.Errorf("grad a[%d] = %v, want %v", i, v, wantA[i])
		}
	}
	// Aᵀ·G with G = ones: column sums of A → [[4, 4], [6, 6]].
	wantB := []float32{4, 4, 6, 6}
	for i, v := range grads[b].AsFloat32() {
		if !floatEqual(v, wantB[i]) {
			t.Errorf("grad b[%d] = %v, want %v", i, v, wantB[i])
		}
	}
}

// TestSharedInputAccumulates runs the same tensor through two recorded
// uses and expects the gradients to sum.
func TestSharedInputAccumulates(t *testing.T) {
	backend := newBackend()
	x := fromValues(t, tensor.Shape{2}, []float32{1, 2})

	backend.Tape().StartRecording()
	z := backend.Add(x, x)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(onesGrad(t, z.Shape()), backend)

	for i, v := range grads[x].AsFloat32() {
		if !floatEqual(v, 2) {
			t.Errorf("grad[%d] = %v, want 2 (both uses accumulated)", i, v)
		}
	}
}

// TestTanhBackward checks dtanh/dx = 1 - tanh²(x) at a few points.
func TestTanhBackward(t *testing.T) {
	backend := newBackend()
	x := fromValues(t, tensor.Shape{3}, []float32{-1, 0, 1})

	backend.Tape().StartRecording()
	y := backend.Tanh(x)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(onesGrad(t, y.Shape()), backend)

	yData := y.AsFloat32()
	for i, v := range grads[x].AsFloat32() {
		want := 1 - yData[i]*yData[i]
		if !floatEqual(v, want) {
			t.Errorf("grad[%d] = %v, want %v", i, v, want)
		}
	}
}

// TestSigmoidBackward checks dσ/dx = σ(x)(1 - σ(x)).
func TestSigmoidBackward(t *testing.T) {
	backend := newBackend()
	x := fromValues(t, tensor.Shape{3}, []float32{-2, 0, 2})

	backend.Tape().StartRecording()
	y := backend.Sigmoid(x)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(onesGrad(t, y.Shape()), backend)

	yData := y.AsFloat32()
	for i, v := range grads[x].AsFloat32() {
		want := yData[i] * (1 - yData[i])
		if !floatEqual(v, want) {
			t.Errorf("grad[%d] = %v, want %v", i, v, want)
		}
	}
}

// TestSoftmaxNLLBackward_GivesProbsMinusOneHot runs the two-op loss
// pipeline used by the recurrent cells and checks that the gradient
// arriving at the logits is softmax(logits) - onehot(target).
func TestSoftmaxNLLBackward_GivesProbsMinusOneHot(t *testing.T) {
	backend := newBackend()
	logits := fromValues(t, tensor.Shape{1, 3}, []float32{1, 2, 3})
	targets := targetsFrom(t, []int32{1})

	backend.Tape().StartRecording()
	probs := backend.Softmax(logits, -1)
	loss := backend.NLL(probs, targets)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(onesGrad(t, loss.Shape()), backend)

	probData := probs.AsFloat32()
	logitGrad := grads[logits]
	if logitGrad == nil {
		t.Fatal("missing gradient for logits")
	}
	for i, v := range logitGrad.AsFloat32() {
		want := probData[i]
		if i == 1 {
			want -= 1
		}
		if !floatEqual(v, want) {
			t.Errorf("logit grad[%d] = %v, want %v", i, v, want)
		}
	}
}

// TestBackwardHelper seeds the output gradient with ones and returns
// gradients keyed by raw tensor.
func TestBackwardHelper(t *testing.T) {
	backend := newBackend()
	xRaw := fromValues(t, tensor.Shape{2}, []float32{3, 4})
	yRaw := fromValues(t, tensor.Shape{2}, []float32{10, 20})

	backend.Tape().StartRecording()
	zRaw := backend.Mul(xRaw, yRaw)
	backend.Tape().StopRecording()

	z := tensor.New[float32](zRaw, backend)
	grads := autodiff.Backward(z, backend)

	want := []float32{10, 20}
	for i, v := range grads[xRaw].AsFloat32() {
		if !floatEqual(v, want[i]) {
			t.Errorf("grad[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestBackwardHelper_EmptyTapePanics treats differentiating an
// unrecorded graph as a programming error.
func TestBackwardHelper_EmptyTapePanics(t *testing.T) {
	backend := newBackend()
	raw := fromValues(t, tensor.Shape{1}, []float32{1})
	loss := tensor.New[float32](raw, backend)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty tape")
		}
	}()
	autodiff.Backward(loss, backend)
}

// TestBackwardDoesNotExtendTape confirms that gradient arithmetic run
// during Backward is not itself recorded.
func TestBackwardDoesNotExtendTape(t *testing.T) {
	backend := newBackend()
	x := fromValues(t, tensor.Shape{2}, []float32{1, 2})
	y := fromValues(t, tensor.Shape{2}, []float32{3, 4})

	backend.Tape().StartRecording()
	z := backend.Mul(x, y)

	before := backend.Tape().NumOperations()
	backend.Tape().Backward(onesGrad(t, z.Shape()), backend)
	after := backend.Tape().NumOperations()

	if before != after {
		t.Errorf("tape grew from %d to %d ops during Backward", before, after)
	}
	if !backend.Tape().IsRecording() {
		t.Error("recording flag not restored after Backward")
	}
}
