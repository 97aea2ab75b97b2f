package nn_test

import (
	"testing"

	"github.com/inkwell-ml/inkwell/internal/backend/cpu"
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// TestOneHot_SingleRow checks the encoded row has exactly one 1 at the
// index.
func TestOneHot_SingleRow(t *testing.T) {
	backend := cpu.New()

	x := nn.OneHot(2, 4, backend)

	if !x.Shape().Equal(tensor.Shape{1, 4}) {
		t.Fatalf("shape = %v, want [1 4]", x.Shape())
	}
	want := []float32{0, 0, 1, 0}
	for i, v := range x.Data() {
		if v != want[i] {
			t.Errorf("x[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestOneHotBatch_RowPerIndex encodes three symbols into three rows.
func TestOneHotBatch_RowPerIndex(t *testing.T) {
	backend := cpu.New()

	x := nn.OneHotBatch([]int{0, 2, 1}, 3, backend)

	if !x.Shape().Equal(tensor.Shape{3, 3}) {
		t.Fatalf("shape = %v, want [3 3]", x.Shape())
	}
	want := []float32{
		1, 0, 0,
		0, 0, 1,
		0, 1, 0,
	}
	for i, v := range x.Data() {
		if v != want[i] {
			t.Errorf("x[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestOneHotBatch_RejectsOutOfRange panics on an index outside the
// vocabulary.
func TestOneHotBatch_RejectsOutOfRange(t *testing.T) {
	backend := cpu.New()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	nn.OneHotBatch([]int{0, 3}, 3, backend)
}

// TestTargets_EncodesIndices checks dtype and values.
func TestTargets_EncodesIndices(t *testing.T) {
	backend := cpu.New()

	targets := nn.Targets([]int{2, 0, 1}, backend)

	if targets.DType() != tensor.Int32 {
		t.Fatalf("dtype = %s, want int32", targets.DType())
	}
	if !targets.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("shape = %v, want [3]", targets.Shape())
	}
	want := []int32{2, 0, 1}
	for i, v := range targets.Raw().AsInt32() {
		if v != want[i] {
			t.Errorf("targets[%d] = %v, want %v", i, v, want[i])
		}
	}
}
