package cpu

import (
	"math"
	"testing"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// TestNaiveSoftmax_Overflows demonstrates why the backend only ships
// the max-shifted softmax: without the shift, a row containing values
// in the hundreds exponentiates to +Inf and normalizes to NaN.
func TestNaiveSoftmax_Overflows(t *testing.T) {
	row := []float32{1000, 890, 2}

	out := naiveSoftmaxFloat32(row)

	sawNonFinite := false
	for _, v := range out {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			sawNonFinite = true
		}
	}
	if !sawNonFinite {
		t.Fatal("expected the unshifted softmax to produce NaN or Inf for large inputs")
	}
}

// TestNaiveSoftmax_AgreesOnSmallInputs shows the two forms only
// diverge when magnitudes are extreme; on small rows they match.
func TestNaiveSoftmax_AgreesOnSmallInputs(t *testing.T) {
	backend := New()

	raw, err := tensor.NewRaw(tensor.Shape{1, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsFloat32(), []float32{0.1, 0.5, -0.3})

	stable := backend.Softmax(raw, 1).AsFloat32()
	naive := naiveSoftmaxFloat32(raw.AsFloat32())

	for i := range stable {
		diff := float64(stable[i] - naive[i])
		if math.Abs(diff) > 1e-6 {
			t.Errorf("element %d: stable %f vs naive %f", i, stable[i], naive[i])
		}
	}
}
