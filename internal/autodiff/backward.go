package autodiff

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Backward runs reverse-mode differentiation from loss, seeding the
// output gradient with ones, and returns the gradient of loss with
// respect to every recorded tensor.
//
// loss must be the output of the last recorded operation. Calling
// Backward with an empty tape panics: it means the forward pass ran
// without recording.
func Backward[T tensor.DType, B tensor.Backend](loss *tensor.Tensor[T, *AutodiffBackend[B]], backend *AutodiffBackend[B]) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.Tape()
	if tape.NumOperations() == 0 {
		panic("autodiff: Backward called with no recorded operations")
	}

	seed, err := tensor.NewRaw(loss.Shape(), loss.DType(), loss.Raw().Device())
	if err != nil {
		panic(fmt.Sprintf("autodiff: seed gradient allocation failed: %v", err))
	}
	switch loss.DType() {
	case tensor.Float32:
		data := seed.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := seed.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("autodiff: cannot seed gradient for dtype %s", loss.DType()))
	}

	return tape.Backward(seed, backend)
}
