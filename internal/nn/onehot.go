package nn

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// OneHot encodes a single symbol index as a [1, numClasses] row with a
// 1 at the index and 0 elsewhere.
//
// Panics if index is outside [0, numClasses): indices reaching this
// layer have already passed vocabulary validation, so a bad one is a
// programming error.
func OneHot[B tensor.Backend](index, numClasses int, backend B) *tensor.Tensor[float32, B] {
	return OneHotBatch([]int{index}, numClasses, backend)
}

// OneHotBatch encodes a batch of symbol indices as a
// [len(indices), numClasses] matrix with one 1 per row.
func OneHotBatch[B tensor.Backend](indices []int, numClasses int, backend B) *tensor.Tensor[float32, B] {
	if len(indices) == 0 {
		panic("OneHotBatch: empty index batch")
	}

	raw, err := tensor.NewRaw(tensor.Shape{len(indices), numClasses}, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := raw.AsFloat32()
	for row, idx := range indices {
		if idx < 0 || idx >= numClasses {
			panic(fmt.Sprintf("OneHotBatch: index %d out of range [0, %d) at row %d", idx, numClasses, row))
		}
		data[row*numClasses+idx] = 1
	}

	return tensor.New[float32](raw, backend)
}

// Targets encodes a batch of target symbol indices as a [len(indices)]
// int32 tensor for the loss functions.
func Targets[B tensor.Backend](indices []int, backend B) *tensor.Tensor[int32, B] {
	if len(indices) == 0 {
		panic("Targets: empty index batch")
	}

	data := make([]int32, len(indices))
	for i, idx := range indices {
		if idx < 0 {
			panic(fmt.Sprintf("Targets: negative index %d at position %d", idx, i))
		}
		data[i] = int32(idx) //nolint:gosec // G115: vocabulary indices are far below int32 range.
	}

	t, err := tensor.FromSlice(data, tensor.Shape{len(indices)}, backend)
	if err != nil {
		panic(err)
	}
	return t
}
