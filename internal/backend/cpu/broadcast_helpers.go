package cpu

import "github.com/inkwell-ml/inkwell/internal/tensor"

// computeBroadcastStrides returns strides for reading a tensor of
// shape src as if it had shape dst. Dimensions that broadcast (size 1
// in src, or missing because src has lower rank) get stride 0, so the
// same element repeats along them.
func computeBroadcastStrides(src, dst tensor.Shape) []int {
	srcStrides := tensor.ComputeStrides(src)
	strides := make([]int, len(dst))

	offset := len(dst) - len(src)
	for i := range dst {
		if i < offset {
			strides[i] = 0
			continue
		}
		if src[i-offset] == 1 && dst[i] != 1 {
			strides[i] = 0
			continue
		}
		strides[i] = srcStrides[i-offset]
	}
	return strides
}

// flatIndex maps multi-dimensional coordinates to a flat offset using
// the given strides.
func flatIndex(coords, strides []int) int {
	idx := 0
	for i, c := range coords {
		idx += c * strides[i]
	}
	return idx
}

// advanceCoords increments coords in row-major order, wrapping each
// dimension at its size.
func advanceCoords(coords []int, shape tensor.Shape) {
	for i := len(coords) - 1; i >= 0; i-- {
		coords[i]++
		if coords[i] < shape[i] {
			return
		}
		coords[i] = 0
	}
}
