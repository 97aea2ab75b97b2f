package cpu

import "github.com/inkwell-ml/inkwell/internal/tensor"

// transposeFloat32 copies src into dst with axes permuted. dst's shape
// is the permutation of src's shape by axes; iteration walks dst in
// row-major order and maps each coordinate back into src.
func transposeFloat32(src, dst *tensor.RawTensor, axes []int) {
	srcData := src.AsFloat32()
	dstData := dst.AsFloat32()
	srcStrides := src.Stride()
	dstShape := dst.Shape()

	coords := make([]int, len(dstShape))
	for i := range dstData {
		srcIdx := 0
		for d, c := range coords {
			srcIdx += c * srcStrides[axes[d]]
		}
		dstData[i] = srcData[srcIdx]
		advanceCoords(coords, dstShape)
	}
}

func transposeFloat64(src, dst *tensor.RawTensor, axes []int) {
	srcData := src.AsFloat64()
	dstData := dst.AsFloat64()
	srcStrides := src.Stride()
	dstShape := dst.Shape()

	coords := make([]int, len(dstShape))
	for i := range dstData {
		srcIdx := 0
		for d, c := range coords {
			srcIdx += c * srcStrides[axes[d]]
		}
		dstData[i] = srcData[srcIdx]
		advanceCoords(coords, dstShape)
	}
}
