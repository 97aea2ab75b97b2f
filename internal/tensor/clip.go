package tensor

import "fmt"

// Clip returns a copy of x with every element clamped into
// [minVal, maxVal]. Elements already inside the range are unchanged.
//
// Clip is a plain data operation with no gradient: the trainer applies
// it to gradients after backpropagation, never to graph nodes.
func Clip(x *RawTensor, minVal, maxVal float32) (*RawTensor, error) {
	if x == nil {
		return nil, fmt.Errorf("clip: nil tensor")
	}
	if minVal > maxVal {
		return nil, fmt.Errorf("clip: min %g exceeds max %g", minVal, maxVal)
	}

	out, err := NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		return nil, err
	}

	switch x.DType() {
	case Float32:
		src := x.AsFloat32()
		dst := out.AsFloat32()
		for i, v := range src {
			switch {
			case v < minVal:
				dst[i] = minVal
			case v > maxVal:
				dst[i] = maxVal
			default:
				dst[i] = v
			}
		}
	case Float64:
		src := x.AsFloat64()
		dst := out.AsFloat64()
		lo, hi := float64(minVal), float64(maxVal)
		for i, v := range src {
			switch {
			case v < lo:
				dst[i] = lo
			case v > hi:
				dst[i] = hi
			default:
				dst[i] = v
			}
		}
	default:
		return nil, fmt.Errorf("clip: unsupported dtype %s", x.DType())
	}

	return out, nil
}
