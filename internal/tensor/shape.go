package tensor

import "fmt"

// Shape describes the dimensions of a tensor.
//
// Shape{3, 4} is a 3x4 matrix. An empty shape denotes a scalar with a
// single element.
type Shape []int

// NumElements returns the total number of elements the shape spans.
// The empty (scalar) shape has one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid shape %v: dimension %d is %d, must be positive", s, i, dim)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// String formats the shape as a dimension list, e.g. "[2 3]".
func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}

// ComputeStrides returns the row-major strides for a shape.
//
// The stride of a dimension is the number of elements to skip to move
// one step along it. For Shape{2, 3} the strides are [3, 1].
func ComputeStrides(shape Shape) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

// BroadcastShapes computes the result shape of a binary operation on
// tensors of shapes a and b under NumPy broadcasting rules.
//
// Dimensions are aligned from the right; a dimension broadcasts when
// it is 1 or missing. The second return value reports whether either
// operand actually needs broadcasting (false when the shapes are
// already identical).
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	if a.Equal(b) {
		return a.Clone(), false, nil
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}

	result := make(Shape, maxLen)
	for i := 0; i < maxLen; i++ {
		dimA, dimB := 1, 1
		if i < len(a) {
			dimA = a[len(a)-1-i]
		}
		if i < len(b) {
			dimB = b[len(b)-1-i]
		}

		switch {
		case dimA == dimB:
			result[maxLen-1-i] = dimA
		case dimA == 1:
			result[maxLen-1-i] = dimB
		case dimB == 1:
			result[maxLen-1-i] = dimA
		default:
			return nil, false, fmt.Errorf("shapes %v and %v are not broadcastable", a, b)
		}
	}

	return result, true, nil
}
